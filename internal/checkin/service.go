package checkin

import (
	"context"
	"time"
)

// Attendee is the directory record for one badge holder.
type Attendee struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Status        Status    `json:"status"`
	Present       bool      `json:"present"`
	LastScannedAt time.Time `json:"last_scanned_at"`
}

// ScanUpdate is the partial update a scan applies to an attendee.
type ScanUpdate struct {
	Status        Status
	Present       bool
	LastScannedAt time.Time
}

// Directory is the external store of attendee records. Implementations must
// serialize concurrent updates per identifier; the service assumes
// ApplyScan is an atomic read-modify-write.
type Directory interface {
	Get(ctx context.Context, id string) (Attendee, error)
	ApplyScan(ctx context.Context, id string, upd ScanUpdate) (Attendee, error)
	SetPresent(ctx context.Context, id string, present bool) (Attendee, error)
	SetStatus(ctx context.Context, id string, status Status, scannedAt time.Time) (Attendee, error)
	SeedUpsert(ctx context.Context, entries []RosterEntry, seededAt time.Time) (int, error)
	List(ctx context.Context, presentOnly bool) ([]Attendee, error)
}

// ScanResult is the success payload for a processed scan.
type ScanResult struct {
	Attendee  Attendee `json:"user"`
	NewStatus Status   `json:"new_status"`
	Action    string   `json:"action"`
}

// Service runs the scan pipeline and the administrative operations on top
// of an injected directory.
type Service struct {
	dir    Directory
	cutoff Cutoff
	now    func() time.Time
}

// NewService builds a service. A nil clock defaults to time.Now.
func NewService(dir Directory, cutoff Cutoff, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{dir: dir, cutoff: cutoff, now: now}
}

// Scan decodes a raw barcode, looks up the attendee, runs the status
// transition, and persists the outcome. Every status-affecting scan stamps
// last_scanned_at and marks the attendee present.
func (s *Service) Scan(ctx context.Context, barcode string) (ScanResult, error) {
	id, err := DecodeBarcode(barcode)
	if err != nil {
		return ScanResult{}, err
	}

	att, err := s.dir.Get(ctx, id)
	if err != nil {
		return ScanResult{}, err
	}

	now := s.now()
	res := Transition(att.Status, now, s.cutoff)

	updated, err := s.dir.ApplyScan(ctx, id, ScanUpdate{
		Status:        res.NewStatus,
		Present:       true,
		LastScannedAt: now,
	})
	if err != nil {
		return ScanResult{}, &WriteFailure{Op: "scan", Err: err}
	}

	return ScanResult{Attendee: updated, NewStatus: res.NewStatus, Action: res.Action}, nil
}

// Seed upserts the parsed roster: new rows start CHECKED_IN and not
// present, existing rows keep their presence flag but reset to CHECKED_IN.
func (s *Service) Seed(ctx context.Context, entries []RosterEntry) (int, error) {
	if len(entries) == 0 {
		return 0, ErrInvalidInput
	}
	count, err := s.dir.SeedUpsert(ctx, entries, s.now())
	if err != nil {
		return 0, &WriteFailure{Op: "seed", Err: err}
	}
	return count, nil
}

// List returns attendees ordered by name. The public dashboard passes
// presentOnly; the administrative view sees everyone.
func (s *Service) List(ctx context.Context, presentOnly bool) ([]Attendee, error) {
	return s.dir.List(ctx, presentOnly)
}

// SetPresent is the administrative presence toggle. It bypasses the
// transition engine and is the only path that can clear the flag.
func (s *Service) SetPresent(ctx context.Context, id string, present bool) (Attendee, error) {
	if _, err := s.dir.Get(ctx, id); err != nil {
		return Attendee{}, err
	}
	att, err := s.dir.SetPresent(ctx, id, present)
	if err != nil {
		return Attendee{}, &WriteFailure{Op: "set present", Err: err}
	}
	return att, nil
}

// OverrideStatus is the administrative status override. Only attendees who
// are present can be moved; the transition table does not apply here.
func (s *Service) OverrideStatus(ctx context.Context, id string, status Status) (Attendee, error) {
	att, err := s.dir.Get(ctx, id)
	if err != nil {
		return Attendee{}, err
	}
	if !att.Present {
		return Attendee{}, ErrNotPresent
	}
	updated, err := s.dir.SetStatus(ctx, id, status, s.now())
	if err != nil {
		return Attendee{}, &WriteFailure{Op: "override status", Err: err}
	}
	return updated, nil
}
