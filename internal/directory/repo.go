package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"conftrack/internal/checkin"
)

// Repository persists attendee records in Postgres. It is the only writer
// of the attendees table; per-id serialization comes from single-statement
// read-modify-write updates.
type Repository struct {
	db *sql.DB
}

// NewRepository creates the repo and ensures the schema exists.
func NewRepository(db *sql.DB) (*Repository, error) {
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Repository{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS attendees (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			status          TEXT NOT NULL DEFAULT 'CHECKED_IN',
			present         BOOLEAN NOT NULL DEFAULT FALSE,
			last_scanned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

const attendeeColumns = `id, name, status, present, last_scanned_at`

func scanAttendee(row interface{ Scan(...any) error }) (checkin.Attendee, error) {
	var att checkin.Attendee
	var status string
	if err := row.Scan(&att.ID, &att.Name, &status, &att.Present, &att.LastScannedAt); err != nil {
		return checkin.Attendee{}, err
	}
	parsed, err := checkin.ParseStatus(status)
	if err != nil {
		return checkin.Attendee{}, fmt.Errorf("corrupt status for attendee %s: %w", att.ID, err)
	}
	att.Status = parsed
	return att, nil
}

// Get returns the attendee with the given badge id.
func (r *Repository) Get(ctx context.Context, id string) (checkin.Attendee, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+attendeeColumns+` FROM attendees WHERE id = $1
	`, id)
	att, err := scanAttendee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return checkin.Attendee{}, &checkin.NotFoundError{ID: id}
	}
	return att, err
}

// ApplyScan applies a scan outcome in a single atomic update.
func (r *Repository) ApplyScan(ctx context.Context, id string, upd checkin.ScanUpdate) (checkin.Attendee, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE attendees
		SET status = $2, present = $3, last_scanned_at = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+attendeeColumns+`
	`, id, string(upd.Status), upd.Present, upd.LastScannedAt)
	att, err := scanAttendee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return checkin.Attendee{}, &checkin.NotFoundError{ID: id}
	}
	return att, err
}

// SetPresent flips the administrative presence flag.
func (r *Repository) SetPresent(ctx context.Context, id string, present bool) (checkin.Attendee, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE attendees
		SET present = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+attendeeColumns+`
	`, id, present)
	att, err := scanAttendee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return checkin.Attendee{}, &checkin.NotFoundError{ID: id}
	}
	return att, err
}

// SetStatus applies an administrative status override.
func (r *Repository) SetStatus(ctx context.Context, id string, status checkin.Status, scannedAt time.Time) (checkin.Attendee, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE attendees
		SET status = $2, last_scanned_at = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+attendeeColumns+`
	`, id, string(status), scannedAt)
	att, err := scanAttendee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return checkin.Attendee{}, &checkin.NotFoundError{ID: id}
	}
	return att, err
}

// SeedUpsert creates or replaces roster rows by badge id. New rows start
// CHECKED_IN and not present; existing rows keep their presence flag but
// have name, status, and the scan stamp reset.
func (r *Repository) SeedUpsert(ctx context.Context, entries []checkin.RosterEntry, seededAt time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	count := 0
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO attendees (id, name, status, present, last_scanned_at)
			VALUES ($1, $2, $3, FALSE, $4)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				last_scanned_at = EXCLUDED.last_scanned_at,
				updated_at = NOW()
		`, e.ID, e.Name, string(checkin.StatusCheckedIn), seededAt); err != nil {
			return 0, err
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// List returns attendees ordered by name ascending. The public dashboard
// asks for presentOnly; the administrative view sees every row.
func (r *Repository) List(ctx context.Context, presentOnly bool) ([]checkin.Attendee, error) {
	query := `SELECT ` + attendeeColumns + ` FROM attendees`
	if presentOnly {
		query += ` WHERE present`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []checkin.Attendee
	for rows.Next() {
		att, err := scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, att)
	}
	return out, rows.Err()
}
