package checkin

import (
	"fmt"
	"time"
)

// Status is an attendee's position in the check-in lifecycle.
type Status string

const (
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusConference Status = "CONFERENCE"
	StatusCheckedOut Status = "CHECKED_OUT"
)

// ParseStatus converts a raw string into a Status, rejecting anything
// outside the three known values. Storage and transport call this at the
// boundary so the transition engine never sees an out-of-domain value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCheckedIn, StatusConference, StatusCheckedOut:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, s)
}

// Cutoff is the configured time of day after which a scan of a checked-in
// attendee checks them out instead of moving them to the conference floor.
type Cutoff struct {
	Hour   int
	Minute int
}

// At returns the cutoff instant on the calendar day of t, in t's location.
func (c Cutoff) At(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour, c.Minute, 0, 0, t.Location())
}

func (c Cutoff) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Result is the outcome of a status transition.
type Result struct {
	NewStatus Status
	Action    string
}

// Action labels returned to operators alongside a transition.
const (
	ActionMovedToConference = "Moved to Conference"
	ActionCheckedOut        = "Checked Out"
	ActionReturned          = "Returned to Checked In"
	ActionAlreadyOut        = "Already Checked Out"
)

// Transition computes the next status for a scanned attendee. It is a pure
// function of the current status, the scan time, and the daily cutoff:
//
//	CONFERENCE  -> CHECKED_IN  (left the floor, back at the entrance)
//	CHECKED_OUT -> CHECKED_OUT (scans after checkout are no-ops)
//	CHECKED_IN  -> CONFERENCE  while now is strictly before today's cutoff,
//	               CHECKED_OUT at the cutoff instant or later.
//
// Callers persist the result; the engine itself mutates nothing.
func Transition(current Status, now time.Time, cutoff Cutoff) Result {
	switch current {
	case StatusConference:
		return Result{NewStatus: StatusCheckedIn, Action: ActionReturned}
	case StatusCheckedOut:
		return Result{NewStatus: StatusCheckedOut, Action: ActionAlreadyOut}
	}
	if now.Before(cutoff.At(now)) {
		return Result{NewStatus: StatusConference, Action: ActionMovedToConference}
	}
	return Result{NewStatus: StatusCheckedOut, Action: ActionCheckedOut}
}
