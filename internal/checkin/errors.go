package checkin

import (
	"errors"
	"fmt"
)

// Sentinel errors for the scan pipeline. Handlers map each class to a
// distinct response so operators can tell a bad scan from an unknown
// attendee from a broken store.
var (
	// ErrInvalidInput marks malformed scans or seed rows, rejected before
	// any store access.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means the decoded identifier has no record in the
	// directory.
	ErrNotFound = errors.New("not found")

	// ErrNotPresent blocks administrative status overrides for attendees
	// who were never marked present.
	ErrNotPresent = errors.New("attendee not present")
)

// NotFoundError carries the identifier that missed, for operator diagnosis.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("attendee %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// WriteFailure wraps a store error that happened after a successful lookup.
// Resubmitting the same scan is safe: the transition re-evaluates against
// whatever status is persisted now.
type WriteFailure struct {
	Op  string
	Err error
}

func (e *WriteFailure) Error() string {
	return fmt.Sprintf("directory write failed during %s: %v", e.Op, e.Err)
}

func (e *WriteFailure) Unwrap() error { return e.Err }
