package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scan outcome labels for the scans_total counter.
const (
	OutcomeConference   = "moved_to_conference"
	OutcomeCheckedOut   = "checked_out"
	OutcomeReturned     = "returned_to_checked_in"
	OutcomeAlreadyOut   = "already_checked_out"
	OutcomeInvalidInput = "invalid_input"
	OutcomeNotFound     = "not_found"
	OutcomeWriteFailure = "write_failure"
)

var (
	// ScansTotal counts scan submissions by outcome so operators can see
	// bad scans and unknown badges separately from normal traffic.
	ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conftrack_scans_total",
		Help: "Scan submissions by outcome.",
	}, []string{"outcome"})

	// SeededRows counts attendee rows written by roster uploads.
	SeededRows = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conftrack_seeded_rows_total",
		Help: "Attendee rows written by seed uploads.",
	})
)
