package checkin

import (
	"testing"
	"time"
)

var cutoff17 = Cutoff{Hour: 17, Minute: 0}

func TestTransitionCheckedInBeforeCutoff(t *testing.T) {
	now := time.Date(2025, 12, 1, 10, 0, 0, 0, time.Local)
	res := Transition(StatusCheckedIn, now, cutoff17)
	if res.NewStatus != StatusConference {
		t.Fatalf("expected CONFERENCE, got %s", res.NewStatus)
	}
	if res.Action != ActionMovedToConference {
		t.Fatalf("expected %q, got %q", ActionMovedToConference, res.Action)
	}
}

func TestTransitionCheckedInAfterCutoff(t *testing.T) {
	now := time.Date(2025, 12, 1, 18, 0, 0, 0, time.Local)
	res := Transition(StatusCheckedIn, now, cutoff17)
	if res.NewStatus != StatusCheckedOut {
		t.Fatalf("expected CHECKED_OUT, got %s", res.NewStatus)
	}
	if res.Action != ActionCheckedOut {
		t.Fatalf("expected %q, got %q", ActionCheckedOut, res.Action)
	}
}

func TestTransitionCutoffBoundaryIsExclusiveBefore(t *testing.T) {
	// A scan at exactly the cutoff instant checks the attendee out.
	now := time.Date(2025, 12, 1, 17, 0, 0, 0, time.Local)
	res := Transition(StatusCheckedIn, now, cutoff17)
	if res.NewStatus != StatusCheckedOut {
		t.Fatalf("scan at cutoff should check out, got %s", res.NewStatus)
	}

	justBefore := now.Add(-time.Nanosecond)
	res = Transition(StatusCheckedIn, justBefore, cutoff17)
	if res.NewStatus != StatusConference {
		t.Fatalf("scan just before cutoff should go to conference, got %s", res.NewStatus)
	}
}

func TestTransitionConferenceAlwaysReturns(t *testing.T) {
	times := []time.Time{
		time.Date(2025, 12, 1, 8, 30, 0, 0, time.Local),
		time.Date(2025, 12, 1, 17, 0, 0, 0, time.Local),
		time.Date(2025, 12, 1, 23, 59, 0, 0, time.Local),
	}
	for _, now := range times {
		res := Transition(StatusConference, now, cutoff17)
		if res.NewStatus != StatusCheckedIn {
			t.Fatalf("at %s: expected CHECKED_IN, got %s", now, res.NewStatus)
		}
		if res.Action != ActionReturned {
			t.Fatalf("at %s: expected %q, got %q", now, ActionReturned, res.Action)
		}
	}
}

func TestTransitionCheckedOutIsIdempotent(t *testing.T) {
	times := []time.Time{
		time.Date(2025, 12, 1, 9, 0, 0, 0, time.Local),
		time.Date(2025, 12, 1, 20, 0, 0, 0, time.Local),
	}
	for _, now := range times {
		res := Transition(StatusCheckedOut, now, cutoff17)
		if res.NewStatus != StatusCheckedOut {
			t.Fatalf("at %s: expected CHECKED_OUT, got %s", now, res.NewStatus)
		}
		if res.Action != ActionAlreadyOut {
			t.Fatalf("at %s: expected %q, got %q", now, ActionAlreadyOut, res.Action)
		}
	}
}

func TestTransitionUsesScanDayForCutoff(t *testing.T) {
	// The cutoff is "today at HH:MM" relative to the scan, not a fixed instant.
	nextMorning := time.Date(2025, 12, 2, 9, 0, 0, 0, time.Local)
	res := Transition(StatusCheckedIn, nextMorning, cutoff17)
	if res.NewStatus != StatusConference {
		t.Fatalf("morning scan on a later day should go to conference, got %s", res.NewStatus)
	}
}

func TestCutoffAt(t *testing.T) {
	c := Cutoff{Hour: 9, Minute: 45}
	now := time.Date(2025, 6, 3, 14, 22, 7, 123, time.Local)
	got := c.At(now)
	want := time.Date(2025, 6, 3, 9, 45, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"CHECKED_IN", "CONFERENCE", "CHECKED_OUT"} {
		if _, err := ParseStatus(valid); err != nil {
			t.Fatalf("ParseStatus(%q): %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "checked_in", "UNKNOWN", "CHECKEDIN"} {
		if _, err := ParseStatus(invalid); err == nil {
			t.Fatalf("ParseStatus(%q) should fail", invalid)
		}
	}
}
