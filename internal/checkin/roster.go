package checkin

import "strings"

// RosterEntry is one attendee from a seed upload.
type RosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ParseRoster reads pasted spreadsheet data, one attendee per line as
// "id, name" or "id<TAB>name". Blank lines and lines without two non-empty
// fields are skipped rather than failing the whole upload.
func ParseRoster(text string) []RosterEntry {
	var entries []RosterEntry
	for _, line := range strings.Split(text, "\n") {
		parts := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == '\t'
		})
		if len(parts) < 2 {
			continue
		}
		id := strings.TrimSpace(parts[0])
		name := strings.TrimSpace(parts[1])
		if id == "" || name == "" {
			continue
		}
		entries = append(entries, RosterEntry{ID: id, Name: name})
	}
	return entries
}
