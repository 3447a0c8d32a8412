package checkin

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// minIDLength rejects accidental single-keystroke scanner triggers.
const minIDLength = 4

// DecodeBarcode extracts the attendee identifier from a raw scan.
//
// Badge scanners emit "<date> <time> <id>"; manual entry is just the id,
// sometimes prefixed with a marker token. Either way the identifier is the
// last whitespace-separated token, so runs of spaces or tabs never produce
// empty tokens. The token is returned as-is: no case folding, no stripping.
func DecodeBarcode(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty barcode", ErrInvalidInput)
	}
	tokens := strings.Fields(trimmed)
	if len(tokens) == 0 {
		return "", fmt.Errorf("%w: empty barcode", ErrInvalidInput)
	}
	id := tokens[len(tokens)-1]
	if utf8.RuneCountInString(id) < minIDLength {
		return "", fmt.Errorf("%w: identifier %q too short", ErrInvalidInput, id)
	}
	return id, nil
}
