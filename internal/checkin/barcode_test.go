package checkin

import (
	"errors"
	"testing"
)

func TestDecodeBarcode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "structured scan",
			raw:  "2025/12/01 10:37:18 1210082",
			want: "1210082",
		},
		{
			name: "irregular spacing",
			raw:  "2025/12/01  10:37:18   1210082  ",
			want: "1210082",
		},
		{
			name: "tabs between tokens",
			raw:  "2025/12/01\t10:37:18\t1210082",
			want: "1210082",
		},
		{
			name: "manual entry with marker",
			raw:  "MANUAL 1210082",
			want: "1210082",
		},
		{
			name: "bare identifier",
			raw:  "1210082",
			want: "1210082",
		},
		{
			// The marker itself decodes; rejection happens at lookup.
			name: "marker only",
			raw:  "MANUAL",
			want: "MANUAL",
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			raw:     "   \t  ",
			wantErr: true,
		},
		{
			name:    "identifier too short",
			raw:     "123",
			wantErr: true,
		},
		{
			name:    "short last token",
			raw:     "2025/12/01 10:37:18 42",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBarcode(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
