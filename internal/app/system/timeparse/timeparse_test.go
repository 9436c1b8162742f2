package timeparse_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/noticeboard/internal/app/system/timeparse"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2099-01-01T00:00:00", time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2026-05-01", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"2026-05-01T08:30", time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)},
		{"2026-05-01 08:30:15", time.Date(2026, 5, 1, 8, 30, 15, 0, time.UTC)},
		{"2026-05-01T08:30:15.250", time.Date(2026, 5, 1, 8, 30, 15, 250_000_000, time.UTC)},
		{"2026-05-01T08:30:15.123456", time.Date(2026, 5, 1, 8, 30, 15, 123_456_000, time.UTC)},
		{"2026-05-01T08:30:00Z", time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)},
		{"2026-05-01T08:30:00-05:00", time.Date(2026, 5, 1, 13, 30, 0, 0, time.UTC)},
		{"2026-05-01T08:30:00+0530", time.Date(2026, 5, 1, 3, 0, 0, 0, time.UTC)},
		{"2026-05-01T08:30+02:00", time.Date(2026, 5, 1, 6, 30, 0, 0, time.UTC)},
		{"  2026-05-01T08:30:00  ", time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)},
		{"2026-05-01T08", time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)},
		{"2026-05-01 08", time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)},
		{"2026-05-01T08:30:00+05", time.Date(2026, 5, 1, 3, 30, 0, 0, time.UTC)},
		{"20260501", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"20260501T083000Z", time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)},
		{"20260501T0830-0100", time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := timeparse.Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("Parse(%q) location = %v, want UTC", tt.in, got.Location())
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not-a-date",
		"2026-13-01",
		"2026-02-30T00:00:00",
		"01/05/2026",
		"2026-05-01T25:00:00",
		"2026-05-01T08:30:00 UTC",
		"2026-0501",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := timeparse.Parse(in)
			if !errors.Is(err, timeparse.ErrInvalidFormat) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidFormat", in, err)
			}
		})
	}
}
