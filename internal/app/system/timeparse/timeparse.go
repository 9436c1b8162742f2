// Package timeparse turns the ISO-8601 text teachers send for announcement
// windows into UTC instants.
//
// Accepted shapes:
//
//	2026-05-01
//	2026-05-01T08
//	2026-05-01T08:30
//	2026-05-01T08:30:00
//	2026-05-01 08:30:00.250
//	2026-05-01T08:30:00Z
//	2026-05-01T08:30:00-05:00
//	2026-05-01T08:30:00+0530
//	2026-05-01T08:30:00+05
//	20260501
//	20260501T083000Z
//
// A value without an offset is read as UTC.
package timeparse

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidFormat is returned for text that is not a recognizable date-time.
var ErrInvalidFormat = errors.New("invalid datetime format")

// layouts is tried in order. Fractional seconds are accepted after the
// seconds field by time.Parse even though the layouts don't spell them out.
var layouts = func() []string {
	forms := []struct {
		date   string
		clocks []string
	}{
		{"2006-01-02", []string{"15:04:05", "15:04", "15"}},
		{"20060102", []string{"150405", "1504", "15"}},
	}
	var out []string
	for _, f := range forms {
		for _, sep := range []string{"T", " "} {
			for _, clock := range f.clocks {
				for _, zone := range []string{"", "Z07:00", "-0700", "Z07"} {
					out = append(out, f.date+sep+clock+zone)
				}
			}
		}
		out = append(out, f.date)
	}
	return out
}()

// Parse reads s as a date-time and returns it normalized to UTC.
// Surrounding whitespace is ignored. An empty string is not a date-time.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidFormat
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidFormat
}
