// internal/pkg/dateparam/dateparam.go
// Package dateparam parses the date values accepted in query strings and bodies.
package dateparam

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Parse accepts YYYY-MM-DD or an RFC 3339 timestamp.
func Parse(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", value)
	}
	return t, nil
}

// ParseOptional returns nil for an empty value.
func ParseOptional(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := Parse(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseUpper parses an inclusive upper bound. A bare date covers the whole
// day, so "2024-03-01" means up to 2024-03-01T23:59:59.999999999Z.
func ParseUpper(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t.Add(24*time.Hour - time.Nanosecond), nil
	}
	return Parse(value)
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Format renders t as YYYY-MM-DD, nil-safe.
func Format(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
