// Package datetime provides calendar arithmetic and date parsing utilities.
package datetime

import (
	"strings"
	"time"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/constants"
)

const (
	// DateLayout is the format expected on input and is also the output
	// date format.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses an ISO calendar date ("2024-01-15") or an RFC 3339
// timestamp. Calendar dates are returned at midnight UTC.
func ParseDate(field, value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, calcerr.Invalid(field, "date is required")
	}
	if t, err := time.Parse(DateLayout, trimmed); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, calcerr.Invalid(field, "expected a date in %s format, got %q", DateLayout, value)
	}
	return t, nil
}

// CivilDate strips the clock from t, keeping its calendar date in UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysInMonth returns the number of days in the given month, honouring leap
// years.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the following month normalises to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonthsClamped adds months to t, clamping the day to the last day of the
// target month instead of overflowing into the next one (Jan 31 + 1 month is
// Feb 28 or 29).
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).AddDate(0, months, 0)
	if last := DaysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}
