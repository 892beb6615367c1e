package datetime

import (
	"strings"
	"time"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/constants"
)

// Direction selects whether OffsetDate moves forward or backward in time.
type Direction string

const (
	// Add moves the base date forward.
	Add Direction = "add"
	// Subtract moves the base date backward.
	Subtract Direction = "subtract"
)

// ParseDirection accepts "add"/"subtract" and the +/- shorthands. An empty
// value defaults to Add.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "add", "+", "plus", "after":
		return Add, nil
	case "subtract", "sub", "-", "minus", "before":
		return Subtract, nil
	default:
		return "", calcerr.Invalid("direction", "expected add or subtract, got %q", value)
	}
}

// Delta is a calendar offset. Components may be negative.
type Delta struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Weeks  int `json:"weeks"`
	Days   int `json:"days"`
}

// Negate flips the sign of every component.
func (d Delta) Negate() Delta {
	return Delta{Years: -d.Years, Months: -d.Months, Weeks: -d.Weeks, Days: -d.Days}
}

// IsZero reports whether the delta moves the date at all.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// OffsetDate applies delta to base in a fixed order: years and months first
// as a single calendar-month step, then weeks, then days. Month-level
// arithmetic overflows the way time.AddDate does (Jan 31 + 1 month is Mar 3
// in a common year), and because it runs before the day-level step the
// result differs from applying days first. Subtract is Add of the negated
// delta.
func OffsetDate(base time.Time, delta Delta, direction Direction) (time.Time, error) {
	switch direction {
	case Add:
	case Subtract:
		delta = delta.Negate()
	default:
		return base, calcerr.Invalid("direction", "expected add or subtract, got %q", direction)
	}

	t := base.AddDate(delta.Years, delta.Months, 0)
	t = t.AddDate(0, 0, delta.Weeks*constants.DaysPerWeek)
	t = t.AddDate(0, 0, delta.Days)
	return t, nil
}
