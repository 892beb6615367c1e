package datetime

import (
	"time"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/constants"
)

// DateSpan is the time elapsed between two instants.
//
// Years, Months and Days are a calendar decomposition: adding them to the
// start date with OffsetDate reproduces the end date. The Total fields and
// Weeks are derived from the exact millisecond delta and are independent of
// the calendar decomposition.
type DateSpan struct {
	Years        int   `json:"years"`
	Months       int   `json:"months"`
	Days         int   `json:"days"`
	Weeks        int64 `json:"weeks"`
	TotalDays    int64 `json:"totalDays"`
	TotalHours   int64 `json:"totalHours"`
	TotalMinutes int64 `json:"totalMinutes"`
	TotalSeconds int64 `json:"totalSeconds"`
	// Negative is set by SignedElapsedBetween when end preceded start. All
	// other fields are then magnitudes.
	Negative bool `json:"negative,omitempty"`
}

// IsZero reports whether the span covers no time at all.
func (s DateSpan) IsZero() bool {
	return s.Years == 0 && s.Months == 0 && s.Days == 0 && s.TotalSeconds == 0
}

// Delta converts the calendar decomposition into an offset usable with
// OffsetDate.
func (s DateSpan) Delta() Delta {
	return Delta{Years: s.Years, Months: s.Months, Days: s.Days}
}

// ElapsedBetween returns the span from start to end. It fails with
// calcerr.ErrDateOutOfOrder when end is before start; use
// SignedElapsedBetween to get a normalised span instead.
//
// The calendar fields are only exact for civil dates. Callers holding
// clock-bearing times should pass them through CivilDate first, otherwise
// the Total fields count a partial day that the calendar fields do not.
func ElapsedBetween(start, end time.Time) (DateSpan, error) {
	if end.Before(start) {
		return DateSpan{}, calcerr.OutOfOrder("end",
			"end date %s is before start date %s", FormatDate(end), FormatDate(start))
	}
	return elapsed(start, end), nil
}

// SignedElapsedBetween never fails: when end is before start the arguments
// are swapped and the result is flagged Negative.
func SignedElapsedBetween(start, end time.Time) DateSpan {
	if end.Before(start) {
		span := elapsed(end, start)
		span.Negative = true
		return span
	}
	return elapsed(start, end)
}

// elapsed requires start <= end.
func elapsed(start, end time.Time) DateSpan {
	end = end.In(start.Location())
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()

	years := ey - sy
	months := int(em) - int(sm)
	days := ed - sd

	// Borrow whole calendar months, walking back from the month before end's
	// month, until the day remainder is non-negative.
	by, bm := ey, em
	for days < 0 {
		by, bm = previousMonth(by, bm)
		days += DaysInMonth(by, bm)
		months--
	}
	for months < 0 {
		months += constants.MonthsPerYear
		years--
	}

	ms := end.UnixMilli() - start.UnixMilli()
	totalDays := ms / constants.MillisPerDay

	return DateSpan{
		Years:        years,
		Months:       months,
		Days:         days,
		Weeks:        totalDays / constants.DaysPerWeek,
		TotalDays:    totalDays,
		TotalHours:   ms / constants.MillisPerHour,
		TotalMinutes: ms / constants.MillisPerMinute,
		TotalSeconds: ms / constants.MillisPerSecond,
	}
}

func previousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
