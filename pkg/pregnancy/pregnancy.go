// Package pregnancy estimates due dates and gestational age from the first
// day of the last menstrual period (LMP) or a conception date.
package pregnancy

import (
	"time"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/iwvelando/calcsuite/pkg/datetime"
)

// Trimester is the stage of a pregnancy by completed gestational weeks.
type Trimester string

// Trimesters
const (
	First    Trimester = "first"
	Second   Trimester = "second"
	Third    Trimester = "third"
	PostTerm Trimester = "post-term"
)

// Classify maps completed gestational weeks onto a trimester.
func Classify(weeks int) Trimester {
	switch {
	case weeks < constants.FirstTrimesterEndWeek:
		return First
	case weeks < constants.SecondTrimesterEndWeek:
		return Second
	case weeks <= constants.FullTermWeek:
		return Third
	default:
		return PostTerm
	}
}

// Estimate describes a pregnancy as of a reference date.
type Estimate struct {
	LMP        time.Time `json:"lmp"`
	Conception time.Time `json:"conception"`
	DueDate    time.Time `json:"dueDate"`
	Reference  time.Time `json:"reference"`

	// Gestational age is Weeks full weeks plus Days (0-6) days.
	Weeks     int `json:"weeks"`
	Days      int `json:"days"`
	TotalDays int `json:"totalDays"`

	// DaysRemaining is negative once the due date has passed.
	DaysRemaining int       `json:"daysRemaining"`
	Trimester     Trimester `json:"trimester"`
}

// FromLMP estimates the pregnancy for the given LMP as of reference.
// Both dates are reduced to calendar days first.
func FromLMP(lmp, reference time.Time) (Estimate, error) {
	lmp = datetime.CivilDate(lmp)
	reference = datetime.CivilDate(reference)

	span, err := datetime.ElapsedBetween(lmp, reference)
	if err != nil {
		return Estimate{}, calcerr.OutOfOrder("reference", "reference date %s is before the LMP %s",
			datetime.FormatDate(reference), datetime.FormatDate(lmp))
	}

	total := int(span.TotalDays)
	weeks := total / constants.DaysPerWeek
	return Estimate{
		LMP:           lmp,
		Conception:    lmp.AddDate(0, 0, constants.ConceptionOffsetDays),
		DueDate:       DueDate(lmp),
		Reference:     reference,
		Weeks:         weeks,
		Days:          total % constants.DaysPerWeek,
		TotalDays:     total,
		DaysRemaining: constants.GestationDays - total,
		Trimester:     Classify(weeks),
	}, nil
}

// FromConception estimates the pregnancy from a conception date, taking the
// LMP to be two weeks earlier.
func FromConception(conception, reference time.Time) (Estimate, error) {
	lmp := datetime.CivilDate(conception).AddDate(0, 0, -constants.ConceptionOffsetDays)
	return FromLMP(lmp, reference)
}

// DueDate is LMP plus 280 days.
func DueDate(lmp time.Time) time.Time {
	return datetime.CivilDate(lmp).AddDate(0, 0, constants.GestationDays)
}
