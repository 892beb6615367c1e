// Package formulas holds the closed-form calculators: percentage change,
// body metrics, compound growth, SIP and GST.
package formulas

import (
	"math"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/iwvelando/calcsuite/pkg/mathutil"
)

// PercentageChange returns the change from oldValue to newValue as a
// percentage of |oldValue|, so a move from -50 to -25 is +50%.
func PercentageChange(oldValue, newValue float64) (float64, error) {
	if err := requireFinite("oldValue", oldValue); err != nil {
		return 0, err
	}
	if err := requireFinite("newValue", newValue); err != nil {
		return 0, err
	}
	if oldValue == 0 {
		return 0, calcerr.Degenerate("oldValue", "percentage change from zero is undefined")
	}
	return (newValue - oldValue) / math.Abs(oldValue) * constants.PercentageMultiplier, nil
}

// PercentageOf returns percent% of value.
func PercentageOf(value, percent float64) (float64, error) {
	if err := requireFinite("value", value); err != nil {
		return 0, err
	}
	if err := requireFinite("percent", percent); err != nil {
		return 0, err
	}
	return mathutil.ApplyPercentage(value, percent), nil
}

func requireFinite(field string, v float64) error {
	if !mathutil.IsFinite(v) {
		return calcerr.Invalid(field, "must be a finite number, got %v", v)
	}
	return nil
}

func requirePositive(field string, v float64) error {
	if !mathutil.IsFinite(v) || v <= 0 {
		return calcerr.Invalid(field, "must be a positive number, got %v", v)
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if !mathutil.IsFinite(v) || v < 0 {
		return calcerr.Invalid(field, "must be zero or positive, got %v", v)
	}
	return nil
}

// finite guards results that can overflow even when every input is valid.
func finite(field string, v float64) (float64, error) {
	if !mathutil.IsFinite(v) {
		return 0, calcerr.Degenerate(field, "result is not a finite number")
	}
	return v, nil
}
