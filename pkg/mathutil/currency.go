// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/calcsuite/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundTo rounds a value to the given number of decimal places.
func RoundTo(val float64, places int) float64 {
	if places <= 0 {
		return math.Round(val)
	}
	scale := math.Pow(10, float64(places))
	return math.Round(val*scale) / scale
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// PercentOf returns value as a percentage of total, or 0 when total is 0.
func PercentOf(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
