package validation

import (
	"math"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/iwvelando/calcsuite/pkg/mathutil"
)

// Limits bounds what a caller may ask of the calculators. The calculators
// themselves accept any finite input; limits keep a public service from
// spending time on absurd requests.
type Limits struct {
	MaxPrincipal   float64 `mapstructure:"maxPrincipal" yaml:"maxPrincipal" json:"maxPrincipal"`
	MaxTermMonths  int     `mapstructure:"maxTermMonths" yaml:"maxTermMonths" json:"maxTermMonths"`
	MaxRatePercent float64 `mapstructure:"maxRatePercent" yaml:"maxRatePercent" json:"maxRatePercent"`
	MaxSpanYears   int     `mapstructure:"maxSpanYears" yaml:"maxSpanYears" json:"maxSpanYears"`
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxPrincipal:   constants.DefaultMaxPrincipal,
		MaxTermMonths:  constants.DefaultMaxTermMonths,
		MaxRatePercent: constants.DefaultMaxRatePercent,
		MaxSpanYears:   constants.DefaultMaxSpanYears,
	}
}

// ValidateRange checks that value is finite and in [minInclusive, maxInclusive].
func ValidateRange(name string, value, minInclusive, maxInclusive float64) error {
	if !mathutil.IsFinite(value) {
		return calcerr.Invalid(name, "must be a finite number, got %v", value)
	}
	if value < minInclusive {
		return calcerr.Invalid(name, "must be at least %v, got %v", minInclusive, value)
	}
	if value > maxInclusive {
		return calcerr.Invalid(name, "must be at most %v, got %v", maxInclusive, value)
	}
	return nil
}

// ValidateIntRange checks that value is in [minInclusive, maxInclusive].
func ValidateIntRange(name string, value, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return calcerr.Invalid(name, "must be between %d and %d, got %d", minInclusive, maxInclusive, value)
	}
	return nil
}

// CheckAmount bounds a principal, investment or price. Zero and negative
// amounts are left to the calculators, which reject them with a clearer
// message.
func (l Limits) CheckAmount(name string, amount float64) error {
	return ValidateRange(name, amount, math.Inf(-1), l.MaxPrincipal)
}

// CheckRate bounds an annual rate in percent.
func (l Limits) CheckRate(name string, ratePercent float64) error {
	return ValidateRange(name, ratePercent, math.Inf(-1), l.MaxRatePercent)
}

// CheckMonths bounds a term or contribution count in months. Non-positive
// counts are left to the calculators.
func (l Limits) CheckMonths(name string, months int) error {
	if months <= 0 {
		return nil
	}
	return ValidateIntRange(name, months, 1, l.MaxTermMonths)
}

// CheckYears bounds a year count such as an investment horizon or a date
// offset component. Negative values are bounded by magnitude.
func (l Limits) CheckYears(name string, years float64) error {
	return ValidateRange(name, math.Abs(years), 0, float64(l.MaxSpanYears))
}

// Validate reports limits that could never admit a request.
func (l Limits) Validate() error {
	if l.MaxPrincipal <= 0 {
		return calcerr.Invalid("limits.maxPrincipal", "must be positive, got %v", l.MaxPrincipal)
	}
	if l.MaxTermMonths <= 0 {
		return calcerr.Invalid("limits.maxTermMonths", "must be positive, got %d", l.MaxTermMonths)
	}
	if l.MaxRatePercent <= 0 {
		return calcerr.Invalid("limits.maxRatePercent", "must be positive, got %v", l.MaxRatePercent)
	}
	if l.MaxSpanYears <= 0 {
		return calcerr.Invalid("limits.maxSpanYears", "must be positive, got %d", l.MaxSpanYears)
	}
	return nil
}
