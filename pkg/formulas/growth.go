package formulas

import (
	"math"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/iwvelando/calcsuite/pkg/mathutil"
)

// Growth is the outcome of an investment calculation.
type Growth struct {
	Invested    float64 `json:"invested"`
	FutureValue float64 `json:"futureValue"`
	Gains       float64 `json:"gains"`
}

func newGrowth(invested, futureValue float64) (Growth, error) {
	fv, err := finite("futureValue", futureValue)
	if err != nil {
		return Growth{}, err
	}
	return Growth{Invested: invested, FutureValue: fv, Gains: fv - invested}, nil
}

// CompoundFutureValue returns principal*(1+rate)^periods where rate is the
// per-period rate as a fraction. Rates at or below -1 would wipe out or
// flip the sign of the principal and are rejected.
func CompoundFutureValue(principal, rate float64, periods int) (float64, error) {
	if err := requireNonNegative("principal", principal); err != nil {
		return 0, err
	}
	if !mathutil.IsFinite(rate) || rate <= -1 {
		return 0, calcerr.Invalid("rate", "must be greater than -1, got %v", rate)
	}
	if periods < 0 {
		return 0, calcerr.Invalid("periods", "must be zero or positive, got %d", periods)
	}
	return finite("futureValue", principal*math.Pow(1+rate, float64(periods)))
}

// CompoundInterest compounds principal at annualRatePercent, timesPerYear
// times a year, for the given number of years.
func CompoundInterest(principal, annualRatePercent, years float64, timesPerYear int) (Growth, error) {
	if err := requirePositive("principal", principal); err != nil {
		return Growth{}, err
	}
	if err := requireNonNegative("annualRatePercent", annualRatePercent); err != nil {
		return Growth{}, err
	}
	if err := requireNonNegative("years", years); err != nil {
		return Growth{}, err
	}
	if timesPerYear <= 0 {
		return Growth{}, calcerr.Invalid("timesPerYear", "must be a positive number, got %d", timesPerYear)
	}
	n := float64(timesPerYear)
	rate := annualRatePercent / constants.PercentageMultiplier / n
	periods := n * years
	if whole := math.Trunc(periods); whole == periods && whole <= math.MaxInt32 {
		fv, err := CompoundFutureValue(principal, rate, int(whole))
		if err != nil {
			return Growth{}, err
		}
		return newGrowth(principal, fv)
	}
	// fractional periods, e.g. 2.5 years compounded annually
	return newGrowth(principal, principal*math.Pow(1+rate, periods))
}

// SimpleInterest accrues principal*rate*years without compounding.
func SimpleInterest(principal, annualRatePercent, years float64) (Growth, error) {
	if err := requirePositive("principal", principal); err != nil {
		return Growth{}, err
	}
	if err := requireNonNegative("annualRatePercent", annualRatePercent); err != nil {
		return Growth{}, err
	}
	if err := requireNonNegative("years", years); err != nil {
		return Growth{}, err
	}
	interest := mathutil.ApplyPercentage(principal, annualRatePercent) * years
	return newGrowth(principal, principal+interest)
}

// SIPFutureValue values a systematic investment plan of monthlyInvestment
// paid at the start of each month for the given number of months:
// P * ((1+i)^n - 1) / i * (1+i) with i the monthly return.
func SIPFutureValue(monthlyInvestment, annualReturnPercent float64, months int) (Growth, error) {
	if err := requirePositive("monthlyInvestment", monthlyInvestment); err != nil {
		return Growth{}, err
	}
	if err := requireNonNegative("annualReturnPercent", annualReturnPercent); err != nil {
		return Growth{}, err
	}
	if months <= 0 {
		return Growth{}, calcerr.Invalid("months", "must be a positive number of months, got %d", months)
	}

	n := float64(months)
	invested := monthlyInvestment * n
	if annualReturnPercent == 0 {
		return newGrowth(invested, invested)
	}
	i := annualReturnPercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
	fv := monthlyInvestment * (math.Pow(1+i, n) - 1) / i * (1 + i)
	return newGrowth(invested, fv)
}
