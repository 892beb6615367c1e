package loans

import (
	"fmt"

	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BuildRoundedSchedule creates a schedule in whole currency units (two
// decimal places), the way a lender's statement shows it.
func BuildRoundedSchedule(principal, annualRatePercent float64, termMonths int) (Schedule, error) {
	return NewAmortizationScheduleGenerator(nil).GenerateRounded(Terms{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermMonths:        termMonths,
	})
}

// GenerateRounded rounds the EMI and every interest charge to two decimal
// places. Rounding each period on its own drifts away from the true balance,
// so the last period pays exactly the remaining balance and the principal
// components sum to the original principal with no residue.
//
// When rounding would leave the EMI no larger than the first interest
// charge, it is raised to pay one cent of principal. Tiny loans over very
// long terms can have a rounded EMI that clears the balance early; the
// schedule then stops at the period that reaches zero.
func (g *AmortizationScheduleGenerator) GenerateRounded(terms Terms) (Schedule, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	emiFloat, err := ComputeEMI(terms.Principal, terms.AnnualRatePercent, terms.TermMonths)
	if err != nil {
		return nil, err
	}

	places := int32(constants.CurrencyDecimalPlaces)
	emi := decimal.NewFromFloat(emiFloat).Round(places)
	rate := decimal.NewFromFloat(terms.AnnualRatePercent).
		Div(decimal.NewFromFloat(constants.PercentageMultiplier * constants.MonthsPerYear))
	remaining := decimal.NewFromFloat(terms.Principal).Round(places)

	// The balance must fall every period, so the EMI covers the first
	// interest charge plus at least one cent.
	cent := decimal.New(1, -places)
	if floor := remaining.Mul(rate).Round(places).Add(cent); emi.LessThan(floor) {
		g.logger.Debug(fmt.Sprintf("raising rounded EMI from %s to %s", emi.StringFixed(places), floor.StringFixed(places)),
			zap.String("op", "loans.GenerateRounded"),
		)
		emi = floor
	}

	schedule := make(Schedule, 0, terms.TermMonths)
	for period := 1; period <= terms.TermMonths; period++ {
		interest := remaining.Mul(rate).Round(places)
		principalPart := emi.Sub(interest)

		if period == terms.TermMonths || principalPart.GreaterThanOrEqual(remaining) {
			drift := remaining.Sub(principalPart)
			if !drift.IsZero() {
				g.logger.Debug(fmt.Sprintf("final period %d absorbs rounding drift %s", period, drift.StringFixed(places)),
					zap.String("op", "loans.GenerateRounded"),
				)
			}
			principalPart = remaining
		}
		remaining = remaining.Sub(principalPart)

		schedule = append(schedule, Installment{
			Period:           period,
			Payment:          principalPart.Add(interest).InexactFloat64(),
			Principal:        principalPart.InexactFloat64(),
			Interest:         interest.InexactFloat64(),
			RemainingBalance: remaining.InexactFloat64(),
		})

		if remaining.IsZero() {
			break
		}
	}

	return schedule, nil
}
