// Package loans provides EMI and amortization schedule calculations.
package loans

import (
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/iwvelando/calcsuite/pkg/datetime"
	"github.com/iwvelando/calcsuite/pkg/mathutil"
	"go.uber.org/zap"
)

// Terms describes a fixed-rate amortizing loan.
type Terms struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermMonths        int     `json:"termMonths"`
}

// Validate checks that the principal and term are strictly positive and the
// rate is non-negative. A zero rate is allowed.
func (t Terms) Validate() error {
	if !mathutil.IsFinite(t.Principal) || t.Principal <= 0 {
		return calcerr.Invalid("principal", "must be a positive number, got %v", t.Principal)
	}
	if !mathutil.IsFinite(t.AnnualRatePercent) || t.AnnualRatePercent < 0 {
		return calcerr.Invalid("annualRatePercent", "must be zero or positive, got %v", t.AnnualRatePercent)
	}
	if t.TermMonths <= 0 {
		return calcerr.Invalid("termMonths", "must be a positive number of months, got %d", t.TermMonths)
	}
	return nil
}

// Installment holds the values for a given payment period.
type Installment struct {
	Period           int        `json:"period"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
	Payment          float64    `json:"payment"`
	Principal        float64    `json:"principal"`
	Interest         float64    `json:"interest"`
	RemainingBalance float64    `json:"remainingBalance"`
}

// Schedule is an ordered, 1-indexed sequence of installments.
type Schedule []Installment

// TotalPrincipal sums the principal component of every installment.
func (s Schedule) TotalPrincipal() float64 {
	total := 0.0
	for _, inst := range s {
		total += inst.Principal
	}
	return total
}

// TotalInterest sums the interest component of every installment.
func (s Schedule) TotalInterest() float64 {
	total := 0.0
	for _, inst := range s {
		total += inst.Interest
	}
	return total
}

// TotalPayment sums every payment.
func (s Schedule) TotalPayment() float64 {
	total := 0.0
	for _, inst := range s {
		total += inst.Payment
	}
	return total
}

// Summary is the headline result of an EMI calculation.
type Summary struct {
	Terms
	EMI             float64 `json:"emi"`
	TotalPayment    float64 `json:"totalPayment"`
	TotalInterest   float64 `json:"totalInterest"`
	InterestPercent float64 `json:"interestPercent"`
}

// MonthlyRate converts an annual percentage rate into a monthly fraction.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// ComputeEMI calculates the equated monthly installment using the standard
// amortization formula P*r*(1+r)^n / ((1+r)^n - 1). A zero rate is an even
// split of the principal.
func ComputeEMI(principal, annualRatePercent float64, termMonths int) (float64, error) {
	terms := Terms{Principal: principal, AnnualRatePercent: annualRatePercent, TermMonths: termMonths}
	if err := terms.Validate(); err != nil {
		return 0, err
	}
	emi := monthlyPayment(terms)
	if !mathutil.IsFinite(emi) {
		return 0, degenerateTerm(terms)
	}
	return emi, nil
}

func degenerateTerm(t Terms) error {
	return calcerr.Degenerate("termMonths", "payment overflowed for %d months at %v%%",
		t.TermMonths, t.AnnualRatePercent)
}

func monthlyPayment(t Terms) float64 {
	if t.AnnualRatePercent == 0 {
		return t.Principal / float64(t.TermMonths)
	}
	r := MonthlyRate(t.AnnualRatePercent)
	power := math.Pow(1+r, float64(t.TermMonths))
	return t.Principal * r * power / (power - 1)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * MonthlyRate(annualRatePercent)
}

// Summarize computes the EMI together with the totals over the full term.
func Summarize(terms Terms) (Summary, error) {
	emi, err := ComputeEMI(terms.Principal, terms.AnnualRatePercent, terms.TermMonths)
	if err != nil {
		return Summary{}, err
	}
	total := emi * float64(terms.TermMonths)
	interest := total - terms.Principal
	if interest < 0 {
		// Only reachable through float error on zero-rate loans.
		interest = 0
	}
	summary := Summary{
		Terms:           terms,
		EMI:             emi,
		TotalPayment:    total,
		TotalInterest:   interest,
		InterestPercent: mathutil.PercentOf(interest, total),
	}
	return summary, nil
}

// BuildAmortizationSchedule creates the full payment-by-payment breakdown.
func BuildAmortizationSchedule(principal, annualRatePercent float64, termMonths int) (Schedule, error) {
	return NewAmortizationScheduleGenerator(nil).Generate(Terms{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermMonths:        termMonths,
	})
}

// FinancedPrincipal returns the amount borrowed when buying at price with
// the given down payment.
func FinancedPrincipal(price, downPayment float64) (float64, error) {
	if !mathutil.IsFinite(price) || price <= 0 {
		return 0, calcerr.Invalid("price", "must be a positive number, got %v", price)
	}
	if !mathutil.IsFinite(downPayment) || downPayment < 0 {
		return 0, calcerr.Invalid("downPayment", "must be zero or positive, got %v", downPayment)
	}
	if downPayment >= price {
		return 0, calcerr.Invalid("downPayment", "must be less than the price %v, got %v", price, downPayment)
	}
	return price - downPayment, nil
}

// WithDueDates returns a copy of s with due dates set monthly from firstDue.
// Month-end due dates are clamped to the last day of shorter months.
func WithDueDates(s Schedule, firstDue time.Time) Schedule {
	out := make(Schedule, len(s))
	for i, inst := range s {
		due := datetime.AddMonthsClamped(firstDue, inst.Period-1)
		inst.DueDate = &due
		out[i] = inst
	}
	return out
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// Generate creates a complete amortization schedule. Each period pays the
// EMI; the final period pays off whatever balance remains so the schedule
// ends at exactly zero. Rate and term pairs whose EMI is all interest in
// float64 fail with ErrNumericDegenerate.
func (g *AmortizationScheduleGenerator) Generate(terms Terms) (Schedule, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	emi := monthlyPayment(terms)
	if !mathutil.IsFinite(emi) {
		return nil, degenerateTerm(terms)
	}

	schedule := make(Schedule, 0, terms.TermMonths)
	remaining := terms.Principal

	for period := 1; period <= terms.TermMonths; period++ {
		inst := Installment{Period: period}
		inst.Interest = CalculateInterestPayment(remaining, terms.AnnualRatePercent)
		inst.Principal = emi - inst.Interest
		inst.Payment = emi

		if period == terms.TermMonths {
			residue := remaining - inst.Principal
			if residue != 0 {
				g.logger.Debug(fmt.Sprintf("absorbing residue %g into final period %d", residue, period),
					zap.String("op", "loans.Generate"),
				)
			}
			inst.Principal = remaining
			inst.Payment = inst.Principal + inst.Interest
			remaining = 0
		} else {
			next := remaining - inst.Principal
			if next >= remaining {
				return nil, calcerr.Degenerate("termMonths",
					"payment of %v never reduces the balance at %v%% over %d months",
					emi, terms.AnnualRatePercent, terms.TermMonths)
			}
			remaining = next
		}
		inst.RemainingBalance = remaining
		schedule = append(schedule, inst)
	}

	return schedule, nil
}
