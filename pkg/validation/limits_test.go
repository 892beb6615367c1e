package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
)

func TestLimitsChecks(t *testing.T) {
	limits := Limits{MaxPrincipal: 1e6, MaxTermMonths: 360, MaxRatePercent: 50, MaxSpanYears: 100}

	tests := []struct {
		name    string
		check   func() error
		wantErr bool
	}{
		{"Amount at cap", func() error { return limits.CheckAmount("principal", 1e6) }, false},
		{"Amount over cap", func() error { return limits.CheckAmount("principal", 1e6+1) }, true},
		{"Amount NaN", func() error { return limits.CheckAmount("principal", math.NaN()) }, true},
		{"Negative amount left to calculator", func() error { return limits.CheckAmount("principal", -5) }, false},
		{"Rate at cap", func() error { return limits.CheckRate("annualRatePercent", 50) }, false},
		{"Rate over cap", func() error { return limits.CheckRate("annualRatePercent", 50.01) }, true},
		{"Months at cap", func() error { return limits.CheckMonths("termMonths", 360) }, false},
		{"Months over cap", func() error { return limits.CheckMonths("termMonths", 361) }, true},
		{"Zero months left to calculator", func() error { return limits.CheckMonths("termMonths", 0) }, false},
		{"Years at cap", func() error { return limits.CheckYears("years", 100) }, false},
		{"Negative years over cap", func() error { return limits.CheckYears("years", -101) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, calcerr.ErrInvalidInput) {
				t.Errorf("error = %v, expected ErrInvalidInput", err)
			}
		})
	}
}

func TestValidateIntRange(t *testing.T) {
	if err := ValidateIntRange("n", 5, 1, 10); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateIntRange("n", 11, 1, 10)
	var calcErr *calcerr.Error
	if !errors.As(err, &calcErr) || calcErr.Field != "n" {
		t.Errorf("expected a field error for n, got %v", err)
	}
}

func TestLimitsValidate(t *testing.T) {
	if err := DefaultLimits().Validate(); err != nil {
		t.Errorf("DefaultLimits().Validate() = %v", err)
	}
	bad := DefaultLimits()
	bad.MaxTermMonths = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected an error for a zero term cap")
	}
}
