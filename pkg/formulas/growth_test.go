package formulas

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
)

func TestCompoundFutureValue(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		periods   int
		expected  float64
	}{
		{"Ten percent for three periods", 10000, 0.10, 3, 13310},
		{"Zero periods", 10000, 0.10, 0, 10000},
		{"Zero rate", 10000, 0, 12, 10000},
		{"Negative rate", 10000, -0.5, 2, 2500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CompoundFutureValue(tt.principal, tt.rate, tt.periods)
			if err != nil {
				t.Fatalf("CompoundFutureValue() error = %v", err)
			}
			if math.Abs(result-tt.expected) > 1e-6 {
				t.Errorf("CompoundFutureValue() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestCompoundFutureValueErrors(t *testing.T) {
	if _, err := CompoundFutureValue(1000, -1, 5); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("rate -1 error = %v, expected ErrInvalidInput", err)
	}
	if _, err := CompoundFutureValue(1000, 0.1, -1); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("negative periods error = %v, expected ErrInvalidInput", err)
	}
	if _, err := CompoundFutureValue(1e300, 10, 1000); !errors.Is(err, calcerr.ErrNumericDegenerate) {
		t.Errorf("overflow error = %v, expected ErrNumericDegenerate", err)
	}
}

func TestCompoundInterest(t *testing.T) {
	tests := []struct {
		name         string
		principal    float64
		rate         float64
		years        float64
		timesPerYear int
		expected     float64
	}{
		{"Quarterly", 10000, 8, 5, 4, 14859.47},
		{"Annual", 100000, 5, 10, 1, 162889.46},
		{"Zero rate", 5000, 0, 3, 12, 5000},
		{"Fractional periods", 1000, 10, 2.5, 1, 1269.06},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CompoundInterest(tt.principal, tt.rate, tt.years, tt.timesPerYear)
			if err != nil {
				t.Fatalf("CompoundInterest() error = %v", err)
			}
			if math.Abs(result.FutureValue-tt.expected) > 0.01 {
				t.Errorf("FutureValue = %.2f, expected %.2f", result.FutureValue, tt.expected)
			}
			if math.Abs(result.Gains-(result.FutureValue-tt.principal)) > 1e-9 {
				t.Errorf("Gains = %v, expected FutureValue - principal", result.Gains)
			}
		})
	}

	if _, err := CompoundInterest(1000, 5, 1, 0); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("zero compounding frequency error = %v, expected ErrInvalidInput", err)
	}
}

func TestSimpleInterest(t *testing.T) {
	result, err := SimpleInterest(10000, 7.5, 4)
	if err != nil {
		t.Fatalf("SimpleInterest() error = %v", err)
	}
	if math.Abs(result.Gains-3000) > 1e-9 || math.Abs(result.FutureValue-13000) > 1e-9 {
		t.Errorf("SimpleInterest() = %+v, expected gains 3000", result)
	}
}

func TestSIPFutureValue(t *testing.T) {
	result, err := SIPFutureValue(5000, 12, 120)
	if err != nil {
		t.Fatalf("SIPFutureValue() error = %v", err)
	}
	if math.Abs(result.FutureValue-1161695.38) > 0.01 {
		t.Errorf("FutureValue = %.2f, expected 1161695.38", result.FutureValue)
	}
	if result.Invested != 600000 {
		t.Errorf("Invested = %v, expected 600000", result.Invested)
	}

	zero, err := SIPFutureValue(1000, 0, 24)
	if err != nil {
		t.Fatalf("SIPFutureValue() error = %v", err)
	}
	if zero.FutureValue != 24000 || zero.Gains != 0 {
		t.Errorf("zero-return SIP = %+v, expected 24000 with no gains", zero)
	}

	if _, err := SIPFutureValue(1000, 12, 0); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("zero months error = %v, expected ErrInvalidInput", err)
	}
}
