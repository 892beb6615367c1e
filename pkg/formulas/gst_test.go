package formulas

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
)

func TestGST(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		rate     float64
		mode     GSTMode
		expected GSTBreakdown
	}{
		{"Add 18%", 1000, 18, GSTAdd, GSTBreakdown{Net: 1000, Tax: 180, Gross: 1180}},
		{"Remove 18%", 1180, 18, GSTRemove, GSTBreakdown{Net: 1000, Tax: 180, Gross: 1180}},
		{"Remove 18% from round gross", 1000, 18, GSTRemove, GSTBreakdown{Net: 847.4576, Tax: 152.5424, Gross: 1000}},
		{"Zero rate", 500, 0, GSTAdd, GSTBreakdown{Net: 500, Tax: 0, Gross: 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GST(tt.amount, tt.rate, tt.mode)
			if err != nil {
				t.Fatalf("GST() error = %v", err)
			}
			if math.Abs(result.Net-tt.expected.Net) > 1e-4 ||
				math.Abs(result.Tax-tt.expected.Tax) > 1e-4 ||
				math.Abs(result.Gross-tt.expected.Gross) > 1e-4 {
				t.Errorf("GST() = %+v, expected %+v", result, tt.expected)
			}
		})
	}
}

func TestGSTErrors(t *testing.T) {
	if _, err := GST(1000, -5, GSTAdd); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("negative rate error = %v, expected ErrInvalidInput", err)
	}
	if _, err := GST(1000, 5, GSTMode("sideways")); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("unknown mode error = %v, expected ErrInvalidInput", err)
	}
}

func TestParseGSTMode(t *testing.T) {
	for input, expected := range map[string]GSTMode{
		"":          GSTAdd,
		"add":       GSTAdd,
		"Exclusive": GSTAdd,
		"remove":    GSTRemove,
		"INCLUSIVE": GSTRemove,
	} {
		got, err := ParseGSTMode(input)
		if err != nil || got != expected {
			t.Errorf("ParseGSTMode(%q) = %q, %v; expected %q", input, got, err, expected)
		}
	}
	if _, err := ParseGSTMode("both"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}
