package formulas

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
)

func TestBMI(t *testing.T) {
	result, err := BMI(70, 170)
	if err != nil {
		t.Fatalf("BMI() error = %v", err)
	}
	if math.Abs(result-24.22) > 0.01 {
		t.Errorf("BMI(70, 170) = %.2f, expected 24.22", result)
	}

	invalid := []struct {
		name     string
		weightKg float64
		heightCm float64
		field    string
	}{
		{"Zero weight", 0, 170, "weightKg"},
		{"Negative height", 70, -170, "heightCm"},
		{"Zero height", 70, 0, "heightCm"},
		{"NaN weight", math.NaN(), 170, "weightKg"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BMI(tt.weightKg, tt.heightCm)
			var calcErr *calcerr.Error
			if !errors.As(err, &calcErr) || !errors.Is(err, calcerr.ErrInvalidInput) || calcErr.Field != tt.field {
				t.Errorf("BMI() error = %v, expected invalid %s", err, tt.field)
			}
		})
	}
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		bmi      float64
		expected WeightClass
	}{
		{16.0, Underweight},
		{18.49, Underweight},
		{18.5, Normal},
		{24.99, Normal},
		{25.0, Overweight},
		{29.9, Overweight},
		{30.0, Obese},
		{41.2, Obese},
	}

	for _, tt := range tests {
		if got := BMICategory(tt.bmi); got != tt.expected {
			t.Errorf("BMICategory(%v) = %s, expected %s", tt.bmi, got, tt.expected)
		}
	}
}

func TestBMR(t *testing.T) {
	tests := []struct {
		name     string
		gender   Gender
		weightKg float64
		heightCm float64
		age      float64
		expected float64
	}{
		{"Male", Male, 70, 170, 30, 1617.5},
		{"Female", Female, 70, 170, 30, 1451.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BMR(tt.gender, tt.weightKg, tt.heightCm, tt.age)
			if err != nil {
				t.Fatalf("BMR() error = %v", err)
			}
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("BMR() = %v, expected %v", result, tt.expected)
			}
		})
	}

	if _, err := BMR(Gender("other"), 70, 170, 30); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("BMR() with unknown gender error = %v, expected ErrInvalidInput", err)
	}
	if _, err := BMR(Male, 70, 170, 0); !errors.Is(err, calcerr.ErrInvalidInput) {
		t.Errorf("BMR() with zero age error = %v, expected ErrInvalidInput", err)
	}
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		input    string
		expected Gender
		wantErr  bool
	}{
		{"male", Male, false},
		{"M", Male, false},
		{" Female ", Female, false},
		{"f", Female, false},
		{"", "", true},
		{"x", "", true},
	}

	for _, tt := range tests {
		got, err := ParseGender(tt.input)
		if (err != nil) != tt.wantErr || got != tt.expected {
			t.Errorf("ParseGender(%q) = %q, %v", tt.input, got, err)
		}
	}
}
