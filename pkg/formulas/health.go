package formulas

import (
	"strings"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
)

// WeightClass is a WHO adult BMI band.
type WeightClass string

// WHO adult BMI bands
const (
	Underweight WeightClass = "underweight"
	Normal      WeightClass = "normal"
	Overweight  WeightClass = "overweight"
	Obese       WeightClass = "obese"
)

// BMI band upper bounds (exclusive)
const (
	underweightBelow = 18.5
	normalBelow      = 25.0
	overweightBelow  = 30.0
)

// BMI returns weight / height^2 with height converted from centimetres.
func BMI(weightKg, heightCm float64) (float64, error) {
	if err := requirePositive("weightKg", weightKg); err != nil {
		return 0, err
	}
	if err := requirePositive("heightCm", heightCm); err != nil {
		return 0, err
	}
	heightM := heightCm / 100
	return finite("bmi", weightKg/(heightM*heightM))
}

// BMICategory maps a BMI value onto its WHO band.
func BMICategory(bmi float64) WeightClass {
	switch {
	case bmi < underweightBelow:
		return Underweight
	case bmi < normalBelow:
		return Normal
	case bmi < overweightBelow:
		return Overweight
	default:
		return Obese
	}
}

// Gender selects the Mifflin-St Jeor constant.
type Gender string

// Supported genders
const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ParseGender accepts "male"/"female" and their single-letter forms,
// case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	default:
		return "", calcerr.Invalid("gender", "must be male or female, got %q", s)
	}
}

// BMR estimates basal metabolic rate in kcal/day with the Mifflin-St Jeor
// equation: 10*kg + 6.25*cm - 5*age, then +5 for men or -161 for women.
func BMR(gender Gender, weightKg, heightCm, ageYears float64) (float64, error) {
	var offset float64
	switch gender {
	case Male:
		offset = 5
	case Female:
		offset = -161
	default:
		return 0, calcerr.Invalid("gender", "must be male or female, got %q", string(gender))
	}
	if err := requirePositive("weightKg", weightKg); err != nil {
		return 0, err
	}
	if err := requirePositive("heightCm", heightCm); err != nil {
		return 0, err
	}
	if err := requirePositive("ageYears", ageYears); err != nil {
		return 0, err
	}
	return 10*weightKg + 6.25*heightCm - 5*ageYears + offset, nil
}
