package calculator

import (
	"context"

	"github.com/iwvelando/calcsuite/pkg/formulas"
	"go.opentelemetry.io/otel/attribute"
)

// BMIRequest carries body weight and height.
type BMIRequest struct {
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
}

// BMIResult is a BMI value and its WHO band.
type BMIResult struct {
	BMI      float64              `json:"bmi"`
	Category formulas.WeightClass `json:"category"`
}

// BMRRequest carries the Mifflin-St Jeor inputs.
type BMRRequest struct {
	Gender   string  `json:"gender"`
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
	AgeYears float64 `json:"ageYears"`
}

// BMRResult is a basal metabolic rate in kcal/day.
type BMRResult struct {
	BMR float64 `json:"bmr"`
}

// PercentageChangeRequest carries the old and new values.
type PercentageChangeRequest struct {
	Old float64 `json:"old"`
	New float64 `json:"new"`
}

// PercentageChangeResult is the change in percent of |old|.
type PercentageChangeResult struct {
	ChangePercent float64 `json:"changePercent"`
}

// CompoundRequest describes a lump-sum investment. TimesPerYear defaults
// to annual compounding.
type CompoundRequest struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	Years             float64 `json:"years"`
	TimesPerYear      int     `json:"timesPerYear,omitempty"`
	Simple            bool    `json:"simple,omitempty"`
}

// SIPRequest describes a monthly systematic investment plan.
type SIPRequest struct {
	MonthlyInvestment   float64 `json:"monthlyInvestment"`
	AnnualReturnPercent float64 `json:"annualReturnPercent"`
	Months              int     `json:"months"`
}

// GSTRequest describes an amount and a GST rate.
type GSTRequest struct {
	Amount      float64 `json:"amount"`
	RatePercent float64 `json:"ratePercent"`
	Mode        string  `json:"mode,omitempty"`
}

// BMI computes body mass index.
func (s *Service) BMI(ctx context.Context, req BMIRequest) (BMIResult, error) {
	attrs := []attribute.KeyValue{
		attribute.Float64("weight_kg", req.WeightKg),
		attribute.Float64("height_cm", req.HeightCm),
	}
	return instrument(ctx, s, NameBMI, attrs, func(context.Context) (BMIResult, error) {
		bmi, err := formulas.BMI(req.WeightKg, req.HeightCm)
		if err != nil {
			return BMIResult{}, err
		}
		return BMIResult{BMI: bmi, Category: formulas.BMICategory(bmi)}, nil
	})
}

// BMR computes basal metabolic rate.
func (s *Service) BMR(ctx context.Context, req BMRRequest) (BMRResult, error) {
	attrs := []attribute.KeyValue{
		attribute.String("gender", req.Gender),
		attribute.Float64("weight_kg", req.WeightKg),
		attribute.Float64("height_cm", req.HeightCm),
		attribute.Float64("age_years", req.AgeYears),
	}
	return instrument(ctx, s, NameBMR, attrs, func(context.Context) (BMRResult, error) {
		gender, err := formulas.ParseGender(req.Gender)
		if err != nil {
			return BMRResult{}, err
		}
		bmr, err := formulas.BMR(gender, req.WeightKg, req.HeightCm, req.AgeYears)
		if err != nil {
			return BMRResult{}, err
		}
		return BMRResult{BMR: bmr}, nil
	})
}

// PercentageChange computes the relative change between two values.
func (s *Service) PercentageChange(ctx context.Context, req PercentageChangeRequest) (PercentageChangeResult, error) {
	attrs := []attribute.KeyValue{
		attribute.Float64("old", req.Old),
		attribute.Float64("new", req.New),
	}
	return instrument(ctx, s, NamePercentageChange, attrs, func(context.Context) (PercentageChangeResult, error) {
		change, err := formulas.PercentageChange(req.Old, req.New)
		if err != nil {
			return PercentageChangeResult{}, err
		}
		return PercentageChangeResult{ChangePercent: change}, nil
	})
}

// Compound computes the growth of a lump sum.
func (s *Service) Compound(ctx context.Context, req CompoundRequest) (formulas.Growth, error) {
	attrs := []attribute.KeyValue{
		attribute.Float64("principal", req.Principal),
		attribute.Float64("annual_rate_percent", req.AnnualRatePercent),
		attribute.Float64("years", req.Years),
		attribute.Int("times_per_year", req.TimesPerYear),
		attribute.Bool("simple", req.Simple),
	}
	return instrument(ctx, s, NameCompound, attrs, func(context.Context) (formulas.Growth, error) {
		if err := s.limits.CheckAmount("principal", req.Principal); err != nil {
			return formulas.Growth{}, err
		}
		if err := s.limits.CheckRate("annualRatePercent", req.AnnualRatePercent); err != nil {
			return formulas.Growth{}, err
		}
		if err := s.limits.CheckYears("years", req.Years); err != nil {
			return formulas.Growth{}, err
		}

		if req.Simple {
			return formulas.SimpleInterest(req.Principal, req.AnnualRatePercent, req.Years)
		}
		timesPerYear := req.TimesPerYear
		if timesPerYear == 0 {
			timesPerYear = 1
		}
		return formulas.CompoundInterest(req.Principal, req.AnnualRatePercent, req.Years, timesPerYear)
	})
}

// SIP computes the future value of a monthly investment plan.
func (s *Service) SIP(ctx context.Context, req SIPRequest) (formulas.Growth, error) {
	attrs := []attribute.KeyValue{
		attribute.Float64("monthly_investment", req.MonthlyInvestment),
		attribute.Float64("annual_return_percent", req.AnnualReturnPercent),
		attribute.Int("months", req.Months),
	}
	return instrument(ctx, s, NameSIP, attrs, func(context.Context) (formulas.Growth, error) {
		if err := s.limits.CheckAmount("monthlyInvestment", req.MonthlyInvestment); err != nil {
			return formulas.Growth{}, err
		}
		if err := s.limits.CheckRate("annualReturnPercent", req.AnnualReturnPercent); err != nil {
			return formulas.Growth{}, err
		}
		if err := s.limits.CheckMonths("months", req.Months); err != nil {
			return formulas.Growth{}, err
		}
		return formulas.SIPFutureValue(req.MonthlyInvestment, req.AnnualReturnPercent, req.Months)
	})
}

// GST adds or removes goods and services tax.
func (s *Service) GST(ctx context.Context, req GSTRequest) (formulas.GSTBreakdown, error) {
	attrs := []attribute.KeyValue{
		attribute.Float64("amount", req.Amount),
		attribute.Float64("rate_percent", req.RatePercent),
		attribute.String("mode", req.Mode),
	}
	return instrument(ctx, s, NameGST, attrs, func(context.Context) (formulas.GSTBreakdown, error) {
		mode, err := formulas.ParseGSTMode(req.Mode)
		if err != nil {
			return formulas.GSTBreakdown{}, err
		}
		if err := s.limits.CheckAmount("amount", req.Amount); err != nil {
			return formulas.GSTBreakdown{}, err
		}
		return formulas.GST(req.Amount, req.RatePercent, mode)
	})
}
