package calculator

import (
	"context"

	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/constants"
	"github.com/iwvelando/calcsuite/pkg/datetime"
	"github.com/iwvelando/calcsuite/pkg/pregnancy"
	"go.opentelemetry.io/otel/attribute"
)

// ElapsedRequest asks for the calendar span between two dates. A missing
// end date means today, which makes this an age calculator.
type ElapsedRequest struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
	// Signed accepts an end before the start and reports a negative span.
	Signed bool `json:"signed,omitempty"`
}

// OffsetRequest asks for a date moved by a calendar delta. A missing base
// date means today.
type OffsetRequest struct {
	Base      string `json:"base,omitempty"`
	Years     int    `json:"years,omitempty"`
	Months    int    `json:"months,omitempty"`
	Weeks     int    `json:"weeks,omitempty"`
	Days      int    `json:"days,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// OffsetResult is the date an offset lands on.
type OffsetResult struct {
	Base      string `json:"base"`
	Date      string `json:"date"`
	Direction string `json:"direction"`
	Weekday   string `json:"weekday"`
}

// PregnancyRequest takes exactly one of LMP or Conception. A missing
// reference date means today.
type PregnancyRequest struct {
	LMP        string `json:"lmp,omitempty"`
	Conception string `json:"conception,omitempty"`
	Reference  string `json:"reference,omitempty"`
}

// Elapsed computes the span between two dates.
func (s *Service) Elapsed(ctx context.Context, req ElapsedRequest) (datetime.DateSpan, error) {
	attrs := []attribute.KeyValue{
		attribute.String("start", req.Start),
		attribute.String("end", req.End),
		attribute.Bool("signed", req.Signed),
	}
	return instrument(ctx, s, NameElapsed, attrs, func(context.Context) (datetime.DateSpan, error) {
		start, err := datetime.ParseDate("start", req.Start)
		if err != nil {
			return datetime.DateSpan{}, err
		}
		end, err := s.dateOrToday("end", req.End)
		if err != nil {
			return datetime.DateSpan{}, err
		}
		// Timestamps count by the calendar date they carry.
		start, end = datetime.CivilDate(start), datetime.CivilDate(end)

		var span datetime.DateSpan
		if req.Signed {
			span = datetime.SignedElapsedBetween(start, end)
		} else if span, err = datetime.ElapsedBetween(start, end); err != nil {
			return datetime.DateSpan{}, err
		}

		if err := s.limits.CheckYears("end", float64(span.Years)); err != nil {
			return datetime.DateSpan{}, err
		}
		return span, nil
	})
}

// Offset moves a date by a calendar delta.
func (s *Service) Offset(ctx context.Context, req OffsetRequest) (OffsetResult, error) {
	attrs := []attribute.KeyValue{
		attribute.String("base", req.Base),
		attribute.Int("years", req.Years),
		attribute.Int("months", req.Months),
		attribute.Int("weeks", req.Weeks),
		attribute.Int("days", req.Days),
		attribute.String("direction", req.Direction),
	}
	return instrument(ctx, s, NameOffset, attrs, func(context.Context) (OffsetResult, error) {
		base, err := s.dateOrToday("base", req.Base)
		if err != nil {
			return OffsetResult{}, err
		}
		direction, err := datetime.ParseDirection(req.Direction)
		if err != nil {
			return OffsetResult{}, err
		}

		delta := datetime.Delta{Years: req.Years, Months: req.Months, Weeks: req.Weeks, Days: req.Days}
		if err := s.checkDelta(delta); err != nil {
			return OffsetResult{}, err
		}

		date, err := datetime.OffsetDate(base, delta, direction)
		if err != nil {
			return OffsetResult{}, err
		}
		return OffsetResult{
			Base:      datetime.FormatDate(base),
			Date:      datetime.FormatDate(date),
			Direction: string(direction),
			Weekday:   date.Weekday().String(),
		}, nil
	})
}

// checkDelta rejects a no-op offset and bounds each component by the span
// limit so that time.Time.AddDate never overflows.
func (s *Service) checkDelta(d datetime.Delta) error {
	if d.IsZero() {
		return calcerr.Invalid("delta", "at least one of years, months, weeks or days must be non-zero")
	}
	daysPerYear := 366.0
	components := []struct {
		field string
		years float64
	}{
		{"years", float64(d.Years)},
		{"months", float64(d.Months) / constants.MonthsPerYear},
		{"weeks", float64(d.Weeks) * constants.DaysPerWeek / daysPerYear},
		{"days", float64(d.Days) / daysPerYear},
	}
	for _, c := range components {
		if err := s.limits.CheckYears(c.field, c.years); err != nil {
			return calcerr.Invalid(c.field, "offset exceeds %d years", s.limits.MaxSpanYears)
		}
	}
	return nil
}

// Pregnancy estimates the due date and gestational age.
func (s *Service) Pregnancy(ctx context.Context, req PregnancyRequest) (pregnancy.Estimate, error) {
	attrs := []attribute.KeyValue{
		attribute.String("lmp", req.LMP),
		attribute.String("conception", req.Conception),
		attribute.String("reference", req.Reference),
	}
	return instrument(ctx, s, NamePregnancy, attrs, func(context.Context) (pregnancy.Estimate, error) {
		reference, err := s.dateOrToday("reference", req.Reference)
		if err != nil {
			return pregnancy.Estimate{}, err
		}

		switch {
		case req.LMP != "" && req.Conception != "":
			return pregnancy.Estimate{}, calcerr.Invalid("lmp", "give either lmp or conception, not both")
		case req.LMP != "":
			lmp, err := datetime.ParseDate("lmp", req.LMP)
			if err != nil {
				return pregnancy.Estimate{}, err
			}
			return pregnancy.FromLMP(lmp, reference)
		case req.Conception != "":
			conception, err := datetime.ParseDate("conception", req.Conception)
			if err != nil {
				return pregnancy.Estimate{}, err
			}
			return pregnancy.FromConception(conception, reference)
		default:
			return pregnancy.Estimate{}, calcerr.Invalid("lmp", "one of lmp or conception is required")
		}
	})
}
