package calculator

import (
	"context"
	"encoding/json"

	"github.com/iwvelando/calcsuite/internal/cache"
	"github.com/iwvelando/calcsuite/internal/telemetry"
	"github.com/iwvelando/calcsuite/pkg/datetime"
	"github.com/iwvelando/calcsuite/pkg/loans"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// LoanRequest describes a loan either by its principal or by a purchase
// price and down payment.
type LoanRequest struct {
	Principal         float64 `json:"principal,omitempty"`
	Price             float64 `json:"price,omitempty"`
	DownPayment       float64 `json:"downPayment,omitempty"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermMonths        int     `json:"termMonths"`
}

// ScheduleRequest asks for the full amortization schedule of a loan.
type ScheduleRequest struct {
	LoanRequest
	// Rounded produces a schedule in whole cents.
	Rounded bool `json:"rounded,omitempty"`
	// FirstDueDate, when set, dates every installment monthly from it.
	FirstDueDate string `json:"firstDueDate,omitempty"`
}

// ScheduleResult is a loan summary together with its schedule.
type ScheduleResult struct {
	Summary      loans.Summary  `json:"summary"`
	Installments loans.Schedule `json:"installments"`
}

func (s *Service) terms(req LoanRequest) (loans.Terms, error) {
	principal := req.Principal
	if req.Price != 0 || req.DownPayment != 0 {
		if err := s.limits.CheckAmount("price", req.Price); err != nil {
			return loans.Terms{}, err
		}
		financed, err := loans.FinancedPrincipal(req.Price, req.DownPayment)
		if err != nil {
			return loans.Terms{}, err
		}
		principal = financed
	}

	terms := loans.Terms{
		Principal:         principal,
		AnnualRatePercent: req.AnnualRatePercent,
		TermMonths:        req.TermMonths,
	}
	if err := s.limits.CheckAmount("principal", terms.Principal); err != nil {
		return loans.Terms{}, err
	}
	if err := s.limits.CheckRate("annualRatePercent", terms.AnnualRatePercent); err != nil {
		return loans.Terms{}, err
	}
	if err := s.limits.CheckMonths("termMonths", terms.TermMonths); err != nil {
		return loans.Terms{}, err
	}
	return terms, terms.Validate()
}

func loanAttrs(req LoanRequest) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Float64("principal", req.Principal),
		attribute.Float64("annual_rate_percent", req.AnnualRatePercent),
		attribute.Int("term_months", req.TermMonths),
	}
}

// Loan computes the EMI and the totals over the term.
func (s *Service) Loan(ctx context.Context, req LoanRequest) (loans.Summary, error) {
	return instrument(ctx, s, NameLoan, loanAttrs(req), func(context.Context) (loans.Summary, error) {
		terms, err := s.terms(req)
		if err != nil {
			return loans.Summary{}, err
		}
		return loans.Summarize(terms)
	})
}

// Schedule computes the amortization schedule, serving repeated requests
// from the cache.
func (s *Service) Schedule(ctx context.Context, req ScheduleRequest) (ScheduleResult, error) {
	attrs := append(loanAttrs(req.LoanRequest), attribute.Bool("rounded", req.Rounded))
	return instrument(ctx, s, NameSchedule, attrs, func(ctx context.Context) (ScheduleResult, error) {
		terms, err := s.terms(req.LoanRequest)
		if err != nil {
			return ScheduleResult{}, err
		}

		var firstDue string
		if req.FirstDueDate != "" {
			due, err := datetime.ParseDate("firstDueDate", req.FirstDueDate)
			if err != nil {
				return ScheduleResult{}, err
			}
			firstDue = datetime.FormatDate(due)
		}

		key := scheduleKey(terms, req.Rounded, firstDue)
		if result, ok := s.cachedSchedule(ctx, key); ok {
			return result, nil
		}

		result, err := s.buildSchedule(terms, req.Rounded, firstDue)
		if err != nil {
			return ScheduleResult{}, err
		}
		s.storeSchedule(ctx, key, result)
		return result, nil
	})
}

func (s *Service) buildSchedule(terms loans.Terms, rounded bool, firstDue string) (ScheduleResult, error) {
	summary, err := loans.Summarize(terms)
	if err != nil {
		return ScheduleResult{}, err
	}

	generator := loans.NewAmortizationScheduleGenerator(s.logger)
	var schedule loans.Schedule
	if rounded {
		schedule, err = generator.GenerateRounded(terms)
	} else {
		schedule, err = generator.Generate(terms)
	}
	if err != nil {
		return ScheduleResult{}, err
	}

	if firstDue != "" {
		schedule = loans.WithDueDates(schedule, datetime.MustParseTime(datetime.DateLayout, firstDue))
	}

	// The rounded schedule's totals are what the borrower actually pays.
	if rounded {
		summary.TotalPayment = schedule.TotalPayment()
		summary.TotalInterest = schedule.TotalInterest()
	}
	return ScheduleResult{Summary: summary, Installments: schedule}, nil
}

func scheduleKey(terms loans.Terms, rounded bool, firstDue string) string {
	return cache.Key(NameSchedule, terms.Principal, terms.AnnualRatePercent, terms.TermMonths, rounded, firstDue)
}

func (s *Service) cachedSchedule(ctx context.Context, key string) (ScheduleResult, bool) {
	backend := s.cache.Backend()
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("schedule cache lookup failed",
			zap.String("op", "calculator.Schedule"),
			zap.String("backend", backend),
			zap.Error(err),
		)
		telemetry.CacheLookups.WithLabelValues(backend, "error").Inc()
		return ScheduleResult{}, false
	}
	if !ok {
		telemetry.CacheLookups.WithLabelValues(backend, "miss").Inc()
		return ScheduleResult{}, false
	}

	var result ScheduleResult
	if err := json.Unmarshal(data, &result); err != nil {
		s.logger.Warn("discarding undecodable cached schedule",
			zap.String("op", "calculator.Schedule"),
			zap.String("key", key),
			zap.Error(err),
		)
		telemetry.CacheLookups.WithLabelValues(backend, "error").Inc()
		return ScheduleResult{}, false
	}
	telemetry.CacheLookups.WithLabelValues(backend, "hit").Inc()
	return result, true
}

func (s *Service) storeSchedule(ctx context.Context, key string, result ScheduleResult) {
	data, err := json.Marshal(result)
	if err == nil {
		err = s.cache.Set(ctx, key, data)
	}
	if err != nil {
		s.logger.Warn("failed to cache schedule",
			zap.String("op", "calculator.Schedule"),
			zap.String("backend", s.cache.Backend()),
			zap.Error(err),
		)
	}
}
