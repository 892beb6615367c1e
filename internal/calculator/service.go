// Package calculator is the service layer in front of the pure calculator
// packages. It parses boundary input, applies the configured limits, caches
// schedules and records a span and metrics for every calculation.
package calculator

import (
	"context"
	"time"

	"github.com/iwvelando/calcsuite/internal/cache"
	"github.com/iwvelando/calcsuite/internal/telemetry"
	"github.com/iwvelando/calcsuite/pkg/calcerr"
	"github.com/iwvelando/calcsuite/pkg/datetime"
	"github.com/iwvelando/calcsuite/pkg/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Calculator names used for metrics labels and span names
const (
	NameLoan             = "loan"
	NameSchedule         = "schedule"
	NameElapsed          = "elapsed"
	NameOffset           = "offset"
	NamePregnancy        = "pregnancy"
	NameBMI              = "bmi"
	NameBMR              = "bmr"
	NamePercentageChange = "percentage_change"
	NameCompound         = "compound"
	NameSIP              = "sip"
	NameGST              = "gst"
)

// Service runs calculations. It is safe for concurrent use.
type Service struct {
	limits validation.Limits
	cache  cache.Cache
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLimits sets the input limits.
func WithLimits(limits validation.Limits) Option {
	return func(s *Service) { s.limits = limits }
}

// WithCache sets the schedule cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the source of "today" for requests that omit a date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service with default limits, no cache and a no-op logger
// unless overridden.
func New(opts ...Option) *Service {
	s := &Service{
		limits: validation.DefaultLimits(),
		cache:  cache.Nop{},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limits returns the limits the service enforces.
func (s *Service) Limits() validation.Limits {
	return s.limits
}

func (s *Service) today() time.Time {
	return datetime.CivilDate(s.now())
}

// dateOrToday parses value, or returns today when it is empty.
func (s *Service) dateOrToday(field, value string) (time.Time, error) {
	if value == "" {
		return s.today(), nil
	}
	return datetime.ParseDate(field, value)
}

// instrument runs fn inside a span and records the outcome.
func instrument[T any](ctx context.Context, s *Service, name string, attrs []attribute.KeyValue, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "calculator."+name)
	defer span.End()
	span.SetAttributes(attrs...)

	start := time.Now()
	result, err := fn(ctx)
	telemetry.CalculationDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		kind := calcerr.KindOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
		telemetry.Calculations.WithLabelValues(name, telemetry.StatusError).Inc()
		telemetry.CalculationErrors.WithLabelValues(name, kind).Inc()
		s.logger.Debug("calculation rejected",
			zap.String("op", "calculator."+name),
			zap.String("kind", kind),
			zap.Error(err),
		)
		var zero T
		return zero, err
	}

	span.SetStatus(codes.Ok, "")
	telemetry.Calculations.WithLabelValues(name, telemetry.StatusSuccess).Inc()
	s.logger.Debug("calculation complete",
		zap.String("op", "calculator."+name),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
