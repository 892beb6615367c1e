package telemetry

import (
	"context"
	"fmt"

	"github.com/iwvelando/calcsuite/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// InstrumentationName names the tracer used for calculator spans.
const InstrumentationName = "github.com/iwvelando/calcsuite"

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Tracer returns the calcsuite tracer from the global provider. Until
// InitTracing installs a provider, spans are no-ops.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// InitTracing installs a global tracer provider. With tracing disabled it
// leaves the no-op provider in place; with no endpoint it records spans but
// discards them, which keeps span code paths exercised in development.
func InitTracing(ctx context.Context, cfg config.TracingConfig, version string, logger *zap.Logger) (ShutdownFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "calcsuite"
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdktrace.SpanExporter
	if cfg.Endpoint != "" {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exporter, err = otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		logger.Info("exporting traces over OTLP/HTTP",
			zap.String("op", "telemetry.InitTracing"),
			zap.String("endpoint", cfg.Endpoint),
		)
	} else {
		exporter = discardExporter{}
		logger.Info("tracing enabled without an endpoint, spans are discarded",
			zap.String("op", "telemetry.InitTracing"),
		)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

type discardExporter struct{}

func (discardExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }

func (discardExporter) Shutdown(context.Context) error { return nil }
