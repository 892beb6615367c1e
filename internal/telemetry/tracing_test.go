package telemetry

import (
	"context"
	"testing"

	"github.com/iwvelando/calcsuite/internal/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), config.TracingConfig{}, "test", nil)
	if err != nil {
		t.Fatalf("InitTracing() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestInitTracingWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), config.TracingConfig{Enabled: true}, "test", nil)
	if err != nil {
		t.Fatalf("InitTracing() error = %v", err)
	}

	_, span := Tracer().Start(context.Background(), "test-span")
	if !span.SpanContext().IsValid() {
		t.Error("expected a recording span once tracing is enabled")
	}
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestCalculationCounters(t *testing.T) {
	before := testutil.ToFloat64(Calculations.WithLabelValues("test", StatusSuccess))
	Calculations.WithLabelValues("test", StatusSuccess).Inc()
	after := testutil.ToFloat64(Calculations.WithLabelValues("test", StatusSuccess))
	if after-before != 1 {
		t.Errorf("counter moved by %v, expected 1", after-before)
	}
}
