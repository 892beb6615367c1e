// Package telemetry holds the Prometheus collectors and OpenTelemetry
// tracer setup shared by the calculator service and the HTTP server.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculation status labels
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	// Calculations counts calculator invocations by outcome.
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calcsuite_calculations_total",
			Help: "Number of calculations performed.",
		},
		[]string{"calculator", "status"},
	)

	// CalculationErrors counts failed calculations by error kind.
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calcsuite_calculation_errors_total",
			Help: "Number of calculations rejected or failed, by error kind.",
		},
		[]string{"calculator", "kind"},
	)

	// CalculationDuration observes how long each calculator takes.
	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calcsuite_calculation_duration_seconds",
			Help:    "Calculation latency in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"calculator"},
	)

	// CacheLookups counts schedule cache hits and misses.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calcsuite_cache_lookups_total",
			Help: "Schedule cache lookups by backend and result.",
		},
		[]string{"backend", "result"},
	)

	// HTTPRequests counts API requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calcsuite_http_requests_total",
			Help: "HTTP requests served.",
		},
		[]string{"route", "code"},
	)

	// HTTPDuration observes API request latency.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calcsuite_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)
