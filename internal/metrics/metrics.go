// Package metrics registers the Prometheus collectors for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "solarsavers"

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Login and registration attempts by outcome",
		},
		[]string{"operation", "outcome"},
	)

	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_orders_created_total",
			Help: "Total number of orders placed",
		},
	)

	OrderAssignments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_order_assignments_total",
			Help: "Total number of orders assigned to vendors",
		},
	)

	CalculatorRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_calculator_runs_total",
			Help: "Sizing calculations by property type",
		},
		[]string{"property_type"},
	)

	WeatherLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_weather_lookups_total",
			Help: "Weather factor lookups by outcome",
		},
		[]string{"outcome"},
	)

	AssistantFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_assistant_fallbacks_total",
			Help: "Replies served by the keyword fallback after the model failed",
		},
	)
)

func RecordAuth(operation string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	AuthAttempts.WithLabelValues(operation, outcome).Inc()
}
