// Package metrics defines Prometheus metrics for the identification pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IdentificationsTotal tracks completed identification requests by status message
	IdentificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "locallens",
			Subsystem: "identify",
			Name:      "requests_total",
			Help:      "Total identification requests by result status",
		},
		[]string{"status"},
	)

	// IdentificationDuration tracks end-to-end pipeline duration in seconds
	IdentificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "locallens",
			Subsystem: "identify",
			Name:      "duration_seconds",
			Help:      "End-to-end identification pipeline duration",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// ProviderRequestsTotal tracks outbound provider calls
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "locallens",
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "Total outbound provider requests by provider, operation and outcome",
		},
		[]string{"provider", "operation", "outcome"},
	)

	// ProviderRequestDuration tracks outbound provider call duration
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "locallens",
			Subsystem: "provider",
			Name:      "request_duration_seconds",
			Help:      "Outbound provider request duration",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)

	// FallbackResolutionsTotal tracks how often resolution fell back to the first candidate
	FallbackResolutionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "locallens",
			Subsystem: "identify",
			Name:      "fallback_resolutions_total",
			Help:      "Resolutions that defaulted to the first nearby candidate",
		},
	)
)
