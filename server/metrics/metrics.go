// Package metrics defines the Prometheus instrumentation for the AQIMC
// HTTP adapter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values for the request counter.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

type APIMetrics struct {
	RequestCount         *prometheus.CounterVec
	RequestLatency       *prometheus.HistogramVec
	DecryptDegradedCount prometheus.Counter
}

func NewAPIMetrics(registerer prometheus.Registerer) *APIMetrics {
	m := APIMetrics{
		RequestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aqimc_api_requests_total",
				Help: "Number of API requests by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		RequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aqimc_api_request_duration_seconds",
				Help:    "Latency of API requests by operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		DecryptDegradedCount: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "aqimc_decrypt_degraded_total",
				Help: "Number of decryptions that completed with lossy pair warnings",
			},
		),
	}

	registerer.MustRegister(m.RequestCount)
	registerer.MustRegister(m.RequestLatency)
	registerer.MustRegister(m.DecryptDegradedCount)

	return &m
}
