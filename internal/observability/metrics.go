package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the forecast client.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec   // labels: model, outcome={success,status_error,transport_error,decode_error}
	RequestDuration *prometheus.HistogramVec // labels: model
}

// NewMetrics creates and registers the client metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "windy_client",
			Name:      "requests_total",
			Help:      "Point-forecast requests by model and outcome.",
		}, []string{"model", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "windy_client",
			Name:      "request_duration_seconds",
			Help:      "Point-forecast request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"model"}),
	}

	prometheus.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with no registration to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RequestsTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "windy_client", Name: "requests_total"}, []string{"model", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "windy_client", Name: "request_duration_seconds"}, []string{"model"}),
	}
}
