package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Connector call metrics
	ConnectorRequestsTotal   *prometheus.CounterVec
	ConnectorRequestDuration *prometheus.HistogramVec
	ConnectorClientErrors    *prometheus.CounterVec

	// Flow metrics
	AuthorizeTotal  *prometheus.CounterVec
	ConversionFails *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics against the given registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		ConnectorRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "connector_requests_total",
				Help:      "Outbound connector calls by classified outcome",
			},
			[]string{"connector", "flow", "outcome"},
		),
		ConnectorRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "connector_request_duration_seconds",
				Help:      "Outbound connector call latency in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"connector", "flow"},
		),
		ConnectorClientErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "connector_client_errors_total",
				Help:      "Outbound connector calls that produced no classified response",
			},
			[]string{"connector", "flow", "kind"},
		),
		AuthorizeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "authorize_total",
				Help:      "Authorize requests by connector and result",
			},
			[]string{"connector", "result"},
		),
		ConversionFails: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversion_failures_total",
				Help:      "Front-end requests rejected during normalization",
			},
			[]string{"sub_code"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	reg.MustRegister(
		m.ConnectorRequestsTotal,
		m.ConnectorRequestDuration,
		m.ConnectorClientErrors,
		m.AuthorizeTotal,
		m.ConversionFails,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}
