// Package observability wires the service's Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

// Metrics holds all registered collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	SearchQueries    *prometheus.CounterVec
	FallbackScans    *prometheus.CounterVec
	SearchDuration   prometheus.Histogram
	PeopleWrites     *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// NewMetrics creates and registers the service metrics on a private
// registry.
func NewMetrics() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.SearchQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "katutubo_search_queries_total",
		Help: "Suggestion queries by outcome (indexed, fallback, empty).",
	}, []string{"outcome"})

	m.FallbackScans = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "katutubo_search_fallback_scans_total",
		Help: "Bounded fallback scans by reason (query_failed, no_hits).",
	}, []string{"reason"})

	m.SearchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "katutubo_search_duration_seconds",
		Help:    "Suggestion query latency.",
		Buckets: prometheus.DefBuckets,
	})

	m.PeopleWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "katutubo_people_writes_total",
		Help: "Person record writes by operation (create, update, delete).",
	}, []string{"op"})

	m.HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "katutubo_http_requests_total",
		Help: "HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})

	m.HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "katutubo_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	collectors := []prometheus.Collector{
		m.SearchQueries, m.FallbackScans, m.SearchDuration,
		m.PeopleWrites, m.HTTPRequests, m.HTTPDuration,
	}
	for _, c := range collectors {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler returns the /metrics HTTP handler for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
