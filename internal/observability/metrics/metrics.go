// Package metrics exposes Prometheus instrumentation for the auth service.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call outcomes used as label values.
const (
	OutcomeSuccess   = "success"
	OutcomeHTTPError = "http_error"
	OutcomeError     = "error"
)

// Cache lookup results used as label values.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

// Metrics bundles the collectors emitted by the service. A nil *Metrics is a
// valid no-op sink so callers never need to guard emission sites.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry, including the standard
// Go runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tobira_auth",
			Name:      "http_requests_total",
			Help:      "Handled HTTP requests by method, path pattern and status.",
		}, []string{"method", "path", "status"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tobira_auth",
			Name:      "upstream_requests_total",
			Help:      "Outbound calls to the user web services by target and outcome.",
		}, []string{"target", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tobira_auth",
			Name:      "cache_lookups_total",
			Help:      "Role cache lookups by cache name and result.",
		}, []string{"cache", "result"}),
	}
	registry.MustRegister(m.httpRequests, m.upstreamRequests, m.cacheLookups)
	return m
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest counts one handled request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// RecordUpstream counts one outbound call to a user web service.
func (m *Metrics) RecordUpstream(target, outcome string) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(target, outcome).Inc()
}

// RecordCacheLookup counts one cache lookup.
func (m *Metrics) RecordCacheLookup(cache, result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
}
