// Package metrics records where pipeline data came from: live upstream
// responses, fallbacks, or nothing at all.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream outcomes.
const (
	OutcomeLive     = "live"
	OutcomeFallback = "fallback"
	OutcomeDegraded = "degraded"
	OutcomeError    = "error"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	advisorReplies   *prometheus.CounterVec
	enrichments      *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		upstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greentrack_upstream_requests_total",
				Help: "Upstream calls by data source and outcome",
			},
			[]string{"source", "outcome"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "greentrack_upstream_request_duration_seconds",
				Help:    "Latency of upstream calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		advisorReplies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greentrack_advisor_replies_total",
				Help: "Advisor replies by origin (llm or fallback)",
			},
			[]string{"source"},
		),
		enrichments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greentrack_enrichments_total",
				Help: "Location enrichment requests by result",
			},
			[]string{"result"},
		),
	}
	m.registry.MustRegister(m.upstreamRequests, m.upstreamDuration, m.advisorReplies, m.enrichments)
	return m
}

// ObserveUpstream records one upstream call.
func (m *Metrics) ObserveUpstream(source, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(source, outcome).Inc()
	m.upstreamDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObserveAdvisorReply records which branch produced an advisor reply.
func (m *Metrics) ObserveAdvisorReply(source string) {
	if m == nil {
		return
	}
	m.advisorReplies.WithLabelValues(source).Inc()
}

// ObserveEnrichment records the result of an enrichment request.
func (m *Metrics) ObserveEnrichment(result string) {
	if m == nil {
		return
	}
	m.enrichments.WithLabelValues(result).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
