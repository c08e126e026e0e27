package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for suggestion requests
const (
	OutcomeOK          = "ok"
	OutcomeEmptyQuery  = "empty_query"
	OutcomeFailed      = "failed"
	OutcomeRateLimited = "rate_limited"
)

// Metrics holds the proxy's Prometheus collectors
type Metrics struct {
	Requests         *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
	HTTPRequests     *prometheus.CounterVec
}

// NewMetrics creates collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "startpage_suggest_requests_total",
				Help: "Suggestion requests by outcome",
			},
			[]string{"outcome"},
		),
		UpstreamDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "startpage_suggest_upstream_duration_seconds",
				Help:    "Time spent waiting for the suggestion provider",
				Buckets: []float64{.025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "startpage_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
	}
	reg.MustRegister(m.Requests, m.UpstreamDuration, m.HTTPRequests)
	return m
}

// ObserveUpstream records one provider round trip
func (m *Metrics) ObserveUpstream(d time.Duration) {
	m.UpstreamDuration.Observe(d.Seconds())
}
