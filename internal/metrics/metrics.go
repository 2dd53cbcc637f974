// Package metrics exposes Prometheus collectors for the embed service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream fetch outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeAPIError  = "api_error"
	OutcomeHTTPError = "http_error"
)

// Embed routing decisions.
const (
	DecisionRedirect   = "redirect"
	DecisionEmbed      = "embed"
	DecisionError      = "error"
	DecisionBadRequest = "bad_request"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests, labeled by method and code.",
		},
		[]string{"method", "code"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, labeled by method and route.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxbilibili_upstream_requests_total",
			Help: "Total number of metadata API calls, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	upstreamRequestDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fxbilibili_upstream_request_duration_seconds",
			Help:    "Histogram of metadata API call latencies.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	embedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxbilibili_embed_requests_total",
			Help: "Total number of video requests, labeled by routing decision.",
		},
		[]string{"decision"},
	)
)

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveUpstream records one metadata API call.
func ObserveUpstream(outcome string, duration time.Duration) {
	upstreamRequestsTotal.WithLabelValues(outcome).Inc()
	upstreamRequestDurationSeconds.Observe(duration.Seconds())
}

// ObserveDecision counts a routing decision for a video request.
func ObserveDecision(decision string) {
	embedRequestsTotal.WithLabelValues(decision).Inc()
}
