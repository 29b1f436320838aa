// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report build outcomes
const (
	ResultCacheHit = "cache_hit"
	ResultBuilt    = "built"
	ResultError    = "error"
)

// Submission outcomes
const (
	SubmitAccepted = "accepted"
	SubmitRejected = "rejected"
	SubmitError    = "error"
)

// Metrics groups the collectors of one process. Each instance registers on
// the registerer it was built with, so tests can use a fresh registry.
type Metrics struct {
	reportBuilds       *prometheus.CounterVec
	reportBuildSeconds prometheus.Histogram
	ignoredAnswers     *prometheus.CounterVec
	responsesSubmitted *prometheus.CounterVec
	httpRequestSeconds *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		reportBuilds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "surveydash_report_builds_total",
				Help: "Analytics report requests by outcome.",
			},
			[]string{"result"},
		),
		reportBuildSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "surveydash_report_build_duration_seconds",
				Help:    "Time spent loading responses and assembling a report.",
				Buckets: prometheus.DefBuckets,
			},
		),
		ignoredAnswers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "surveydash_ignored_answers_total",
				Help: "Answers left out of a report because they did not fit their question.",
			},
			[]string{"kind"},
		),
		responsesSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "surveydash_responses_submitted_total",
				Help: "Response submissions by outcome.",
			},
			[]string{"result"},
		),
		httpRequestSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "surveydash_http_request_duration_seconds",
				Help:    "HTTP request latency by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// ReportBuild counts a report request with the given result
func (m *Metrics) ReportBuild(result string) {
	m.reportBuilds.WithLabelValues(result).Inc()
}

// ReportBuildDuration records how long one report build took
func (m *Metrics) ReportBuildDuration(d time.Duration) {
	m.reportBuildSeconds.Observe(d.Seconds())
}

// IgnoredAnswers adds n ignored answers for a question kind
func (m *Metrics) IgnoredAnswers(kind string, n int) {
	if n <= 0 {
		return
	}
	m.ignoredAnswers.WithLabelValues(kind).Add(float64(n))
}

// ResponseSubmitted counts a submission with the given result
func (m *Metrics) ResponseSubmitted(result string) {
	m.responsesSubmitted.WithLabelValues(result).Inc()
}

// HTTPRequest records one served request
func (m *Metrics) HTTPRequest(method, route, status string, d time.Duration) {
	m.httpRequestSeconds.WithLabelValues(method, route, status).Observe(d.Seconds())
}
