// Package metrics exposes page and submission counters in the Prometheus
// text format.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/somtogreat69/portfolio/internal/page"
)

const namespace = "portfolio"

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	pageViews          prometheus.Counter
	detailOpens        *prometheus.CounterVec
	submissions        *prometheus.CounterVec
	submissionDuration prometheus.Histogram
	liveSessions       prometheus.Gauge
}

// New registers the portfolio collectors, plus the Go runtime and process
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pageViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Full page renders served.",
		}),
		detailOpens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detail_opens_total",
			Help:      "Detail overlays opened, by case study.",
		}, []string{"case"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Contact form relay calls, by outcome.",
		}, []string{"outcome"}),
		submissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "submission_duration_seconds",
			Help:      "Time until the relay call settled.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		liveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Open live page sessions.",
		}),
	}
	m.registry.MustRegister(
		m.pageViews,
		m.detailOpens,
		m.submissions,
		m.submissionDuration,
		m.liveSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// PageView counts a full page render.
func (m *Metrics) PageView() {
	m.pageViews.Inc()
}

// DetailOpened counts an overlay opened for the case study id.
func (m *Metrics) DetailOpened(id string) {
	m.detailOpens.WithLabelValues(id).Inc()
}

// SessionOpened increments the live session gauge.
func (m *Metrics) SessionOpened() {
	m.liveSessions.Inc()
}

// SessionClosed decrements the live session gauge.
func (m *Metrics) SessionClosed() {
	m.liveSessions.Dec()
}

// ObserveSubmission counts a finished submission.
func (m *Metrics) ObserveSubmission(_ context.Context, r page.Result) {
	outcome := "resolved"
	if r.Err != nil {
		outcome = "rejected"
	}
	m.submissions.WithLabelValues(outcome).Inc()
	m.submissionDuration.Observe(r.Duration.Seconds())
}
