// Package metrics exposes Prometheus counters for the invoice pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lbs_invoice"

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics holds the counters recorded by the web flow and the generator.
type Metrics struct {
	registry *prometheus.Registry

	Uploads          *prometheus.CounterVec
	ReportsGenerated prometheus.Counter
	RenderFailures   prometheus.Counter
	ExpiredSessions  prometheus.Counter
	Annotations      prometheus.Counter
	RenderDuration   prometheus.Histogram
}

// New creates a Metrics set on its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Uploaded invoice sheets by outcome.",
		}, []string{"outcome"}),
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "PDF reports written.",
		}),
		RenderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_failures_total",
			Help:      "PDF generation attempts that failed.",
		}),
		ExpiredSessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expired_sessions_total",
			Help:      "Requests that found no report in the session.",
		}),
		Annotations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "annotations_total",
			Help:      "Reviewer comments applied to generated reports.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering a PDF report.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	m.registry.MustRegister(
		m.Uploads,
		m.ReportsGenerated,
		m.RenderFailures,
		m.ExpiredSessions,
		m.Annotations,
		m.RenderDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
