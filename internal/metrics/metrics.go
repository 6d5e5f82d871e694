// Package metrics exposes Prometheus metrics for the document pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the service registers. A nil *Metrics is
// valid and records nothing, which keeps instrumentation out of the way
// in tests.
type Metrics struct {
	ExtractionsTotal   *prometheus.CounterVec
	ExtractionDuration *prometheus.HistogramVec

	SummariesTotal  *prometheus.CounterVec
	SummaryDuration *prometheus.HistogramVec

	CacheLookupsTotal *prometheus.CounterVec

	PipelineRunsTotal   *prometheus.CounterVec
	PipelineRunDuration prometheus.Histogram
	DocumentsInFlight   prometheus.Gauge
	PipelineDocsTotal   *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on the default
// registry. Call it once per process.
func NewMetrics() *Metrics {
	m := &Metrics{}

	m.ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docman_extractions_total",
			Help: "Total number of text extraction attempts",
		},
		[]string{"format", "status"},
	)

	m.ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docman_extraction_duration_seconds",
			Help:    "Duration of text extraction in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	m.SummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docman_summaries_total",
			Help: "Total number of summarization attempts",
		},
		[]string{"backend", "status"},
	)

	m.SummaryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docman_summary_duration_seconds",
			Help:    "Duration of summarization in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"backend"},
	)

	m.CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docman_cache_lookups_total",
			Help: "Summary cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	m.PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docman_pipeline_runs_total",
			Help: "Total number of project summarization runs",
		},
		[]string{"status"},
	)

	m.PipelineRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docman_pipeline_run_duration_seconds",
			Help:    "Duration of whole project summarization runs in seconds",
			Buckets: []float64{.1, .5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	m.DocumentsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "docman_pipeline_documents_in_flight",
			Help: "Documents currently being processed by pipeline workers",
		},
	)

	m.PipelineDocsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docman_pipeline_documents_total",
			Help: "Documents processed by pipeline runs, by terminal state",
		},
		[]string{"state"},
	)

	return m
}

// RecordExtraction records one extraction attempt.
func (m *Metrics) RecordExtraction(format, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ExtractionsTotal.WithLabelValues(format, status).Inc()
	m.ExtractionDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// RecordSummary records one summarization attempt against a backend.
func (m *Metrics) RecordSummary(backend, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SummariesTotal.WithLabelValues(backend, status).Inc()
	m.SummaryDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache lookup result: hit, miss or error.
func (m *Metrics) RecordCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordPipelineRun records one whole project summarization run.
func (m *Metrics) RecordPipelineRun(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.PipelineRunsTotal.WithLabelValues(status).Inc()
	m.PipelineRunDuration.Observe(duration.Seconds())
}

// RecordPipelineDocument records the terminal state of one document
// within a pipeline run.
func (m *Metrics) RecordPipelineDocument(state string) {
	if m == nil {
		return
	}
	m.PipelineDocsTotal.WithLabelValues(state).Inc()
}

// DocumentStarted marks a document as being processed by a worker.
func (m *Metrics) DocumentStarted() {
	if m == nil {
		return
	}
	m.DocumentsInFlight.Inc()
}

// DocumentDone marks a document as finished.
func (m *Metrics) DocumentDone() {
	if m == nil {
		return
	}
	m.DocumentsInFlight.Dec()
}
