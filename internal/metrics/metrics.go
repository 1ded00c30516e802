package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Analysis outcome labels
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeNotFound   = "not_found"
	OutcomeUpstream   = "upstream_error"
)

// Metrics bundles Prometheus collectors for the analyzer.
type Metrics struct {
	Registry       *prometheus.Registry
	AnalysesTotal  *prometheus.CounterVec
	StageDuration  *prometheus.HistogramVec
	StageErrors    *prometheus.CounterVec
	DegradedTotal  *prometheus.CounterVec
	ProductsServed prometheus.Counter
}

// New constructs and registers all metrics on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	analyses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_analyses_total",
			Help: "Total seller analyses by outcome.",
		},
		[]string{"outcome"},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analyzer_stage_duration_seconds",
			Help:    "Upstream call latency by pipeline stage.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
	stageErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_stage_errors_total",
			Help: "Fatal upstream failures by pipeline stage.",
		},
		[]string{"stage"},
	)
	degraded := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_degraded_total",
			Help: "Non-fatal degraded paths taken, by path.",
		},
		[]string{"path"},
	)
	productsServed := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "analyzer_products_served_total",
			Help: "Total products returned across all analyses.",
		},
	)

	registry.MustRegister(analyses, stageDuration, stageErrors, degraded, productsServed)

	return &Metrics{
		Registry:       registry,
		AnalysesTotal:  analyses,
		StageDuration:  stageDuration,
		StageErrors:    stageErrors,
		DegradedTotal:  degraded,
		ProductsServed: productsServed,
	}
}

// IncAnalysis increments the analyses counter for an outcome.
func (m *Metrics) IncAnalysis(outcome string) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
}

// ObserveStage records the duration of one upstream stage call.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// IncStageError increments the fatal stage failure counter.
func (m *Metrics) IncStageError(stage string) {
	if m == nil {
		return
	}
	m.StageErrors.WithLabelValues(stage).Inc()
}

// IncDegraded increments the degraded-path counter.
func (m *Metrics) IncDegraded(path string) {
	if m == nil {
		return
	}
	m.DegradedTotal.WithLabelValues(path).Inc()
}

// AddProducts adds to the served products counter.
func (m *Metrics) AddProducts(n int) {
	if m == nil {
		return
	}
	m.ProductsServed.Add(float64(n))
}
