// Package metrics defines Prometheus collectors for batch screening runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "resume_screener"

	statusLabel  = "status"
	outcomeLabel = "outcome"
)

// Run outcomes recorded by RunFinished.
const (
	OutcomeCompleted = "completed"
	OutcomeStopped   = "stopped"
)

// Metrics holds the batch collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	documents     *prometheus.CounterVec
	duration      prometheus.Histogram
	overallScores prometheus.Histogram
	runs          *prometheus.CounterVec
	running       prometheus.Gauge
}

// New creates the collectors and registers them with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_processed_total",
			Help:      "Documents processed, partitioned by terminal status.",
		}, []string{statusLabel}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_duration_seconds",
			Help:      "Time spent extracting and scoring one document.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15},
		}),
		overallScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overall_score",
			Help:      "Distribution of overall scores for completed documents.",
			Buckets:   []float64{20, 35, 50, 65, 75, 85, 100},
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Batch runs, partitioned by outcome.",
		}, []string{outcomeLabel}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_active",
			Help:      "1 while a batch run is in progress.",
		}),
	}

	reg.MustRegister(m.Collectors()...)
	return m
}

// Collectors returns every collector owned by m.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.documents, m.duration, m.overallScores, m.runs, m.running}
}

// RunStarted marks a run as active.
func (m *Metrics) RunStarted() {
	if m == nil {
		return
	}
	m.running.Set(1)
}

// RunFinished records the outcome of a run and clears the active gauge.
func (m *Metrics) RunFinished(outcome string) {
	if m == nil {
		return
	}
	m.running.Set(0)
	m.runs.With(prometheus.Labels{outcomeLabel: outcome}).Inc()
}

// DocumentProcessed records one document reaching a terminal status.
func (m *Metrics) DocumentProcessed(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.documents.With(prometheus.Labels{statusLabel: status}).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// ObserveScore records a completed document's overall score.
func (m *Metrics) ObserveScore(score int) {
	if m == nil {
		return
	}
	m.overallScores.Observe(float64(score))
}
