package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

func (r *Registry) initLoadMetrics() {
	r.LoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cellan_loads_total",
			Help: "Total number of model loads",
		},
		[]string{"status"},
	)

	r.LoadDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cellan_load_duration_seconds",
			Help:    "Model loading duration in seconds",
			Buckets: durationBuckets,
		},
	)
}

func (r *Registry) initAnalysisMetrics() {
	r.AnalysesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cellan_analyses_total",
			Help: "Total number of analyses, by resulting model type",
		},
		[]string{"model_type"},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cellan_analysis_duration_seconds",
			Help:    "Analysis duration in seconds",
			Buckets: durationBuckets,
		},
	)

	r.IssuesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cellan_issues_total",
			Help: "Total number of analysis issues",
		},
		[]string{"level", "code"},
	)
}

func (r *Registry) initModelMetrics() {
	r.ModelVariables = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cellan_model_variables",
			Help: "Variables of the last analysed model, by type",
		},
		[]string{"type"},
	)

	r.ModelEquations = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cellan_model_equations",
			Help: "Equations of the last analysed model, by type",
		},
		[]string{"type"},
	)

	r.ModelNLASystems = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cellan_model_nla_systems",
			Help: "Nonlinear systems of the last analysed model",
		},
	)

	r.ModelValid = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cellan_model_valid",
			Help: "1 if the last analysed model is valid, 0 otherwise",
		},
	)
}
