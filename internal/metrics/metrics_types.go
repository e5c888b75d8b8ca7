package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics of the application.
type Registry struct {
	// Loading
	LoadsTotal   *prometheus.CounterVec
	LoadDuration prometheus.Histogram

	// Analysis
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	IssuesTotal      *prometheus.CounterVec

	// Last analysed model
	ModelVariables  *prometheus.GaugeVec
	ModelEquations  *prometheus.GaugeVec
	ModelNLASystems prometheus.Gauge
	ModelValid      prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}
	r.initLoadMetrics()
	r.initAnalysisMetrics()
	r.initModelMetrics()
	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
