package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vk/cellan/internal/analyser"
)

// RecordLoad records one model load.
func (r *Registry) RecordLoad(err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.LoadsTotal.WithLabelValues(status).Inc()
	r.LoadDuration.Observe(duration.Seconds())
}

// RecordAnalysis records one analysis and replaces the gauges describing the
// last analysed model.
func (r *Registry) RecordAnalysis(res *analyser.Model, duration time.Duration) {
	r.AnalysesTotal.WithLabelValues(res.Type().String()).Inc()
	r.AnalysisDuration.Observe(duration.Seconds())

	for _, issue := range res.Issues() {
		r.IssuesTotal.WithLabelValues(issue.Level.String(), string(issue.Code)).Inc()
	}

	for _, vt := range analyser.VariableTypes() {
		r.ModelVariables.WithLabelValues(vt.String()).Set(float64(len(res.VariablesOfType(vt))))
	}
	r.ModelEquations.Reset()
	for _, e := range res.Equations() {
		r.ModelEquations.WithLabelValues(e.Type.String()).Inc()
	}
	r.ModelNLASystems.Set(float64(len(res.NLASystems())))
	if res.IsValid() {
		r.ModelValid.Set(1)
	} else {
		r.ModelValid.Set(0)
	}
}

// WriteToTextfile writes every metric to path in the text exposition format.
func (r *Registry) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
