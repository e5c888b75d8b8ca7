package metrics_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cellan/internal/analyser"
	"github.com/vk/cellan/internal/ast"
	"github.com/vk/cellan/internal/metrics"
	tu "github.com/vk/cellan/internal/testutil"
)

func analyse(t *testing.T, b *tu.ModelBuilder) *analyser.Model {
	t.Helper()
	res, err := analyser.New().Analyse(context.Background(), b.Build())
	require.NoError(t, err)
	return res
}

func TestNewRegistry(t *testing.T) {
	r := metrics.NewRegistry()
	require.NotNil(t, r.GetPrometheusRegistry())
	assert.NotNil(t, r.AnalysesTotal)
	assert.NotNil(t, r.ModelVariables)
	assert.NotNil(t, r.LoadsTotal)
}

func TestRecordLoad(t *testing.T) {
	r := metrics.NewRegistry()
	r.RecordLoad(nil, 10*time.Millisecond)
	r.RecordLoad(nil, 20*time.Millisecond)
	r.RecordLoad(errors.New("boom"), time.Millisecond)

	assert.InDelta(t, 2.0, testutil.ToFloat64(r.LoadsTotal.WithLabelValues("success")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(r.LoadsTotal.WithLabelValues("error")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(r.LoadDuration))
}

func TestRecordAnalysis(t *testing.T) {
	r := metrics.NewRegistry()

	decay := analyse(t, tu.NewModel(t, "decay").
		Component("main").
		Var("t", "dimensionless").
		VarInit("V", "dimensionless", 1).
		Var("k", "dimensionless").
		Eq(ast.Var("k"), ast.Mul(ast.Num(2), ast.Var("V"))).
		Eq(ast.Rate("V", "t"), ast.Neg(ast.Var("k"))).
		Done())
	r.RecordAnalysis(decay, 5*time.Millisecond)

	assert.InDelta(t, 1.0, testutil.ToFloat64(r.AnalysesTotal.WithLabelValues("ODE")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(r.ModelVariables.WithLabelValues("STATE")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(r.ModelVariables.WithLabelValues("VARIABLE_OF_INTEGRATION")), 0)
	assert.InDelta(t, 0.0, testutil.ToFloat64(r.ModelVariables.WithLabelValues("EXTERNAL")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(r.ModelEquations.WithLabelValues("RATE")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(r.ModelValid), 0)

	loose := analyse(t, tu.NewModel(t, "loose").
		Component("main").
		Var("a", "dimensionless").
		Done())
	r.RecordAnalysis(loose, time.Millisecond)

	assert.InDelta(t, 1.0, testutil.ToFloat64(r.AnalysesTotal.WithLabelValues("UNDERCONSTRAINED")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(r.IssuesTotal.WithLabelValues("error", "UNDERCONSTRAINED")), 0)
	assert.InDelta(t, 0.0, testutil.ToFloat64(r.ModelValid), 0)
	// Gauges describe the last model only.
	assert.InDelta(t, 0.0, testutil.ToFloat64(r.ModelVariables.WithLabelValues("STATE")), 0)
	assert.Equal(t, 0, testutil.CollectAndCount(r.ModelEquations))
}

func TestWriteToTextfile(t *testing.T) {
	r := metrics.NewRegistry()
	r.RecordLoad(nil, time.Millisecond)

	path := filepath.Join(t.TempDir(), "cellan.prom")
	require.NoError(t, r.WriteToTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `cellan_loads_total{status="success"} 1`)

	err = r.WriteToTextfile(filepath.Join(t.TempDir(), "missing", "cellan.prom"))
	assert.Error(t, err)
}
