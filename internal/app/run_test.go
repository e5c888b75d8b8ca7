package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cellan/internal/ast"
	"github.com/vk/cellan/internal/model"
)

// stubLoader returns a fixed model or error.
type stubLoader struct {
	m     *model.Model
	err   error
	paths []string
}

func (l *stubLoader) Load(_ context.Context, paths ...string) (*model.Model, error) {
	l.paths = paths
	return l.m, l.err
}

func pairModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New("pair")
	c := model.NewComponent("main")
	require.NoError(t, m.AddComponent(c))
	require.NoError(t, c.AddVariable(model.NewVariable("x", "dimensionless")))
	require.NoError(t, c.AddVariable(model.NewVariable("y", "dimensionless")))
	c.AddEquation(ast.Equation(ast.Var("x"), ast.Add(ast.Var("y"), ast.Num(1))))
	c.AddEquation(ast.Equation(ast.Var("y"), ast.Sub(ast.Var("x"), ast.Num(1))))
	return m
}

func newTestApp(t *testing.T, loader *stubLoader, mutate func(*Config)) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := validConfig()
	cfg.OutputFormat = "json"
	cfg.LogLevel = "debug"
	if mutate != nil {
		mutate(&cfg)
	}
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	return NewApp(out, logs, appConfig, loader), out, logs
}

func TestRun_ValidModel(t *testing.T) {
	loader := &stubLoader{m: pairModel(t)}
	a, out, logs := newTestApp(t, loader, nil)

	rep, err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"model.hcl"}, loader.paths)
	require.NotNil(t, rep)
	assert.Equal(t, "NLA", rep.Type)
	assert.True(t, rep.Valid)
	assert.Contains(t, out.String(), `"model": "pair"`)
	assert.Contains(t, logs.String(), "Analysis finished.")
	assert.Contains(t, logs.String(), "Model loaded.")

	assert.InDelta(t, 1, testutil.ToFloat64(a.Metrics().LoadsTotal.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(a.Metrics().AnalysesTotal.WithLabelValues("NLA")), 0)
}

func TestRun_InvalidModel(t *testing.T) {
	m := pairModel(t)
	require.NoError(t, m.Component("main").AddVariable(model.NewVariable("z", "dimensionless")))
	a, _, _ := newTestApp(t, &stubLoader{m: m}, nil)

	rep, err := a.Run(context.Background())

	require.ErrorIs(t, err, ErrInvalidModel)
	assert.Contains(t, err.Error(), "pair is UNDERCONSTRAINED with 1 error(s)")
	require.NotNil(t, rep, "the report is returned with the error")
	assert.False(t, rep.Valid)
}

func TestRun_LoadFailure(t *testing.T) {
	loadErr := errors.New("boom")
	a, out, _ := newTestApp(t, &stubLoader{err: loadErr}, nil)

	rep, err := a.Run(context.Background())

	require.ErrorIs(t, err, loadErr)
	assert.Contains(t, err.Error(), "failed to load model")
	assert.Nil(t, rep)
	assert.Empty(t, out.String())
	assert.InDelta(t, 1, testutil.ToFloat64(a.Metrics().LoadsTotal.WithLabelValues("error")), 0)
}

func TestRun_ExternalsAreApplied(t *testing.T) {
	m := model.New("ext")
	c := model.NewComponent("main")
	require.NoError(t, m.AddComponent(c))
	require.NoError(t, c.AddVariable(model.NewVariable("x", "dimensionless")))
	require.NoError(t, c.AddVariable(model.NewVariable("y", "dimensionless")))
	c.AddEquation(ast.Equation(ast.Var("y"), ast.Mul(ast.Var("x"), ast.Num(2))))

	a, _, logs := newTestApp(t, &stubLoader{m: m}, func(c *Config) {
		c.Externals = []string{"main.x", "main.x"}
	})

	rep, err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ALGEBRAIC", rep.Type)
	assert.Contains(t, logs.String(), "External variable listed more than once.")
}

func TestRun_MetricsFileFailureIsNotFatal(t *testing.T) {
	a, _, logs := newTestApp(t, &stubLoader{m: pairModel(t)}, func(c *Config) {
		c.MetricsFile = t.TempDir() + "/missing/dir/metrics.prom"
	})

	_, err := a.Run(context.Background())

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Failed to write metrics file.")
}

func TestRun_WritesFlattenedModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.hcl")
	a, _, logs := newTestApp(t, &stubLoader{m: pairModel(t)}, func(c *Config) {
		c.FlattenTo = path
	})

	_, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Flattened model written.")

	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(src), `model "pair"`)
	assert.Contains(t, string(src), `component "main"`)
}

func TestRun_FlattenFailureStopsTheRun(t *testing.T) {
	a, out, _ := newTestApp(t, &stubLoader{m: pairModel(t)}, func(c *Config) {
		c.FlattenTo = filepath.Join(t.TempDir(), "missing", "flat.hcl")
	})

	rep, err := a.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write flattened model")
	assert.Nil(t, rep)
	assert.Empty(t, out.String())
}
