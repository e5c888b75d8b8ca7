package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/cellan/internal/analyser"
	"github.com/vk/cellan/internal/ast"
	"github.com/vk/cellan/internal/model"
	"github.com/vk/cellan/internal/report"
	"github.com/vk/cellan/internal/testutil"
)

func build(t *testing.T, m *model.Model) *report.Report {
	t.Helper()
	res, err := analyser.New().Analyse(context.Background(), m)
	require.NoError(t, err)
	return report.Build(m.Name, res)
}

func decayModel(t *testing.T) *model.Model {
	return testutil.NewModel(t, "decay").
		Component("main").
		Var("t", "second").
		VarInit("V", "dimensionless", 1).
		Eq(ast.Rate("V", "t"), ast.Neg(ast.Div(ast.Var("V"), ast.NumUnits(1, "second")))).
		Done().
		Build()
}

func TestBuild_ODE(t *testing.T) {
	r := build(t, decayModel(t))

	assert.Equal(t, "decay", r.Model)
	assert.Equal(t, "ODE", r.Type)
	assert.True(t, r.Valid)
	assert.Equal(t, "main.t", r.VOI)
	assert.Empty(t, r.Issues)

	require.Len(t, r.Variables, 2)
	assert.Equal(t, "main.t", r.Variables[0].Name)
	assert.Equal(t, "VARIABLE_OF_INTEGRATION", r.Variables[0].Type)
	assert.Equal(t, "second", r.Variables[0].Units)
	assert.Equal(t, "STATE", r.Variables[1].Type)
	require.NotNil(t, r.Variables[1].Initial)
	assert.InDelta(t, 1.0, *r.Variables[1].Initial, 0)

	require.Len(t, r.Equations, 1)
	eq := r.Equations[0]
	assert.Equal(t, "RATE", eq.Type)
	assert.Equal(t, "main", eq.Component)
	assert.Equal(t, `ode(V, t) = -(V / cn(1, "second"))`, eq.Equation)
	assert.Equal(t, []string{"main.V"}, eq.Computes)
	assert.Nil(t, eq.NLASystem)
}

func TestBuild_NonlinearSystem(t *testing.T) {
	m := testutil.NewModel(t, "pair").
		Component("main").
		Var("x", "dimensionless").
		Var("y", "dimensionless").
		Eq(ast.Var("x"), ast.Add(ast.Var("y"), ast.Num(1))).
		Eq(ast.Var("y"), ast.Call(ast.Min, ast.Var("x"), ast.Num(1))).
		Done().
		Build()

	r := build(t, m)

	assert.Equal(t, "NLA", r.Type)
	require.Len(t, r.NLASystems, 1)
	assert.Equal(t, []int{0, 1}, r.NLASystems[0].Equations)
	assert.Equal(t, []string{"main.x", "main.y"}, r.NLASystems[0].Unknowns)
	for _, eq := range r.Equations {
		require.NotNil(t, eq.NLASystem)
		assert.Equal(t, 0, *eq.NLASystem)
	}
	assert.Equal(t, []string{"min"}, r.HelperFunctions)
}

func TestBuild_Issues(t *testing.T) {
	m := testutil.NewModel(t, "loose").
		Component("main").
		Var("a", "dimensionless").
		Done().
		Build()

	r := build(t, m)

	assert.False(t, r.Valid)
	assert.Equal(t, "UNDERCONSTRAINED", r.Type)
	require.Len(t, r.Issues, 1)
	assert.Equal(t, "error", r.Issues[0].Level)
	assert.Equal(t, "UNDERCONSTRAINED", r.Issues[0].Code)
	assert.Equal(t, "main.a", r.Issues[0].Item)
}

func TestParseFormat(t *testing.T) {
	f, err := report.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, report.FormatJSON, f)

	_, err = report.ParseFormat("xml")
	assert.ErrorContains(t, err, "xml")
}

func TestRender_JSON(t *testing.T) {
	r := build(t, decayModel(t))

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, r, report.FormatJSON))

	var decoded report.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	if diff := cmp.Diff(*r, decoded); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, buf.String(), `"voi": "main.t"`)
}

func TestRender_YAML(t *testing.T) {
	r := build(t, decayModel(t))

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, r, report.FormatYAML))

	var decoded report.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	if diff := cmp.Diff(*r, decoded); diff != "" {
		t.Errorf("YAML round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, buf.String(), "type: ODE")
}

func TestRender_Text(t *testing.T) {
	m := testutil.NewModel(t, "mixed").
		Component("main").
		Var("t", "second").
		VarInit("V", "dimensionless", 1).
		Var("a", "dimensionless").
		Eq(ast.Rate("V", "t"), ast.Neg(ast.Div(ast.Var("V"), ast.NumUnits(1, "second")))).
		Done().
		Build()
	r := build(t, m)

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, r, report.FormatText))
	out := buf.String()

	assert.Contains(t, out, "Model mixed")
	assert.Contains(t, out, "invalid")
	assert.Contains(t, out, "Variable of integration: main.t")
	assert.Contains(t, out, "VARIABLE_OF_INTEGRATION")
	assert.Contains(t, out, `ode(V, t) = -(V / cn(1, "second"))`)
	assert.Contains(t, out, "[UNDERCONSTRAINED]")
	assert.NotContains(t, out, "\x1b[", "no colours when writing to a buffer")
}

func TestRender_UnknownFormat(t *testing.T) {
	err := report.Render(&bytes.Buffer{}, &report.Report{}, report.Format("xml"))
	assert.Error(t, err)
}
