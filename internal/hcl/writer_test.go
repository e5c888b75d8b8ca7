package hcl_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cellan/internal/ast"
	"github.com/vk/cellan/internal/hcl"
	"github.com/vk/cellan/internal/model"
)

// flatten lists every component, variable and equation of m as text, so two
// models can be compared without caring about pointers or source ranges.
func flatten(m *model.Model) []string {
	out := []string{"model " + m.Name}
	for _, u := range m.Units {
		for _, term := range u.Terms {
			out = append(out, "units "+u.Name+" "+term.Reference+" "+term.Prefix+" "+
				ast.FormatNumber(term.Exponent)+" "+ast.FormatNumber(term.Multiplier))
		}
	}
	for _, c := range m.AllComponents() {
		parent := ""
		if c.Parent() != nil {
			parent = c.Parent().Name
		}
		out = append(out, "component "+c.Name+" in "+parent)
		for _, v := range c.Variables {
			out = append(out, "variable "+v.String()+" "+v.Units+" "+v.Initial.String()+" "+v.Interface.String())
		}
		for _, eq := range c.Equations {
			out = append(out, "equation "+eq.String())
		}
	}
	for _, eq := range m.Equivalences {
		out = append(out, "connect "+eq.First.String()+" "+eq.Second.String())
	}
	return out
}

func TestFormat_RoundTrip(t *testing.T) {
	ctx := context.Background()
	original, err := hcl.NewLoader().LoadBytes(ctx, []byte(membraneHCL), "hh.hcl")
	require.NoError(t, err)

	src, err := hcl.Format(original)
	require.NoError(t, err)

	reloaded, err := hcl.NewLoader().LoadBytes(ctx, src, "written.hcl")
	require.NoError(t, err, string(src))

	if diff := cmp.Diff(flatten(original), flatten(reloaded)); diff != "" {
		t.Errorf("round trip mismatch (-original +reloaded):\n%s\n%s", diff, src)
	}
	for i, eq := range original.Component("membrane").Equations {
		assert.True(t, ast.Equal(eq, reloaded.Component("membrane").Equations[i]))
	}
}

func TestFormat_BuiltModel(t *testing.T) {
	m := model.New("built")
	outer := model.NewComponent("outer")
	inner := model.NewComponent("inner")
	require.NoError(t, m.AddComponent(outer))
	outer.AddComponent(inner)

	x := model.NewVariable("x", "metre")
	x.Initial = model.Literal(0)
	y := model.NewVariable("y", "metre")
	y.Initial = model.Reference("x")
	y.Interface = model.InterfacePublicAndPrivate
	require.NoError(t, outer.AddVariable(x))
	require.NoError(t, outer.AddVariable(y))

	a := model.NewVariable("a", "metre")
	b := model.NewVariable("b", "metre")
	require.NoError(t, inner.AddVariable(a))
	require.NoError(t, inner.AddVariable(b))

	outer.AddEquation(ast.Equation(ast.Var("x"), ast.Select(
		ast.Op(ast.And, ast.Op(ast.Gt, ast.Var("y"), ast.Num(0)), ast.Op(ast.Not, ast.Const(ast.False))),
		ast.Sub(ast.Var("y"), ast.Sub(ast.Var("y"), ast.NumUnits(2.5, "metre"))),
		ast.Op(ast.Piecewise, ast.PieceOf(ast.LogOf(ast.Var("y"), ast.Num(10)), ast.Op(ast.Lt, ast.Var("y"), ast.Num(-1)))),
	)))
	inner.AddEquation(ast.Equation(ast.Var("a"), ast.Mul(ast.Num(2), ast.Num(-3), ast.Call(ast.Sin, ast.Const(ast.Pi)))))

	// x of outer is connected twice to inner, which needs two blocks.
	require.NoError(t, m.AddEquivalence(x, a))
	require.NoError(t, m.AddEquivalence(x, b))
	require.NoError(t, m.AddUnits(model.NewUnits("metre_squared", model.UnitTerm{Reference: "metre", Exponent: 2, Multiplier: 1})))

	var buf bytes.Buffer
	require.NoError(t, hcl.Write(&buf, m))
	out := buf.String()

	assert.Contains(t, out, `model "built" {`)
	assert.Contains(t, out, `component "inner" {`)
	assert.Contains(t, out, `initial   = x`)
	assert.Contains(t, out, `interface = "public_and_private"`)
	assert.Contains(t, out, `lhs = x`)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("connection {")))

	reloaded, err := hcl.NewLoader().LoadBytes(context.Background(), buf.Bytes(), "built.hcl")
	require.NoError(t, err, out)
	assert.Equal(t, flatten(m), flatten(reloaded))

	// Printed n-ary products come back as nested binary ones.
	got := reloaded.Component("inner").Equations[0]
	assert.Equal(t, "a = 2 * (-3) * sin(pi)", got.String())
	assert.True(t, ast.Equal(reloaded.Component("outer").Equations[0], m.Component("outer").Equations[0]))
}

func TestFormat_RejectsNonEquation(t *testing.T) {
	m := model.New("bad")
	c := model.NewComponent("c")
	require.NoError(t, m.AddComponent(c))
	c.AddEquation(ast.Var("x"))

	_, err := hcl.Format(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an equality")
}
