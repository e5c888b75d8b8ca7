package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/cellan/internal/ast"
	"github.com/vk/cellan/internal/model"
)

// ModelBuilder assembles a model.Model in tests without going through a
// model file. Every mistake fails the test immediately.
type ModelBuilder struct {
	t testing.TB
	m *model.Model
}

// ComponentBuilder adds variables and equations to one component.
type ComponentBuilder struct {
	b *ModelBuilder
	c *model.Component
}

// NewModel starts a model.
func NewModel(t testing.TB, name string) *ModelBuilder {
	t.Helper()
	return &ModelBuilder{t: t, m: model.New(name)}
}

// Component adds a top-level component.
func (b *ModelBuilder) Component(name string) *ComponentBuilder {
	b.t.Helper()
	c := model.NewComponent(name)
	require.NoError(b.t, b.m.AddComponent(c))
	return &ComponentBuilder{b: b, c: c}
}

// Units adds a units definition.
func (b *ModelBuilder) Units(name string, terms ...model.UnitTerm) *ModelBuilder {
	b.t.Helper()
	require.NoError(b.t, b.m.AddUnits(model.NewUnits(name, terms...)))
	return b
}

// Connect makes two variables equivalent. Both are written as
// "component.variable".
func (b *ModelBuilder) Connect(first, second string) *ModelBuilder {
	b.t.Helper()
	require.NoError(b.t, b.m.AddEquivalence(b.Variable(first), b.Variable(second)))
	return b
}

// Variable looks up "component.variable" and fails the test when it does not
// exist.
func (b *ModelBuilder) Variable(ref string) *model.Variable {
	b.t.Helper()
	compName, varName, ok := strings.Cut(ref, ".")
	require.True(b.t, ok, "variable reference %q must be component.variable", ref)
	c := b.m.Component(compName)
	require.NotNil(b.t, c, "component %q not found", compName)
	v := c.Variable(varName)
	require.NotNil(b.t, v, "variable %q not found", ref)
	return v
}

// Build returns the model.
func (b *ModelBuilder) Build() *model.Model {
	return b.m
}

// Child adds an encapsulated component.
func (cb *ComponentBuilder) Child(name string) *ComponentBuilder {
	cb.b.t.Helper()
	require.Nil(cb.b.t, cb.b.m.Component(name), "component %q already exists", name)
	c := model.NewComponent(name)
	cb.c.AddComponent(c)
	return &ComponentBuilder{b: cb.b, c: c}
}

// Var adds a variable without an initial value.
func (cb *ComponentBuilder) Var(name, units string) *ComponentBuilder {
	return cb.add(model.NewVariable(name, units))
}

// VarInit adds a variable with a literal initial value.
func (cb *ComponentBuilder) VarInit(name, units string, value float64) *ComponentBuilder {
	v := model.NewVariable(name, units)
	v.Initial = model.Literal(value)
	return cb.add(v)
}

// VarRef adds a variable initialised from another variable of the component.
func (cb *ComponentBuilder) VarRef(name, units, ref string) *ComponentBuilder {
	v := model.NewVariable(name, units)
	v.Initial = model.Reference(ref)
	return cb.add(v)
}

// Eq adds the equation lhs = rhs.
func (cb *ComponentBuilder) Eq(lhs, rhs *ast.Node) *ComponentBuilder {
	cb.c.AddEquation(ast.Equation(lhs, rhs))
	return cb
}

// Done returns to the model builder.
func (cb *ComponentBuilder) Done() *ModelBuilder {
	return cb.b
}

func (cb *ComponentBuilder) add(v *model.Variable) *ComponentBuilder {
	cb.b.t.Helper()
	require.NoError(cb.b.t, cb.c.AddVariable(v))
	return cb
}
