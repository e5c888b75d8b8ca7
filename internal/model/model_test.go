package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cellan/internal/ast"
)

func newTestModel(t *testing.T) (*Model, *Variable, *Variable) {
	t.Helper()
	m := New("test")

	outer := NewComponent("outer")
	x := NewVariable("x", "dimensionless")
	require.NoError(t, outer.AddVariable(x))
	outer.AddEquation(ast.Equation(ast.Var("x"), ast.Num(1)))

	inner := NewComponent("inner")
	y := NewVariable("y", "dimensionless")
	y.Initial = Literal(2)
	require.NoError(t, inner.AddVariable(y))
	outer.AddComponent(inner)

	require.NoError(t, m.AddComponent(outer))
	require.NoError(t, m.AddComponent(NewComponent("sibling")))
	require.NoError(t, m.AddEquivalence(x, y))
	return m, x, y
}

func TestAllComponentsDepthFirst(t *testing.T) {
	m, _, _ := newTestModel(t)

	var names []string
	for _, c := range m.AllComponents() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"outer", "inner", "sibling"}, names)
	assert.Equal(t, 2, m.VariableCount())
}

func TestComponentLookup(t *testing.T) {
	m, x, y := newTestModel(t)

	inner := m.Component("inner")
	require.NotNil(t, inner)
	assert.Equal(t, "outer", inner.Parent().Name)
	assert.Same(t, y, inner.Variable("y"))
	assert.Nil(t, inner.Variable("x"))
	assert.Nil(t, m.Component("missing"))
	assert.Equal(t, "outer.x", x.String())
}

func TestAddComponentRejectsDuplicates(t *testing.T) {
	m, _, _ := newTestModel(t)

	err := m.AddComponent(NewComponent("inner"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	c := m.Component("outer")
	err = c.AddVariable(NewVariable("x", ""))
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestAddEquivalence(t *testing.T) {
	t.Run("rejects invalid pairs", func(t *testing.T) {
		m, x, _ := newTestModel(t)
		assert.ErrorIs(t, m.AddEquivalence(x, x), ErrInvalidEquivalence)
		assert.ErrorIs(t, m.AddEquivalence(x, nil), ErrInvalidEquivalence)
		assert.ErrorIs(t, m.AddEquivalence(x, NewVariable("detached", "")), ErrInvalidEquivalence)
	})

	t.Run("rejects duplicates in either order", func(t *testing.T) {
		m, x, y := newTestModel(t)
		assert.ErrorIs(t, m.AddEquivalence(x, y), ErrDuplicateEquivalence)
		assert.ErrorIs(t, m.AddEquivalence(y, x), ErrDuplicateEquivalence)
		assert.Len(t, m.Equivalences, 1)
	})
}

func TestUnits(t *testing.T) {
	m := New("units")
	mv := NewUnits("millivolt", UnitTerm{Reference: "volt", Prefix: "milli", Exponent: 1, Multiplier: 1})
	require.NoError(t, m.AddUnits(mv))
	require.NoError(t, m.AddUnits(NewUnits("fish")))

	assert.ErrorIs(t, m.AddUnits(NewUnits("fish")), ErrDuplicateName)
	assert.Same(t, mv, m.UnitsByName("millivolt"))
	assert.True(t, m.UnitsByName("fish").IsBase())
	assert.Nil(t, m.UnitsByName("volt"))
}

func TestClone(t *testing.T) {
	m, x, _ := newTestModel(t)
	require.NoError(t, m.AddUnits(NewUnits("fish")))

	c := m.Clone()
	require.Len(t, c.Components, 2)

	cx := c.Component("outer").Variable("x")
	cy := c.Component("inner").Variable("y")
	require.NotNil(t, cx)
	require.NotNil(t, cy)
	assert.NotSame(t, x, cx)
	assert.Equal(t, "outer.x", cx.String())
	assert.Equal(t, Literal(2), cy.Initial)

	require.Len(t, c.Equivalences, 1)
	assert.Same(t, cx, c.Equivalences[0].First)
	assert.Same(t, cy, c.Equivalences[0].Second)

	// Editing the clone leaves the original untouched.
	c.Component("outer").Equations[0].Children[1].Value = 42
	cx.Name = "renamed"
	assert.Equal(t, "x = 1", m.Component("outer").Equations[0].String())
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, "inner", c.Component("inner").Name)
	assert.Equal(t, "outer", c.Component("inner").Parent().Name)
}

func TestInitialValue(t *testing.T) {
	assert.False(t, InitialValue{}.IsSet())
	assert.Equal(t, "-75", Literal(-75).String())
	assert.Equal(t, "V_init", Reference("V_init").String())

	it, err := ParseInterfaceType("public_and_private")
	require.NoError(t, err)
	assert.Equal(t, InterfacePublicAndPrivate, it)
	_, err = ParseInterfaceType("sideways")
	assert.Error(t, err)
}
