package units

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cellan/internal/model"
)

func TestVectorAlgebra(t *testing.T) {
	volt, ok := Builtin("volt")
	require.True(t, ok)
	ampere, _ := Builtin("ampere")
	watt, _ := Builtin("watt")
	ohm, _ := Builtin("ohm")

	assert.True(t, volt.Mul(ampere).Equivalent(watt))
	assert.True(t, volt.Div(ampere).Equivalent(ohm))
	assert.True(t, volt.Div(volt).IsDimensionless())
	assert.Equal(t, "kilogram*metre^2*second^-3", watt.String())
	assert.Equal(t, "dimensionless", Dimensionless().String())
	assert.Equal(t, "10^-3*kilogram", Base(Kilogram).Scaled(-3).String())

	m2 := Base(Metre).Pow(2)
	assert.Equal(t, "metre^2", m2.String())
	assert.True(t, m2.Pow(0.5).Equivalent(Base(Metre)))
}

func TestCompatibleIgnoresScale(t *testing.T) {
	gram, _ := Builtin("gram")
	kilogram, _ := Builtin("kilogram")

	assert.True(t, gram.Compatible(kilogram))
	assert.False(t, gram.Equivalent(kilogram))
	assert.False(t, gram.Compatible(Base(Second)))
}

func TestBuiltinIsACopy(t *testing.T) {
	v, _ := Builtin("volt")
	v.Dims[Metre] = 10
	again, _ := Builtin("volt")
	assert.Equal(t, 2.0, again.Dims[Metre])
}

func TestPrefixScale(t *testing.T) {
	tests := []struct {
		prefix string
		want   float64
		ok     bool
	}{
		{"", 0, true},
		{"milli", -3, true},
		{"yotta", 24, true},
		{"-6", -6, true},
		{"4", 4, true},
		{"huge", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, ok := PrefixScale(tt.prefix)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver(t *testing.T) {
	m := model.New("units")
	require.NoError(t, m.AddUnits(model.NewUnits("millivolt",
		model.UnitTerm{Reference: "volt", Prefix: "milli", Exponent: 1, Multiplier: 1})))
	require.NoError(t, m.AddUnits(model.NewUnits("per_ms",
		model.UnitTerm{Reference: "second", Prefix: "milli", Exponent: -1, Multiplier: 1})))
	require.NoError(t, m.AddUnits(model.NewUnits("mV_per_ms",
		model.NewUnitTerm("millivolt"),
		model.NewUnitTerm("per_ms"))))
	require.NoError(t, m.AddUnits(model.NewUnits("fish")))
	require.NoError(t, m.AddUnits(model.NewUnits("a", model.NewUnitTerm("b"))))
	require.NoError(t, m.AddUnits(model.NewUnits("b", model.NewUnitTerm("a"))))
	require.NoError(t, m.AddUnits(model.NewUnits("bad_prefix",
		model.UnitTerm{Reference: "volt", Prefix: "enormous"})))
	require.NoError(t, m.AddUnits(model.NewUnits("inch",
		model.UnitTerm{Reference: "metre", Exponent: 1, Multiplier: 0.0254})))

	r := NewResolver(m)

	t.Run("prefixed user units", func(t *testing.T) {
		mv, err := r.Resolve("millivolt")
		require.NoError(t, err)
		volt, _ := Builtin("volt")
		assert.True(t, mv.Compatible(volt))
		assert.InDelta(t, -3, mv.Scale, 1e-12)
	})

	t.Run("composition cancels scale", func(t *testing.T) {
		v, err := r.Resolve("mV_per_ms")
		require.NoError(t, err)
		want, _ := Builtin("volt")
		assert.True(t, v.Equivalent(want.Div(Base(Second))))
	})

	t.Run("new base unit", func(t *testing.T) {
		v, err := r.Resolve("fish")
		require.NoError(t, err)
		assert.Equal(t, "fish", v.String())
	})

	t.Run("multiplier", func(t *testing.T) {
		v, err := r.Resolve("inch")
		require.NoError(t, err)
		assert.True(t, v.Compatible(Base(Metre)))
		assert.False(t, v.Equivalent(Base(Metre)))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := r.Resolve("parsec")
		assert.ErrorIs(t, err, ErrUnknownUnits)

		_, err = r.Resolve("a")
		assert.ErrorIs(t, err, ErrCyclicUnits)
		assert.ErrorContains(t, err, "a -> b -> a")

		_, err = r.Resolve("bad_prefix")
		assert.ErrorIs(t, err, ErrInvalidTerm)
	})
}

func TestVectorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	names := BuiltinNames()
	genVector := gen.IntRange(0, len(names)-1).Map(func(i int) Vector {
		v, _ := Builtin(names[i])
		return v
	})

	properties.Property("multiplying then dividing is the identity", prop.ForAll(
		func(a, b Vector, scale int) bool {
			a = a.Scaled(float64(scale))
			return a.Mul(b).Div(b).Equivalent(a)
		},
		genVector, genVector, gen.IntRange(-24, 24),
	))

	properties.Property("compatibility is symmetric", prop.ForAll(
		func(a, b Vector) bool {
			return a.Compatible(b) == b.Compatible(a)
		},
		genVector, genVector,
	))

	properties.Property("a vector over itself is dimensionless", prop.ForAll(
		func(a Vector) bool {
			return a.Div(a).IsDimensionless()
		},
		genVector,
	))

	properties.TestingRun(t)
}
