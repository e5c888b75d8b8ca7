package units

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

const tolerance = 1e-9

// Vector is a units expression reduced to base dimensions. Dims maps a base
// unit name to its exponent; Scale is the base-10 logarithm of the factor that
// converts a value in these units to the unprefixed base units.
//
// Vectors are values: every operation returns a new one.
type Vector struct {
	Dims  map[string]float64
	Scale float64
}

// Dimensionless returns the empty vector.
func Dimensionless() Vector {
	return Vector{}
}

// Base returns the vector of a single base unit.
func Base(name string) Vector {
	return Vector{Dims: map[string]float64{name: 1}}
}

func (v Vector) combine(o Vector, sign float64) Vector {
	out := Vector{Scale: v.Scale + sign*o.Scale}
	for name, exp := range v.Dims {
		out.add(name, exp)
	}
	for name, exp := range o.Dims {
		out.add(name, sign*exp)
	}
	return out
}

func (v *Vector) add(name string, exp float64) {
	if v.Dims == nil {
		v.Dims = make(map[string]float64)
	}
	total := v.Dims[name] + exp
	if math.Abs(total) < tolerance {
		delete(v.Dims, name)
		return
	}
	v.Dims[name] = total
}

// Mul returns v * o.
func (v Vector) Mul(o Vector) Vector {
	return v.combine(o, 1)
}

// Div returns v / o.
func (v Vector) Div(o Vector) Vector {
	return v.combine(o, -1)
}

// Pow returns v raised to exp.
func (v Vector) Pow(exp float64) Vector {
	out := Vector{Scale: v.Scale * exp}
	for name, e := range v.Dims {
		out.add(name, e*exp)
	}
	return out
}

// Scaled returns v with its scale shifted by delta decades.
func (v Vector) Scaled(delta float64) Vector {
	out := v.Pow(1)
	out.Scale += delta
	return out
}

// IsDimensionless reports whether v has no dimensions. The scale is ignored,
// so percent-like units still count as dimensionless.
func (v Vector) IsDimensionless() bool {
	return len(v.Dims) == 0
}

// Compatible reports whether v and o have the same dimensions, so that values
// in one can be converted to the other.
func (v Vector) Compatible(o Vector) bool {
	if len(v.Dims) != len(o.Dims) {
		return false
	}
	for name, exp := range v.Dims {
		other, ok := o.Dims[name]
		if !ok || math.Abs(exp-other) > tolerance {
			return false
		}
	}
	return true
}

// Equivalent reports whether v and o are compatible and share the same scale.
func (v Vector) Equivalent(o Vector) bool {
	return v.Compatible(o) && math.Abs(v.Scale-o.Scale) < tolerance
}

// String returns a canonical form such as `10^-3*kilogram*metre^2*second^-3`.
func (v Vector) String() string {
	names := make([]string, 0, len(v.Dims))
	for name := range v.Dims {
		names = append(names, name)
	}
	sort.Strings(names)

	var parts []string
	if math.Abs(v.Scale) >= tolerance {
		parts = append(parts, "10^"+formatExponent(v.Scale))
	}
	for _, name := range names {
		exp := v.Dims[name]
		if math.Abs(exp-1) < tolerance {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, name+"^"+formatExponent(exp))
	}
	if len(v.Dims) == 0 {
		parts = append(parts, "dimensionless")
	}
	return strings.Join(parts, "*")
}

func formatExponent(f float64) string {
	if r := math.Round(f); math.Abs(f-r) < tolerance {
		f = r
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}
