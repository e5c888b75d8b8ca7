package units

import (
	"sort"
	"strconv"
)

// SI base units. Every built-in reduces to these.
const (
	Ampere   = "ampere"
	Candela  = "candela"
	Kelvin   = "kelvin"
	Kilogram = "kilogram"
	Metre    = "metre"
	Mole     = "mole"
	Second   = "second"
)

type dims map[string]float64

func derived(scale float64, d dims) Vector {
	return Vector{Dims: d, Scale: scale}
}

var builtins = map[string]Vector{
	"ampere":        Base(Ampere),
	"becquerel":     derived(0, dims{Second: -1}),
	"candela":       Base(Candela),
	"coulomb":       derived(0, dims{Ampere: 1, Second: 1}),
	"dimensionless": Dimensionless(),
	"farad":         derived(0, dims{Ampere: 2, Second: 4, Kilogram: -1, Metre: -2}),
	"gram":          derived(-3, dims{Kilogram: 1}),
	"gray":          derived(0, dims{Metre: 2, Second: -2}),
	"henry":         derived(0, dims{Kilogram: 1, Metre: 2, Second: -2, Ampere: -2}),
	"hertz":         derived(0, dims{Second: -1}),
	"joule":         derived(0, dims{Kilogram: 1, Metre: 2, Second: -2}),
	"katal":         derived(0, dims{Mole: 1, Second: -1}),
	"kelvin":        Base(Kelvin),
	"kilogram":      Base(Kilogram),
	"litre":         derived(-3, dims{Metre: 3}),
	"lumen":         Base(Candela),
	"lux":           derived(0, dims{Candela: 1, Metre: -2}),
	"metre":         Base(Metre),
	"mole":          Base(Mole),
	"newton":        derived(0, dims{Kilogram: 1, Metre: 1, Second: -2}),
	"ohm":           derived(0, dims{Kilogram: 1, Metre: 2, Second: -3, Ampere: -2}),
	"pascal":        derived(0, dims{Kilogram: 1, Metre: -1, Second: -2}),
	"radian":        Dimensionless(),
	"second":        Base(Second),
	"siemens":       derived(0, dims{Kilogram: -1, Metre: -2, Second: 3, Ampere: 2}),
	"sievert":       derived(0, dims{Metre: 2, Second: -2}),
	"steradian":     Dimensionless(),
	"tesla":         derived(0, dims{Kilogram: 1, Second: -2, Ampere: -1}),
	"volt":          derived(0, dims{Kilogram: 1, Metre: 2, Second: -3, Ampere: -1}),
	"watt":          derived(0, dims{Kilogram: 1, Metre: 2, Second: -3}),
	"weber":         derived(0, dims{Kilogram: 1, Metre: 2, Second: -2, Ampere: -1}),
}

var prefixes = map[string]float64{
	"yotta": 24,
	"zetta": 21,
	"exa":   18,
	"peta":  15,
	"tera":  12,
	"giga":  9,
	"mega":  6,
	"kilo":  3,
	"hecto": 2,
	"deca":  1,
	"deka":  1,
	"deci":  -1,
	"centi": -2,
	"milli": -3,
	"micro": -6,
	"nano":  -9,
	"pico":  -12,
	"femto": -15,
	"atto":  -18,
	"zepto": -21,
	"yocto": -24,
}

// Builtin returns the vector of a built-in unit.
func Builtin(name string) (Vector, bool) {
	v, ok := builtins[name]
	if !ok {
		return Vector{}, false
	}
	return v.Pow(1), true
}

// IsBuiltin reports whether name is one of the built-in units.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// BuiltinNames returns the built-in unit names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrefixScale returns the power of ten of a prefix. A prefix is either one of
// the SI names or an integer, and the empty prefix is zero.
func PrefixScale(prefix string) (float64, bool) {
	if prefix == "" {
		return 0, true
	}
	if s, ok := prefixes[prefix]; ok {
		return s, true
	}
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return float64(n), true
}
