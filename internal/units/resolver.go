package units

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vk/cellan/internal/model"
)

var (
	// ErrUnknownUnits is returned for a name that is neither built in nor
	// defined by the model.
	ErrUnknownUnits = errors.New("unknown units")

	// ErrCyclicUnits is returned when a units definition refers back to itself.
	ErrCyclicUnits = errors.New("cyclic units definition")

	// ErrInvalidTerm is returned for a term with an unusable prefix or
	// multiplier.
	ErrInvalidTerm = errors.New("invalid units term")
)

// Resolver reduces units names to vectors. Built-in names take precedence over
// model definitions with the same name. A Resolver memoises its results and
// is not safe for concurrent use.
type Resolver struct {
	defs  map[string]*model.Units
	cache map[string]result
}

type result struct {
	vec Vector
	err error
}

// NewResolver creates a resolver over the units definitions of m. m may be
// nil, in which case only built-in units resolve.
func NewResolver(m *model.Model) *Resolver {
	r := &Resolver{
		defs:  make(map[string]*model.Units),
		cache: make(map[string]result),
	}
	if m != nil {
		for _, u := range m.Units {
			if _, ok := r.defs[u.Name]; !ok {
				r.defs[u.Name] = u
			}
		}
	}
	return r
}

// Resolve returns the vector of the named units.
func (r *Resolver) Resolve(name string) (Vector, error) {
	v, err := r.resolve(name, nil)
	if err != nil {
		return Vector{}, err
	}
	return v.Pow(1), nil
}

func (r *Resolver) resolve(name string, path []string) (Vector, error) {
	if res, ok := r.cache[name]; ok {
		return res.vec, res.err
	}
	if v, ok := Builtin(name); ok {
		return v, nil
	}
	def, ok := r.defs[name]
	if !ok {
		return Vector{}, fmt.Errorf("%w %q", ErrUnknownUnits, name)
	}
	for _, p := range path {
		if p == name {
			chain := append(append([]string(nil), path...), name)
			return Vector{}, fmt.Errorf("%w: %s", ErrCyclicUnits, strings.Join(chain, " -> "))
		}
	}

	v, err := r.expand(def, append(path, name))
	// Cycle errors are specific to the path that found them, so only cache
	// results that hold no matter how the name was reached.
	if err == nil || !errors.Is(err, ErrCyclicUnits) {
		r.cache[name] = result{vec: v, err: err}
	}
	return v, err
}

func (r *Resolver) expand(def *model.Units, path []string) (Vector, error) {
	if def.IsBase() {
		return Base(def.Name), nil
	}
	out := Dimensionless()
	for _, term := range def.Terms {
		tv, err := r.Term(term, path)
		if err != nil {
			return Vector{}, fmt.Errorf("units %q: %w", def.Name, err)
		}
		out = out.Mul(tv)
	}
	return out, nil
}

// Term resolves a single units term. path lists the definitions being
// expanded and may be nil. A zero exponent or multiplier counts as one.
func (r *Resolver) Term(term model.UnitTerm, path []string) (Vector, error) {
	ref, err := r.resolve(term.Reference, path)
	if err != nil {
		return Vector{}, err
	}
	prefix, ok := PrefixScale(term.Prefix)
	if !ok {
		return Vector{}, fmt.Errorf("%w: prefix %q", ErrInvalidTerm, term.Prefix)
	}
	exp := term.Exponent
	if exp == 0 {
		exp = 1
	}
	mult := term.Multiplier
	if mult == 0 {
		mult = 1
	}
	if mult < 0 {
		return Vector{}, fmt.Errorf("%w: multiplier %g", ErrInvalidTerm, mult)
	}
	return ref.Scaled(prefix).Pow(exp).Scaled(math.Log10(mult)), nil
}
