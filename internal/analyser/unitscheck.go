package analyser

import (
	"fmt"

	"github.com/vk/cellan/internal/ast"
	"github.com/vk/cellan/internal/units"
)

// unitsOf is the units annotation of one expression node.
type unitsOf struct {
	vec units.Vector
	// known is false when the units could not be worked out. Unknown units
	// never cause a mismatch, so one problem is reported only once.
	known bool
	// free marks a literal without units, which adapts to whatever it is
	// combined with.
	free bool
}

var unknownUnits = unitsOf{}

func knownUnits(v units.Vector) unitsOf { return unitsOf{vec: v, known: true} }

// unitsChecker propagates units bottom-up through the equations of a model.
type unitsChecker struct {
	a          *analysis
	resolver   *units.Resolver
	eq         *equation
	unresolved map[string]bool
	mismatches int
}

// checkUnits annotates every usable equation with units and reports
// mismatches at the configured level. It never changes types or order.
func (a *analysis) checkUnits() {
	uc := &unitsChecker{
		a:          a,
		resolver:   units.NewResolver(a.src),
		unresolved: make(map[string]bool),
	}
	a.nodeUnits = make(map[*ast.Node]units.Vector)
	for _, eq := range a.eqs {
		if !eq.valid {
			continue
		}
		uc.eq = eq
		uc.equation(eq.root)
	}
	a.logger.Debug("Checked units.", "mismatches", uc.mismatches, "unresolved", len(uc.unresolved))
}

func (uc *unitsChecker) equation(root *ast.Node) {
	lhs := uc.node(root.LHS())
	rhs := uc.node(root.RHS())
	if uc.comparable(lhs, rhs) && !lhs.vec.Equivalent(rhs.vec) {
		uc.mismatch("the left-hand side is in %s but the right-hand side is in %s", lhs.vec, rhs.vec)
	}
}

func (uc *unitsChecker) resolve(name string, item ItemRef) unitsOf {
	if name == "" {
		return unknownUnits
	}
	v, err := uc.resolver.Resolve(name)
	if err != nil {
		if !uc.unresolved[name] {
			uc.unresolved[name] = true
			uc.a.report(LevelWarning, CauseUnits, CodeUnitsUnresolved, item,
				"units %q cannot be resolved: %v", name, err)
		}
		return unknownUnits
	}
	return knownUnits(v)
}

func (uc *unitsChecker) variable(name string) unitsOf {
	v := uc.eq.comp.Variable(name)
	if v == nil {
		return unknownUnits
	}
	return uc.resolve(v.Units, ItemRef{Component: uc.eq.comp.Name, Variable: name, Equation: uc.eq.handle})
}

// node returns the units of n and records them. Children are always visited
// so that every node of the tree gets its annotation.
func (uc *unitsChecker) node(n *ast.Node) unitsOf {
	if n == nil {
		return unknownUnits
	}
	u := uc.compute(n)
	if u.known && !u.free {
		uc.a.nodeUnits[n] = u.vec
	}
	return u
}

func (uc *unitsChecker) children(n *ast.Node) []unitsOf {
	out := make([]unitsOf, len(n.Children))
	for i, child := range n.Children {
		out[i] = uc.node(child)
	}
	return out
}

func (uc *unitsChecker) compute(n *ast.Node) unitsOf {
	switch n.Kind {
	case ast.Ci:
		return uc.variable(n.Name)
	case ast.Cn:
		if n.Units == "" {
			return unitsOf{known: true, free: true}
		}
		return uc.resolve(n.Units, ItemRef{Component: uc.eq.comp.Name, Equation: uc.eq.handle})
	case ast.Pi, ast.ExponentialE, ast.Infinity, ast.NotANumber:
		return unitsOf{known: true, free: true}
	case ast.True, ast.False:
		return knownUnits(units.Dimensionless())
	}

	args := uc.children(n)
	switch n.Kind {
	case ast.Bvar, ast.Degree, ast.LogBase, ast.Piece, ast.Otherwise:
		if len(args) == 0 {
			return unknownUnits
		}
		return args[0]

	case ast.Plus, ast.Minus, ast.Abs, ast.Ceiling, ast.Floor, ast.Min, ast.Max, ast.Rem:
		return uc.same(n, args)

	case ast.Times:
		return uc.product(args, 1)
	case ast.Divide:
		if len(args) != 2 {
			return unknownUnits
		}
		return uc.product(args, -1)

	case ast.Power:
		if len(args) != 2 {
			return unknownUnits
		}
		return uc.power(n, args[0], n.Children[1], args[1], false)
	case ast.Root:
		if len(args) == 1 {
			return uc.power(n, args[0], ast.Num(2), unitsOf{known: true, free: true}, true)
		}
		return uc.power(n, args[0], n.Children[1].Child(0), args[1], true)

	case ast.Eq, ast.Neq, ast.Lt, ast.Leq, ast.Gt, ast.Geq:
		uc.same(n, args)
		return knownUnits(units.Dimensionless())

	case ast.And, ast.Or, ast.Xor, ast.Not:
		return knownUnits(units.Dimensionless())

	case ast.Diff:
		if len(args) != 2 {
			return unknownUnits
		}
		target, voi := args[1], args[0]
		if !target.known || !voi.known || target.free || voi.free {
			return unknownUnits
		}
		return knownUnits(target.vec.Div(voi.vec))

	case ast.Piecewise:
		var values []unitsOf
		for i, child := range n.Children {
			if child.Kind == ast.Piece || child.Kind == ast.Otherwise {
				values = append(values, args[i])
			}
		}
		return uc.same(n, values)
	}

	if n.Kind.Class() == ast.ClassTrigonometric || n.Kind == ast.Exp || n.Kind == ast.Ln || n.Kind == ast.Log {
		for i, arg := range args {
			if n.Children[i].Kind == ast.LogBase {
				continue
			}
			if arg.known && !arg.free && !arg.vec.IsDimensionless() {
				uc.mismatch("the argument of %s must be dimensionless but is in %s", n.Kind, arg.vec)
			}
		}
		return knownUnits(units.Dimensionless())
	}
	return unknownUnits
}

// same requires every operand to have equivalent units and returns them.
func (uc *unitsChecker) same(n *ast.Node, args []unitsOf) unitsOf {
	result := unitsOf{known: true, free: true}
	for _, arg := range args {
		if !arg.known {
			return unknownUnits
		}
		if arg.free {
			continue
		}
		if result.free {
			result = arg
			continue
		}
		if !arg.vec.Equivalent(result.vec) {
			uc.mismatch("the operands of %q are in %s and %s", n.String(), result.vec, arg.vec)
			return unknownUnits
		}
	}
	return result
}

// product multiplies the first operand by the others, each raised to sign.
// A literal without units counts as dimensionless here.
func (uc *unitsChecker) product(args []unitsOf, sign float64) unitsOf {
	result := unitsOf{known: true, free: true, vec: units.Dimensionless()}
	for i, arg := range args {
		if !arg.known {
			return unknownUnits
		}
		if arg.free {
			continue
		}
		exp := 1.0
		if i > 0 {
			exp = sign
		}
		result = knownUnits(result.vec.Mul(arg.vec.Pow(exp)))
	}
	return result
}

// power raises base to the exponent expression. The exponent must be
// dimensionless; dimensioned bases need a literal exponent.
func (uc *unitsChecker) power(n *ast.Node, base unitsOf, expNode *ast.Node, exp unitsOf, root bool) unitsOf {
	if exp.known && !exp.free && !exp.vec.IsDimensionless() {
		uc.mismatch("the exponent of %q must be dimensionless but is in %s", n.String(), exp.vec)
		return unknownUnits
	}
	if !base.known {
		return unknownUnits
	}
	if base.free || base.vec.IsDimensionless() {
		return base
	}
	value, ok := literalValue(expNode)
	if !ok || (root && value == 0) {
		return unknownUnits
	}
	if root {
		value = 1 / value
	}
	return knownUnits(base.vec.Pow(value))
}

// literalValue evaluates a literal, possibly negated, exponent.
func literalValue(n *ast.Node) (float64, bool) {
	switch {
	case n == nil:
		return 0, false
	case n.Kind == ast.Cn:
		return n.Value, true
	case n.Kind == ast.Minus && len(n.Children) == 1:
		v, ok := literalValue(n.Children[0])
		return -v, ok
	case n.Kind == ast.Plus && len(n.Children) == 1:
		return literalValue(n.Children[0])
	}
	return 0, false
}

func (uc *unitsChecker) mismatch(format string, args ...any) {
	uc.mismatches++
	root := uc.eq.root
	uc.a.report(uc.a.opts.unitsStrictness, CauseUnits, CodeUnitsMismatch, uc.a.eqItem(uc.eq),
		"in equation %q of component %s, %s", root.String(), uc.eq.comp.Name, fmt.Sprintf(format, args...))
}

func (uc *unitsChecker) comparable(x, y unitsOf) bool {
	return x.known && y.known && !x.free && !y.free
}
