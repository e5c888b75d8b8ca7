package analyser

import (
	"slices"
	"strings"

	"github.com/vk/cellan/internal/ast"
	"github.com/vk/cellan/internal/model"
)

type eqForm uint8

const (
	// formImplicit equations may determine any unknown they mention.
	formImplicit eqForm = iota
	// formExplicit equations have a plain variable on the left.
	formExplicit
	// formRate equations have the derivative of a state on the left.
	formRate
)

// equation is the arena entry of one model equation.
type equation struct {
	handle int
	root   *ast.Node
	comp   *model.Component
	form   eqForm
	valid  bool

	// target is the class on the left of an explicit equation, or the
	// state of a rate equation.
	target int
	// all lists every class the equation mentions, in order of appearance.
	all []int
	// reads lists the classes whose value the equation needs, rateReads the
	// states whose rate it needs.
	reads     []int
	rateReads []int

	matched int
	node    int
	eqType  EquationType
}

func newEquation(handle int, root *ast.Node, comp *model.Component) *equation {
	return &equation{
		handle:  handle,
		root:    root,
		comp:    comp,
		valid:   true,
		target:  none,
		matched: none,
		node:    none,
	}
}

// analyseStructure resolves variable references, sorts equations into rate,
// explicit and implicit ones, and finds the variable of integration and the
// states.
func (a *analysis) analyseStructure() {
	var voiCandidates []int

	for _, eq := range a.eqs {
		if !a.resolveEquation(eq) {
			continue
		}
		ast.Walk(eq.root, func(n *ast.Node) bool {
			if n.Kind != ast.Diff {
				return true
			}
			state, voi, _ := n.RateOf()
			a.classes[a.lookup(eq.comp, state)].usedAsState = true
			vc := a.lookup(eq.comp, voi)
			if !slices.Contains(voiCandidates, vc) {
				voiCandidates = append(voiCandidates, vc)
			}
			return false
		})
		a.classifyEquation(eq)
	}

	if len(voiCandidates) > 1 {
		names := make([]string, len(voiCandidates))
		for i, c := range voiCandidates {
			names[i] = a.repVar(c).String()
		}
		a.report(LevelError, CauseVariable, CodeVOIConflict, a.varItem(voiCandidates[1]),
			"more than one variable of integration is used: %s", strings.Join(names, ", "))
		a.markInvalid()
	}
	if len(voiCandidates) > 0 {
		a.voi = voiCandidates[0]
	}

	for _, r := range voiCandidates {
		c := a.classes[r]
		c.kind = kindVOI
		if c.initial.IsSet() {
			a.report(LevelError, CauseVariable, CodeVOIConflict, a.varItem(c.initFrom),
				"variable of integration %s must not be initialised", a.vars[c.initFrom].v)
			a.markInvalid()
		}
		if c.usedAsState {
			a.report(LevelError, CauseVariable, CodeVOIConflict, a.varItem(r),
				"variable %s is used both as a state and as the variable of integration", a.repVar(r))
			a.markInvalid()
		}
		if c.explicitTarget {
			a.report(LevelError, CauseVariable, CodeVOIConflict, a.varItem(r),
				"variable of integration %s must not be computed by an equation", a.repVar(r))
			a.markInvalid()
		}
	}

	states := 0
	for _, r := range a.reps {
		c := a.classes[r]
		if !c.usedAsState || c.kind == kindVOI {
			continue
		}
		c.kind = kindState
		states++
		if !c.initial.IsSet() {
			a.report(LevelError, CauseVariable, CodeStateNotInitialised, a.varItem(r),
				"state %s is not initialised", a.repVar(r))
			a.markUnderconstrained()
		}
	}

	a.logger.Debug("Analysed model structure.", "states", states, "voi_candidates", len(voiCandidates))
}

// lookup resolves a variable name in the scope of comp and returns its class,
// or none.
func (a *analysis) lookup(comp *model.Component, name string) int {
	v := comp.Variable(name)
	if v == nil {
		return none
	}
	return a.find(a.handle[v])
}

// resolveEquation checks the shape of eq and that every name it uses exists.
// It reports what is wrong and returns false for unusable equations.
func (a *analysis) resolveEquation(eq *equation) bool {
	root := eq.root
	if root == nil || root.Kind != ast.Equality || len(root.Children) != 2 {
		a.report(LevelError, CauseEquation, CodeInvalidEquation, a.eqItem(eq),
			"equation #%d in component %s is not of the form lhs = rhs", eq.handle, eq.comp.Name)
		a.markInvalid()
		eq.valid = false
		return false
	}

	unknown := make(map[string]bool)
	ast.Walk(root, func(n *ast.Node) bool {
		switch n.Kind {
		case ast.Ci:
			if a.lookup(eq.comp, n.Name) == none && !unknown[n.Name] {
				unknown[n.Name] = true
				a.report(LevelError, CauseEquation, CodeUnknownVariable,
					ItemRef{Component: eq.comp.Name, Variable: n.Name, Equation: eq.handle},
					"equation %q in component %s uses variable %q, which the component does not declare",
					root.String(), eq.comp.Name, n.Name)
				eq.valid = false
			}
		case ast.Diff:
			if _, _, ok := n.RateOf(); !ok {
				a.report(LevelError, CauseEquation, CodeInvalidEquation, a.eqItem(eq),
					"equation %q in component %s differentiates something other than a variable with respect to a variable",
					root.String(), eq.comp.Name)
				eq.valid = false
			}
		}
		return true
	})
	if !eq.valid {
		a.markInvalid()
	}
	return eq.valid
}

func (a *analysis) classifyEquation(eq *equation) {
	lhs, rhs := eq.root.LHS(), eq.root.RHS()

	switch {
	case lhs.Kind == ast.Diff:
		state, _, _ := lhs.RateOf()
		eq.form = formRate
		eq.target = a.lookup(eq.comp, state)
	case lhs.IsVariable():
		eq.form = formExplicit
		eq.target = a.lookup(eq.comp, lhs.Name)
		a.classes[eq.target].explicitTarget = true
	default:
		eq.form = formImplicit
	}

	for _, name := range ast.Variables(eq.root) {
		eq.all = append(eq.all, a.lookup(eq.comp, name))
	}

	readFrom := rhs
	if eq.form == formImplicit {
		readFrom = eq.root
	}
	eq.reads, eq.rateReads = a.readsOf(eq.comp, readFrom)
}

// readsOf collects the classes read by the expression n and the states whose
// rate it reads. The operand of a derivative is a rate read, not a value read.
func (a *analysis) readsOf(comp *model.Component, n *ast.Node) (reads, rateReads []int) {
	ast.Walk(n, func(node *ast.Node) bool {
		switch node.Kind {
		case ast.Ci:
			if c := a.lookup(comp, node.Name); c != none && !slices.Contains(reads, c) {
				reads = append(reads, c)
			}
		case ast.Diff:
			state, voi, _ := node.RateOf()
			if c := a.lookup(comp, state); !slices.Contains(rateReads, c) {
				rateReads = append(rateReads, c)
			}
			if c := a.lookup(comp, voi); !slices.Contains(reads, c) {
				reads = append(reads, c)
			}
			return false
		}
		return true
	})
	return reads, rateReads
}
