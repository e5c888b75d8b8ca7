package analyser

import (
	"slices"
	"strings"

	"github.com/vk/cellan/internal/model"
)

// resolveInitialValues follows initial values to their literal source and
// decides which classes are constants.
//
// A literal-initialised class that no explicit equation computes is a
// constant. A class initialised from another variable is a computed constant
// when that chain ends at a constant. A class that an explicit equation
// computes keeps its initial value as a guess for a nonlinear solver, and so
// does a literal constant that matching later hands to an implicit equation.
func (a *analysis) resolveInitialValues() {
	for _, r := range a.reps {
		a.resolveInitialValue(r)
	}

	constants, computed := 0, 0
	for _, r := range a.reps {
		c := a.classes[r]
		if c.kind != kindUnknown || c.explicitTarget {
			continue
		}
		switch c.initial.Kind {
		case model.InitialLiteral:
			c.kind = kindConstant
			c.guess = !c.initSource
			constants++
		case model.InitialReference:
			// A failed chain has been reported already; treating the class
			// as known avoids a second, underconstrained, issue about it.
			c.kind = kindInitComputed
			computed++
		}
	}
	a.logger.Debug("Resolved initial values.", "constants", constants, "computed_constants", computed)
}

// constantSource reports whether c can provide the initial value of another
// variable.
func (a *analysis) constantSource(c *class) bool {
	switch c.kind {
	case kindVOI, kindState, kindExternal:
		return false
	}
	return !c.explicitTarget && c.initial.IsSet()
}

func (a *analysis) resolveInitialValue(r int) {
	var path []int
	cur := r
	outcome := initFailed
	var value float64

walk:
	for {
		c := a.classes[cur]
		if len(path) > 0 && !a.constantSource(c) {
			prev := a.classes[path[len(path)-1]]
			a.report(LevelError, CauseVariable, CodeNonConstantInitialValue, a.varItem(prev.initFrom),
				"variable %s is initialised with %s, which is not a constant",
				a.vars[prev.initFrom].v, a.vars[prev.initVia].v)
			a.markInvalid()
			break
		}

		switch c.initState {
		case initResolved:
			outcome, value = initResolved, c.value
			break walk
		case initFailed:
			break walk
		case initResolving:
			start := slices.Index(path, cur)
			names := make([]string, 0, len(path)-start+1)
			for _, p := range path[start:] {
				names = append(names, a.vars[a.classes[p].initFrom].v.String())
			}
			names = append(names, a.vars[a.classes[cur].initFrom].v.String())
			a.report(LevelError, CauseVariable, CodeCyclicDependency, a.varItem(a.classes[cur].initFrom),
				"initial values form a cycle: %s", strings.Join(names, " -> "))
			a.markInvalid()
			break walk
		}

		switch c.initial.Kind {
		case model.InitialLiteral:
			c.initState = initResolved
			c.hasValue = true
			c.value = c.initial.Value
			outcome, value = initResolved, c.value
			break walk
		case model.InitialReference:
			from := a.vars[c.initFrom]
			ref := from.comp.Variable(c.initial.Variable)
			if ref == nil {
				a.report(LevelError, CauseVariable, CodeUnknownVariable, a.varItem(c.initFrom),
					"variable %s is initialised with %q, which component %s does not declare",
					from.v, c.initial.Variable, from.comp.Name)
				a.markInvalid()
				c.initState = initFailed
				break walk
			}
			c.initState = initResolving
			c.initVia = a.handle[ref]
			path = append(path, cur)
			cur = a.find(c.initVia)
			a.classes[cur].initSource = true
		default:
			// Only reached for the class the walk started from, since a
			// class without an initial value is not a constant source.
			return
		}
	}

	for _, p := range path {
		c := a.classes[p]
		if outcome == initResolved {
			c.initState = initResolved
			c.hasValue = true
			c.value = value
			continue
		}
		c.initState = initFailed
	}
}
