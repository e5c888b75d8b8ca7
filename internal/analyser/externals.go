package analyser

import (
	"slices"
)

// externalSlot is an external declaration that matched a model variable.
type externalSlot struct {
	decl   *ExternalVariable
	handle int
	class  int
	deps   []int
	node   int
}

// applyExternals marks the declared external variables. A declaration that
// names no variable, or one that clashes with the variable of integration or
// a state, is reported and ignored.
func (a *analysis) applyExternals() {
	for _, decl := range a.declared {
		h, ok := a.resolveRef(decl.Ref())
		if !ok {
			a.report(LevelError, CauseExternal, CodeInvalidExternal,
				ItemRef{Component: decl.Component, Variable: decl.Variable, Equation: NoEquation},
				"external variable %s does not exist in the model", decl.Ref())
			continue
		}

		r := a.find(h)
		c := a.classes[r]
		switch c.kind {
		case kindVOI:
			a.report(LevelError, CauseExternal, CodeVOIConflict, a.varItem(h),
				"variable %s cannot be external because it is the variable of integration", a.vars[h].v)
			a.markInvalid()
			continue
		case kindState:
			a.report(LevelError, CauseExternal, CodeInvalidExternal, a.varItem(h),
				"variable %s cannot be external because it is a state", a.vars[h].v)
			a.markInvalid()
			continue
		}

		slot := c.external
		if slot == nil {
			slot = &externalSlot{decl: decl, handle: h, class: r, node: none}
			c.kind = kindExternal
			c.external = slot
			a.externals = append(a.externals, slot)
		}
		for _, dep := range decl.Dependencies {
			dh, ok := a.resolveRef(dep)
			if !ok {
				a.report(LevelError, CauseExternal, CodeInvalidExternal, a.varItem(h),
					"external variable %s depends on %s, which does not exist in the model", decl.Ref(), dep)
				continue
			}
			if dr := a.find(dh); dr != r && !slices.Contains(slot.deps, dr) {
				slot.deps = append(slot.deps, dr)
			}
		}
	}

	// External classes are supplied in declaration order of their
	// representatives.
	slices.SortFunc(a.externals, func(x, y *externalSlot) int { return x.class - y.class })
	a.logger.Debug("Applied external variables.", "declared", len(a.declared), "external", len(a.externals))
}

func (a *analysis) resolveRef(ref VariableRef) (int, bool) {
	comp := a.src.Component(ref.Component)
	if comp == nil {
		return none, false
	}
	v := comp.Variable(ref.Variable)
	if v == nil {
		return none, false
	}
	return a.handle[v], true
}
