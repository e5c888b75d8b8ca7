package analyser

import "slices"

// matchEquations pairs every usable equation with the one class it
// determines. Rate equations determine the rate of their state and explicit
// equations their left-hand side. Implicit equations, and explicit ones whose
// left-hand side is already known, are matched to the remaining unknowns with
// augmenting paths, trying equations and candidates in declaration order.
func (a *analysis) matchEquations() {
	owner := make([]int, len(a.vars))
	for i := range owner {
		owner[i] = none
	}

	var implicit []*equation
	for _, eq := range a.eqs {
		if !eq.valid {
			continue
		}
		switch eq.form {
		case formRate:
			c := a.classes[eq.target]
			if c.kind != kindState {
				// The clash has been reported as a VOI conflict.
				continue
			}
			if c.rate != none {
				a.report(LevelError, CauseEquation, CodeOverconstrained, a.eqItem(eq),
					"the rate of state %s is computed by more than one equation: %q is one too many",
					a.repVar(c.rep), eq.root.String())
				a.markOverconstrained()
				continue
			}
			c.rate = eq.handle
			eq.matched = eq.target
		case formExplicit:
			c := a.classes[eq.target]
			if c.isKnown() {
				eq.form = formImplicit
				eq.reads, eq.rateReads = a.readsOf(eq.comp, eq.root)
				implicit = append(implicit, eq)
				continue
			}
			if owner[eq.target] != none {
				a.report(LevelError, CauseEquation, CodeOverconstrained,
					ItemRef{Component: eq.comp.Name, Variable: a.repVar(eq.target).Name, Equation: eq.handle},
					"variable %s is computed by more than one equation: %q is one too many",
					a.repVar(eq.target), eq.root.String())
				a.markOverconstrained()
				continue
			}
			owner[eq.target] = eq.handle
			eq.matched = eq.target
		default:
			implicit = append(implicit, eq)
		}
	}

	// Candidates are the unknowns an implicit equation mentions that no
	// explicit equation has claimed.
	candidates := make(map[int][]int, len(implicit))
	for _, eq := range implicit {
		for _, c := range eq.all {
			if a.classes[c].kind == kindUnknown && owner[c] == none {
				candidates[eq.handle] = append(candidates[eq.handle], c)
			}
		}
	}
	for _, eq := range implicit {
		a.augment(eq, candidates, owner)
	}
	guesses := a.matchGuesses(implicit, candidates, owner)

	for _, eq := range implicit {
		if eq.matched == none {
			a.report(LevelError, CauseEquation, CodeOverconstrained, a.eqItem(eq),
				"equation %q in component %s has no unknown left to compute", eq.root.String(), eq.comp.Name)
			a.markOverconstrained()
		}
	}

	for _, r := range a.reps {
		c := a.classes[r]
		switch {
		case c.kind == kindUnknown && owner[r] == none:
			a.report(LevelError, CauseVariable, CodeUnderconstrained, a.varItem(r),
				"variable %s is not computed by any equation, is not initialised and is not external", a.repVar(r))
			a.markUnderconstrained()
		case c.kind == kindState && c.rate == none:
			a.report(LevelError, CauseVariable, CodeUnderconstrained, a.varItem(r),
				"the rate of state %s is not computed by any equation", a.repVar(r))
			a.markUnderconstrained()
		}
	}

	matched := 0
	for _, eq := range a.eqs {
		if eq.matched != none {
			matched++
		}
	}
	a.logger.Debug("Matched equations to unknowns.",
		"equations", len(a.eqs),
		"matched", matched,
		"implicit", len(implicit),
		"guesses", guesses,
	)
}

// matchGuesses gives implicit equations that are still unmatched a
// literal-initialised constant to solve for, the literal becoming its initial
// guess. Constants are tried in declaration order and each one is taken only
// if it lets one more equation be matched, so the chosen set does not depend
// on the order of the equations. It returns how many constants became
// unknowns.
func (a *analysis) matchGuesses(implicit []*equation, candidates map[int][]int, owner []int) int {
	unmatched := 0
	for _, eq := range implicit {
		if eq.matched == none {
			unmatched++
		}
	}
	if unmatched == 0 {
		return 0
	}

	for _, eq := range implicit {
		for _, c := range eq.all {
			if a.classes[c].guess && !slices.Contains(candidates[eq.handle], c) {
				candidates[eq.handle] = append(candidates[eq.handle], c)
			}
		}
	}
	users := make(map[int][]int)
	for _, eq := range implicit {
		for _, c := range candidates[eq.handle] {
			users[c] = append(users[c], eq.handle)
		}
	}

	demoted := 0
	for _, r := range a.reps {
		if unmatched == 0 {
			break
		}
		c := a.classes[r]
		if !c.guess || len(users[r]) == 0 || !a.augmentFrom(r, users, owner) {
			continue
		}
		c.kind = kindUnknown
		demoted++
		unmatched--
	}
	return demoted
}

// augmentFrom looks for an alternating path from the free class c to an
// unmatched equation and flips it. Classes matched before stay matched.
func (a *analysis) augmentFrom(c int, users map[int][]int, owner []int) bool {
	via := make(map[int]int)
	queue := []int{c}
	for head := 0; head < len(queue); head++ {
		for _, e := range users[queue[head]] {
			if _, seen := via[e]; seen {
				continue
			}
			via[e] = queue[head]
			eq := a.eqs[e]
			if eq.matched == none {
				for e != none {
					holder := a.eqs[e]
					v := via[e]
					previous := owner[v]
					owner[v] = e
					holder.matched = v
					e = previous
				}
				return true
			}
			queue = append(queue, eq.matched)
		}
	}
	return false
}

// augment looks for an alternating path from eq to a free unknown with a
// breadth-first search and flips it. It reports whether eq got matched.
func (a *analysis) augment(eq *equation, candidates map[int][]int, owner []int) bool {
	via := make(map[int]int)
	queue := []int{eq.handle}
	for head := 0; head < len(queue); head++ {
		e := queue[head]
		for _, c := range candidates[e] {
			if _, seen := via[c]; seen {
				continue
			}
			via[c] = e
			if owner[c] == none {
				for c != none {
					holder := a.eqs[via[c]]
					previous := holder.matched
					owner[c] = holder.handle
					holder.matched = c
					c = previous
				}
				return true
			}
			queue = append(queue, owner[c])
		}
	}
	return false
}
