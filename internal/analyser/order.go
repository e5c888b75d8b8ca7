package analyser

// orderBlocks sorts the condensed dependency graph. Blocks that are ready at
// the same time keep declaration order, and nonlinear systems are numbered in
// the order they end up in.
func (a *analysis) orderBlocks() {
	comps := make([][]int, len(a.blocks))
	for i, b := range a.blocks {
		comps[i] = b.nodes
	}
	cond := a.graph.Condense(comps)
	order, err := cond.TopologicalOrder(func(i int) int { return a.blocks[i].rank })
	if err != nil {
		// A condensation is acyclic; keep whatever could be ordered.
		a.logger.Warn("Condensed dependency graph is cyclic.", "error", err)
	}

	nla := 0
	for _, i := range order {
		b := a.blocks[i]
		if b.broken {
			continue
		}
		if b.nla {
			b.index = nla
			nla++
		}
		a.ordered = append(a.ordered, b)
	}
	a.logger.Debug("Ordered equations.", "blocks", len(a.ordered), "nla_systems", nla)
}

// assignTypes gives every class its final type and every ordered equation
// its equation type, then numbers the classes within each type.
func (a *analysis) assignTypes() {
	for _, r := range a.reps {
		c := a.classes[r]
		switch c.kind {
		case kindVOI:
			c.final = VarVOI
		case kindState:
			c.final = VarState
		case kindConstant:
			c.final = VarConstant
		case kindInitComputed:
			c.final = VarComputedConstant
		case kindExternal:
			c.final = VarExternal
		default:
			// Unknowns nothing could compute stay algebraic, so that every
			// variable still lands in exactly one partition.
			c.final = VarAlgebraic
		}
	}

	inNLA := make(map[int]bool)
	for _, b := range a.ordered {
		if b.nla {
			constant := a.blockIsConstant(b)
			for _, eq := range b.eqs {
				eq.eqType = EqNLA
				inNLA[eq.matched] = true
				if eq.form != formRate {
					a.classes[eq.matched].final = pick(constant, VarComputedConstant, VarAlgebraic)
				}
			}
			continue
		}
		for _, eq := range b.eqs {
			switch {
			case eq.form == formRate:
				eq.eqType = EqRate
			case a.blockIsConstant(b):
				eq.eqType = pick(len(eq.reads) == 0, EqTrueConstant, EqVariableBasedConstant)
				a.classes[eq.matched].final = VarComputedConstant
			default:
				eq.eqType = EqAlgebraic
				a.classes[eq.matched].final = VarAlgebraic
			}
		}
	}

	for _, r := range a.reps {
		c := a.classes[r]
		if c.kind == kindUnknown && c.hasValue && c.determinedBy != none && !inNLA[r] {
			a.report(LevelWarning, CauseVariable, CodeInitialGuessIgnored, a.varItem(c.initFrom),
				"variable %s is computed by an equation, so its initial value %s is not used",
				a.vars[c.initFrom].v, a.vars[c.initFrom].v.Initial)
		}
	}

	next := make(map[VariableType]int)
	for _, r := range a.reps {
		c := a.classes[r]
		c.index = next[c.final]
		next[c.final]++
	}
}

// blockIsConstant reports whether every value the block reads from outside
// is a constant or a computed constant.
func (a *analysis) blockIsConstant(b *block) bool {
	own := make(map[int]bool, len(b.eqs))
	for _, eq := range b.eqs {
		own[eq.matched] = true
	}
	for _, eq := range b.eqs {
		if len(eq.rateReads) > 0 {
			return false
		}
		for _, r := range eq.reads {
			if own[r] {
				continue
			}
			switch a.classes[r].final {
			case VarConstant, VarComputedConstant:
			default:
				return false
			}
		}
	}
	return true
}

func pick[T any](cond bool, yes, no T) T {
	if cond {
		return yes
	}
	return no
}
