package analyser

import (
	"fmt"
	"slices"
	"strings"
)

// block is a strongly connected component of the dependency graph. Blocks
// with more than one node, a self-dependency, or a single implicit equation
// are nonlinear systems.
type block struct {
	nodes []int
	rank  int
	nla   bool
	// broken blocks are cycles that cannot be solved, such as an external
	// variable depending on its own result. They are left out of the order.
	broken bool
	index  int

	eqs      []*equation
	unknowns []int
}

// detectBlocks splits the dependency graph into strongly connected
// components and decides which of them are nonlinear systems.
func (a *analysis) detectBlocks() {
	nla := 0
	for _, comp := range a.graph.StronglyConnected() {
		b := &block{nodes: comp, index: NoNLASystem, rank: a.nodes[comp[0]].rank}
		cyclic := len(comp) > 1 || a.graph.HasSelfLoop(comp[0])

		var externals []*externalSlot
		for _, n := range comp {
			node := a.nodes[n]
			b.rank = min(b.rank, node.rank)
			if node.ext != nil {
				externals = append(externals, node.ext)
				continue
			}
			b.eqs = append(b.eqs, node.eq)
		}

		switch {
		case cyclic && len(externals) > 0:
			b.broken = true
			a.reportBrokenBlock(b, externals)
		case cyclic:
			b.nla = true
		case len(b.eqs) == 1 && b.eqs[0].form == formImplicit:
			b.nla = true
		}

		if b.nla {
			for _, eq := range b.eqs {
				b.unknowns = append(b.unknowns, eq.matched)
			}
			if issue := a.checkBalance(b); issue != nil {
				a.issues = append(a.issues, issue)
			}
			nla++
		}
		a.blocks = append(a.blocks, b)
	}
	a.logger.Debug("Detected equation blocks.", "blocks", len(a.blocks), "nla_systems", nla)
}

// checkBalance verifies that a nonlinear system has as many unknowns as
// equations. Unknowns are the distinct classes its members determine.
// Matching gives every equation its own unknown, so this is an internal
// invariant check that well-formed input never trips.
func (a *analysis) checkBalance(b *block) *Issue {
	var unknowns []int
	for _, u := range b.unknowns {
		if u != none && !slices.Contains(unknowns, u) {
			unknowns = append(unknowns, u)
		}
	}
	if len(unknowns) == len(b.eqs) {
		return nil
	}

	if len(unknowns) < len(b.eqs) {
		a.markOverconstrained()
	} else {
		a.markUnderconstrained()
	}
	names := make([]string, len(unknowns))
	for i, u := range unknowns {
		names[i] = a.repVar(u).String()
	}
	item := NoEquation
	comp := ""
	if len(b.eqs) > 0 {
		item = b.eqs[0].handle
		comp = b.eqs[0].comp.Name
	}
	return &Issue{
		Level: LevelError,
		Cause: CauseEquation,
		Code:  CodeUnbalancedSystem,
		Description: fmt.Sprintf("a system of %d equations cannot be solved for %d unknowns (%s)",
			len(b.eqs), len(unknowns), strings.Join(names, ", ")),
		Item: ItemRef{Component: comp, Equation: item},
	}
}

func (a *analysis) reportBrokenBlock(b *block, externals []*externalSlot) {
	var names []string
	for _, ext := range externals {
		names = append(names, a.vars[ext.handle].v.String())
	}
	for _, eq := range b.eqs {
		names = append(names, a.repVar(eq.matched).String())
	}
	item := a.varItem(externals[0].handle)
	a.report(LevelError, CauseExternal, CodeCyclicDependency, item,
		"external variable %s depends on its own value through %s",
		a.vars[externals[0].handle].v, strings.Join(names, ", "))
	a.markInvalid()
}
