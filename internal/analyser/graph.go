package analyser

import (
	"github.com/vk/cellan/internal/dag"
)

// graphNode is one vertex of the dependency graph: either a matched equation
// or the stand-in equation of an external variable.
type graphNode struct {
	eq  *equation
	ext *externalSlot
	// rank orders nodes that are ready at the same time. External variables
	// come first, then equations in declaration order.
	rank int
}

// reads returns the classes and state rates the node needs.
func (n graphNode) reads() (values, rates []int) {
	if n.ext != nil {
		return n.ext.deps, nil
	}
	return n.eq.reads, n.eq.rateReads
}

// buildGraph creates one node per external variable and matched equation and
// an edge from the node determining a value to every node reading it.
func (a *analysis) buildGraph() {
	a.graph = dag.New(0)
	for _, slot := range a.externals {
		slot.node = a.graph.AddNode()
		a.classes[slot.class].determinedBy = slot.node
		a.nodes = append(a.nodes, graphNode{ext: slot, rank: slot.node})
	}
	offset := len(a.nodes)
	for _, eq := range a.eqs {
		if eq.matched == none {
			continue
		}
		eq.node = a.graph.AddNode()
		c := a.classes[eq.matched]
		if eq.form == formRate {
			c.rate = eq.node
		} else {
			c.determinedBy = eq.node
		}
		a.nodes = append(a.nodes, graphNode{eq: eq, rank: offset + eq.handle})
	}

	// Both ends of every edge are handles AddNode returned above, so AddEdge
	// cannot fail.
	for i, n := range a.nodes {
		values, rates := n.reads()
		for _, r := range values {
			if from := a.classes[r].determinedBy; from != none {
				_ = a.graph.AddEdge(from, i)
			}
		}
		for _, s := range rates {
			if from := a.classes[s].rate; from != none {
				_ = a.graph.AddEdge(from, i)
			}
		}
	}

	a.logger.Debug("Built dependency graph.", "nodes", a.graph.Len(), "edges", a.graph.EdgeCount())
}
