package dag

import (
	"fmt"
	"sort"
)

// New creates a graph with n nodes and no edges.
func New(n int) *Graph {
	if n < 0 {
		n = 0
	}
	return &Graph{
		succ:     make([][]int, n),
		edges:    make(map[[2]int]struct{}),
		selfLoop: make([]bool, n),
	}
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.succ)
}

// AddNode appends a node and returns its handle.
func (g *Graph) AddNode() int {
	g.succ = append(g.succ, nil)
	g.selfLoop = append(g.selfLoop, false)
	return len(g.succ) - 1
}

// AddEdge creates a directed edge from `from` to `to`, meaning `to` depends
// on `from`. Adding an existing edge again is a no-op. Self-loops are allowed
// and recorded; an equation that reads the variable it determines is one.
func (g *Graph) AddEdge(from, to int) error {
	if from < 0 || from >= g.Len() {
		return fmt.Errorf("source node not found: %d", from)
	}
	if to < 0 || to >= g.Len() {
		return fmt.Errorf("destination node not found: %d", to)
	}

	key := [2]int{from, to}
	if _, ok := g.edges[key]; ok {
		return nil
	}
	g.edges[key] = struct{}{}

	if from == to {
		g.selfLoop[from] = true
	}
	g.succ[from] = append(g.succ[from], to)
	return nil
}

// HasSelfLoop reports whether n depends on itself.
func (g *Graph) HasSelfLoop(n int) bool {
	return n >= 0 && n < g.Len() && g.selfLoop[n]
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// DetectCycles checks the graph for any cycles, self-loops included. The
// returned *CycleError lists every node that sits on a cycle.
func (g *Graph) DetectCycles() error {
	var cyclic []int
	for _, comp := range g.StronglyConnected() {
		if len(comp) > 1 || g.HasSelfLoop(comp[0]) {
			cyclic = append(cyclic, comp...)
		}
	}
	if len(cyclic) == 0 {
		return nil
	}
	sort.Ints(cyclic)
	return &CycleError{Nodes: cyclic}
}
