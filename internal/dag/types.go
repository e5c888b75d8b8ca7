package dag

import (
	"fmt"
)

// Graph is a directed graph over dense integer handles 0..Len()-1. An edge
// from a to b means a must be evaluated before b. Edges are deduplicated and
// kept in insertion order, so every traversal is deterministic.
//
// A Graph is not safe for concurrent mutation; read-only use from several
// goroutines is fine.
type Graph struct {
	// succ holds the outgoing edges of each node.
	succ [][]int
	// edges deduplicates AddEdge calls.
	edges map[[2]int]struct{}
	// selfLoop marks nodes with an edge to themselves.
	selfLoop []bool
}

// CycleError is returned by operations that require an acyclic graph. Nodes
// lists the members of the offending cycles, sorted ascending.
type CycleError struct {
	Nodes []int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected involving nodes %v", e.Nodes)
}
