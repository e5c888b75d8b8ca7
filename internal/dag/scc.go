package dag

import (
	"sort"
)

// StronglyConnected returns the strongly connected components of the graph
// using Tarjan's algorithm with an explicit stack, so deep dependency chains
// do not recurse. Components come out in reverse topological order: a
// component is emitted after every component reachable from it. Members of
// each component are sorted ascending, and roots are tried in handle order,
// so the result is deterministic.
func (g *Graph) StronglyConnected() [][]int {
	n := g.Len()
	const unvisited = -1

	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = unvisited
	}

	type frame struct {
		node int
		next int // position in succ[node] to look at next
	}

	var (
		components [][]int
		stack      []int
		work       []frame
		counter    int
	)

	for root := 0; root < n; root++ {
		if index[root] != unvisited {
			continue
		}

		index[root], low[root] = counter, counter
		counter++
		stack = append(stack, root)
		onStack[root] = true
		work = append(work, frame{node: root})

		for len(work) > 0 {
			top := &work[len(work)-1]
			v := top.node

			if top.next < len(g.succ[v]) {
				w := g.succ[v][top.next]
				top.next++
				switch {
				case index[w] == unvisited:
					index[w], low[w] = counter, counter
					counter++
					stack = append(stack, w)
					onStack[w] = true
					work = append(work, frame{node: w})
				case onStack[w]:
					low[v] = min(low[v], index[w])
				}
				continue
			}

			// All successors of v are done.
			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1].node
				low[parent] = min(low[parent], low[v])
			}
			if low[v] != index[v] {
				continue
			}

			var comp []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			sort.Ints(comp)
			components = append(components, comp)
		}
	}
	return components
}

// Condense builds the condensation of g over the given partition: node i of
// the result stands for components[i]. Edges inside a component are dropped
// and parallel edges merged. components must cover every node exactly once.
func (g *Graph) Condense(components [][]int) *Graph {
	owner := make([]int, g.Len())
	for i, comp := range components {
		for _, v := range comp {
			owner[v] = i
		}
	}

	out := New(len(components))
	for i, comp := range components {
		for _, v := range comp {
			for _, w := range g.succ[v] {
				if j := owner[w]; j != i {
					// i and j are both below len(components).
					_ = out.AddEdge(i, j)
				}
			}
		}
	}
	return out
}
