package dag

import (
	"container/heap"
	"sort"
)

// TopologicalOrder returns every node such that each edge points forward.
// Among nodes that are ready at the same time the one with the lowest
// priority goes first, ties broken by handle. A nil priority orders by handle.
// When the graph has a cycle the nodes that could not be placed are returned
// in a *CycleError alongside the partial order.
func (g *Graph) TopologicalOrder(priority func(n int) int) ([]int, error) {
	if priority == nil {
		priority = func(n int) int { return n }
	}

	inDegree := make([]int, g.Len())
	for v := range g.succ {
		for _, w := range g.succ[v] {
			if w != v {
				inDegree[w]++
			}
		}
	}

	ready := &readyQueue{priority: priority}
	for v, d := range inDegree {
		if d == 0 && !g.selfLoop[v] {
			ready.nodes = append(ready.nodes, v)
		}
	}
	heap.Init(ready)

	order := make([]int, 0, g.Len())
	for ready.Len() > 0 {
		v := heap.Pop(ready).(int)
		order = append(order, v)
		for _, w := range g.succ[v] {
			if w == v {
				continue
			}
			inDegree[w]--
			if inDegree[w] == 0 && !g.selfLoop[w] {
				heap.Push(ready, w)
			}
		}
	}

	if len(order) == g.Len() {
		return order, nil
	}
	placed := make([]bool, g.Len())
	for _, v := range order {
		placed[v] = true
	}
	var left []int
	for v, done := range placed {
		if !done {
			left = append(left, v)
		}
	}
	sort.Ints(left)
	return order, &CycleError{Nodes: left}
}

// readyQueue is a min-heap of node handles keyed by priority, then handle.
type readyQueue struct {
	nodes    []int
	priority func(int) int
}

func (q *readyQueue) Len() int { return len(q.nodes) }

func (q *readyQueue) Less(i, j int) bool {
	a, b := q.nodes[i], q.nodes[j]
	pa, pb := q.priority(a), q.priority(b)
	if pa != pb {
		return pa < pb
	}
	return a < b
}

func (q *readyQueue) Swap(i, j int) { q.nodes[i], q.nodes[j] = q.nodes[j], q.nodes[i] }

func (q *readyQueue) Push(x any) { q.nodes = append(q.nodes, x.(int)) }

func (q *readyQueue) Pop() any {
	last := q.nodes[len(q.nodes)-1]
	q.nodes = q.nodes[:len(q.nodes)-1]
	return last
}
