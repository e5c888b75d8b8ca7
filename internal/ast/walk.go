package ast

import "sort"

// Walk visits the tree rooted at n in pre-order. Returning false from fn
// skips the children of the node just visited. The traversal uses an explicit
// stack, so very deep trees do not grow the goroutine stack.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top == nil || !fn(top) {
			continue
		}
		for i := len(top.Children) - 1; i >= 0; i-- {
			stack = append(stack, top.Children[i])
		}
	}
}

// Variables returns the names of all variables referenced in the tree, in
// order of first appearance.
func Variables(n *Node) []string {
	var names []string
	seen := make(map[string]struct{})
	Walk(n, func(node *Node) bool {
		if node.Kind == Ci {
			if _, ok := seen[node.Name]; !ok {
				seen[node.Name] = struct{}{}
				names = append(names, node.Name)
			}
		}
		return true
	})
	return names
}

// KindsUsed returns the distinct kinds present in the tree, sorted.
func KindsUsed(n *Node) []Kind {
	seen := make(map[Kind]struct{})
	Walk(n, func(node *Node) bool {
		seen[node.Kind] = struct{}{}
		return true
	})
	out := make([]Kind, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Count returns the number of nodes in the tree.
func Count(n *Node) int {
	total := 0
	Walk(n, func(*Node) bool {
		total++
		return true
	})
	return total
}
