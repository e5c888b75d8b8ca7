package ast

import (
	"github.com/hashicorp/hcl/v2"
)

// Node is a single vertex of an equation tree. Which fields are meaningful
// depends on Kind: Name for Ci, Value and Units for Cn, Children for every
// operator and qualifier.
type Node struct {
	Kind     Kind
	Children []*Node
	Name     string
	Value    float64
	Units    string

	// Range locates the node in its source file, when it came from one.
	Range hcl.Range
}

// Child returns the i-th child, or nil when it does not exist.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// LHS returns the left-hand side of an equality node.
func (n *Node) LHS() *Node {
	if n == nil || n.Kind != Equality {
		return nil
	}
	return n.Child(0)
}

// RHS returns the right-hand side of an equality node.
func (n *Node) RHS() *Node {
	if n == nil || n.Kind != Equality {
		return nil
	}
	return n.Child(1)
}

// IsVariable reports whether n is a Ci leaf.
func (n *Node) IsVariable() bool {
	return n != nil && n.Kind == Ci
}

// RateOf returns the state and variable of integration of a Diff node whose
// operand is a plain variable. ok is false for any other shape.
func (n *Node) RateOf() (state, voi string, ok bool) {
	if n == nil || n.Kind != Diff || len(n.Children) != 2 {
		return "", "", false
	}
	bvar, target := n.Children[0], n.Children[1]
	if bvar.Kind != Bvar || len(bvar.Children) != 1 || !bvar.Children[0].IsVariable() || !target.IsVariable() {
		return "", "", false
	}
	return target.Name, bvar.Children[0].Name, true
}

// Clone returns a deep copy of the tree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// Equal reports whether two trees have the same shape and leaves. Source
// ranges are ignored.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Name != b.Name || a.Units != b.Units || len(a.Children) != len(b.Children) {
		return false
	}
	if a.Kind == Cn && a.Value != b.Value {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
