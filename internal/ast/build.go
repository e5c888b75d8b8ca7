package ast

// Constructors used by the HCL translator, the tests, and the analyser when it
// derives residual forms.

// Equation builds the root `lhs = rhs` node of an equation.
func Equation(lhs, rhs *Node) *Node {
	return &Node{Kind: Equality, Children: []*Node{lhs, rhs}}
}

// Var builds a variable reference.
func Var(name string) *Node {
	return &Node{Kind: Ci, Name: name}
}

// Num builds a dimension-free literal.
func Num(v float64) *Node {
	return &Node{Kind: Cn, Value: v}
}

// NumUnits builds a literal carrying a units name.
func NumUnits(v float64, units string) *Node {
	return &Node{Kind: Cn, Value: v, Units: units}
}

// Const builds one of the constant leaves (pi, exponentiale, true, ...).
func Const(k Kind) *Node {
	return &Node{Kind: k}
}

// Op builds an operator node of the given kind.
func Op(k Kind, children ...*Node) *Node {
	return &Node{Kind: k, Children: children}
}

func Add(children ...*Node) *Node { return Op(Plus, children...) }
func Sub(a, b *Node) *Node { return Op(Minus, a, b) }
func Neg(a *Node) *Node { return Op(Minus, a) }
func Mul(children ...*Node) *Node { return Op(Times, children...) }
func Div(a, b *Node) *Node { return Op(Divide, a, b) }
func Pow(base, exp *Node) *Node { return Op(Power, base, exp) }
func Call(k Kind, args ...*Node) *Node { return Op(k, args...) }

// Sqrt builds a square root.
func Sqrt(x *Node) *Node {
	return Op(Root, x)
}

// RootOf builds the n-th root of x.
func RootOf(x, degree *Node) *Node {
	return Op(Root, x, Op(Degree, degree))
}

// LogOf builds the logarithm of x in the given base.
func LogOf(x, base *Node) *Node {
	return Op(Log, x, Op(LogBase, base))
}

// Rate builds d(state)/d(voi).
func Rate(state, voi string) *Node {
	return Op(Diff, Op(Bvar, Var(voi)), Var(state))
}

// PieceOf builds one `value if condition` branch of a piecewise expression.
func PieceOf(value, condition *Node) *Node {
	return Op(Piece, value, condition)
}

// OtherwiseOf builds the fallback branch of a piecewise expression.
func OtherwiseOf(value *Node) *Node {
	return Op(Otherwise, value)
}

// Select builds `condition ? whenTrue : whenFalse` as a piecewise expression.
func Select(condition, whenTrue, whenFalse *Node) *Node {
	return Op(Piecewise, PieceOf(whenTrue, condition), OtherwiseOf(whenFalse))
}
