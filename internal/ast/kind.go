package ast

import "fmt"

// Kind is the closed set of node kinds an equation tree can contain.
type Kind uint8

const (
	Invalid Kind = iota

	// Equality is the root of every equation: `lhs = rhs`.
	Equality

	// Relational operators.
	Eq
	Neq
	Lt
	Leq
	Gt
	Geq

	// Logical operators.
	And
	Or
	Xor
	Not

	// Arithmetic operators.
	Plus
	Minus
	Times
	Divide
	Power
	Root
	Abs
	Exp
	Ln
	Log
	Ceiling
	Floor
	Min
	Max
	Rem

	// Diff is the derivative of its second child with respect to the
	// variable held by its Bvar child.
	Diff

	// Trigonometric operators.
	Sin
	Cos
	Tan
	Sec
	Csc
	Cot
	Sinh
	Cosh
	Tanh
	Sech
	Csch
	Coth
	Asin
	Acos
	Atan
	Asec
	Acsc
	Acot
	Asinh
	Acosh
	Atanh
	Asech
	Acsch
	Acoth

	// Piecewise expressions.
	Piecewise
	Piece
	Otherwise

	// Leaves.
	Ci
	Cn
	True
	False
	Pi
	ExponentialE
	Infinity
	NotANumber

	// Qualifiers.
	Bvar
	Degree
	LogBase

	kindCount
)

// Class groups kinds by how the unit checker and the printer treat them.
type Class uint8

const (
	ClassOther Class = iota
	ClassRelational
	ClassLogical
	ClassArithmetic
	ClassTrigonometric
	ClassLeaf
	ClassConstant
	ClassQualifier
)

type kindInfo struct {
	name    string
	fn      string // function name used by the textual notation, empty if none
	class   Class
	minArgs int
	maxArgs int // -1 for variadic
}

var kinds = [kindCount]kindInfo{
	Invalid:  {name: "invalid"},
	Equality: {name: "equality", class: ClassOther, minArgs: 2, maxArgs: 2},

	Eq:  {name: "eq", class: ClassRelational, minArgs: 2, maxArgs: 2},
	Neq: {name: "neq", class: ClassRelational, minArgs: 2, maxArgs: 2},
	Lt:  {name: "lt", class: ClassRelational, minArgs: 2, maxArgs: 2},
	Leq: {name: "leq", class: ClassRelational, minArgs: 2, maxArgs: 2},
	Gt:  {name: "gt", class: ClassRelational, minArgs: 2, maxArgs: 2},
	Geq: {name: "geq", class: ClassRelational, minArgs: 2, maxArgs: 2},

	And: {name: "and", class: ClassLogical, minArgs: 2, maxArgs: -1},
	Or:  {name: "or", class: ClassLogical, minArgs: 2, maxArgs: -1},
	Xor: {name: "xor", fn: "xor", class: ClassLogical, minArgs: 2, maxArgs: -1},
	Not: {name: "not", class: ClassLogical, minArgs: 1, maxArgs: 1},

	Plus:    {name: "plus", class: ClassArithmetic, minArgs: 1, maxArgs: -1},
	Minus:   {name: "minus", class: ClassArithmetic, minArgs: 1, maxArgs: 2},
	Times:   {name: "times", class: ClassArithmetic, minArgs: 2, maxArgs: -1},
	Divide:  {name: "divide", class: ClassArithmetic, minArgs: 2, maxArgs: 2},
	Power:   {name: "power", fn: "pow", class: ClassArithmetic, minArgs: 2, maxArgs: 2},
	Root:    {name: "root", fn: "root", class: ClassArithmetic, minArgs: 1, maxArgs: 2},
	Abs:     {name: "abs", fn: "abs", class: ClassArithmetic, minArgs: 1, maxArgs: 1},
	Exp:     {name: "exp", fn: "exp", class: ClassArithmetic, minArgs: 1, maxArgs: 1},
	Ln:      {name: "ln", fn: "ln", class: ClassArithmetic, minArgs: 1, maxArgs: 1},
	Log:     {name: "log", fn: "log", class: ClassArithmetic, minArgs: 1, maxArgs: 2},
	Ceiling: {name: "ceiling", fn: "ceil", class: ClassArithmetic, minArgs: 1, maxArgs: 1},
	Floor:   {name: "floor", fn: "floor", class: ClassArithmetic, minArgs: 1, maxArgs: 1},
	Min:     {name: "min", fn: "min", class: ClassArithmetic, minArgs: 1, maxArgs: -1},
	Max:     {name: "max", fn: "max", class: ClassArithmetic, minArgs: 1, maxArgs: -1},
	Rem:     {name: "rem", fn: "rem", class: ClassArithmetic, minArgs: 2, maxArgs: 2},

	Diff: {name: "diff", fn: "ode", class: ClassOther, minArgs: 2, maxArgs: 2},

	Sin:   {name: "sin", fn: "sin", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Cos:   {name: "cos", fn: "cos", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Tan:   {name: "tan", fn: "tan", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Sec:   {name: "sec", fn: "sec", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Csc:   {name: "csc", fn: "csc", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Cot:   {name: "cot", fn: "cot", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Sinh:  {name: "sinh", fn: "sinh", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Cosh:  {name: "cosh", fn: "cosh", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Tanh:  {name: "tanh", fn: "tanh", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Sech:  {name: "sech", fn: "sech", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Csch:  {name: "csch", fn: "csch", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Coth:  {name: "coth", fn: "coth", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Asin:  {name: "asin", fn: "asin", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Acos:  {name: "acos", fn: "acos", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Atan:  {name: "atan", fn: "atan", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Asec:  {name: "asec", fn: "asec", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Acsc:  {name: "acsc", fn: "acsc", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Acot:  {name: "acot", fn: "acot", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Asinh: {name: "asinh", fn: "asinh", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Acosh: {name: "acosh", fn: "acosh", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Atanh: {name: "atanh", fn: "atanh", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Asech: {name: "asech", fn: "asech", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Acsch: {name: "acsch", fn: "acsch", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},
	Acoth: {name: "acoth", fn: "acoth", class: ClassTrigonometric, minArgs: 1, maxArgs: 1},

	Piecewise: {name: "piecewise", fn: "piecewise", class: ClassOther, minArgs: 1, maxArgs: -1},
	Piece:     {name: "piece", fn: "piece", class: ClassOther, minArgs: 2, maxArgs: 2},
	Otherwise: {name: "otherwise", fn: "otherwise", class: ClassOther, minArgs: 1, maxArgs: 1},

	Ci:           {name: "ci", class: ClassLeaf},
	Cn:           {name: "cn", fn: "cn", class: ClassLeaf},
	True:         {name: "true", class: ClassConstant},
	False:        {name: "false", class: ClassConstant},
	Pi:           {name: "pi", class: ClassConstant},
	ExponentialE: {name: "exponentiale", class: ClassConstant},
	Infinity:     {name: "infinity", class: ClassConstant},
	NotANumber:   {name: "notanumber", class: ClassConstant},

	Bvar:    {name: "bvar", class: ClassQualifier, minArgs: 1, maxArgs: 1},
	Degree:  {name: "degree", class: ClassQualifier, minArgs: 1, maxArgs: 1},
	LogBase: {name: "logbase", class: ClassQualifier, minArgs: 1, maxArgs: 1},
}

// String returns the MathML-style name of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kinds[k].name
}

// Class reports the group the kind belongs to.
func (k Kind) Class() Class {
	if k >= kindCount {
		return ClassOther
	}
	return kinds[k].class
}

// FunctionName returns the name used when the kind is written as a function
// call, or "" when the kind has an operator or leaf notation instead.
func (k Kind) FunctionName() string {
	if k >= kindCount {
		return ""
	}
	return kinds[k].fn
}

// IsFunction reports whether the kind is written as a function call.
func (k Kind) IsFunction() bool { return k.FunctionName() != "" }

// Arity returns the minimum and maximum number of operands. A maximum of -1
// means the kind is variadic.
func (k Kind) Arity() (int, int) {
	if k >= kindCount {
		return 0, 0
	}
	return kinds[k].minArgs, kinds[k].maxArgs
}

// IsLeaf reports whether nodes of this kind never have children.
func (k Kind) IsLeaf() bool {
	c := k.Class()
	return c == ClassLeaf || c == ClassConstant
}

// KindForFunction maps a function name of the textual notation back to its kind.
func KindForFunction(name string) (Kind, bool) {
	k, ok := functionKinds[name]
	return k, ok
}

var functionKinds = func() map[string]Kind {
	m := make(map[string]Kind)
	for k := Kind(0); k < kindCount; k++ {
		if fn := kinds[k].fn; fn != "" {
			m[fn] = k
		}
	}
	m["sqrt"] = Root
	m["ceiling"] = Ceiling
	m["diff"] = Diff
	return m
}()

// Kinds returns every valid kind, in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Equality; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
