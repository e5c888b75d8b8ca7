package ast

import (
	"strconv"
	"strings"
)

const (
	precLowest = iota
	precCond
	precOr
	precAnd
	precEquality
	precCompare
	precAdd
	precMul
	precUnary
	precAtom
)

var binarySymbols = map[Kind]struct {
	symbol string
	prec   int
}{
	Eq:     {"==", precEquality},
	Neq:    {"!=", precEquality},
	Lt:     {"<", precCompare},
	Leq:    {"<=", precCompare},
	Gt:     {">", precCompare},
	Geq:    {">=", precCompare},
	And:    {"&&", precAnd},
	Or:     {"||", precOr},
	Plus:   {"+", precAdd},
	Minus:  {"-", precAdd},
	Times:  {"*", precMul},
	Divide: {"/", precMul},
	Rem:    {"%", precMul},
}

// String renders the tree in the infix notation the HCL front end reads, so
// a printed right-hand side can be parsed back into an equal tree.
func (n *Node) String() string {
	var sb strings.Builder
	write(&sb, n, precLowest)
	return sb.String()
}

// FormatNumber renders a literal the way the printer does.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func write(sb *strings.Builder, n *Node, parent int) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	switch n.Kind {
	case Equality:
		write(sb, n.Child(0), precLowest)
		sb.WriteString(" = ")
		write(sb, n.Child(1), precLowest)
	case Ci:
		sb.WriteString(n.Name)
	case Cn:
		if n.Units != "" {
			sb.WriteString("cn(")
			sb.WriteString(FormatNumber(n.Value))
			sb.WriteString(", ")
			sb.WriteString(strconv.Quote(n.Units))
			sb.WriteString(")")
			return
		}
		s := FormatNumber(n.Value)
		if n.Value < 0 && parent >= precUnary {
			s = "(" + s + ")"
		}
		sb.WriteString(s)
	case True:
		sb.WriteString("true")
	case False:
		sb.WriteString("false")
	case Pi:
		sb.WriteString("pi")
	case ExponentialE:
		sb.WriteString("e")
	case Infinity:
		sb.WriteString("inf")
	case NotANumber:
		sb.WriteString("nan")
	case Bvar, Degree, LogBase:
		write(sb, n.Child(0), parent)
	case Not:
		wrap(sb, precUnary, parent, func() {
			sb.WriteString("!")
			write(sb, n.Child(0), precUnary)
		})
	case Minus:
		if len(n.Children) == 1 {
			wrap(sb, precUnary, parent, func() {
				sb.WriteString("-")
				write(sb, n.Child(0), precUnary)
			})
			return
		}
		writeInfix(sb, n, parent)
	case Plus:
		if len(n.Children) == 1 {
			write(sb, n.Child(0), parent)
			return
		}
		writeInfix(sb, n, parent)
	case Eq, Neq, Lt, Leq, Gt, Geq, And, Or, Times, Divide, Rem:
		writeInfix(sb, n, parent)
	case Diff:
		sb.WriteString("ode(")
		write(sb, n.Child(1), precLowest)
		sb.WriteString(", ")
		write(sb, n.Child(0), precLowest)
		sb.WriteString(")")
	case Root:
		if len(n.Children) == 1 {
			writeCall(sb, "sqrt", n.Children)
			return
		}
		writeCall(sb, "root", n.Children)
	case Piecewise:
		if len(n.Children) == 2 && n.Children[0].Kind == Piece && n.Children[1].Kind == Otherwise {
			piece, otherwise := n.Children[0], n.Children[1]
			wrap(sb, precCond, parent+1, func() {
				write(sb, piece.Child(1), precCond+1)
				sb.WriteString(" ? ")
				write(sb, piece.Child(0), precCond+1)
				sb.WriteString(" : ")
				write(sb, otherwise.Child(0), precCond)
			})
			return
		}
		writeCall(sb, "piecewise", n.Children)
	default:
		name := n.Kind.FunctionName()
		if name == "" {
			name = n.Kind.String()
		}
		writeCall(sb, name, n.Children)
	}
}

func writeInfix(sb *strings.Builder, n *Node, parent int) {
	op := binarySymbols[n.Kind]
	wrap(sb, op.prec, parent, func() {
		for i, child := range n.Children {
			if i > 0 {
				sb.WriteString(" ")
				sb.WriteString(op.symbol)
				sb.WriteString(" ")
			}
			// Operands after the first bind tighter, which keeps `a - (b - c)`
			// and `a / (b * c)` intact.
			childPrec := op.prec
			if i > 0 {
				childPrec++
			}
			write(sb, child, childPrec)
		}
	})
}

func writeCall(sb *strings.Builder, name string, args []*Node) {
	sb.WriteString(name)
	sb.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		write(sb, arg, precLowest)
	}
	sb.WriteString(")")
}

func wrap(sb *strings.Builder, prec, parent int, body func()) {
	if prec < parent {
		sb.WriteString("(")
		body()
		sb.WriteString(")")
		return
	}
	body()
}
