// This file turns HCL expressions into equation trees. Expressions are never
// evaluated: every identifier is a variable of the enclosing component or one
// of the named constants, and every function call maps onto a node kind.

package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/cellan/internal/ast"
	"github.com/vk/cellan/internal/model"
)

var binaryKinds = map[*hclsyntax.Operation]ast.Kind{
	hclsyntax.OpAdd:                ast.Plus,
	hclsyntax.OpSubtract:           ast.Minus,
	hclsyntax.OpMultiply:           ast.Times,
	hclsyntax.OpDivide:             ast.Divide,
	hclsyntax.OpModulo:             ast.Rem,
	hclsyntax.OpLogicalAnd:         ast.And,
	hclsyntax.OpLogicalOr:          ast.Or,
	hclsyntax.OpEqual:              ast.Eq,
	hclsyntax.OpNotEqual:           ast.Neq,
	hclsyntax.OpLessThan:           ast.Lt,
	hclsyntax.OpLessThanOrEqual:    ast.Leq,
	hclsyntax.OpGreaterThan:        ast.Gt,
	hclsyntax.OpGreaterThanOrEqual: ast.Geq,
}

var namedConstants = map[string]ast.Kind{
	"pi":  ast.Pi,
	"e":   ast.ExponentialE,
	"inf": ast.Infinity,
	"nan": ast.NotANumber,
}

// exprTranslator translates the expressions of one component.
type exprTranslator struct {
	comp *model.Component
}

// translateEquation builds the `lhs = rhs` tree of an equation block.
func (t *exprTranslator) translateEquation(eq *equationBlock) (*ast.Node, hcl.Diagnostics) {
	lhs, diags := t.expr(eq.LHS)
	rhs, rhsDiags := t.expr(eq.RHS)
	diags = diags.Extend(rhsDiags)
	if diags.HasErrors() {
		return nil, diags
	}
	return at(ast.Equation(lhs, rhs), eq.DeclRange), diags
}

func (t *exprTranslator) expr(expr hcl.Expression) (*ast.Node, hcl.Diagnostics) {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return t.literal(e)

	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			return nil, hcl.Diagnostics{diagError(e.Range(), "Invalid reference",
				"Only plain variable names can be used in equations.")}
		}
		return at(t.name(e.Traversal.RootName()), e.Range()), nil

	case *hclsyntax.ParenthesesExpr:
		return t.expr(e.Expression)

	case *hclsyntax.UnaryOpExpr:
		operand, diags := t.expr(e.Val)
		if diags.HasErrors() {
			return nil, diags
		}
		switch e.Op {
		case hclsyntax.OpNegate:
			if operand.Kind == ast.Cn && operand.Units == "" {
				operand.Value = -operand.Value
				return at(operand, e.Range()), diags
			}
			return at(ast.Neg(operand), e.Range()), diags
		case hclsyntax.OpLogicalNot:
			return at(ast.Op(ast.Not, operand), e.Range()), diags
		}
		return nil, diags.Append(diagError(e.SymbolRange, "Unsupported operator", "This unary operator has no equation form."))

	case *hclsyntax.BinaryOpExpr:
		kind, ok := binaryKinds[e.Op]
		if !ok {
			return nil, hcl.Diagnostics{diagError(e.Range(), "Unsupported operator", "This binary operator has no equation form.")}
		}
		lhs, diags := t.expr(e.LHS)
		rhs, rhsDiags := t.expr(e.RHS)
		diags = diags.Extend(rhsDiags)
		if diags.HasErrors() {
			return nil, diags
		}
		return at(ast.Op(kind, lhs, rhs), e.Range()), diags

	case *hclsyntax.ConditionalExpr:
		cond, diags := t.expr(e.Condition)
		whenTrue, d := t.expr(e.TrueResult)
		diags = diags.Extend(d)
		whenFalse, d := t.expr(e.FalseResult)
		diags = diags.Extend(d)
		if diags.HasErrors() {
			return nil, diags
		}
		return at(ast.Select(cond, whenTrue, whenFalse), e.Range()), diags

	case *hclsyntax.FunctionCallExpr:
		return t.call(e)

	case *hclsyntax.TemplateExpr, *hclsyntax.TemplateWrapExpr:
		return nil, hcl.Diagnostics{diagError(expr.Range(), "Unexpected string",
			"Strings are only allowed as the units argument of cn().")}
	}
	return nil, hcl.Diagnostics{diagError(expr.Range(), "Unsupported expression",
		"Expressions of type %T cannot be used in an equation.", expr)}
}

func (t *exprTranslator) literal(e *hclsyntax.LiteralValueExpr) (*ast.Node, hcl.Diagnostics) {
	if e.Val.IsNull() {
		return nil, hcl.Diagnostics{diagError(e.Range(), "Unexpected null", "null has no equation form.")}
	}
	if e.Val.Type() == cty.Bool {
		if e.Val.True() {
			return at(ast.Const(ast.True), e.Range()), nil
		}
		return at(ast.Const(ast.False), e.Range()), nil
	}
	v, err := toNumber(e.Val)
	if err != nil {
		return nil, hcl.Diagnostics{diagError(e.Range(), "Invalid literal", "%s.", err)}
	}
	return at(ast.Num(v), e.Range()), nil
}

// name resolves an identifier. Component variables shadow the constants.
func (t *exprTranslator) name(name string) *ast.Node {
	if t.comp.Variable(name) == nil {
		if kind, ok := namedConstants[name]; ok {
			return ast.Const(kind)
		}
	}
	return ast.Var(name)
}

func (t *exprTranslator) args(e *hclsyntax.FunctionCallExpr) ([]*ast.Node, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	out := make([]*ast.Node, len(e.Args))
	for i, arg := range e.Args {
		n, d := t.expr(arg)
		diags = diags.Extend(d)
		out[i] = n
	}
	return out, diags
}

func (t *exprTranslator) call(e *hclsyntax.FunctionCallExpr) (*ast.Node, hcl.Diagnostics) {
	if e.ExpandFinal {
		return nil, hcl.Diagnostics{diagError(e.Range(), "Unsupported expansion",
			"Argument expansion with ... cannot be used in an equation.")}
	}

	switch e.Name {
	case "cn":
		return t.units(e)
	case "ode", "diff":
		if d := checkArity(e, 2, 2); d != nil {
			return nil, hcl.Diagnostics{d}
		}
		args, diags := t.args(e)
		if diags.HasErrors() {
			return nil, diags
		}
		if !args[1].IsVariable() {
			return nil, diags.Append(diagError(e.Args[1].Range(), "Invalid variable of integration",
				"The second argument of %s() must be a variable name.", e.Name))
		}
		return at(ast.Op(ast.Diff, at(ast.Op(ast.Bvar, args[1]), args[1].Range), args[0]), e.Range()), diags
	case "sqrt":
		if d := checkArity(e, 1, 1); d != nil {
			return nil, hcl.Diagnostics{d}
		}
		args, diags := t.args(e)
		if diags.HasErrors() {
			return nil, diags
		}
		return at(ast.Sqrt(args[0]), e.Range()), diags
	case "piecewise":
		return t.piecewise(e)
	}

	kind, ok := ast.KindForFunction(e.Name)
	if !ok || kind == ast.Piece || kind == ast.Otherwise {
		detail := "There is no equation function named %q."
		if ok {
			detail = "%s() is only valid as an argument of piecewise()."
		}
		return nil, hcl.Diagnostics{diagError(e.NameRange, "Call to unknown function", detail, e.Name)}
	}
	minArgs, maxArgs := kind.Arity()
	if d := checkArity(e, minArgs, maxArgs); d != nil {
		return nil, hcl.Diagnostics{d}
	}
	args, diags := t.args(e)
	if diags.HasErrors() {
		return nil, diags
	}

	switch {
	case kind == ast.Root && len(args) == 2:
		return at(ast.RootOf(args[0], args[1]), e.Range()), diags
	case kind == ast.Log && len(args) == 2:
		return at(ast.LogOf(args[0], args[1]), e.Range()), diags
	}
	return at(ast.Op(kind, args...), e.Range()), diags
}

// units translates cn(value, "units"), a literal carrying its units.
func (t *exprTranslator) units(e *hclsyntax.FunctionCallExpr) (*ast.Node, hcl.Diagnostics) {
	if d := checkArity(e, 2, 2); d != nil {
		return nil, hcl.Diagnostics{d}
	}
	value, diags := t.expr(e.Args[0])
	if diags.HasErrors() {
		return nil, diags
	}
	if value.Kind != ast.Cn || value.Units != "" {
		return nil, diags.Append(diagError(e.Args[0].Range(), "Invalid literal",
			"The first argument of cn() must be a number."))
	}
	unitsVal, valDiags := e.Args[1].Value(nil)
	diags = diags.Extend(valDiags)
	if valDiags.HasErrors() {
		return nil, diags
	}
	name, err := toString(unitsVal)
	if err != nil || name == "" {
		return nil, diags.Append(diagError(e.Args[1].Range(), "Invalid units",
			"The second argument of cn() must name a units definition."))
	}
	return at(ast.NumUnits(value.Value, name), e.Range()), diags
}

// piecewise translates piecewise(piece(v, c)..., otherwise(v)). The
// otherwise branch is optional and must come last.
func (t *exprTranslator) piecewise(e *hclsyntax.FunctionCallExpr) (*ast.Node, hcl.Diagnostics) {
	if d := checkArity(e, 1, -1); d != nil {
		return nil, hcl.Diagnostics{d}
	}
	var diags hcl.Diagnostics
	branches := make([]*ast.Node, 0, len(e.Args))
	for i, arg := range e.Args {
		call, ok := arg.(*hclsyntax.FunctionCallExpr)
		if !ok || (call.Name != "piece" && call.Name != "otherwise") {
			diags = diags.Append(diagError(arg.Range(), "Invalid piecewise branch",
				"Each argument of piecewise() must be a piece() or otherwise() call."))
			continue
		}
		if call.Name == "otherwise" && i != len(e.Args)-1 {
			diags = diags.Append(diagError(arg.Range(), "Invalid piecewise branch",
				"otherwise() must be the last argument of piecewise()."))
			continue
		}
		kind, _ := ast.KindForFunction(call.Name)
		minArgs, maxArgs := kind.Arity()
		if d := checkArity(call, minArgs, maxArgs); d != nil {
			diags = diags.Append(d)
			continue
		}
		args, d := t.args(call)
		diags = diags.Extend(d)
		if d.HasErrors() {
			continue
		}
		branches = append(branches, at(ast.Op(kind, args...), call.Range()))
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return at(ast.Op(ast.Piecewise, branches...), e.Range()), diags
}

func checkArity(e *hclsyntax.FunctionCallExpr, minArgs, maxArgs int) *hcl.Diagnostic {
	n := len(e.Args)
	if n >= minArgs && (maxArgs < 0 || n <= maxArgs) {
		return nil
	}
	switch {
	case maxArgs < 0:
		return diagError(e.Range(), "Wrong number of arguments", "%s() needs at least %d arguments, got %d.", e.Name, minArgs, n)
	case minArgs == maxArgs:
		return diagError(e.Range(), "Wrong number of arguments", "%s() needs exactly %d arguments, got %d.", e.Name, minArgs, n)
	}
	return diagError(e.Range(), "Wrong number of arguments", "%s() needs %d to %d arguments, got %d.", e.Name, minArgs, maxArgs, n)
}

func at(n *ast.Node, rng hcl.Range) *ast.Node {
	n.Range = rng
	return n
}
