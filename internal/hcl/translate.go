package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/cellan/internal/ctxlog"
	"github.com/vk/cellan/internal/model"
)

// translateComponent converts a component block and its encapsulated
// children into the agnostic model. Variables are attached before any
// equation is translated, so that equations see every name of the component.
func translateComponent(ctx context.Context, file string, cb *componentBlock) (*model.Component, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	var diags hcl.Diagnostics

	c := model.NewComponent(cb.Name)
	c.FSInformation = model.NewFSInfo(file)

	for _, vb := range cb.Variables {
		v, d := translateVariable(ctx, vb)
		diags = diags.Extend(d)
		if d.HasErrors() {
			continue
		}
		if err := c.AddVariable(v); err != nil {
			diags = diags.Append(diagError(vb.DeclRange, "Duplicate variable", "%s.", err))
		}
	}

	t := &exprTranslator{comp: c}
	for _, eb := range cb.Equations {
		eq, d := t.translateEquation(eb)
		diags = diags.Extend(d)
		if d.HasErrors() {
			continue
		}
		c.AddEquation(eq)
	}

	for _, child := range cb.Components {
		cc, d := translateComponent(ctx, file, child)
		diags = diags.Extend(d)
		if cc != nil {
			c.AddComponent(cc)
		}
	}

	logger.Debug("Translated component.",
		"component", c.Name,
		"variables", len(c.Variables),
		"equations", len(c.Equations),
		"children", len(c.Components),
	)
	return c, diags
}

func translateVariable(ctx context.Context, vb *variableBlock) (*model.Variable, hcl.Diagnostics) {
	v := model.NewVariable(vb.Name, vb.Units)

	iface, err := model.ParseInterfaceType(vb.Interface)
	if err != nil {
		return nil, hcl.Diagnostics{diagError(vb.DeclRange, "Invalid interface",
			"Variable %q: %s; expected none, public, private or public_and_private.", vb.Name, err)}
	}
	v.Interface = iface

	if isExprDefined(ctx, vb.Initial, "initial") {
		iv, diags := translateInitial(vb.Initial)
		if diags.HasErrors() {
			return nil, diags
		}
		v.Initial = iv
	}
	return v, nil
}

// translateInitial reads an initial value: a number, or the name of another
// variable of the same component written bare or quoted. A quoted number is
// a literal.
func translateInitial(expr hcl.Expression) (model.InitialValue, hcl.Diagnostics) {
	switch kw := hcl.ExprAsKeyword(expr); kw {
	case "", "true", "false", "null":
	default:
		return model.Reference(kw), nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return model.InitialValue{}, diags
	}
	if val.IsNull() {
		return model.InitialValue{}, nil
	}
	if val.Type() == cty.String {
		if n, err := toNumber(val); err == nil {
			return model.Literal(n), nil
		}
		name, _ := toString(val)
		if name == "" {
			return model.InitialValue{}, hcl.Diagnostics{diagError(expr.Range(), "Invalid initial value",
				"An initial value must be a number or a variable name.")}
		}
		return model.Reference(name), nil
	}
	n, err := toNumber(val)
	if err != nil {
		return model.InitialValue{}, hcl.Diagnostics{diagError(expr.Range(), "Invalid initial value",
			"An initial value must be a number or a variable name: %s.", err)}
	}
	return model.Literal(n), nil
}

func translateUnits(ctx context.Context, ub *unitsBlock) (*model.Units, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	u := model.NewUnits(ub.Name)
	for _, tb := range ub.Terms {
		term := model.NewUnitTerm(tb.Reference)
		if isExprDefined(ctx, tb.Prefix, "prefix") {
			val, d := tb.Prefix.Value(nil)
			diags = diags.Extend(d)
			if d.HasErrors() {
				continue
			}
			prefix, err := toString(val)
			if err != nil {
				diags = diags.Append(diagError(tb.Prefix.Range(), "Invalid prefix",
					"A prefix must be an SI prefix name or a power of ten: %s.", err))
				continue
			}
			term.Prefix = prefix
		}
		if tb.Exponent != nil {
			term.Exponent = *tb.Exponent
		}
		if tb.Multiplier != nil {
			term.Multiplier = *tb.Multiplier
		}
		u.Terms = append(u.Terms, term)
	}
	return u, diags
}

// connectionPairs reads the variables map of a connection block in source
// order.
func connectionPairs(cb *connectionBlock) ([][2]string, hcl.Diagnostics) {
	items, diags := hcl.ExprMap(cb.Variables)
	if diags.HasErrors() {
		return nil, diags
	}
	pairs := make([][2]string, 0, len(items))
	for _, item := range items {
		first, d := staticName(item.Key)
		diags = diags.Extend(d)
		second, d2 := staticName(item.Value)
		diags = diags.Extend(d2)
		if d.HasErrors() || d2.HasErrors() {
			continue
		}
		pairs = append(pairs, [2]string{first, second})
	}
	return pairs, diags
}

// checkComponentNames reports components of the subtree rooted at c whose
// name is already taken in m or elsewhere in the subtree.
func checkComponentNames(m *model.Model, c *model.Component) error {
	seen := make(map[string]bool)
	var walk func(*model.Component) error
	walk = func(c *model.Component) error {
		if seen[c.Name] || m.Component(c.Name) != nil {
			return fmt.Errorf("component %q: %w", c.Name, model.ErrDuplicateName)
		}
		seen[c.Name] = true
		for _, child := range c.Components {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(c)
}
