package hcl

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/cellan/internal/ast"
	"github.com/vk/cellan/internal/model"
)

// Format renders m as a single HCL model file that Loader reads back into an
// equivalent model.
func Format(m *model.Model) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body().AppendNewBlock("model", []string{m.Name}).Body()

	for _, u := range m.Units {
		if err := writeUnits(body, u); err != nil {
			return nil, err
		}
	}
	for _, c := range m.Components {
		if err := writeComponent(body, c); err != nil {
			return nil, err
		}
	}
	for _, g := range groupConnections(m.Equivalences) {
		writeConnection(body, g)
	}
	return hclwrite.Format(f.Bytes()), nil
}

// Write renders m to w; see Format.
func Write(w io.Writer, m *model.Model) error {
	src, err := Format(m)
	if err != nil {
		return err
	}
	_, err = w.Write(src)
	return err
}

func writeUnits(parent *hclwrite.Body, u *model.Units) error {
	body := parent.AppendNewBlock("units", []string{u.Name}).Body()
	for _, term := range u.Terms {
		tb := body.AppendNewBlock("unit", []string{term.Reference}).Body()
		if term.Prefix != "" {
			tb.SetAttributeValue("prefix", cty.StringVal(term.Prefix))
		}
		if err := setNumber(tb, "exponent", term.Exponent, 1); err != nil {
			return fmt.Errorf("units %q: %w", u.Name, err)
		}
		if err := setNumber(tb, "multiplier", term.Multiplier, 1); err != nil {
			return fmt.Errorf("units %q: %w", u.Name, err)
		}
	}
	parent.AppendNewline()
	return nil
}

// setNumber writes a numeric attribute unless it holds the default value.
func setNumber(body *hclwrite.Body, name string, v, def float64) error {
	if v == def {
		return nil
	}
	val, err := toCtyValue(v)
	if err != nil {
		return fmt.Errorf("attribute %s: %w", name, err)
	}
	body.SetAttributeValue(name, val)
	return nil
}

func writeComponent(parent *hclwrite.Body, c *model.Component) error {
	body := parent.AppendNewBlock("component", []string{c.Name}).Body()

	for _, v := range c.Variables {
		vb := body.AppendNewBlock("variable", []string{v.Name}).Body()
		if v.Units != "" {
			vb.SetAttributeValue("units", cty.StringVal(v.Units))
		}
		switch v.Initial.Kind {
		case model.InitialLiteral:
			val, err := toCtyValue(v.Initial.Value)
			if err != nil {
				return fmt.Errorf("variable %s: %w", v, err)
			}
			vb.SetAttributeValue("initial", val)
		case model.InitialReference:
			vb.SetAttributeTraversal("initial", hcl.Traversal{hcl.TraverseRoot{Name: v.Initial.Variable}})
		}
		if v.Interface != model.InterfaceNone {
			vb.SetAttributeValue("interface", cty.StringVal(v.Interface.String()))
		}
	}

	for i, eq := range c.Equations {
		if eq.Kind != ast.Equality {
			return fmt.Errorf("equation %d of component %s is not an equality", i, c.Name)
		}
		eb := body.AppendNewBlock("equation", nil).Body()
		for _, side := range []struct {
			name string
			node *ast.Node
		}{{"lhs", eq.LHS()}, {"rhs", eq.RHS()}} {
			tokens, err := expressionTokens(side.node)
			if err != nil {
				return fmt.Errorf("equation %d of component %s: %w", i, c.Name, err)
			}
			eb.SetAttributeRaw(side.name, tokens)
		}
	}

	for _, child := range c.Components {
		if err := writeComponent(body, child); err != nil {
			return err
		}
	}
	parent.AppendNewline()
	return nil
}

// expressionTokens turns an equation side into HCL tokens. The tree printer
// already speaks the expression syntax, so its output is parsed as a
// throwaway attribute and the tokens are taken from there.
func expressionTokens(n *ast.Node) (hclwrite.Tokens, error) {
	if n == nil {
		return nil, fmt.Errorf("missing expression")
	}
	src := []byte("expr = " + n.String() + "\n")
	f, diags := hclwrite.ParseConfig(src, "", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("cannot render %q: %w", n.String(), diags)
	}
	attr := f.Body().GetAttribute("expr")
	if attr == nil {
		return nil, fmt.Errorf("cannot render %q", n.String())
	}
	return attr.Expr().BuildTokens(nil), nil
}

type connectionGroup struct {
	first, second string
	pairs         [][2]string
	keys          map[string]bool
}

// groupConnections folds equivalences into one block per component pair, in
// order of first appearance. A variable connected twice to the same component
// opens a second block, since object keys must be unique.
func groupConnections(eqs []model.Equivalence) []*connectionGroup {
	var groups []*connectionGroup
	for _, eq := range eqs {
		c1, c2 := eq.First.Component(), eq.Second.Component()
		if c1 == nil || c2 == nil {
			continue
		}
		var target *connectionGroup
		for _, g := range groups {
			if g.first == c1.Name && g.second == c2.Name && !g.keys[eq.First.Name] {
				target = g
				break
			}
		}
		if target == nil {
			target = &connectionGroup{first: c1.Name, second: c2.Name, keys: make(map[string]bool)}
			groups = append(groups, target)
		}
		target.keys[eq.First.Name] = true
		target.pairs = append(target.pairs, [2]string{eq.First.Name, eq.Second.Name})
	}
	return groups
}

func writeConnection(parent *hclwrite.Body, g *connectionGroup) {
	body := parent.AppendNewBlock("connection", nil).Body()
	body.SetAttributeValue("component_1", cty.StringVal(g.first))
	body.SetAttributeValue("component_2", cty.StringVal(g.second))

	attrs := make([]hclwrite.ObjectAttrTokens, 0, len(g.pairs))
	for _, p := range g.pairs {
		attrs = append(attrs, hclwrite.ObjectAttrTokens{
			Name:  hclwrite.TokensForIdentifier(p[0]),
			Value: hclwrite.TokensForValue(cty.StringVal(p[1])),
		})
	}
	body.SetAttributeRaw("variables", hclwrite.TokensForObject(attrs))
	parent.AppendNewline()
}
