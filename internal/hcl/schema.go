package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes every top-level block a model file may contain.
type fileRoot struct {
	Models []*modelBlock `hcl:"model,block"`
	Remain hcl.Body      `hcl:",remain"`
}

// modelBlock is a `model "name" { ... }` block. Several files may contribute
// blocks with the same name; they are merged into one model.
type modelBlock struct {
	Name        string             `hcl:"name,label"`
	Units       []*unitsBlock      `hcl:"units,block"`
	Components  []*componentBlock  `hcl:"component,block"`
	Connections []*connectionBlock `hcl:"connection,block"`
}

// unitsBlock declares a named units definition. A block without any `unit`
// term introduces a new base unit.
type unitsBlock struct {
	Name  string           `hcl:"name,label"`
	Terms []*unitTermBlock `hcl:"unit,block"`
}

// unitTermBlock is one `unit "reference" { ... }` factor of a definition.
type unitTermBlock struct {
	Reference string `hcl:"reference,label"`
	// Prefix is either an SI prefix name or a power of ten.
	Prefix     hcl.Expression `hcl:"prefix,optional"`
	Exponent   *float64       `hcl:"exponent,optional"`
	Multiplier *float64       `hcl:"multiplier,optional"`
}

// componentBlock is a `component "name" { ... }` block. Nested component
// blocks are encapsulated children.
type componentBlock struct {
	Name       string            `hcl:"name,label"`
	Variables  []*variableBlock  `hcl:"variable,block"`
	Equations  []*equationBlock  `hcl:"equation,block"`
	Components []*componentBlock `hcl:"component,block"`
	DeclRange  hcl.Range         `hcl:",def_range"`
}

type variableBlock struct {
	Name      string         `hcl:"name,label"`
	Units     string         `hcl:"units,optional"`
	Initial   hcl.Expression `hcl:"initial,optional"`
	Interface string         `hcl:"interface,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}

// equationBlock holds the two sides of `lhs = rhs` as raw expressions. They
// are never evaluated; the translator turns them into equation trees.
type equationBlock struct {
	LHS       hcl.Expression `hcl:"lhs"`
	RHS       hcl.Expression `hcl:"rhs"`
	DeclRange hcl.Range      `hcl:",def_range"`
}

// connectionBlock maps variables of one component onto variables of another.
// Variables is an object whose keys name variables of Component1 and whose
// values name variables of Component2.
type connectionBlock struct {
	Component1 string         `hcl:"component_1"`
	Component2 string         `hcl:"component_2"`
	Variables  hcl.Expression `hcl:"variables"`
	DeclRange  hcl.Range      `hcl:",def_range"`
}
