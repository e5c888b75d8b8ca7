// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Component structure, the unit of encapsulation of a
// model.
//
// Why do equations live on components?
//
// Variable names inside an equation are resolved against the component that
// owns the equation. Keeping the equation list on the component makes that
// scope explicit, and lets diagnostics name the component an equation came
// from.
package model

import (
	"fmt"

	"github.com/vk/cellan/internal/ast"
)

// Component is a named group of variables and equations that may
// encapsulate child components.
type Component struct {
	Name       string
	Variables  []*Variable
	Equations  []*ast.Node
	Components []*Component

	// FSInformation is set when the component was read from a file.
	FSInformation *FSInfo

	parent *Component
}

// NewComponent creates an empty component.
func NewComponent(name string) *Component {
	return &Component{Name: name}
}

// AddVariable attaches v to the component. Variable names are unique within
// a component.
func (c *Component) AddVariable(v *Variable) error {
	if v == nil {
		return fmt.Errorf("component %q: nil variable", c.Name)
	}
	if c.Variable(v.Name) != nil {
		return fmt.Errorf("variable %q in component %q: %w", v.Name, c.Name, ErrDuplicateName)
	}
	v.component = c
	c.Variables = append(c.Variables, v)
	return nil
}

// AddEquation appends an equation. The root of eq is expected to be an
// Equality node; the analyser reports anything else.
func (c *Component) AddEquation(eq *ast.Node) {
	c.Equations = append(c.Equations, eq)
}

// AddComponent encapsulates child inside c.
func (c *Component) AddComponent(child *Component) {
	child.parent = c
	c.Components = append(c.Components, child)
}

// Variable returns the variable with the given name, or nil.
func (c *Component) Variable(name string) *Variable {
	for _, v := range c.Variables {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Parent returns the encapsulating component, or nil for a top-level one.
func (c *Component) Parent() *Component {
	return c.parent
}

// Source returns the file the component was declared in, or "".
func (c *Component) Source() string {
	if c.FSInformation == nil {
		return ""
	}
	return c.FSInformation.FilePath
}
