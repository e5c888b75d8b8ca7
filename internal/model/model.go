// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Model structure, the root of the model graph.
//
// Why is traversal order part of the contract?
//
// The analyser numbers variables and equations in the order AllComponents
// returns them, and every index it hands out to a generator derives from that
// numbering. Depth-first, declaration-order traversal is therefore not an
// implementation detail: it is what makes analysis output reproducible.
package model

import (
	"fmt"
)

// Equivalence states that two variables are the same quantity.
type Equivalence struct {
	First  *Variable
	Second *Variable
}

// Model is the root of the model graph.
type Model struct {
	Name         string
	Components   []*Component
	Units        []*Units
	Equivalences []Equivalence
}

// New creates an empty model.
func New(name string) *Model {
	return &Model{Name: name}
}

// AddComponent adds a top-level component. Component names are unique across
// the whole model, encapsulated components included.
func (m *Model) AddComponent(c *Component) error {
	if c == nil {
		return fmt.Errorf("model %q: nil component", m.Name)
	}
	if m.Component(c.Name) != nil {
		return fmt.Errorf("component %q: %w", c.Name, ErrDuplicateName)
	}
	m.Components = append(m.Components, c)
	return nil
}

// AllComponents returns every component, depth-first in declaration order.
func (m *Model) AllComponents() []*Component {
	var out []*Component
	stack := make([]*Component, 0, len(m.Components))
	for i := len(m.Components) - 1; i >= 0; i-- {
		stack = append(stack, m.Components[i])
	}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, c)
		for i := len(c.Components) - 1; i >= 0; i-- {
			stack = append(stack, c.Components[i])
		}
	}
	return out
}

// Component finds a component by name anywhere in the tree.
func (m *Model) Component(name string) *Component {
	for _, c := range m.AllComponents() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AddUnits registers a units definition.
func (m *Model) AddUnits(u *Units) error {
	if u == nil {
		return fmt.Errorf("model %q: nil units", m.Name)
	}
	if m.UnitsByName(u.Name) != nil {
		return fmt.Errorf("units %q: %w", u.Name, ErrDuplicateName)
	}
	m.Units = append(m.Units, u)
	return nil
}

// UnitsByName returns the user definition with the given name, or nil.
func (m *Model) UnitsByName(name string) *Units {
	for _, u := range m.Units {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// AddEquivalence declares a and b equivalent.
func (m *Model) AddEquivalence(a, b *Variable) error {
	if a == nil || b == nil || a == b {
		return ErrInvalidEquivalence
	}
	if a.component == nil || b.component == nil {
		return fmt.Errorf("%s and %s: %w", a, b, ErrInvalidEquivalence)
	}
	for _, eq := range m.Equivalences {
		if (eq.First == a && eq.Second == b) || (eq.First == b && eq.Second == a) {
			return fmt.Errorf("%s and %s: %w", a, b, ErrDuplicateEquivalence)
		}
	}
	m.Equivalences = append(m.Equivalences, Equivalence{First: a, Second: b})
	return nil
}

// Clone returns a deep copy of the model. Equation trees are copied too, so
// the clone can be edited without affecting the original.
func (m *Model) Clone() *Model {
	out := New(m.Name)
	vars := make(map[*Variable]*Variable)

	var cloneComponent func(c *Component) *Component
	cloneComponent = func(c *Component) *Component {
		nc := NewComponent(c.Name)
		if c.FSInformation != nil {
			nc.FSInformation = NewFSInfo(c.FSInformation.FilePath)
		}
		for _, v := range c.Variables {
			nv := *v
			nv.component = nc
			nc.Variables = append(nc.Variables, &nv)
			vars[v] = &nv
		}
		for _, eq := range c.Equations {
			nc.Equations = append(nc.Equations, eq.Clone())
		}
		for _, child := range c.Components {
			nc.AddComponent(cloneComponent(child))
		}
		return nc
	}

	for _, c := range m.Components {
		out.Components = append(out.Components, cloneComponent(c))
	}
	for _, u := range m.Units {
		nu := &Units{Name: u.Name, Terms: append([]UnitTerm(nil), u.Terms...)}
		out.Units = append(out.Units, nu)
	}
	for _, eq := range m.Equivalences {
		first, second := vars[eq.First], vars[eq.Second]
		if first == nil || second == nil {
			continue
		}
		out.Equivalences = append(out.Equivalences, Equivalence{First: first, Second: second})
	}
	return out
}

// VariableCount returns the number of variables across all components.
func (m *Model) VariableCount() int {
	total := 0
	for _, c := range m.AllComponents() {
		total += len(c.Variables)
	}
	return total
}
