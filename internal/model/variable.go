// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Variable structure and its initial value.
//
// Why can an initial value be a name?
//
// A variable may be initialised from another variable in the same component
// rather than from a literal. The model keeps that reference as a name; the
// analyser resolves the chain, detects cycles in it, and decides whether the
// referenced value is available before integration starts.
package model

import (
	"fmt"
	"strconv"
)

// InterfaceType controls the visibility of a variable to the parent and child
// components of its owner.
type InterfaceType uint8

const (
	InterfaceNone InterfaceType = iota
	InterfacePublic
	InterfacePrivate
	InterfacePublicAndPrivate
)

var interfaceNames = map[InterfaceType]string{
	InterfaceNone:             "none",
	InterfacePublic:           "public",
	InterfacePrivate:          "private",
	InterfacePublicAndPrivate: "public_and_private",
}

// String returns the textual form used in model files.
func (t InterfaceType) String() string {
	if s, ok := interfaceNames[t]; ok {
		return s
	}
	return fmt.Sprintf("interface(%d)", uint8(t))
}

// ParseInterfaceType converts the textual form back. The empty string maps
// to InterfaceNone.
func ParseInterfaceType(s string) (InterfaceType, error) {
	if s == "" {
		return InterfaceNone, nil
	}
	for t, name := range interfaceNames {
		if name == s {
			return t, nil
		}
	}
	return InterfaceNone, fmt.Errorf("unknown interface type %q", s)
}

// InitialKind tells which form an InitialValue takes.
type InitialKind uint8

const (
	InitialNone InitialKind = iota
	InitialLiteral
	InitialReference
)

// InitialValue is either absent, a literal number, or the name of another
// variable in the same component.
type InitialValue struct {
	Kind     InitialKind
	Value    float64
	Variable string
}

// Literal returns an initial value holding v.
func Literal(v float64) InitialValue {
	return InitialValue{Kind: InitialLiteral, Value: v}
}

// Reference returns an initial value taken from the named variable.
func Reference(name string) InitialValue {
	return InitialValue{Kind: InitialReference, Variable: name}
}

// IsSet reports whether any initial value is present.
func (iv InitialValue) IsSet() bool {
	return iv.Kind != InitialNone
}

// String renders the value the way model files spell it.
func (iv InitialValue) String() string {
	switch iv.Kind {
	case InitialLiteral:
		return strconv.FormatFloat(iv.Value, 'g', -1, 64)
	case InitialReference:
		return iv.Variable
	}
	return ""
}

// Variable is a named quantity owned by exactly one component.
type Variable struct {
	Name      string
	Units     string
	Initial   InitialValue
	Interface InterfaceType

	component *Component
}

// NewVariable creates a variable that is not yet attached to a component.
func NewVariable(name, units string) *Variable {
	return &Variable{Name: name, Units: units}
}

// Component returns the owning component, or nil for a detached variable.
func (v *Variable) Component() *Component {
	return v.component
}

// String returns `component.variable`, the form used in diagnostics.
func (v *Variable) String() string {
	if v == nil {
		return "<nil>"
	}
	if v.component == nil {
		return v.Name
	}
	return v.component.Name + "." + v.Name
}
