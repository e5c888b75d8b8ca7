// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines user units definitions.
//
// Why only names here?
//
// A units definition is stored exactly as declared: a list of references to
// other units with a prefix, exponent and multiplier each. Turning that into
// dimensions is the job of the units package, which also knows the built-in
// units. Keeping the declaration raw lets the writer reproduce it faithfully.
package model

// UnitTerm is one factor of a units definition:
// multiplier * (prefix * reference) ^ exponent.
type UnitTerm struct {
	Reference string
	// Prefix is an SI prefix name ("milli") or an integer power of ten ("-3").
	Prefix     string
	Exponent   float64
	Multiplier float64
}

// NewUnitTerm returns a term with the neutral exponent and multiplier.
func NewUnitTerm(reference string) UnitTerm {
	return UnitTerm{Reference: reference, Exponent: 1, Multiplier: 1}
}

// Units is a named units definition. A definition without terms introduces a
// new base unit.
type Units struct {
	Name  string
	Terms []UnitTerm
}

// NewUnits creates a units definition from its terms.
func NewUnits(name string, terms ...UnitTerm) *Units {
	return &Units{Name: name, Terms: terms}
}

// IsBase reports whether the definition introduces a new base unit.
func (u *Units) IsBase() bool {
	return len(u.Terms) == 0
}
