// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "errors"

var (
	// ErrDuplicateName is returned when a component, variable or units
	// definition reuses a name that is already taken in its scope.
	ErrDuplicateName = errors.New("model: duplicate name")

	// ErrInvalidEquivalence is returned for equivalences that are nil, relate
	// a variable to itself, or involve a variable not owned by any component.
	ErrInvalidEquivalence = errors.New("model: invalid equivalence")

	// ErrDuplicateEquivalence is returned when the same pair is declared twice.
	ErrDuplicateEquivalence = errors.New("model: duplicate equivalence")
)
