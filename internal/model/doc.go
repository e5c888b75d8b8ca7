// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the in-memory graph of a component-based mathematical
// model: components, their variables and equations, units definitions, and the
// equivalences that connect variables across components.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Model: The root container. It owns the top-level components, every units
//     definition, and the list of variable equivalences.
//
//   - Component: A named group of variables and equations. Components may
//     encapsulate child components, forming a tree that is always traversed
//     depth-first in declaration order.
//
//   - Variable: A named quantity with units, an optional initial value (a
//     literal or the name of another variable in the same component), and an
//     interface type.
//
//   - Equivalence: A pairwise, undirected statement that two variables are the
//     same quantity. Chains of equivalences form equivalence sets.
//
// Why a separate model package?
//
// This package is the format-agnostic boundary between whatever produced the
// model (the HCL front end, a test builder, an embedding application) and the
// analyser that consumes it. The analyser only ever reads a Model; it never
// mutates one, which is what makes repeated analyses of the same model
// idempotent.
package model
