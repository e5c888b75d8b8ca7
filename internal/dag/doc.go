// Package dag provides the dependency graph primitives of the analyser: a
// directed graph over integer handles, strongly connected components, the
// condensation of a graph over its components, and a stable topological
// order. Handles index into arenas owned by the caller, so the graph never
// holds pointers to equations or variables.
package dag
