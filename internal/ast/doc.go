// Package ast defines the equation trees attached to model components.
//
// Every equation is rooted at an Equality node. Operators, leaves and
// qualifiers form a closed set of kinds (see Kind), so the passes that walk a
// tree (dependency extraction, unit propagation, helper-function detection)
// are plain switches over Kind rather than dynamic dispatch.
package ast
