// Package analyser turns a model into a computable system of equations.
//
// Analyse works through a fixed pipeline. It merges equivalent variables,
// works out the variable of integration and the states, applies external
// variables and initial values, pairs every equation with the unknown it
// computes, builds the dependency graph between equations, groups strongly
// connected equations into nonlinear systems and orders the rest. An optional
// pass checks units on the side.
//
// Problems with the model never make Analyse fail. They are returned as
// issues on the result, whose Type tells whether a generator can use it.
package analyser
