// Package units implements the unit algebra behind the units consistency
// check: the built-in units, SI prefixes, vectors of base dimensions and a
// resolver that reduces a model's units definitions to such vectors.
package units
