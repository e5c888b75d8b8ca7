// Package hcl provides the concrete HCL implementation of the model.Loader
// interface defined in the `model` package. It is responsible for file
// parsing, block decoding, translating equation expressions into ast trees,
// and writing a model back out as HCL.
package hcl
