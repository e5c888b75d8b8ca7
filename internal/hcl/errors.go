package hcl

import "errors"

var (
	// ErrNoFiles is returned when none of the given paths holds a model file.
	ErrNoFiles = errors.New("hcl: no .hcl model files found")

	// ErrNoModel is returned when the files were read but none declared a
	// model block.
	ErrNoModel = errors.New("hcl: no model block found")

	// ErrMultipleModels is returned when the files declare models with
	// different names.
	ErrMultipleModels = errors.New("hcl: files declare more than one model")
)
