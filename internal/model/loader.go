// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import "context"

// Loader is the interface for a format-specific model loader.
type Loader interface {
	// Load reads every model file found under the given paths and assembles
	// them into a single Model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
