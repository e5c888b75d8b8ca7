// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the FSInfo struct, which stores file system metadata.
//
// Why store the file path?
//
// The file path connects a parsed component back to its physical source on
// disk. Analysis issues name the component they are about, and with FSInfo the
// report can also say in which file that component was declared, which matters
// once a model is split across several files.
package model

// FSInfo records where a definition was read from.
type FSInfo struct {
	FilePath string
}

// NewFSInfo creates file system metadata for the given path.
func NewFSInfo(filePath string) *FSInfo {
	return &FSInfo{
		FilePath: filePath,
	}
}
