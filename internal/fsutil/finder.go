// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths.
// A root that is itself a regular file is returned as is when it matches.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// CollectFiles runs FindFilesByExtension over every path and returns the
// union, cleaned, deduplicated and sorted. A path that does not exist is an
// error; a path without any matching file is not.
func CollectFiles(extension string, paths ...string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("cannot read %q: %w", p, err)
		}
		files, err := FindFilesByExtension(p, extension)
		if err != nil {
			return nil, fmt.Errorf("searching %q: %w", p, err)
		}
		for _, f := range files {
			f = filepath.Clean(f)
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out, nil
}
