package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("model \"m\" {}\n"), 0o644))
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "b", "a.hcl")
	b := filepath.Join(dir, "a.hcl")
	writeFile(t, a)
	writeFile(t, b)
	writeFile(t, filepath.Join(dir, "notes.txt"))

	files, err := CollectFiles(".hcl", dir, a)
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, files)
}

func TestCollectFilesMissingPath(t *testing.T) {
	_, err := CollectFiles(".hcl", filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "cannot read")
}

func TestFindFilesByExtensionPanicsOnEmptyExtension(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = FindFilesByExtension(".", "")
	})
}
