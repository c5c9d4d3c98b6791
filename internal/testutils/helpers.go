package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SeedDir creates a temporary directory holding files (name to content) and returns
// its absolute path. It fails the test immediately on error.
func SeedDir(t *testing.T, files map[string]string) string {
	t.Helper()

	// Loam prefers absolute paths, though t.TempDir usually returns one.
	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
	}
	return dir
}

// CopyFile copies src into a temporary directory under the same base name and returns the copy's path.
func CopyFile(t *testing.T, src string) string {
	t.Helper()

	raw, err := os.ReadFile(src)
	require.NoError(t, err, "Failed to read %s", src)
	return filepath.Join(SeedDir(t, map[string]string{filepath.Base(src): string(raw)}), filepath.Base(src))
}
