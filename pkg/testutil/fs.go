package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewMemFS returns a memory filesystem holding files (path -> content).
func NewMemFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

// ReadFile returns a file's content or fails the test.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

// Snapshot lists every file with its content, for asserting that nothing changed.
func Snapshot(t *testing.T, fs afero.Fs) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := afero.Walk(fs, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			out[path+"/"] = ""
			return nil
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		out[path] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

// Glob returns the sorted paths matching pattern.
func Glob(t *testing.T, fs afero.Fs, pattern string) []string {
	t.Helper()
	matches, err := afero.Glob(fs, pattern)
	require.NoError(t, err)
	sort.Strings(matches)
	return matches
}
