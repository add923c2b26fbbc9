package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	m "checklist.dev/pkg/checklist/internal/model"
)

// writeTree creates files below root. Keys are slash separated relative
// paths; a trailing slash creates an empty directory.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

// realDir resolves symlinks in a temp dir so it compares equal to the
// paths the filesystem adapter returns.
func realDir(t *testing.T, dir string) string {
	t.Helper()

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	return resolved
}

func paths(root string, rels ...string) []m.Path {
	out := make([]m.Path, 0, len(rels))
	for _, rel := range rels {
		out = append(out, m.Path(filepath.Join(root, filepath.FromSlash(rel))))
	}

	return out
}
