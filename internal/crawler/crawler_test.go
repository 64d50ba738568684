package crawler

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
	require.NoError(t, os.WriteFile(path, []byte("# doc\n"), 0o644))
}

func TestCrawler_Collect(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.md"))
	writeFile(t, filepath.Join(root, "a.markdown"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, "sub", "c.MD"))
	writeFile(t, filepath.Join(root, "node_modules", "skip.md"))
	writeFile(t, filepath.Join(root, "extra.txt"))

	c := NewCrawler([]string{".md", ".markdown"}, []string{"node_modules"})

	t.Run("Directories are walked in lexical order", func(t *testing.T) {
		docs, err := c.Collect(root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a.markdown"),
			filepath.Join(root, "b.md"),
			filepath.Join(root, "sub", "c.MD"),
		}, docs)
	})

	t.Run("Explicit files are kept and deduplicated", func(t *testing.T) {
		extra := filepath.Join(root, "extra.txt")
		docs, err := c.Collect(extra, root, extra)
		require.NoError(t, err)
		require.Len(t, docs, 4)
		assert.Equal(t, extra, docs[0])
	})

	t.Run("Missing path", func(t *testing.T) {
		_, err := c.Collect(filepath.Join(root, "nope.md"))
		assert.Error(t, err)
	})
}
