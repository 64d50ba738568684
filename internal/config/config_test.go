package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "rust", cfg.Weave.Language)
	assert.True(t, cfg.Weave.Markers)
	assert.Equal(t, "//", cfg.Weave.CommentPrefix)
	assert.Equal(t, "⟨", cfg.Delimiters.Open)
	assert.Equal(t, "tangle.db", cfg.Storage.DBPath)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tangle.yaml")
	content := `
weave:
  language: go
  strict: true
  markers: false
  comment_prefix: "#"
delimiters:
  open: "<<"
  close: ">>"
input:
  extensions: [".lit.md"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "go", cfg.Weave.Language)
	assert.True(t, cfg.Weave.Strict)
	assert.False(t, cfg.Weave.Markers)
	assert.Equal(t, "#", cfg.Weave.CommentPrefix)
	assert.Equal(t, []string{".lit.md"}, cfg.Input.Extensions)
	assert.Equal(t, []string{".git", "vendor", "node_modules"}, cfg.Input.Ignore)

	p, err := cfg.Patterns()
	require.NoError(t, err)
	d := p.Delimiters()
	assert.Equal(t, "<<", d.Open)
	assert.Equal(t, ">>", d.Close)
	assert.Equal(t, "≡", d.Define, "unset delimiters keep their defaults")

	t.Setenv("TANGLE_LANGUAGE", "python")
	t.Setenv("TANGLE_STRICT", "false")
	t.Setenv("TANGLE_DB", "/tmp/other.db")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "python", cfg.Weave.Language)
	assert.False(t, cfg.Weave.Strict)
	assert.Equal(t, "/tmp/other.db", cfg.Storage.DBPath)
	assert.Len(t, cfg.WeaverOptions(), 3)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weave: [unclosed"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)

	t.Setenv("TANGLE_STRICT", "maybe")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
