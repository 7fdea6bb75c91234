package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse([]byte(`
menu_file: /data/menu.json
abbreviations_file: /data/abbrev.yaml
max_breadcrumb_depth: 4
default_top_k: 5
max_top_k: 20
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, "/data/menu.json", cfg.MenuFile)
	assert.Equal(t, "/data/abbrev.yaml", cfg.AbbreviationsFile)
	assert.Equal(t, 4, cfg.MaxBreadcrumbDepth)
	assert.Equal(t, 5, cfg.DefaultTopK)
	assert.Equal(t, 20, cfg.MaxTopK)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"zero depth", "max_breadcrumb_depth: 0", ErrInvalidDepth},
		{"zero top k", "default_top_k: 0", ErrInvalidTopK},
		{"max below default", "default_top_k: 10\nmax_top_k: 5", ErrInvalidMaxTopK},
		{"bad level", "log_level: loud", ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("max_top_k: [1, 2"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Run("empty path without env", func(t *testing.T) {
		t.Setenv(EnvVar, "")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("env fallback", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("default_top_k: 3"), 0644))
		t.Setenv(EnvVar, path)

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.DefaultTopK)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestClampTopK(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10, cfg.ClampTopK(0))
	assert.Equal(t, 7, cfg.ClampTopK(7))
	assert.Equal(t, 100, cfg.ClampTopK(500))
	assert.Equal(t, -1, cfg.ClampTopK(-1))
}
