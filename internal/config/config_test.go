package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathogen-atlas/internal/domain"
)

func TestNewManager_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	m, err := NewManager("")
	require.NoError(t, err)
	cfg := m.GetConfig()

	assert.Equal(t, domain.SourceEmbedded, cfg.Reference.Source)
	assert.Empty(t, cfg.Reference.Path)
	assert.Equal(t, uint64(0), cfg.Layout.Seed)
	assert.Equal(t, 800.0, cfg.Layout.Width)
	assert.Equal(t, 600.0, cfg.Layout.Height)
	assert.Equal(t, 200.0, cfg.Layout.Extent)
	assert.Equal(t, 128, cfg.Cache.MaxItems)
	assert.Equal(t, filepath.Join(home, ".pathogen-atlas", "exports"), cfg.Export.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Empty(t, m.ConfigFileUsed())
	assert.NoError(t, m.Validate())
}

func TestNewManager_EnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ATLAS_LAYOUT_SEED", "42")
	t.Setenv("ATLAS_CACHE_MAX_ITEMS", "16")
	t.Setenv("ATLAS_LOGGING_LEVEL", "debug")
	t.Setenv("ATLAS_REFERENCE_SOURCE", "sqlite")
	t.Setenv("ATLAS_REFERENCE_PATH", "/tmp/atlas.db")

	m, err := NewManager("")
	require.NoError(t, err)
	cfg := m.GetConfig()

	assert.Equal(t, uint64(42), cfg.Layout.Seed)
	assert.Equal(t, 16, cfg.Cache.MaxItems)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, domain.SourceSQLite, cfg.Reference.Source)
	assert.Equal(t, "/tmp/atlas.db", cfg.Reference.Path)
}

func TestNewManager_ConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "atlas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
reference:
  source: file
  path: ./tables.yaml
layout:
  seed: 7
  width: 1024
logging:
  format: text
`), 0644))

	m, err := NewManager(path)
	require.NoError(t, err)
	cfg := m.GetConfig()

	assert.Equal(t, domain.SourceFile, cfg.Reference.Source)
	assert.Equal(t, "./tables.yaml", cfg.Reference.Path)
	assert.Equal(t, uint64(7), cfg.Layout.Seed)
	assert.Equal(t, 1024.0, cfg.Layout.Width)
	assert.Equal(t, 600.0, cfg.Layout.Height)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, path, m.ConfigFileUsed())
}

func TestNewManager_MissingExplicitFile(t *testing.T) {
	_, err := NewManager(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestManager_Reload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	m, err := NewManager("")
	require.NoError(t, err)
	assert.Equal(t, 128, m.GetConfig().Cache.MaxItems)

	t.Setenv("ATLAS_CACHE_MAX_ITEMS", "4")
	require.NoError(t, m.Reload())
	assert.Equal(t, 4, m.GetConfig().Cache.MaxItems)
}

func TestManager_Validate(t *testing.T) {
	valid := func() *domain.Config {
		return &domain.Config{
			Reference: domain.ReferenceConfig{Source: domain.SourceEmbedded},
			Layout:    domain.LayoutConfig{Width: 800, Height: 600, Extent: 200},
			Cache:     domain.CacheConfig{MaxItems: 8},
			Logging:   domain.LoggingConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*domain.Config)
		field  string
	}{
		{"valid", func(*domain.Config) {}, ""},
		{"unknown source", func(c *domain.Config) { c.Reference.Source = "postgres" }, "reference.source"},
		{"file without path", func(c *domain.Config) { c.Reference.Source = domain.SourceFile }, "reference.path"},
		{"sqlite with path", func(c *domain.Config) {
			c.Reference.Source = domain.SourceSQLite
			c.Reference.Path = "atlas.db"
		}, ""},
		{"zero width", func(c *domain.Config) { c.Layout.Width = 0 }, "layout.width"},
		{"negative height", func(c *domain.Config) { c.Layout.Height = -1 }, "layout.height"},
		{"zero extent", func(c *domain.Config) { c.Layout.Extent = 0 }, "layout.extent"},
		{"zero cache", func(c *domain.Config) { c.Cache.MaxItems = 0 }, "cache.max_items"},
		{"bad level", func(c *domain.Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"upper case level", func(c *domain.Config) { c.Logging.Level = "WARN" }, ""},
		{"bad format", func(c *domain.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			m := &Manager{config: cfg}

			err := m.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestManager_EnsureExportDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	m := &Manager{config: &domain.Config{Export: domain.ExportConfig{Dir: dir}}}

	require.NoError(t, m.EnsureExportDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
