package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "cms.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cms.yaml")
	doc := `site:
  name: Other Blog
paths:
  blog_dir: content
store:
  backend: bolt
  path: posts.db
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Other Blog", cfg.Site.Name)
	assert.Equal(t, "content", cfg.Paths.BlogDir)
	assert.Equal(t, StoreBolt, cfg.Store.Backend)
	assert.Equal(t, "posts.db", cfg.Store.Path)
	// unspecified fields keep the defaults
	assert.Equal(t, Default().Site.BaseURL, cfg.Site.BaseURL)
	assert.Equal(t, Default().Paths.TemplatesDir, cfg.Paths.TemplatesDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty site name", func(c *Config) { c.Site.Name = "" }},
		{"relative base url", func(c *Config) { c.Site.BaseURL = "not-a-url" }},
		{"empty blog dir", func(c *Config) { c.Paths.BlogDir = " " }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"empty store path", func(c *Config) { c.Store.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSeriesName(t *testing.T) {
	site := Default().Site
	assert.Equal(t, "After Hours", site.SeriesName("after_hours"))
	assert.Equal(t, "None", site.SeriesName(""))
	assert.Equal(t, "mystery_key", site.SeriesName("mystery_key"))
}
