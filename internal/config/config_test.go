package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "~/.config/pagedex/pagedex.snap", cfg.Snapshot.Path)
	assert.Equal(t, "20060102-15", cfg.Input.TimeLayout)
	assert.Equal(t, 10, cfg.Query.Limit)
}

func TestLoadValidYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
snapshot:
  path: "/var/lib/pagedex/hourly.snap"
query:
  limit: 25
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "/var/lib/pagedex/hourly.snap", cfg.Snapshot.Path)
	assert.Equal(t, 25, cfg.Query.Limit)

	// Non-overridden values remain defaults
	assert.Equal(t, "20060102-15", cfg.Input.TimeLayout)
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	err := os.WriteFile(cfgPath, []byte(":::not valid yaml{{{"), 0644)
	require.NoError(t, err)

	_, err = Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadNonExistentFileReturnsError(t *testing.T) {
	_, err := Load("/tmp/nonexistent_path_12345/config.yaml")
	assert.Error(t, err)
}

func TestLoadOrCreateCreatesDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "deep", "config.yaml")

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)

	// Should return defaults
	assert.Equal(t, 10, cfg.Query.Limit)
	assert.Equal(t, "20060102-15", cfg.Input.TimeLayout)

	// File should now exist on disk
	_, statErr := os.Stat(cfgPath)
	assert.NoError(t, statErr)

	// File should be valid YAML loadable again
	cfg2, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Snapshot.Path, cfg2.Snapshot.Path)
}

func TestLoadOrCreateLoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
query:
  limit: 3
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Query.Limit)
	// Other fields remain defaults
	assert.Equal(t, "~/.config/pagedex/pagedex.snap", cfg.Snapshot.Path)
}

func TestLoadPartialYAMLMergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	// Only override one nested field
	yamlContent := `
input:
  time_layout: "2006-01-02T15"
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "2006-01-02T15", cfg.Input.TimeLayout)
	// Other fields remain default
	assert.Equal(t, "~/.config/pagedex/pagedex.snap", cfg.Snapshot.Path)
	assert.Equal(t, 10, cfg.Query.Limit)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.config/pagedex/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "pagedex", "config.yaml"), got)

	got, err = ExpandPath("/absolute/path.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path.yaml", got)
}
