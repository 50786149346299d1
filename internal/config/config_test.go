package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  path: /tmp/test.db
org:
  id: troop-42
  actor: leader-anna
defaults:
  location: Scout hall
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "troop-42", cfg.Org.ID)
	assert.Equal(t, "leader-anna", cfg.Org.Actor)
	assert.Equal(t, "Scout hall", cfg.Defaults.Location)
	assert.Equal(t, "18:30", cfg.Defaults.StartTime, "unset fields keep defaults")
}

func TestLoad_JSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"org": {"id": "troop-7"}, "defaults": {"start_time": "19:00"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "troop-7", cfg.Org.ID)
	assert.Equal(t, "19:00", cfg.Defaults.StartTime)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load("config.toml")
	assert.Error(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("org:\n  id: from-file\n"), 0o644))

	t.Setenv("PLANERA_ORG__ID", "from-env")
	t.Setenv("PLANERA_DATABASE__PATH", "/tmp/env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Org.ID)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
}

func TestLoad_DefaultsWithoutAnyFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Org.ID)
	assert.Contains(t, cfg.Database.Path, ".planera")
	assert.Equal(t, "18:30", cfg.Defaults.StartTime)
	assert.Equal(t, "20:00", cfg.Defaults.EndTime)
}
