package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.ProjectRoot)
	assert.Equal(t, DefaultAPIVersions, cfg.APIVersions)
	assert.Equal(t, 30, cfg.Godot.DumpTimeoutSeconds)
	assert.Equal(t, "gdenv", cfg.Godot.VersionManager)
	assert.True(t, cfg.Format.Enabled)
	assert.Contains(t, cfg.Godot.Commands, "godot")
}

func TestLoadFromFile(t *testing.T) {
	dir := chdirTemp(t)

	yml := `project_root: /srv/godot-bevy
api_versions: ["4.4", "4.5"]
godot:
  commands: ["godot4"]
  version_manager: ""
  dump_timeout_seconds: 10
format:
  enabled: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nodegen.yml"), []byte(yml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/godot-bevy", cfg.ProjectRoot)
	assert.Equal(t, []string{"4.4", "4.5"}, cfg.APIVersions)
	assert.Equal(t, []string{"godot4"}, cfg.Godot.Commands)
	assert.Empty(t, cfg.Godot.VersionManager)
	assert.Equal(t, 10, cfg.Godot.DumpTimeoutSeconds)
	assert.False(t, cfg.Format.Enabled)
}

func TestLoadRejectsBadVersion(t *testing.T) {
	dir := chdirTemp(t)
	yml := "api_versions: [\"latest\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nodegen.yml"), []byte(yml), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api version")
}

func TestLatestVersion(t *testing.T) {
	cfg := &Config{APIVersions: []string{"4.2", "4.2.1", "4.10", "4.3"}}
	latest, err := cfg.LatestVersion()
	require.NoError(t, err)
	// Semantic ordering, not lexical: 4.10 beats 4.3.
	assert.Equal(t, "4.10", latest)
}
