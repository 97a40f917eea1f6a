package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bundlekit/cli/internal/testutil"
)

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "config.yaml", `
cache: false
cssproc: /static/
filter: "**/*.js"
buildDirName: out
args:
  - --strict
watch:
  debounceMs: 250
`)

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Cache)
	assert.False(t, *cfg.Cache)
	assert.Equal(t, "/static/", cfg.CSSProc)
	assert.Equal(t, "**/*.js", cfg.Filter)
	assert.Equal(t, "out", cfg.BuildDirName)
	assert.Equal(t, []string{"--strict"}, cfg.Args)
	assert.Equal(t, 250, cfg.Watch.DebounceMs)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadWithDefaults_FillsUnsetFields(t *testing.T) {
	cfg, err := NewLoader().LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, "build", cfg.BuildDirName)
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "config.yaml", "cssproc: /from-file/\n")
	t.Setenv("BUNDLEKIT_CSSPROC", "/from-env/")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from-env/", cfg.CSSProc)
}

func TestConfigFileExists(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "config.yaml", "cache: true\n")

	ok, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ConfigFileExists(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRenderDefault_ParsesBackToDefaults(t *testing.T) {
	rendered, err := RenderDefault()
	require.NoError(t, err)
	assert.Contains(t, rendered, "# bundlekit configuration")
	assert.Contains(t, rendered, "cache: true")
	assert.Contains(t, rendered, "buildDirName: build")
	assert.Contains(t, rendered, "debounceMs: 500")
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, WriteDefault(path))
	assert.FileExists(t, path)

	err := WriteDefault(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "cache: true")
}
