package builder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bundlekit/cli/internal/core"
)

func TestWriteArtifact_WritesUnderBundleDir(t *testing.T) {
	dir := t.TempDir()
	bundle := &core.Bundle{Name: "photos", Dir: dir}

	path, err := NewFSWriter().WriteArtifact(bundle, "loader-photos.js", "YUI.add();\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "loader-photos.js"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "YUI.add();\n", string(content))
}

func TestWriteArtifact_EmptyContent_NoFile(t *testing.T) {
	dir := t.TempDir()
	bundle := &core.Bundle{Name: "photos", Dir: dir}

	path, err := NewFSWriter().WriteArtifact(bundle, "loader-photos.js", "")
	require.NoError(t, err)
	assert.Empty(t, path)

	_, statErr := os.Stat(filepath.Join(dir, "loader-photos.js"))
	assert.True(t, os.IsNotExist(statErr), "empty artifacts must not touch the filesystem")
}

func TestWriteArtifact_CreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	bundle := &core.Bundle{Name: "photos", Dir: dir}

	path, err := NewFSWriter().WriteArtifact(bundle, filepath.Join("meta", "loader-photos.js"), "x")
	require.NoError(t, err)
	assert.FileExists(t, path)
}
