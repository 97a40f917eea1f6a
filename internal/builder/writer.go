package builder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bundlekit/cli/internal/core"
	"github.com/bundlekit/cli/internal/output"
)

// FSWriter writes generated artifacts into the bundle directory.
type FSWriter struct{}

// NewFSWriter creates the default filesystem artifact writer.
func NewFSWriter() *FSWriter {
	return &FSWriter{}
}

// WriteArtifact writes content to relPath inside the bundle directory
// and returns the written path. Empty content resolves to an empty path
// without touching the filesystem.
func (w *FSWriter) WriteArtifact(bundle *core.Bundle, relPath, content string) (string, error) {
	if content == "" {
		return "", nil
	}

	path := filepath.Join(bundle.Dir, relPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating artifact directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing artifact %s: %w", relPath, err)
	}

	output.Debug("wrote artifact", "bundle", bundle.Name, "path", path, "bytes", len(content))
	return path, nil
}
