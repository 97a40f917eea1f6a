// Package testutil provides test helpers shared across packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file (and any parent directories) with the given
// content under dir and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// ModuleSource returns a minimal YUI-style module source registering
// name, with optional requires.
func ModuleSource(name string, requires ...string) string {
	src := "YUI.add('" + name + "', function (Y) {\n    Y.namespace('" + name + "');\n}, '0.1', { requires: ["
	for i, r := range requires {
		if i > 0 {
			src += ", "
		}
		src += "'" + r + "'"
	}
	return src + "] });\n"
}
