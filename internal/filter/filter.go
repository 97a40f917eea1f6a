// Package filter provides the modified-file filter applied upstream of
// the pipeline. Pattern- and function-based configurations are unified
// into a single predicate at configuration time.
package filter

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/bundlekit/cli/internal/core"
)

// Predicate decides whether a modified file (given relative to the
// bundle directory) participates in a change event.
type Predicate func(bundle *core.Bundle, relPath string) bool

// All accepts every file.
func All(*core.Bundle, string) bool {
	return true
}

// FromPattern adapts a doublestar glob into a Predicate. The pattern is
// validated once here; matching at event time cannot fail.
func FromPattern(pattern string) (Predicate, error) {
	if pattern == "" {
		return All, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid filter pattern %q", pattern)
	}
	return func(_ *core.Bundle, relPath string) bool {
		ok, _ := doublestar.Match(pattern, filepath.ToSlash(relPath))
		return ok
	}, nil
}

// Apply filters modified paths through the predicate. Paths are made
// relative to the bundle directory for matching; paths outside the
// bundle are kept as-is so the resolver can still classify them.
func Apply(pred Predicate, bundle *core.Bundle, modified []string) []string {
	if pred == nil {
		return modified
	}
	kept := make([]string, 0, len(modified))
	for _, path := range modified {
		rel, err := filepath.Rel(bundle.Dir, path)
		if err != nil {
			rel = path
		}
		if pred(bundle, rel) {
			kept = append(kept, path)
		}
	}
	return kept
}
