// Package builder defines the module-builder boundary consumed by the
// resolver and the pipeline, plus the default filesystem-backed
// implementation for YUI-style bundles.
package builder

import (
	"context"

	"github.com/bundlekit/cli/internal/core"
)

// ModuleBuilder analyzes and builds individual module files and build
// descriptors. Check methods return (nil, err) or (nil, nil) for files
// that are not valid modules/descriptors; callers treat both as a skip,
// never as a fatal condition.
type ModuleBuilder interface {
	// CheckModuleFile analyzes a single .js file. It returns the module's
	// metadata record, or nil when the file is not a recognizable module.
	CheckModuleFile(path string) (*core.Metadata, error)

	// CheckBuildDescriptor analyzes a build descriptor file. It returns
	// the descriptor's metadata record, or nil when the descriptor is
	// invalid.
	CheckBuildDescriptor(path string) (*core.Metadata, error)

	// BuildFiles builds every target path into the build directory given
	// in opts. A returned error fails the whole change event.
	BuildFiles(ctx context.Context, targets []string, opts BuildOptions) error
}

// ArtifactWriter persists a generated artifact inside a bundle.
type ArtifactWriter interface {
	// WriteArtifact writes content to relPath inside the bundle directory
	// and returns the written path. Empty content resolves to an empty
	// path without touching the filesystem.
	WriteArtifact(bundle *core.Bundle, relPath, content string) (string, error)
}

// BuildOptions carries per-invocation build settings. They apply
// uniformly to the whole target set, not per file.
type BuildOptions struct {
	// BuildDir is the output directory for built artifacts.
	BuildDir string

	// Args are extra builder arguments (e.g. "--cssproc <base>").
	Args []string

	// CacheEnabled skips rebuilding targets whose outputs are newer
	// than all of their sources.
	CacheEnabled bool
}
