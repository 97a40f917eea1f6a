// Package resolve implements the change-classification step: it maps a
// list of modified files plus the bundle's known build descriptors into
// the deterministic, deduplicated set of build targets for one change
// event, registering newly discovered metadata as it goes.
package resolve

import (
	"path/filepath"
	"sort"

	"github.com/bundlekit/cli/internal/builder"
	"github.com/bundlekit/cli/internal/core"
	"github.com/bundlekit/cli/internal/output"
	"github.com/bundlekit/cli/internal/registry"
)

// DescriptorName is the fixed base name of build descriptor files.
const DescriptorName = "build.json"

// Resolver classifies changed files into build targets. It writes newly
// discovered metadata into the registry but never removes entries.
type Resolver struct {
	builder  builder.ModuleBuilder
	registry *registry.Registry
}

// New creates a resolver backed by the given module builder and registry.
func New(b builder.ModuleBuilder, reg *registry.Registry) *Resolver {
	return &Resolver{builder: b, registry: reg}
}

// BuildTargets computes the sorted, deduplicated set of paths that must
// be rebuilt for one change event.
//
// Both input lists are sorted lexicographically before classification.
// This is load-bearing: downstream metadata compilation order affects the
// generated meta-module's byte-for-byte content, and unstable ordering
// would defeat build caching.
//
// Classification:
//   - A modified .js file that is not the bundle's own meta-module and
//     passes the module check is registered under its path and targeted.
//   - A known build descriptor (base name "build.json") that passes the
//     descriptor check is always registered under its path. It is
//     targeted when explicitly modified, or when any modified .js file
//     lies under the descriptor's directory and outside the bundle's
//     build output directory. The containment policy is deliberately
//     conservative: the descriptor's true dependency scope cannot be
//     determined here, so any contained change forces a rebuild.
//
// Files failing their checks are skipped silently; an empty modified
// list yields an empty target set.
func (r *Resolver) BuildTargets(bundle *core.Bundle, modified, descriptors []string) []string {
	modified = sortedCopy(modified)
	descriptors = sortedCopy(descriptors)

	targets := make(map[string]struct{})

	for _, path := range modified {
		if filepath.Ext(path) != ".js" {
			continue
		}
		if filepath.Base(path) == bundle.MetaModuleFile() {
			// Never rebuild the generated meta-module from a change event;
			// it is regenerated by the pipeline itself.
			continue
		}
		record, err := r.builder.CheckModuleFile(path)
		if err != nil || record == nil {
			if err != nil {
				output.Debug("module check failed, skipping", "path", path, "err", err)
			}
			continue
		}
		r.registry.Register(bundle.Name, path, record)
		targets[path] = struct{}{}
	}

	for _, desc := range descriptors {
		if filepath.Base(desc) != DescriptorName {
			continue
		}
		record, err := r.builder.CheckBuildDescriptor(desc)
		if err != nil || record == nil {
			if err != nil {
				output.Debug("descriptor check failed, skipping", "path", desc, "err", err)
			}
			continue
		}

		// Register regardless of targeting so stale-but-unaffected
		// descriptors remain known for later compilation.
		r.registry.Register(bundle.Name, desc, record)

		descDir := filepath.Dir(desc)
		for _, path := range modified {
			if path == desc {
				targets[desc] = struct{}{}
				break
			}
			if filepath.Ext(path) != ".js" {
				continue
			}
			if core.UnderDir(descDir, path) && !core.UnderDir(bundle.BuildDir, path) {
				targets[desc] = struct{}{}
				break
			}
		}
	}

	out := make([]string, 0, len(targets))
	for path := range targets {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// sortedCopy returns a lexicographically sorted copy of paths, leaving
// the caller's slice untouched.
func sortedCopy(paths []string) []string {
	cp := make([]string, len(paths))
	copy(cp, paths)
	sort.Strings(cp)
	return cp
}
