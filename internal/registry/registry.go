// Package registry holds previously computed module build metadata,
// keyed by bundle name and cache key (a module file or build descriptor
// path). A registry lives as long as its owning pipeline instance;
// there is no process-wide singleton.
package registry

import "github.com/bundlekit/cli/internal/core"

// Registry maps bundle name → cache key → metadata record.
// At most one record exists per (bundle, cache key) pair; a later
// registration replaces the earlier one. The registry performs no
// ordering, locking, or validation; callers enforce all invariants
// and serialize access per bundle.
type Registry struct {
	bundles map[string]map[string]*core.Metadata
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		bundles: make(map[string]map[string]*core.Metadata),
	}
}

// Register stores record under (bundleName, cacheKey), replacing any
// prior value. It always succeeds.
func (r *Registry) Register(bundleName, cacheKey string, record *core.Metadata) {
	entries, ok := r.bundles[bundleName]
	if !ok {
		entries = make(map[string]*core.Metadata)
		r.bundles[bundleName] = entries
	}
	entries[cacheKey] = record
}

// Lookup returns the current cache key → record mapping for a bundle,
// or an empty mapping if nothing has been registered. The returned map
// is the registry's own storage; callers must not mutate it.
func (r *Registry) Lookup(bundleName string) map[string]*core.Metadata {
	entries, ok := r.bundles[bundleName]
	if !ok {
		return map[string]*core.Metadata{}
	}
	return entries
}
