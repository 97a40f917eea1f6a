// Package loader compiles the registry's build metadata for one bundle
// into affinity-filtered loader data: a structured manifest plus a
// generated meta-module artifact.
package loader

import (
	"github.com/bundlekit/cli/internal/core"
	"github.com/bundlekit/cli/internal/output"
	"github.com/bundlekit/cli/internal/registry"
)

// Filter decides whether one build variant of a module survives a
// compilation view.
type Filter func(moduleName string, cfg core.BuildConfig) bool

// ServerView keeps variants not restricted to the client. Variants with
// no affinity are shared and pass.
func ServerView(_ string, cfg core.BuildConfig) bool {
	return cfg.Affinity != core.AffinityClient
}

// ClientView keeps variants not restricted to the server. Variants with
// no affinity are shared and pass.
func ClientView(_ string, cfg core.BuildConfig) bool {
	return cfg.Affinity != core.AffinityServer
}

// Data is the result of one compilation: the filtered manifest and the
// meta-module source embedding it. Data is ephemeral: recomputed on
// every change event from the registry's current contents.
type Data struct {
	// JSON maps module names to their filtered build manifests.
	JSON map[string]*core.Metadata

	// JS is the generated meta-module source.
	JS string
}

// Compiler reads the registry and produces loader data per view.
type Compiler struct {
	registry *registry.Registry
}

// NewCompiler creates a compiler over the given registry.
func NewCompiler(reg *registry.Registry) *Compiler {
	return &Compiler{registry: reg}
}

// Compile builds the loader data for bundle under the given filter.
//
// Every build variant of every registered record is passed through the
// filter; survivors are regrouped under their owning module name with
// Name and Buildfile preserved. Compile returns nil when no variant
// survives: a strict "no applicable modules" signal, distinct from an
// empty-but-present Data.
//
// When synthesizeMeta is set (the client view), one extra entry is added
// describing the bundle's meta-module itself, tagged with affinity
// client and the bundle's group name, so the generated manifest is
// self-describing to a browser-side loader.
func (c *Compiler) Compile(bundle *core.Bundle, filter Filter, synthesizeMeta bool) *Data {
	records := c.registry.Lookup(bundle.Name)

	manifest := make(map[string]*core.Metadata)
	for _, record := range records {
		for key, cfg := range record.Builds {
			if !filter(record.Name, cfg) {
				continue
			}
			entry, ok := manifest[record.Name]
			if !ok {
				entry = &core.Metadata{
					Name:      record.Name,
					Buildfile: record.Buildfile,
					Builds:    make(map[string]core.BuildConfig),
				}
				manifest[record.Name] = entry
			}
			entry.Builds[key] = cfg
		}
	}

	if len(manifest) == 0 {
		output.Debug("no modules survived affinity filter", "bundle", bundle.Name)
		return nil
	}

	if synthesizeMeta {
		meta := bundle.MetaModule()
		manifest[meta] = &core.Metadata{
			Name: meta,
			Builds: map[string]core.BuildConfig{
				meta: {
					Affinity: core.AffinityClient,
					Group:    bundle.Name,
				},
			},
		}
	}

	js, err := GenerateMetaModule(bundle, manifest)
	if err != nil {
		output.Debug("meta-module generation failed", "bundle", bundle.Name, "err", err)
		return nil
	}

	return &Data{JSON: manifest, JS: js}
}
