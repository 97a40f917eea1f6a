package core

import "path/filepath"

// Bundle is a named unit of source files with one build output directory.
// Bundles are owned by the caller; the pipeline never creates or destroys
// one, it only attaches computed loader fields.
type Bundle struct {
	// Name uniquely identifies the bundle.
	Name string

	// Dir is the bundle's root directory.
	Dir string

	// BuildDir is the build output directory for the bundle.
	BuildDir string

	// Server is the server-view loader manifest, attached by the pipeline.
	Server map[string]*Metadata

	// Client is the client-view loader manifest, attached by the pipeline.
	Client map[string]*Metadata

	// MetaModuleFullpath is the path of the generated meta-module artifact,
	// attached by the pipeline after the artifact is written.
	MetaModuleFullpath string

	// MetaModuleName is the module name of the generated meta-module.
	MetaModuleName string
}

// MetaModule returns the bundle's meta-module name ("loader-<name>").
func (b *Bundle) MetaModule() string {
	return "loader-" + b.Name
}

// MetaModuleFile returns the meta-module artifact file name.
func (b *Bundle) MetaModuleFile() string {
	return b.MetaModule() + ".js"
}

// ContainsSource reports whether path lies inside the bundle directory
// but outside the build output directory.
func (b *Bundle) ContainsSource(path string) bool {
	return UnderDir(b.Dir, path) && !UnderDir(b.BuildDir, path)
}

// UnderDir reports whether path lies under dir (or equals it).
// Comparison is purely lexical; neither path is resolved on disk.
func UnderDir(dir, path string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	const parent = ".." + string(filepath.Separator)
	return rel != ".." && (len(rel) < len(parent) || rel[:len(parent)] != parent)
}
