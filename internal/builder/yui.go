package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bundlekit/cli/internal/core"
	"github.com/bundlekit/cli/internal/output"
)

// descriptorName is the fixed base name of build descriptor files.
const descriptorName = "build.json"

// addPattern matches a YUI.add("module-name", ...) registration.
var addPattern = regexp.MustCompile(`YUI\.add\(\s*['"]([^'"]+)['"]`)

// requiresPattern matches the requires list of the registration's meta
// block. Only a flat, single-line-or-multiline literal array is
// recognized; anything computed is ignored.
var requiresPattern = regexp.MustCompile(`requires\s*:\s*\[([^\]]*)\]`)

// quotedPattern extracts the quoted entries of a literal array.
var quotedPattern = regexp.MustCompile(`['"]([^'"]+)['"]`)

// FSBuilder is the default module builder. It recognizes YUI-style
// module registrations, build.json descriptors, and builds targets by
// concatenation into the build directory.
type FSBuilder struct{}

// NewFSBuilder creates the default filesystem-backed module builder.
func NewFSBuilder() *FSBuilder {
	return &FSBuilder{}
}

// CheckModuleFile scans a .js file for a YUI.add registration and
// produces its metadata record. Affinity follows the filename
// convention: <name>.server.js and <name>.client.js restrict the
// module; any other name yields a shared module. Returns nil when no
// registration is found.
func (b *FSBuilder) CheckModuleFile(path string) (*core.Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading module file: %w", err)
	}

	m := addPattern.FindSubmatch(content)
	if m == nil {
		return nil, nil
	}
	name := string(m[1])

	cfg := core.BuildConfig{
		Affinity: affinityFromFilename(path),
		Requires: parseRequires(content),
	}

	return &core.Metadata{
		Name:      name,
		Buildfile: path,
		Builds:    map[string]core.BuildConfig{name: cfg},
	}, nil
}

// affinityFromFilename derives a module's affinity from its file name:
// foo.server.js → server, foo.client.js → client, anything else shared.
func affinityFromFilename(path string) core.Affinity {
	base := strings.TrimSuffix(filepath.Base(path), ".js")
	switch {
	case strings.HasSuffix(base, ".server"):
		return core.AffinityServer
	case strings.HasSuffix(base, ".client"):
		return core.AffinityClient
	default:
		return core.AffinityCommon
	}
}

// parseRequires extracts the literal requires array from a module
// registration, if present.
func parseRequires(content []byte) []string {
	m := requiresPattern.FindSubmatch(content)
	if m == nil {
		return nil
	}
	var requires []string
	for _, q := range quotedPattern.FindAllSubmatch(m[1], -1) {
		requires = append(requires, string(q[1]))
	}
	return requires
}

// BuildFiles builds every target into opts.BuildDir. Module files are
// copied into <buildDir>/<module>/<module>.js; descriptors concatenate
// their listed files per variant into <buildDir>/<variant>/<variant>.js.
// With opts.CacheEnabled, targets whose output is newer than all of
// their sources are skipped. A "--cssproc <base>" argument rewrites
// relative url(...) references in built content against base.
func (b *FSBuilder) BuildFiles(ctx context.Context, targets []string, opts BuildOptions) error {
	cssBase := cssprocBase(opts.Args)

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if filepath.Base(target) == descriptorName {
			err = b.buildDescriptor(target, opts, cssBase)
		} else {
			err = b.buildModule(target, opts, cssBase)
		}
		if err != nil {
			return fmt.Errorf("building %s: %w", target, err)
		}
	}
	return nil
}

// buildModule builds a single module file target.
func (b *FSBuilder) buildModule(path string, opts BuildOptions, cssBase string) error {
	record, err := b.CheckModuleFile(path)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("not a module file")
	}
	return b.writeBuild(record.Name, []string{path}, opts, cssBase)
}

// buildDescriptor builds every variant declared by a build.json target.
func (b *FSBuilder) buildDescriptor(path string, opts BuildOptions, cssBase string) error {
	desc, err := parseDescriptor(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	for _, key := range desc.variantKeys() {
		variant := desc.Builds[key]
		sources := make([]string, 0, len(variant.Files))
		for _, f := range variant.Files {
			sources = append(sources, filepath.Join(dir, f))
		}
		if err := b.writeBuild(key, sources, opts, cssBase); err != nil {
			return err
		}
	}
	return nil
}

// writeBuild concatenates sources into <buildDir>/<name>/<name>.js,
// honoring the build cache.
func (b *FSBuilder) writeBuild(name string, sources []string, opts BuildOptions, cssBase string) error {
	out := filepath.Join(opts.BuildDir, name, name+".js")

	if opts.CacheEnabled && upToDate(out, sources) {
		output.Debug("build cache hit", "name", name, "output", out)
		return nil
	}

	var sb strings.Builder
	for _, src := range sources {
		content, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}
		sb.Write(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			sb.WriteByte('\n')
		}
	}

	built := sb.String()
	if cssBase != "" {
		built = rewriteCSSURLs(built, cssBase)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating build directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(built), 0o644); err != nil {
		return fmt.Errorf("writing build output: %w", err)
	}
	output.Debug("built target", "name", name, "sources", len(sources), "output", out)
	return nil
}

// upToDate reports whether out exists and is newer than every source.
func upToDate(out string, sources []string) bool {
	outInfo, err := os.Stat(out)
	if err != nil {
		return false
	}
	for _, src := range sources {
		srcInfo, err := os.Stat(src)
		if err != nil || srcInfo.ModTime().After(outInfo.ModTime()) {
			return false
		}
	}
	return true
}

// cssprocBase extracts the value of a "--cssproc" argument, if present.
func cssprocBase(args []string) string {
	for i, arg := range args {
		if arg == "--cssproc" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// urlPattern matches url(...) references with a relative target.
var urlPattern = regexp.MustCompile(`url\(\s*['"]?([^'")]+)['"]?\s*\)`)

// rewriteCSSURLs prefixes relative url(...) references with base.
// Absolute paths, full URLs, and data URIs are left untouched.
func rewriteCSSURLs(content, base string) string {
	return urlPattern.ReplaceAllStringFunc(content, func(match string) string {
		ref := urlPattern.FindStringSubmatch(match)[1]
		if strings.HasPrefix(ref, "/") ||
			strings.Contains(ref, "://") ||
			strings.HasPrefix(ref, "data:") {
			return match
		}
		return fmt.Sprintf("url(%s/%s)", strings.TrimSuffix(base, "/"), ref)
	})
}
