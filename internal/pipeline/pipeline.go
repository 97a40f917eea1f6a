// Package pipeline orchestrates one change event end to end: target
// resolution, server- and client-view metadata compilation, meta-module
// generation, and the module builder invocation.
//
// Stages run strictly in sequence as an ordered list of fallible steps;
// a stage failure short-circuits every remaining stage and fails the
// whole event. There is no rollback or retry; metadata already written
// to the registry stays there for the next event's consideration.
package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bundlekit/cli/internal/builder"
	"github.com/bundlekit/cli/internal/core"
	"github.com/bundlekit/cli/internal/loader"
	"github.com/bundlekit/cli/internal/output"
	"github.com/bundlekit/cli/internal/registry"
	"github.com/bundlekit/cli/internal/resolve"
)

// Options carries the pipeline's pass-through build configuration.
type Options struct {
	// CacheEnabled enables the module builder's build cache.
	CacheEnabled bool

	// Args are extra arguments forwarded to the module builder.
	Args []string

	// CSSProcBase, when set, derives a per-bundle "--cssproc" builder
	// argument from the bundle's own directory name. It applies
	// uniformly to the whole target set.
	CSSProcBase string
}

// Pipeline processes change events for bundles. One Pipeline owns one
// registry; callers must serialize change events per bundle. The
// design assumes a single in-flight event per bundle and takes no locks.
type Pipeline struct {
	registry *registry.Registry
	resolver *resolve.Resolver
	compiler *loader.Compiler
	builder  builder.ModuleBuilder
	writer   builder.ArtifactWriter
	opts     Options
}

// New creates a pipeline with a fresh registry. The registry's lifetime
// is the pipeline's lifetime; recreating the pipeline resets all
// accumulated metadata.
func New(b builder.ModuleBuilder, w builder.ArtifactWriter, opts Options) *Pipeline {
	reg := registry.New()
	return &Pipeline{
		registry: reg,
		resolver: resolve.New(b, reg),
		compiler: loader.NewCompiler(reg),
		builder:  b,
		writer:   w,
		opts:     opts,
	}
}

// Registry exposes the pipeline's registry for inspection.
func (p *Pipeline) Registry() *registry.Registry {
	return p.registry
}

// Report summarizes one processed change event.
type Report struct {
	// NoOp is set when the event resolved to nothing to build.
	NoOp bool

	// Targets is the final build target set, including the generated
	// meta-module when one was written.
	Targets []string

	// MetaModulePath is the written meta-module artifact path, if any.
	MetaModulePath string
}

// stage is one fallible step of the event sequence.
type stage struct {
	name string
	run  func(ctx context.Context) error
}

// OnChange processes one change event for bundle. modified lists the
// changed file paths; descriptors lists all known build descriptor
// paths in the bundle (unchanged ones included).
//
// Stage order: resolve targets → compile server view → attach → compile
// client view → attach + write meta-module artifact → record artifact
// as extra target → invoke builder over the full target set. An empty
// target set (or an empty registry) stops the event as a no-op.
func (p *Pipeline) OnChange(ctx context.Context, bundle *core.Bundle, modified, descriptors []string) (*Report, error) {
	ev := &event{
		pipeline:    p,
		bundle:      bundle,
		modified:    modified,
		descriptors: descriptors,
	}

	stages := []stage{
		{name: "resolve targets", run: ev.resolveTargets},
		{name: "compile server view", run: ev.compileServer},
		{name: "compile client view", run: ev.compileClient},
		{name: "write meta-module", run: ev.writeMetaModule},
		{name: "build", run: ev.build},
	}

	for _, s := range stages {
		if err := s.run(ctx); err != nil {
			return nil, &StageError{Stage: s.name, Bundle: bundle.Name, Err: err}
		}
		if ev.stopped {
			break
		}
	}

	return ev.report(), nil
}

// event carries the state of one in-flight change event across stages.
type event struct {
	pipeline    *Pipeline
	bundle      *core.Bundle
	modified    []string
	descriptors []string

	targets  []string
	clientJS string
	metaPath string
	stopped  bool
}

// resolveTargets runs the build-set resolver and applies the no-op stop
// condition: nothing to build, or nothing ever registered.
func (ev *event) resolveTargets(context.Context) error {
	ev.targets = ev.pipeline.resolver.BuildTargets(ev.bundle, ev.modified, ev.descriptors)
	if len(ev.targets) == 0 || len(ev.pipeline.registry.Lookup(ev.bundle.Name)) == 0 {
		output.Debug("nothing to build", "bundle", ev.bundle.Name, "modified", len(ev.modified))
		ev.stopped = true
	}
	return nil
}

// compileServer compiles the server view and attaches it to the bundle.
// Attachment is plain structure mutation and always succeeds.
func (ev *event) compileServer(context.Context) error {
	if data := ev.pipeline.compiler.Compile(ev.bundle, loader.ServerView, false); data != nil {
		ev.bundle.Server = data.JSON
	}
	return nil
}

// compileClient compiles the client view (with the synthesized
// meta-module entry) and attaches it to the bundle.
func (ev *event) compileClient(context.Context) error {
	if data := ev.pipeline.compiler.Compile(ev.bundle, loader.ClientView, true); data != nil {
		ev.bundle.Client = data.JSON
		ev.clientJS = data.JS
	}
	return nil
}

// writeMetaModule persists the generated meta-module and records it as
// an extra build target. With no client view there is nothing to write.
func (ev *event) writeMetaModule(context.Context) error {
	path, err := ev.pipeline.writer.WriteArtifact(ev.bundle, ev.bundle.MetaModuleFile(), ev.clientJS)
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	ev.metaPath = path
	ev.bundle.MetaModuleFullpath = path
	ev.bundle.MetaModuleName = ev.bundle.MetaModule()
	ev.targets = append(ev.targets, path)
	return nil
}

// build invokes the module builder over the full target set.
func (ev *event) build(ctx context.Context) error {
	opts := ev.pipeline.opts

	args := make([]string, len(opts.Args))
	copy(args, opts.Args)
	if opts.CSSProcBase != "" {
		base := strings.TrimSuffix(opts.CSSProcBase, "/") + "/" + filepath.Base(ev.bundle.Dir)
		args = append(args, "--cssproc", base)
	}

	return ev.pipeline.builder.BuildFiles(ctx, ev.targets, builder.BuildOptions{
		BuildDir:     ev.bundle.BuildDir,
		Args:         args,
		CacheEnabled: opts.CacheEnabled,
	})
}

// report summarizes the event for the caller.
func (ev *event) report() *Report {
	if ev.stopped {
		return &Report{NoOp: true, Targets: []string{}}
	}
	return &Report{
		Targets:        ev.targets,
		MetaModulePath: ev.metaPath,
	}
}
