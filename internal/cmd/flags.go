package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bundlekit/cli/internal/config"
	"github.com/bundlekit/cli/internal/errors"
	"github.com/bundlekit/cli/internal/filter"
	"github.com/bundlekit/cli/internal/pipeline"
)

// BuildFlags are the flags shared by the build and watch commands.
type BuildFlags struct {
	NoCache  bool
	CSSProc  string
	Filter   string
	BuildDir string
	Args     []string
	Lint     bool
	Coverage bool
}

// AddTo registers the shared flags on a command.
func (f *BuildFlags) AddTo(c *cobra.Command) {
	c.Flags().BoolVar(&f.NoCache, "no-cache", false, "Disable the build cache")
	c.Flags().StringVar(&f.CSSProc, "cssproc", "", "Base URL for per-bundle CSS url() rewriting")
	c.Flags().StringVar(&f.Filter, "filter", "", "Glob filter applied to modified files (doublestar syntax)")
	c.Flags().StringVar(&f.BuildDir, "build-dir", "", "Name of the build output directory inside the bundle")
	c.Flags().StringArrayVar(&f.Args, "arg", nil, "Extra module-builder argument (repeatable)")
	c.Flags().BoolVar(&f.Lint, "lint", false, "Forward --lint to the module builder")
	c.Flags().BoolVar(&f.Coverage, "coverage", false, "Forward --coverage to the module builder")
}

// resolved holds the effective build configuration after merging flags
// over the loaded config (flag > env > config > default).
type resolved struct {
	pipelineOpts pipeline.Options
	buildDirName string
	predicate    filter.Predicate
}

// resolve merges flags over cfg and compiles the file filter.
func (f *BuildFlags) resolve(c *cobra.Command, cfg *config.Config) (*resolved, error) {
	cssproc := cfg.CSSProc
	if c.Flags().Changed("cssproc") {
		cssproc = f.CSSProc
	}

	pattern := cfg.Filter
	if c.Flags().Changed("filter") {
		pattern = f.Filter
	}
	pred, err := filter.FromPattern(pattern)
	if err != nil {
		return nil, &errors.ExitError{Code: errors.ExitValidationError, Err: err}
	}

	buildDirName := cfg.BuildDirName
	if c.Flags().Changed("build-dir") {
		buildDirName = f.BuildDir
	}

	args := cfg.BuilderArgs()
	args = append(args, f.Args...)
	if f.Lint && !cfg.Lint {
		args = append(args, "--lint")
	}
	if f.Coverage && !cfg.Coverage {
		args = append(args, "--coverage")
	}

	return &resolved{
		pipelineOpts: pipeline.Options{
			CacheEnabled: cfg.CacheEnabled() && !f.NoCache,
			Args:         args,
			CSSProcBase:  cssproc,
		},
		buildDirName: buildDirName,
		predicate:    pred,
	}, nil
}
