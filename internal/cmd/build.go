package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/bundlekit/cli/internal/builder"
	"github.com/bundlekit/cli/internal/core"
	"github.com/bundlekit/cli/internal/discover"
	"github.com/bundlekit/cli/internal/errors"
	"github.com/bundlekit/cli/internal/filter"
	"github.com/bundlekit/cli/internal/output"
	"github.com/bundlekit/cli/internal/pipeline"
	"github.com/bundlekit/cli/internal/registry"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	var bf BuildFlags
	var outputFlag string

	c := &cobra.Command{
		Use:   "build [path]",
		Short: "Build a bundle and its loader manifests",
		Long: `Build every module and build descriptor in a bundle directory.

All discovered files are treated as modified: the full target set is
resolved, client and server loader manifests are compiled, the
meta-module artifact is written into the bundle, and the module builder
runs over the targets.

Arguments:
  path    Path to the bundle directory (default: current directory)

Examples:
  # Build the bundle in the current directory
  bundlekit build

  # Build a specific bundle without the build cache
  bundlekit build ./photos --no-cache

  # Restrict the build to a subtree
  bundlekit build ./photos --filter 'src/**/*.js'

  # Print the client loader manifest as JSON
  bundlekit build ./photos -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c, args, &bf, outputFlag)
		},
	}

	bf.AddTo(c)
	c.Flags().StringVarP(&outputFlag, "output", "o", "table",
		"Output format: table, json, yaml")
	return c
}

// runBuild executes the build command.
func runBuild(c *cobra.Command, args []string, bf *BuildFlags, outputFmt string) error {
	ctx := context.Background()

	format, valid := output.ParseFormat(outputFmt)
	if !valid {
		return &errors.ExitError{
			Code: errors.ExitGeneralError,
			Err:  fmt.Errorf("invalid output format %q (valid: %v)", outputFmt, output.ValidFormats()),
		}
	}

	res, err := bf.resolve(c, loadedConfig)
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	bundle, err := discover.Bundle(dir, res.buildDirName)
	if err != nil {
		return &errors.ExitError{Code: errors.ExitCodeFor(err), Err: err}
	}

	modules, descriptors, err := discover.Files(bundle)
	if err != nil {
		return &errors.ExitError{Code: errors.ExitGeneralError, Err: err}
	}

	// One-shot build: every discovered file counts as modified.
	modified := append(append([]string{}, modules...), descriptors...)
	modified = filter.Apply(res.predicate, bundle, modified)

	p := pipeline.New(builder.NewFSBuilder(), builder.NewFSWriter(), res.pipelineOpts)

	start := time.Now()
	var report *pipeline.Report
	err = output.RunWithSpinner(ctx, func() error {
		var runErr error
		report, runErr = p.OnChange(ctx, bundle, modified, descriptors)
		return runErr
	}, output.WithTitle(output.StyleAction.Render(fmt.Sprintf("Building %s...", bundle.Name))))
	if err != nil {
		err = errors.Wrap(errors.ErrBuild, err)
		return &errors.ExitError{Code: errors.ExitCodeFor(err), Err: err}
	}

	return printReport(bundle, report, format, p.Registry(), start)
}

// printReport renders the build outcome in the selected format.
func printReport(bundle *core.Bundle, report *pipeline.Report, format output.Format, reg *registry.Registry, start time.Time) error {
	if format == output.FormatTable {
		printSummaryTable(bundle, report, reg, start)
		return nil
	}

	// json/yaml: emit the attached loader manifests.
	manifests := struct {
		Server map[string]*core.Metadata `json:"server,omitempty"`
		Client map[string]*core.Metadata `json:"client,omitempty"`
	}{bundle.Server, bundle.Client}

	encoded, err := json.MarshalIndent(manifests, "", "  ")
	if err != nil {
		return &errors.ExitError{Code: errors.ExitGeneralError, Err: err}
	}
	if format == output.FormatYAML {
		if encoded, err = yaml.JSONToYAML(encoded); err != nil {
			return &errors.ExitError{Code: errors.ExitGeneralError, Err: err}
		}
		output.Print(string(encoded))
		return nil
	}
	output.Println(string(encoded))
	return nil
}

// printSummaryTable prints the human-readable build summary.
func printSummaryTable(bundle *core.Bundle, report *pipeline.Report, reg *registry.Registry, start time.Time) {
	if report.NoOp {
		output.Println(fmt.Sprintf("%s %s: nothing to build",
			output.StatusStyle(output.StatusNoOp).Render(output.StatusNoOp),
			output.StyleNoun.Render(bundle.Name)))
		return
	}

	tbl := output.NewTable("TARGET", "STATUS")
	for _, target := range report.Targets {
		rel, err := filepath.Rel(bundle.Dir, target)
		if err != nil {
			rel = target
		}
		status := targetStatus(bundle, reg, target, start)
		tbl.Row(rel, output.StatusStyle(status).Render(status))
	}
	output.Println(tbl.Render())

	details := fmt.Sprintf("%d target(s), %d client module(s), %d server module(s)",
		len(report.Targets), len(bundle.Client), len(bundle.Server))
	summary := output.StyleSummary.Render(fmt.Sprintf("%s %s:",
		output.Checkmark(), output.StyleNoun.Render(bundle.Name)))
	output.Println(summary + " " + output.StyleDim.Render(details))
}

// targetStatus classifies a built target as a fresh build or a cache
// hit. Every build variant of the target's registered record writes to
// <buildDir>/<key>/<key>.js; the target counts as cached when all of
// those outputs predate the build start. Unregistered targets (the
// generated meta-module) are always fresh builds.
func targetStatus(bundle *core.Bundle, reg *registry.Registry, target string, start time.Time) string {
	record, ok := reg.Lookup(bundle.Name)[target]
	if !ok {
		return output.StatusBuilt
	}
	for key := range record.Builds {
		out := filepath.Join(bundle.BuildDir, key, key+".js")
		info, err := os.Stat(out)
		if err != nil || !info.ModTime().Before(start) {
			return output.StatusBuilt
		}
	}
	return output.StatusCached
}
