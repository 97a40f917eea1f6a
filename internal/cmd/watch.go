package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bundlekit/cli/internal/builder"
	"github.com/bundlekit/cli/internal/discover"
	"github.com/bundlekit/cli/internal/errors"
	"github.com/bundlekit/cli/internal/filter"
	"github.com/bundlekit/cli/internal/output"
	"github.com/bundlekit/cli/internal/pipeline"
	"github.com/bundlekit/cli/internal/watch"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	var bf BuildFlags
	var debounceMs int

	c := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a bundle and rebuild on change",
		Long: `Watch a bundle directory and run an incremental build for every
coalesced set of filesystem changes.

The first event builds the whole bundle; subsequent events resolve only
the build descriptors and modules affected by the changed files. Change
events for one bundle are processed strictly one at a time.

Examples:
  # Watch the bundle in the current directory
  bundlekit watch

  # Watch with a custom debounce window
  bundlekit watch ./photos --debounce 250`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runWatch(c, args, &bf, debounceMs)
		},
	}

	bf.AddTo(c)
	c.Flags().IntVar(&debounceMs, "debounce", 0,
		"Debounce window in milliseconds (0 = config default)")
	return c
}

// runWatch executes the watch command.
func runWatch(c *cobra.Command, args []string, bf *BuildFlags, debounceMs int) error {
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

	// One pipeline for the whole session: the registry accumulates
	// metadata across change events.
	p := pipeline.New(builder.NewFSBuilder(), builder.NewFSWriter(), res.pipelineOpts)
	log := output.BundleLogger(bundle.Name)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runEvent := func(ctx context.Context, modified []string) error {
		_, descriptors, err := discover.Files(bundle)
		if err != nil {
			return err
		}
		modified = filter.Apply(res.predicate, bundle, modified)

		start := time.Now()
		report, err := p.OnChange(ctx, bundle, modified, descriptors)
		if err != nil {
			return err
		}
		if report.NoOp {
			log.Debug("change event resolved to nothing")
			return nil
		}
		log.Info("rebuilt", "targets", len(report.Targets), "took", time.Since(start).Round(time.Millisecond))
		return nil
	}

	// Initial full build before watching.
	modules, descriptors, err := discover.Files(bundle)
	if err != nil {
		return &errors.ExitError{Code: errors.ExitGeneralError, Err: err}
	}
	initial := append(append([]string{}, modules...), descriptors...)
	if err := runEvent(ctx, initial); err != nil {
		err = errors.Wrap(errors.ErrBuild, err)
		return &errors.ExitError{Code: errors.ExitCodeFor(err), Err: err}
	}

	debounce := time.Duration(debounceMs) * time.Millisecond
	if debounceMs <= 0 {
		debounce = time.Duration(loadedConfig.Watch.DebounceMs) * time.Millisecond
	}

	w, err := watch.New(watch.Config{
		Dir:      bundle.Dir,
		SkipDir:  bundle.BuildDir,
		Debounce: debounce,
		OnChange: runEvent,
	})
	if err != nil {
		return &errors.ExitError{Code: errors.ExitGeneralError, Err: err}
	}

	log.Info("watching", "dir", bundle.Dir, "debounce", debounce)
	if err := w.Run(ctx); err != nil {
		return &errors.ExitError{Code: errors.ExitGeneralError, Err: err}
	}
	return nil
}
