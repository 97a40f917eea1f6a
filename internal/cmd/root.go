// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bundlekit/cli/internal/config"
	"github.com/bundlekit/cli/internal/output"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	quietFlag      bool
	silentFlag     bool
	timestampsFlag bool

	// Loaded configuration (populated during PersistentPreRunE)
	loadedConfig *config.Config
)

// NewRootCmd creates the root command for the bundlekit CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bundlekit",
		Short: "Incremental bundle builder and loader-manifest generator",
		Long: `bundlekit builds YUI-style module bundles incrementally: it classifies
changed files into build targets, compiles client- and server-facing
loader manifests from accumulated build metadata, generates a per-bundle
meta-module, and invokes the module builder over the target set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: BUNDLEKIT_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Log warnings and errors only")
	rootCmd.PersistentFlags().BoolVar(&silentFlag, "silent", false, "Suppress all log output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewWatchCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		return err
	}
	loadedConfig = cfg

	quiet := cfg.Quiet || quietFlag
	silent := cfg.Silent || silentFlag

	logCfg := output.LogConfig{
		Verbose: verboseFlag,
		Quiet:   quiet,
		Silent:  silent,
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	}
	output.SetupLogging(logCfg)

	return nil
}
