package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bundlekit/cli/internal/config"
	"github.com/bundlekit/cli/internal/errors"
	"github.com/bundlekit/cli/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Manage bundlekit configuration",
	}
	c.AddCommand(newConfigInitCmd())
	c.AddCommand(newConfigVetCmd())
	return c
}

// newConfigInitCmd creates the config init command.
func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate the default config file",
		Long: `Write the default configuration to ~/.bundlekit/config.yaml
(or the path given by --config / BUNDLEKIT_CONFIG). Refuses to
overwrite an existing file.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			path := configFlag
			if path == "" {
				var err error
				path, err = config.GetConfigFile()
				if err != nil {
					return &errors.ExitError{Code: errors.ExitGeneralError, Err: err}
				}
			}
			if err := config.WriteDefault(path); err != nil {
				return &errors.ExitError{Code: errors.ExitGeneralError, Err: err}
			}
			output.Info("wrote config file", "path", path)
			return nil
		},
	}
}

// newConfigVetCmd creates the config vet command.
func newConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the config file",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			// loadedConfig was produced during PersistentPreRunE; vet
			// revalidates it and reports the result explicitly.
			if err := loadedConfig.Validate(); err != nil {
				return &errors.ExitError{
					Code: errors.ExitValidationError,
					Err:  fmt.Errorf("%w: %v", errors.ErrValidation, err),
				}
			}
			output.Println(output.Checkmark() + " config is valid")
			return nil
		},
	}
}
