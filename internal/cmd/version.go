package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/bundlekit/cli/internal/errors"
	"github.com/bundlekit/cli/internal/output"
	"github.com/bundlekit/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var jsonFlag bool

	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			info := version.GetInfo()
			if jsonFlag {
				encoded, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return &errors.ExitError{Code: errors.ExitGeneralError, Err: err}
				}
				output.Println(string(encoded))
				return nil
			}
			output.Println(info.String())
			return nil
		},
	}

	c.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON")
	return c
}
