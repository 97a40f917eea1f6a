// Package main is the entry point for the bundlekit CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bundlekit/cli/internal/cmd"
	berrors "github.com/bundlekit/cli/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		// Check if the error carries a specific exit code
		var exitErr *berrors.ExitError
		if errors.As(err, &exitErr) {
			// Only print if the command layer hasn't already printed it
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitErr.Code)
		}
		// Non-ExitError: print it and classify via the sentinel taxonomy
		fmt.Fprintln(os.Stderr, err)
		os.Exit(berrors.ExitCodeFor(err))
	}
}
