package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks the configuration for invalid values. It returns nil
// when the config is valid.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Filter != "" && !doublestar.ValidatePattern(c.Filter) {
		errs = append(errs, ValidationError{
			Field:   "filter",
			Message: fmt.Sprintf("invalid glob pattern %q", c.Filter),
		})
	}

	if strings.ContainsAny(c.BuildDirName, `/\`) {
		errs = append(errs, ValidationError{
			Field:   "buildDirName",
			Message: "must be a plain directory name, not a path",
		})
	}

	if c.Watch.DebounceMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounceMs",
			Message: "must not be negative",
		})
	}

	if c.Quiet && c.Silent {
		errs = append(errs, ValidationError{
			Field:   "quiet",
			Message: "quiet and silent are mutually exclusive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
