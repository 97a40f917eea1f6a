package errors

import "errors"

// Exit codes used by the CLI.
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitValidationError = 2
	ExitBuildError      = 3
	ExitNotFound        = 4
)

// ExitError carries a process exit code alongside the underlying error.
// cmd/bundlekit/main.go unwraps it to decide the exit status.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed marks that the command layer already printed the error,
	// so main must not print it again.
	Printed bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit"
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFor maps an error to an exit code using the sentinel taxonomy.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrBuild):
		return ExitBuildError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}
