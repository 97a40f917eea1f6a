package pipeline

import "fmt"

// StageError reports which stage of a change event failed. The failure
// aborts all remaining stages; no partial rollback is attempted.
type StageError struct {
	// Stage is the name of the failed stage.
	Stage string

	// Bundle is the bundle being processed.
	Bundle string

	// Err is the underlying failure.
	Err error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("bundle %q: stage %q: %v", e.Bundle, e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}
