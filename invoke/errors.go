package invoke

import "errors"

// Sentinel errors for invocation.
var (
	// ErrAlreadyRun is returned when a Runner is run more than once.
	ErrAlreadyRun = errors.New("invoke: runner already run")

	// ErrPanicked wraps a panic recovered by the Aggregator.
	ErrPanicked = errors.New("invoke: step panicked")
)
