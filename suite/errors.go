package suite

import "errors"

// Sentinel errors for suite operations.
var (
	// ErrInvalidParallelism indicates a negative Config.Parallelism.
	ErrInvalidParallelism = errors.New("suite: parallelism must not be negative")

	// ErrNilFactory indicates a Case without a specification factory.
	ErrNilFactory = errors.New("suite: case has no specification factory")

	// ErrNilSpecification indicates a factory returned nil.
	ErrNilSpecification = errors.New("suite: factory returned a nil specification")
)
