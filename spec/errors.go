package spec

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Sentinel errors for lifecycle operations.
var (
	// ErrNilSpecification is returned when a nil specification is initialized.
	ErrNilSpecification = errors.New("spec: specification is nil")

	// ErrAlreadyInitialized is returned when a specification is initialized twice.
	ErrAlreadyInitialized = errors.New("spec: specification already initialized")
)

// PanicError is captured when a lifecycle step panics.
type PanicError struct {
	// Value is the value passed to panic.
	Value any

	// Stack is the goroutine stack at the time of recovery.
	Stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("spec: panic during observation: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
