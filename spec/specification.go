package spec

import (
	"context"
	"sync"
)

// Specification is a single observed behavior.
//
// Contract:
// - Observe performs the action under test and returns its error, if any.
// - Instances are created per execution and initialized at most once.
type Specification interface {
	Observe(ctx context.Context) error
}

// BeforeObserver is implemented by specifications with a setup step.
type BeforeObserver interface {
	BeforeObserve(ctx context.Context) error
}

// AfterObserver is implemented by specifications with a follow-up step.
type AfterObserver interface {
	AfterObserve(ctx context.Context) error
}

// Base supplies no-op hooks and error capture. Embed it in a specification
// struct and use the specification through a pointer.
type Base struct {
	mu          sync.Mutex
	thrown      error
	initialized bool
}

// BeforeObserve does nothing. Embedding types shadow it to add setup.
func (b *Base) BeforeObserve(context.Context) error { return nil }

// AfterObserve does nothing. Embedding types shadow it to add follow-up work.
func (b *Base) AfterObserve(context.Context) error { return nil }

// ThrownError returns the error raised during initialization, or nil.
func (b *Base) ThrownError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.thrown
}

func (b *Base) base() *Base { return b }

// capture replaces any previously captured error.
func (b *Base) capture(err error) {
	b.mu.Lock()
	b.thrown = err
	b.mu.Unlock()
}

// begin flips the instance to initialized and reports whether it was fresh.
func (b *Base) begin() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return false
	}
	b.initialized = true
	return true
}

type embedsBase interface {
	base() *Base
}

func baseOf(s Specification) *Base {
	if e, ok := s.(embedsBase); ok {
		return e.base()
	}
	return nil
}
