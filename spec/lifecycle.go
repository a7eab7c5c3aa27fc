package spec

import (
	"context"
	"reflect"

	"github.com/jonwraymond/specops/policy"
)

// Lifecycle runs specifications through setup, observation and follow-up.
//
// Contract:
// - Concurrency: safe for concurrent use across distinct specifications.
// - Ordering: steps of one specification never interleave or reorder.
// - Errors: an untolerated failure is returned unchanged; nothing is logged.
type Lifecycle struct {
	policies *policy.Cache
}

// NewLifecycle creates a Lifecycle that consults the given policy cache.
// A nil cache gets a fresh one.
func NewLifecycle(policies *policy.Cache) *Lifecycle {
	if policies == nil {
		policies = policy.New()
	}
	return &Lifecycle{policies: policies}
}

// Policies returns the policy cache used by the lifecycle.
func (l *Lifecycle) Policies() *policy.Cache {
	return l.policies
}

// Initialize runs BeforeObserve, Observe and AfterObserve once.
//
// The first failing step ends the sequence. Its error is captured on the
// specification; if the specification type tolerates errors, Initialize
// returns nil, otherwise it returns the error unchanged. A panicking step is
// reported as *PanicError.
func (l *Lifecycle) Initialize(ctx context.Context, s Specification) error {
	if s == nil {
		return ErrNilSpecification
	}

	b := baseOf(s)
	if b != nil && !b.begin() {
		return ErrAlreadyInitialized
	}

	err := run(ctx, s)
	if err == nil {
		return nil
	}

	if b != nil {
		b.capture(err)
	}
	if l.policies.ShouldTolerate(reflect.TypeOf(s)) {
		return nil
	}
	return err
}

// Dispose releases the specification. It currently has nothing to release
// and always succeeds.
func (l *Lifecycle) Dispose(_ context.Context, _ Specification) error {
	return nil
}

func run(ctx context.Context, s Specification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newPanicError(r)
		}
	}()

	if h, ok := s.(BeforeObserver); ok {
		if err := h.BeforeObserve(ctx); err != nil {
			return err
		}
	}
	if err := s.Observe(ctx); err != nil {
		return err
	}
	if h, ok := s.(AfterObserver); ok {
		if err := h.AfterObserve(ctx); err != nil {
			return err
		}
	}
	return nil
}
