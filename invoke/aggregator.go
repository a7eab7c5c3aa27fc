package invoke

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Aggregator collects the failures of the composed steps of one test
// execution. It is append-only and safe for concurrent use.
type Aggregator struct {
	mu   sync.Mutex
	errs []error
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add records err. Nil errors are ignored.
func (a *Aggregator) Add(err error) {
	if err == nil {
		return
	}
	a.mu.Lock()
	a.errs = append(a.errs, err)
	a.mu.Unlock()
}

// HasErrors reports whether any failure has been recorded.
func (a *Aggregator) HasErrors() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.errs) > 0
}

// Run calls fn and records its error, or the panic it raised, and returns
// what was recorded.
func (a *Aggregator) Run(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
		a.Add(err)
	}()
	return fn(ctx)
}

// Errors returns a copy of the recorded failures in order.
func (a *Aggregator) Errors() []error {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]error, len(a.errs))
	copy(out, a.errs)
	return out
}

// Err returns nil when nothing was recorded, the failure itself when
// exactly one was recorded, and all failures joined otherwise.
func (a *Aggregator) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch len(a.errs) {
	case 0:
		return nil
	case 1:
		return a.errs[0]
	default:
		return errors.Join(a.errs...)
	}
}
