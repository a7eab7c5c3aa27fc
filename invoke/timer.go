package invoke

import (
	"context"
	"sync"
	"time"
)

// Timer accumulates the wall-clock duration of the steps it runs.
type Timer struct {
	mu    sync.Mutex
	total time.Duration
	now   func() time.Time
}

// NewTimer creates a Timer using the system clock.
func NewTimer() *Timer {
	return NewTimerWithClock(time.Now)
}

// NewTimerWithClock creates a Timer reading time from now.
func NewTimerWithClock(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now}
}

// Aggregate runs fn and adds its duration to the total, even if fn panics.
func (t *Timer) Aggregate(ctx context.Context, fn func(context.Context) error) error {
	start := t.now()
	defer func() {
		elapsed := t.now().Sub(start)
		t.mu.Lock()
		t.total += elapsed
		t.mu.Unlock()
	}()
	return fn(ctx)
}

// Total returns the accumulated duration.
func (t *Timer) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}
