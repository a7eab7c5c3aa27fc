package invoke

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jonwraymond/specops/observe"
	"github.com/jonwraymond/specops/spec"
)

// State is the position of a Runner in its state machine:
// Idle -> CheckingGates -> {Skipped | Running} -> Settled.
type State int32

const (
	StateIdle State = iota
	StateCheckingGates
	StateSkipped
	StateRunning
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCheckingGates:
		return "checking_gates"
	case StateSkipped:
		return "skipped"
	case StateRunning:
		return "running"
	case StateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// SkipReason explains why a Runner did no work.
type SkipReason int

const (
	// NotSkipped means the lifecycle ran.
	NotSkipped SkipReason = iota
	// SkipCanceled means the context was canceled before observation.
	SkipCanceled
	// SkipPriorFailure means the aggregator already held a failure.
	SkipPriorFailure
)

func (r SkipReason) String() string {
	switch r {
	case NotSkipped:
		return "none"
	case SkipCanceled:
		return "canceled"
	case SkipPriorFailure:
		return "prior_failure"
	default:
		return "unknown"
	}
}

// Outcome is the settled result of Run.
type Outcome struct {
	// Elapsed is the timer total after the run; zero for a fresh timer
	// when the run was skipped.
	Elapsed time.Duration

	// Skipped is NotSkipped when the lifecycle ran.
	Skipped SkipReason

	// Err is the failure this run recorded in the aggregator, if any.
	Err error
}

// Ran reports whether the lifecycle was invoked.
func (o Outcome) Ran() bool {
	return o.Skipped == NotSkipped
}

// Runner runs one specification instance for a host.
//
// Contract:
// - Single use: Run settles once; later calls return ErrAlreadyRun.
// - Cancellation: checked once up front; a started observation completes.
// - Errors: lifecycle failures go to the Aggregator, never to the caller.
type Runner struct {
	spec       spec.Specification
	lifecycle  *spec.Lifecycle
	aggregator *Aggregator
	timer      *Timer

	middleware *observe.Middleware
	meta       observe.SpecMeta

	state atomic.Int32
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimer sets the timer that accumulates elapsed time.
func WithTimer(t *Timer) Option {
	return func(r *Runner) {
		if t != nil {
			r.timer = t
		}
	}
}

// WithInstrumentation wraps the timed step with the given middleware.
func WithInstrumentation(mw *observe.Middleware, meta observe.SpecMeta) Option {
	return func(r *Runner) {
		r.middleware = mw
		r.meta = meta
	}
}

// NewRunner creates a Runner for s. A nil lifecycle or aggregator gets a
// fresh default.
func NewRunner(s spec.Specification, lc *spec.Lifecycle, agg *Aggregator, opts ...Option) *Runner {
	if lc == nil {
		lc = spec.NewLifecycle(nil)
	}
	if agg == nil {
		agg = NewAggregator()
	}
	r := &Runner{
		spec:       s,
		lifecycle:  lc,
		aggregator: agg,
		timer:      NewTimer(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run checks the gates and, if they pass, initializes the specification
// inside the timer. It always settles with an Outcome.
func (r *Runner) Run(ctx context.Context) Outcome {
	if !r.state.CompareAndSwap(int32(StateIdle), int32(StateCheckingGates)) {
		return Outcome{Elapsed: r.timer.Total(), Err: ErrAlreadyRun}
	}
	defer r.state.Store(int32(StateSettled))

	if ctx.Err() != nil {
		return r.skip(ctx, SkipCanceled)
	}
	if r.aggregator.HasErrors() {
		return r.skip(ctx, SkipPriorFailure)
	}

	r.state.Store(int32(StateRunning))

	step := observe.StepFunc(func(ctx context.Context) error {
		return r.lifecycle.Initialize(ctx, r.spec)
	})
	if r.middleware != nil {
		step = r.middleware.Wrap(r.meta, step)
	}

	err := r.aggregator.Run(ctx, func(ctx context.Context) error {
		return r.timer.Aggregate(ctx, step)
	})

	return Outcome{Elapsed: r.timer.Total(), Err: err}
}

func (r *Runner) skip(ctx context.Context, reason SkipReason) Outcome {
	r.state.Store(int32(StateSkipped))
	if r.middleware != nil {
		r.middleware.Skipped(ctx, r.meta, reason.String())
	}
	return Outcome{Elapsed: r.timer.Total(), Skipped: reason}
}

// Dispose is the teardown hook handed back to the host.
func (r *Runner) Dispose(ctx context.Context) error {
	return r.lifecycle.Dispose(ctx, r.spec)
}

// State returns the current state.
func (r *Runner) State() State {
	return State(r.state.Load())
}

// Aggregator returns the aggregator failures are recorded into.
func (r *Runner) Aggregator() *Aggregator {
	return r.aggregator
}
