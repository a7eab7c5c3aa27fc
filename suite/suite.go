package suite

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/specops/invoke"
	"github.com/jonwraymond/specops/observe"
	"github.com/jonwraymond/specops/policy"
	"github.com/jonwraymond/specops/spec"
)

// Case is one named specification execution.
type Case struct {
	// Name identifies the case. Default: the specification type name.
	Name string

	// New returns a fresh specification instance.
	New func() spec.Specification

	// Tags are attached to telemetry.
	Tags []string
}

// Result is the outcome of one case.
type Result struct {
	Name    string
	Spec    spec.Specification
	Elapsed time.Duration
	Skipped invoke.SkipReason
	Err     error
}

// Passed reports whether the case ran without a recorded failure.
func (r Result) Passed() bool {
	return r.Err == nil && r.Skipped == invoke.NotSkipped
}

// Suite executes specifications with run-scoped shared state.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Ownership: the policy cache lives as long as the Suite.
type Suite struct {
	cfg        Config
	policies   *policy.Cache
	lifecycle  *spec.Lifecycle
	observer   observe.Observer
	middleware *observe.Middleware
	logger     observe.Logger
}

// Option configures a Suite.
type Option func(*suiteOptions)

type suiteOptions struct {
	policies *policy.Cache
	observer observe.Observer
	observe  []observe.Option
}

// WithPolicyCache shares an existing policy cache instead of creating one.
func WithPolicyCache(c *policy.Cache) Option {
	return func(o *suiteOptions) {
		o.policies = c
	}
}

// WithObserver uses obs instead of building one from Config.Observe.
func WithObserver(obs observe.Observer) Option {
	return func(o *suiteOptions) {
		o.observer = obs
	}
}

// WithObserveOptions passes options to observe.NewObserver.
func WithObserveOptions(opts ...observe.Option) Option {
	return func(o *suiteOptions) {
		o.observe = append(o.observe, opts...)
	}
}

// New creates a Suite.
func New(ctx context.Context, cfg Config, opts ...Option) (*Suite, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o suiteOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.policies == nil {
		o.policies = policy.New()
	}

	obs := o.observer
	if obs == nil {
		var err error
		obs, err = observe.NewObserver(ctx, cfg.Observe, o.observe...)
		if err != nil {
			return nil, fmt.Errorf("suite: create observer: %w", err)
		}
	}

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return nil, fmt.Errorf("suite: create middleware: %w", err)
	}

	return &Suite{
		cfg:        cfg,
		policies:   o.policies,
		lifecycle:  spec.NewLifecycle(o.policies),
		observer:   obs,
		middleware: mw,
		logger:     obs.Logger(),
	}, nil
}

// Policies returns the run-scoped policy cache.
func (s *Suite) Policies() *policy.Cache {
	return s.policies
}

// Config returns the effective configuration.
func (s *Suite) Config() Config {
	return s.cfg
}

// Execute runs one case with a fresh aggregator and runner.
func (s *Suite) Execute(ctx context.Context, c Case) Result {
	if c.New == nil {
		return Result{Name: c.Name, Err: ErrNilFactory}
	}
	sp := c.New()
	if sp == nil {
		return Result{Name: c.Name, Err: ErrNilSpecification}
	}

	meta := observe.MetaOf(sp)
	if c.Name != "" {
		meta.Name = c.Name
	}
	meta.Tolerant = s.policies.ShouldTolerate(reflect.TypeOf(sp))
	meta.Tags = c.Tags

	agg := invoke.NewAggregator()
	r := invoke.NewRunner(sp, s.lifecycle, agg, invoke.WithInstrumentation(s.middleware, meta))

	out := r.Run(ctx)
	agg.Add(r.Dispose(ctx))

	return Result{
		Name:    meta.Name,
		Spec:    sp,
		Elapsed: out.Elapsed,
		Skipped: out.Skipped,
		Err:     agg.Err(),
	}
}

// ExecuteAll runs cases concurrently, bounded by Config.Parallelism.
// Results are returned in case order.
func (s *Suite) ExecuteAll(ctx context.Context, cases []Case) []Result {
	results := make([]Result, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Parallelism)

	for i, c := range cases {
		g.Go(func() error {
			results[i] = s.Execute(gctx, c)
			if s.cfg.FailFast {
				return results[i].Err
			}
			return nil
		})
	}
	_ = g.Wait()

	sum := Summarize(results)
	s.logger.Info(ctx, "suite finished",
		observe.Field{Key: "total", Value: sum.Total},
		observe.Field{Key: "passed", Value: sum.Passed},
		observe.Field{Key: "failed", Value: sum.Failed},
		observe.Field{Key: "skipped", Value: sum.Skipped},
		observe.Field{Key: "duration_ms", Value: float64(sum.Elapsed) / float64(time.Millisecond)},
	)

	return results
}

// Run executes s as a single case of t and reports a recorded failure
// through t.Errorf.
func (s *Suite) Run(t testing.TB, name string, sp spec.Specification) Result {
	t.Helper()

	res := s.Execute(t.Context(), Case{
		Name: name,
		New:  func() spec.Specification { return sp },
	})
	switch {
	case res.Err != nil:
		t.Errorf("%s: %v", res.Name, res.Err)
	case res.Skipped != invoke.NotSkipped:
		t.Logf("%s: skipped (%s)", res.Name, res.Skipped)
	default:
		t.Logf("%s: observed in %s", res.Name, res.Elapsed)
	}
	return res
}

// Shutdown flushes and stops telemetry.
func (s *Suite) Shutdown(ctx context.Context) error {
	return s.observer.Shutdown(ctx)
}

// Summary counts results.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Elapsed time.Duration
}

// Summarize counts results by outcome and sums their elapsed time.
func Summarize(results []Result) Summary {
	sum := Summary{Total: len(results)}
	for _, r := range results {
		sum.Elapsed += r.Elapsed
		switch {
		case r.Err != nil:
			sum.Failed++
		case r.Skipped != invoke.NotSkipped:
			sum.Skipped++
		default:
			sum.Passed++
		}
	}
	return sum
}
