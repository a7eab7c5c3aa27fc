// Package invoke adapts the specification lifecycle into a cancellable,
// timed unit of work for a host test runner.
//
// A Runner checks two gates before doing any work: the context must not be
// canceled, and the host's Aggregator must not already hold a failure. When
// both pass, the lifecycle is initialized inside a Timer, and any error it
// returns is recorded in the Aggregator instead of being returned. Run
// therefore always settles with an Outcome; failures are read from the
// Aggregator.
//
//	agg := invoke.NewAggregator()
//	r := invoke.NewRunner(&WithdrawingTooMuch{}, lifecycle, agg)
//	out := r.Run(ctx)
//	defer r.Dispose(ctx)
//	if err := agg.Err(); err != nil {
//	    t.Fatal(err)
//	}
package invoke
