// Package suite is a host for specifications.
//
// A Suite owns the run-scoped pieces a test host needs: one policy cache
// shared by every specification in the run, the lifecycle, and optional
// telemetry. Each Case gets a fresh specification instance, a fresh
// aggregator and its own runner.
//
//	func TestAccounts(t *testing.T) {
//	    s, err := suite.New(t.Context(), suite.DefaultConfig())
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer s.Shutdown(context.Background())
//
//	    res := s.Run(t, "withdrawing too much", &WithdrawingTooMuch{})
//	    sp := res.Spec.(*WithdrawingTooMuch)
//	    if !errors.Is(sp.ThrownError(), ErrInsufficientFunds) {
//	        t.Errorf("unexpected error: %v", sp.ThrownError())
//	    }
//	}
package suite
