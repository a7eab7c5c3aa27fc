// Package spec provides the specification lifecycle for behavior-style tests.
//
// A specification describes one behavior: an optional setup step, the
// observed action, and an optional follow-up step. Assertions are written as
// ordinary test code against the specification after it has been observed.
//
// # Lifecycle
//
// Lifecycle.Initialize runs BeforeObserve, Observe and AfterObserve in that
// order and stops at the first failure. The failure (a returned error or a
// recovered panic) is captured on the specification and then either
// swallowed or returned, depending on whether the specification type is
// error tolerant (see package policy).
//
// # Usage
//
//	type WithdrawingTooMuch struct {
//	    spec.Base
//	    policy.HandleErrors
//	    account *Account
//	}
//
//	func (s *WithdrawingTooMuch) BeforeObserve(ctx context.Context) error {
//	    s.account = NewAccount(10)
//	    return nil
//	}
//
//	func (s *WithdrawingTooMuch) Observe(ctx context.Context) error {
//	    return s.account.Withdraw(20)
//	}
//
//	// After initialization:
//	//   errors.Is(s.ThrownError(), ErrInsufficientFunds)
//
// Specifications are used through a pointer and are never reused across
// test executions.
package spec
