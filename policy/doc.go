// Package policy decides whether a specification type tolerates errors
// raised while it is being observed.
//
// A type opts in by embedding HandleErrors, directly or through another
// embedded struct. The decision is computed once per type and cached by a
// Cache that the host owns for the lifetime of a test run.
//
//	type RejectsEmptyName struct {
//	    spec.Base
//	    policy.HandleErrors
//	}
package policy
