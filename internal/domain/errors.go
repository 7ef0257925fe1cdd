package domain

import "fmt"

// InvalidParamsError reports an out-of-range or missing simulation parameter.
// It is raised before any simulation work begins and maps to a 400 at the
// service boundary.
type InvalidParamsError struct {
	Field  string
	Reason string
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// InvalidMixError reports an asset mix that violates the sum-to-one or
// non-negativity invariant after resolution. This indicates a configuration
// bug rather than bad user input: it is logged as an error and never retried.
type InvalidMixError struct {
	Month  int
	Reason string
}

func (e *InvalidMixError) Error() string {
	return fmt.Sprintf("invalid asset mix at month %d: %s", e.Month, e.Reason)
}

// UpstreamServiceError reports a failure from one of the external
// collaborators (game-state store, AI completion service). Callers recover
// locally with a user-visible fallback; it never propagates as a simulation
// failure.
type UpstreamServiceError struct {
	Service string
	Err     error
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("upstream service %s failed: %v", e.Service, e.Err)
}

func (e *UpstreamServiceError) Unwrap() error { return e.Err }
