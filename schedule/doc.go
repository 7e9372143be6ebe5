// Package schedule implements the forward-simulation scheduling rule shared
// by route feasibility checks and the pulse pricing solver (spec §4.3).
//
// Simulate walks a vehicle's node sequence from its depot at time 0,
// waiting for a node's window to open, waiting past MidDay when an
// ambiguous intervention would otherwise straddle the lunch break, and
// failing with ErrWindowViolation the first time a node cannot be served
// within its window. The return leg to the depot must complete by EndDay
// (ErrReturnTooLate).
//
// route.Feasible calls Simulate, and pulse's feasibility check (§4.4 step 1)
// calls Step, the per-node rule Simulate is built on, so the two can never
// disagree on what is schedulable: one shared scheduling rule, not two
// copies kept in sync by hand.
package schedule

import "errors"

// Sentinel errors returned by Simulate.
var (
	// ErrWindowViolation indicates service at some node could not begin
	// before its end window less its duration.
	ErrWindowViolation = errors.New("schedule: time window violated")

	// ErrReturnTooLate indicates the return leg to the depot would finish
	// after EndDay.
	ErrReturnTooLate = errors.New("schedule: return to depot after end of day")

	// ErrEmptySequence indicates Simulate was called with fewer than two
	// nodes (a route must at least leave and return to the depot).
	ErrEmptySequence = errors.New("schedule: sequence has fewer than two nodes")
)
