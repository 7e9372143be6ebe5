// Package route implements the concrete vehicle tour produced by the pulse
// solver or read back from a parsed solution file (spec §3, §4.2).
//
// A Route is built once by New from an ordered node sequence and a vehicle;
// New recomputes all derived totals (distance, duration, presence vector,
// edge-presence matrix) in a single pass and the result is never mutated
// afterward: construct once, derive every total up front.
package route

import "errors"

// Sentinel errors for route construction and feasibility checks.
var (
	// ErrEmptySequence indicates fewer than two nodes were supplied (a
	// route must leave and return to its depot).
	ErrEmptySequence = errors.New("route: sequence has fewer than two nodes")

	// ErrBadEndpoints indicates the sequence does not begin and end at the
	// vehicle's depot.
	ErrBadEndpoints = errors.New("route: sequence does not start/end at vehicle depot")

	// ErrNotElementary indicates an internal node repeats (elementarity
	// violation).
	ErrNotElementary = errors.New("route: intervention visited more than once")

	// ErrIneligible indicates an internal node is outside the vehicle's
	// eligible set.
	ErrIneligible = errors.New("route: node outside vehicle's eligible set")

	// ErrCapacityExceeded indicates a resource consumption sum exceeds the
	// vehicle's capacity for that label.
	ErrCapacityExceeded = errors.New("route: resource capacity exceeded")
)
