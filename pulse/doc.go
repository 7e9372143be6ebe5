// Package pulse implements the pulse algorithm (Lozano, Duque & Medaglia)
// for the Elementary Shortest Path Problem with Resource Constraints
// (ESPPRC), the pricing subproblem solved once per vehicle (or per depot
// group, see Grouped) on every column-generation iteration (spec §4.4).
//
// The algorithm is a depth-first traversal of the (small, since routes stay
// within a single work day) reachable state space, pruned at every vertex by
// three independent tests before any recursive call is made:
//
//   - is_feasible: elementarity, capacity, and time-window feasibility of
//     the current partial path.
//   - check_bounds: a two-phase bound table (Bound, built once per problem
//     at several remaining-time granularities) rules out partial paths that
//     cannot beat the best complete path found so far.
//   - rollback: drops a just-added vertex when the triangle inequality shows
//     skipping straight to the next hop would not have been worse.
//
// Every path reaching the destination (the vehicle's depot) updates a
// bounded solution pool (Options.PoolSize), not just the incumbent, because
// column generation wants several negative-reduced-cost columns per round,
// not only the cheapest one.
//
// Two variants reuse the same Solver: Grouped amortizes the bound table
// across every vehicle based at the same depot by pricing a single virtual
// vehicle with the union of their eligible sets and the componentwise
// maximum of their capacities, splitting the result back out per real
// vehicle afterward; Parallel fans the top-level recursion out over the
// origin's forward neighbors with errgroup, joining results under a mutex
// exactly like any other cancellable concurrent traversal.
package pulse

import "errors"

// Sentinel errors returned by Solver construction and solving.
var (
	// ErrInvalidPoolSize indicates Options.PoolSize was not strictly
	// positive.
	ErrInvalidPoolSize = errors.New("pulse: pool size must be strictly positive")

	// ErrDeltaTooLarge indicates Options.Delta left no bound levels to
	// populate (Delta larger than the work day).
	ErrDeltaTooLarge = errors.New("pulse: delta is too large")

	// ErrNoNegativeColumn indicates Solve found no path with negative
	// reduced cost; this is an expected, non-exceptional return used by
	// colgen to detect convergence, not a logged failure.
	ErrNoNegativeColumn = errors.New("pulse: no negative reduced cost path found")
)
