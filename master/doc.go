// Package master wraps a solverapi.Solver into the set-partitioning master
// problem column generation prices against: rows (one per intervention,
// one per vehicle) are created once up front, and AddRoute appends a
// lambda column and wires it into whichever rows its route touches,
// without ever rebuilding the whole model.
//
// Two formulations are supported (spec §4.5, Open Question (a)):
//
//   - MinimizeCostWithOutsourcing: minimize sum(cost_r * lambda_r) +
//     M * sum(outsource_i), covering rows are equalities (every
//     intervention is either served by exactly one chosen route or
//     explicitly outsourced).
//   - MaximizeWeightedDuration: maximize sum((M*duration_r - cost_r) *
//     lambda_r), covering rows are <= 1 (packing); an intervention with no
//     selected route is implicitly outsourced, with no separate variable.
//
// A Problem is created for exactly one formulation and never switches mid
// branch-and-price run — mixing them would make incumbent objective values
// from different nodes incomparable (see DESIGN.md).
package master

import "errors"

var (
	// ErrWrongFormulation is returned by a formulation-specific accessor
	// (e.g. reading outsourcing variables) called against a Problem built
	// with the other formulation.
	ErrWrongFormulation = errors.New("master: operation not valid for this problem's formulation")

	// ErrDuplicateRoute is returned by AddRoute when an equal route
	// (same vehicle + sequence, route.Route.Equal) is already present.
	ErrDuplicateRoute = errors.New("master: route already present in the pool")
)
