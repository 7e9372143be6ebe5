package solverapi

import "context"

// Solver is the narrow LP/MIP surface master and branchprice build against.
// Variables and constraints are added incrementally (column generation adds
// one variable per priced-out route without rebuilding the whole model);
// SolveLP and SolveMIP are independent, repeatable queries over whatever has
// been added so far.
type Solver interface {
	// AddVariable registers one column and returns its index for later use
	// in AddConstraint/SetObjective coefficient maps.
	AddVariable(name string, lb, ub float64, integer bool) int

	// AddConstraint registers one row and returns its index (useful for
	// branch-and-bound, which adds and later discards bounding rows).
	AddConstraint(coeffs map[int]float64, sense ConstraintSense, rhs float64) int

	// RemoveConstraint deletes a previously added row by index, used by
	// branch-and-bound to undo a branching bound before trying the sibling.
	RemoveConstraint(idx int)

	// SetCoefficient sets variable varIdx's coefficient in an existing
	// constraint row, the normal way column generation wires a freshly
	// priced route into the covering/vehicle-usage rows that were created
	// before the route existed.
	SetCoefficient(constraintIdx, varIdx int, coeff float64)

	SetObjective(coeffs map[int]float64, sense ObjectiveSense)

	// SetObjectiveCoefficient sets a single variable's objective
	// coefficient without resupplying the whole map.
	SetObjectiveCoefficient(varIdx int, coeff float64)

	// SolveLP solves the continuous relaxation (integrality ignored).
	SolveLP(ctx context.Context) (Solution, error)

	// SolveMIP solves with integrality enforced on every variable flagged
	// integer at AddVariable time, via branch-and-bound over SolveLP.
	SolveMIP(ctx context.Context, opts MIPOptions) (Solution, error)
}
