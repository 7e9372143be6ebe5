// Package solverapi defines a narrow linear/mixed-integer programming
// interface and a concrete implementation backed by
// gonum.org/v1/gonum/optimize/convex/lp, grounded on the GoMILP reference's
// milpProblem/subProblem shape: a dense standard-form LP (minimize c^T x
// s.t. A x = b, x >= 0) solved by gonum's primal simplex, with inequality
// constraints and finite variable bounds folded into that form via slack
// columns (GoMILP's convertToEqualities) rather than a bespoke simplex.
//
// master and branchprice depend only on the Solver interface, never on
// gonum directly, so an alternative backend could be swapped in without
// touching either package.
package solverapi

import "errors"

// Sentinel errors returned by Solver implementations.
var (
	ErrInfeasible      = errors.New("solverapi: problem is infeasible")
	ErrUnbounded       = errors.New("solverapi: problem is unbounded")
	ErrNoIntegerSolution = errors.New("solverapi: no integer-feasible solution found within node/time limits")
)
