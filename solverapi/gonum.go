package solverapi

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// GonumSolver is the Solver backed by gonum's primal simplex. Constraints
// and variable upper bounds are folded into equality-only standard form
// (minimize c^T x s.t. A x = b, x >= 0) by adding one slack column per
// inequality row, the same conversion GoMILP's convertToEqualities performs
// before calling lp.Simplex; branch-and-bound on top of that (SolveMIP)
// mirrors GoMILP's enumeration tree, but expressed as plain recursion with
// add/remove bounding constraints instead of a cloned subProblem per node,
// since this Solver already exposes RemoveConstraint for exactly that.
type GonumSolver struct {
	vars        []variable
	constraints []*constraint // nil entries are removed rows, kept to preserve indices
	objCoeffs   map[int]float64
	objSense    ObjectiveSense
}

var _ Solver = (*GonumSolver)(nil)

// NewGonumSolver returns an empty solver ready for AddVariable/AddConstraint.
func NewGonumSolver() *GonumSolver {
	return &GonumSolver{objCoeffs: make(map[int]float64)}
}

func (g *GonumSolver) AddVariable(name string, lb, ub float64, integer bool) int {
	g.vars = append(g.vars, variable{name: name, lb: lb, ub: ub, integer: integer})

	return len(g.vars) - 1
}

func (g *GonumSolver) AddConstraint(coeffs map[int]float64, sense ConstraintSense, rhs float64) int {
	g.constraints = append(g.constraints, &constraint{coeffs: coeffs, sense: sense, rhs: rhs})

	return len(g.constraints) - 1
}

func (g *GonumSolver) RemoveConstraint(idx int) {
	if idx < 0 || idx >= len(g.constraints) {
		return
	}
	g.constraints[idx] = nil
}

func (g *GonumSolver) SetCoefficient(constraintIdx, varIdx int, coeff float64) {
	if constraintIdx < 0 || constraintIdx >= len(g.constraints) || g.constraints[constraintIdx] == nil {
		return
	}
	g.constraints[constraintIdx].coeffs[varIdx] = coeff
}

func (g *GonumSolver) SetObjective(coeffs map[int]float64, sense ObjectiveSense) {
	g.objCoeffs = coeffs
	g.objSense = sense
}

func (g *GonumSolver) SetObjectiveCoefficient(varIdx int, coeff float64) {
	g.objCoeffs[varIdx] = coeff
}

// SolveLP converts the current model to standard form and runs gonum's
// simplex, then projects the result back onto the original variable bounds
// and objective sense.
func (g *GonumSolver) SolveLP(ctx context.Context) (Solution, error) {
	if err := ctx.Err(); err != nil {
		return Solution{}, err
	}

	n := len(g.vars)
	if n == 0 {
		return Solution{}, nil
	}

	rows, userRowOf := g.standardRows()
	if len(rows) == 0 {
		return g.solveUnconstrained()
	}

	numSlack := 0
	for _, r := range rows {
		if r.sense != Equal {
			numSlack++
		}
	}
	cols := n + numSlack

	c := make([]float64, cols)
	sign := 1.0
	if g.objSense == Maximize {
		sign = -1.0
	}
	for j := range g.vars {
		c[j] = sign * g.objCoeffs[j]
	}

	A := mat.NewDense(len(rows), cols, nil)
	b := make([]float64, len(rows))
	slackCol := n
	for i, r := range rows {
		rowSign := 1.0
		rhs := r.rhs
		if r.sense == GreaterEqual {
			rowSign = -1.0
		}
		for j, coeff := range r.coeffs {
			A.Set(i, j, rowSign*coeff)
			rhs -= coeff * g.vars[j].lb // shift to x' = x - lb
		}
		b[i] = rowSign * rhs
		if r.sense != Equal {
			A.Set(i, slackCol, 1)
			slackCol++
		}
	}

	optF, optX, err := lp.Simplex(c, A, b, 0, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return Solution{}, ErrInfeasible
		}

		return Solution{}, err
	}

	values := make([]float64, n)
	for j := range g.vars {
		values[j] = optX[j] + g.vars[j].lb
	}

	objective := sign * optF

	duals := g.duals(c, A, b, sign, userRowOf)

	return Solution{Values: values, Objective: objective, Duals: duals}, nil
}

// standardRows returns the active user constraints plus one <= row per
// variable carrying a finite upper bound (GoMILP folds bounds the same way:
// as ordinary inequality rows rather than a special-cased bounded simplex).
// userRowOf[i] gives row i's original g.constraints index, or -1 for a
// synthetic variable-bound row, so duals() can report only the rows a
// caller actually created.
func (g *GonumSolver) standardRows() (rows []constraint, userRowOf []int) {
	rows = make([]constraint, 0, len(g.constraints)+len(g.vars))
	userRowOf = make([]int, 0, cap(rows))
	for idx, c := range g.constraints {
		if c != nil {
			rows = append(rows, *c)
			userRowOf = append(userRowOf, idx)
		}
	}
	for j, v := range g.vars {
		if !math.IsInf(v.ub, 1) {
			rows = append(rows, constraint{
				coeffs: map[int]float64{j: 1},
				sense:  LessEqual,
				rhs:    v.ub,
			})
			userRowOf = append(userRowOf, -1)
		}
	}

	return rows, userRowOf
}

// duals solves the dual of the standard-form LP already built for the
// primal (maximize b^T y s.t. A^T y <= c, y free) to recover one shadow
// price per primal row, then scatters the user-row entries back into
// g.constraints's original index space (bound rows and removed rows report
// 0). y is split into nonnegative yPlus/yMinus since lp.Simplex only solves
// nonnegative-variable standard form, the same trick GoMILP's
// convertToEqualities uses for inequalities.
func (g *GonumSolver) duals(c []float64, A *mat.Dense, b []float64, sign float64, userRowOf []int) []float64 {
	numRows, numCols := A.Dims()

	AT := mat.NewDense(numCols, 2*numRows+numCols, nil)
	for i := 0; i < numCols; i++ {
		for j := 0; j < numRows; j++ {
			v := A.At(j, i)
			AT.Set(i, j, v)
			AT.Set(i, numRows+j, -v)
		}
		AT.Set(i, 2*numRows+i, 1) // slack
	}

	dualC := make([]float64, 2*numRows+numCols)
	for j := 0; j < numRows; j++ {
		dualC[j] = -b[j]
		dualC[numRows+j] = b[j]
	}

	_, dualX, err := lp.Simplex(dualC, AT, c, 0, nil)
	if err != nil {
		return make([]float64, len(g.constraints))
	}

	duals := make([]float64, len(g.constraints))
	for row, origIdx := range userRowOf {
		if origIdx < 0 {
			continue
		}
		duals[origIdx] = sign * (dualX[row] - dualX[numRows+row])
	}

	return duals
}

// solveUnconstrained handles the degenerate case of no rows at all: the
// optimum is each variable pinned at its lower bound, unless an unbounded
// variable has a cost that would let the objective improve without limit.
func (g *GonumSolver) solveUnconstrained() (Solution, error) {
	values := make([]float64, len(g.vars))
	objective := 0.0
	for j, v := range g.vars {
		coeff := g.objCoeffs[j]
		if g.objSense == Maximize {
			coeff = -coeff
		}
		if math.IsInf(v.ub, 1) && coeff < 0 {
			return Solution{}, ErrUnbounded
		}
		values[j] = v.lb
		objective += g.objCoeffs[j] * v.lb
	}

	return Solution{Values: values, Objective: objective}, nil
}

// SolveMIP performs branch-and-bound over SolveLP: it picks the first
// fractional integer-flagged variable in the relaxation, branches floor/
// ceil by adding a temporary bounding row via AddConstraint, recurses, and
// removes the row before trying the sibling — so only one model is ever
// live, never a cloned subProblem per node.
func (g *GonumSolver) SolveMIP(ctx context.Context, opts MIPOptions) (Solution, error) {
	if opts.IntegralityTolerance == 0 {
		opts = DefaultMIPOptions()
	}

	var best Solution
	found := false
	nodes := 0

	var branch func() error
	branch = func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		nodes++
		if nodes > opts.MaxNodes {
			return nil
		}

		sol, err := g.SolveLP(ctx)
		if err != nil {
			return nil // infeasible subtree, prune
		}
		if found && !g.isBetter(sol.Objective, best.Objective) {
			return nil // LP relaxation bound cannot beat the incumbent
		}

		idx, val, isFrac := g.firstFractional(sol, opts.IntegralityTolerance)
		if !isFrac {
			sol.IsInteger = true
			sol.Duals = nil
			if !found || g.isBetter(sol.Objective, best.Objective) {
				best, found = sol, true
			}

			return nil
		}

		floorIdx := g.AddConstraint(map[int]float64{idx: 1}, LessEqual, math.Floor(val))
		if err := branch(); err != nil {
			g.RemoveConstraint(floorIdx)

			return err
		}
		g.RemoveConstraint(floorIdx)

		ceilIdx := g.AddConstraint(map[int]float64{idx: 1}, GreaterEqual, math.Ceil(val))
		if err := branch(); err != nil {
			g.RemoveConstraint(ceilIdx)

			return err
		}
		g.RemoveConstraint(ceilIdx)

		return nil
	}

	if err := branch(); err != nil {
		if found {
			return best, err
		}

		return Solution{}, err
	}

	if !found {
		return Solution{}, ErrNoIntegerSolution
	}

	return best, nil
}

func (g *GonumSolver) isBetter(a, b float64) bool {
	if g.objSense == Maximize {
		return a > b
	}

	return a < b
}

func (g *GonumSolver) firstFractional(sol Solution, tol float64) (idx int, val float64, ok bool) {
	for i, v := range g.vars {
		if !v.integer {
			continue
		}
		frac := sol.Values[i] - math.Floor(sol.Values[i])
		if frac > tol && frac < 1-tol {
			return i, sol.Values[i], true
		}
	}

	return 0, 0, false
}
