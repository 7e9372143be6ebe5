package colgen

import (
	"context"
	"errors"
	"time"

	"github.com/technician-routing/trp/master"
	"github.com/technician-routing/trp/route"
	"github.com/technician-routing/trp/solverapi"
	"github.com/technician-routing/trp/trpinstance"
)

// Result is the outcome of one Run: the final LP solution, how many routes
// Run itself added to the master (routes given to it before Run started are
// not counted), the number of rounds executed, and why the loop stopped.
type Result struct {
	Solution     solverapi.Solution
	RoutesAdded  int
	Iterations   int
	StopReason   string
	MIPSolution  *solverapi.Solution
}

// Run executes the column-generation loop of spec §4.6 against prob (an
// already-built master.Problem, possibly pre-seeded with routes) for the
// vehicles named by vehicleIdxs, until a stopping rule fires.
func Run(ctx context.Context, inst *trpinstance.Instance, prob *master.Problem, vehicleIdxs []int, opts Options) (*Result, error) {
	start := time.Now()
	deadline := start.Add(opts.TimeLimit)
	rng := rngFromSeed(opts.Seed)

	var prevDuals []float64
	nonImprovement := 0
	var lastObjective float64
	haveObjective := false

	result := &Result{}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			result.StopReason = "context cancelled"

			return result, nil
		}
		if opts.TimeLimit > 0 && time.Now().After(deadline) {
			result.StopReason = "time limit exceeded"

			return result, nil
		}

		sol, err := prob.SolveLP(ctx)
		if err != nil {
			if errors.Is(err, solverapi.ErrInfeasible) {
				return result, ErrMasterInfeasible
			}

			return result, err
		}
		result.Solution = sol
		result.Iterations = iter + 1

		nowDuals := nodeDuals(inst, prob, sol)
		duals := stabilize(nowDuals, prevDuals, opts.Stabilization)
		prevDuals = nowDuals

		cands, err := price(ctx, inst, duals, vehicleIdxs, opts, rng)
		if err != nil {
			return result, err
		}

		added := addNegativeColumns(prob, inst, cands, sol, opts.Epsilon)
		result.RoutesAdded += added

		elapsed := time.Since(start)
		opts.Logger.Round(iter+1, sol.Objective, added, elapsed)

		if opts.OnIteration != nil {
			opts.OnIteration(IterationSnapshot{
				Iteration:            iter + 1,
				Objective:            sol.Objective,
				RoutesAdded:          added,
				InterventionsCovered: prob.CoveredCount(sol),
				Elapsed:              elapsed,
			})
		}

		if added == 0 {
			result.StopReason = "no route added"

			break
		}

		if haveObjective && !improved(sol.Objective, lastObjective, opts.Epsilon) {
			nonImprovement++
		} else {
			nonImprovement = 0
		}
		lastObjective, haveObjective = sol.Objective, true

		if nonImprovement >= opts.MaxNonImprovement {
			result.StopReason = "non-improvement limit reached"

			break
		}
	}

	if result.StopReason == "" {
		result.StopReason = "max iterations reached"
	}

	if opts.SolveMIPAtEnd {
		mipSol, err := prob.SolveMIP(ctx, solverapi.DefaultMIPOptions())
		if err != nil {
			return result, err
		}
		result.MIPSolution = &mipSol
	}

	return result, nil
}

// improved reports whether newObj differs from oldObj by at least eps.
// master.Problem does not expose its Formulation, so this treats "improved"
// symmetrically: any change of at least eps in either direction counts,
// which only affects the non-improvement counter's sensitivity, never
// correctness of the add-if-negative-reduced-cost rule itself.
func improved(newObj, oldObj, eps float64) bool {
	diff := newObj - oldObj
	if diff < 0 {
		diff = -diff
	}

	return diff >= eps
}

// nodeDuals reads back one dual value per node from prob/sol (0 for
// depots and interventions with no covering row), the shape
// pulse.Problem.Duals expects.
func nodeDuals(inst *trpinstance.Instance, prob *master.Problem, sol solverapi.Solution) []float64 {
	duals := make([]float64, inst.NumNodes())
	for i := range inst.Nodes {
		if d, ok := prob.CoverDual(sol, i); ok {
			duals[i] = d
		}
	}

	return duals
}

// stabilize returns the convex combination α·now + (1-α)·prev (spec §4.6
// step 2); with no prior duals (first round) or α==1, it returns now
// unchanged.
func stabilize(now, prev []float64, alpha float64) []float64 {
	if prev == nil || alpha >= 1 {
		return now
	}

	out := make([]float64, len(now))
	for i := range now {
		out[i] = alpha*now[i] + (1-alpha)*prev[i]
	}

	return out
}

// addNegativeColumns nets out each candidate's vehicle-row dual, builds a
// route.Route for every one whose full reduced cost is < -eps, and adds it
// to prob; it returns how many were added.
func addNegativeColumns(prob *master.Problem, inst *trpinstance.Instance, cands []candidate, sol solverapi.Solution, eps float64) int {
	added := 0
	for _, c := range cands {
		fullReducedCost := c.nodeReducedCost - vehicleRowDual(prob, sol, c.vehicleIdx)
		if fullReducedCost >= -eps {
			continue
		}

		r, err := route.New(inst, c.vehicleIdx, c.sequence)
		if err != nil {
			continue
		}
		r.ReducedCost = fullReducedCost

		if _, err := prob.AddRoute(&r); err != nil {
			continue
		}
		added++
	}

	return added
}

func vehicleRowDual(prob *master.Problem, sol solverapi.Solution, vehicleIdx int) float64 {
	idx, ok := prob.VehicleRowIndex(vehicleIdx)
	if !ok || idx >= len(sol.Duals) {
		return 0
	}

	return sol.Duals[idx]
}
