package branchprice

import (
	"context"
	"errors"
	"time"

	"github.com/technician-routing/trp/colgen"
	"github.com/technician-routing/trp/master"
	"github.com/technician-routing/trp/route"
	"github.com/technician-routing/trp/solverapi"
	"github.com/technician-routing/trp/trpinstance"
)

// branchingBand bounds the aggregated arc usage that counts as fractional
// (and therefore a branching candidate): strictly between 0.05 and 0.95, so
// a barely-fractional arc near 0 or 1 is left for the LP to resolve on its
// own rather than triggering a branch.
const branchingBand = 0.05

// Run explores the branch-and-price tree for inst over vehicleIdxs,
// seeded with seedRoutes (may be empty — colgen discovers its own first
// columns), until the frontier empties, MaxNodes/MaxDepth/TimeLimit fires,
// or ctx is cancelled.
func Run(ctx context.Context, inst *trpinstance.Instance, vehicleIdxs []int, seedRoutes []*route.Route, opts Options) (*Result, error) {
	deadline := time.Now().Add(opts.TimeLimit)
	frontier := []Node{rootNode()}
	pool := append([]*route.Route(nil), seedRoutes...)

	var best *master.IntegerSolution
	explored := 0
	stopReason := ""

	for len(frontier) > 0 {
		if explored >= opts.MaxNodes {
			stopReason = "max nodes explored"

			break
		}
		if opts.TimeLimit > 0 && time.Now().After(deadline) {
			stopReason = "time limit exceeded"

			break
		}
		if err := ctx.Err(); err != nil {
			stopReason = "context cancelled"

			break
		}

		node := frontier[0]
		frontier = frontier[1:]
		explored++

		solver := solverapi.NewGonumSolver()
		prob := master.New(inst, solver, opts.Formulation, true)
		for _, r := range pool {
			if !routeFeasibleForNode(r, node) {
				continue
			}
			if _, err := prob.AddRoute(r); err != nil && !errors.Is(err, master.ErrDuplicateRoute) {
				return nil, err
			}
		}

		cgOpts := opts.Colgen
		cgOpts.Strategy = colgen.Basic
		cgOpts.ArcRestrictions = buildArcRestrictions(node)

		cgResult, err := colgen.Run(ctx, inst, prob, vehicleIdxs, cgOpts)
		if err != nil {
			if errors.Is(err, colgen.ErrMasterInfeasible) {
				continue // this subtree is infeasible, prune silently
			}

			return nil, err
		}

		pool = mergePool(pool, prob.Routes())

		lpBound := cgResult.Solution.Objective
		if best != nil && boundCannotImprove(opts.Formulation, lpBound, best.Objective) {
			continue // LP relaxation already worse than the incumbent
		}

		mipSol, err := prob.SolveMIP(ctx, opts.MIP)
		closed := err == nil && absFloat(mipSol.Objective-lpBound) < opts.NodeCloseTolerance
		if err == nil && (closed || node.Depth >= opts.MaxDepth) {
			candidate := prob.ExtractIntegerSolution(mipSol)
			if best == nil || isBetter(opts.Formulation, candidate.Objective, best.Objective) {
				best = &candidate
			}
			opts.Logger.Node(node.Depth, lpBound, "closed")

			continue
		}

		frac, ok := findFractionalArc(inst, vehicleIdxs, prob, cgResult.Solution)
		if !ok {
			// LP already integral over the current pool: close via the LP
			// solution itself (equivalent to the MIP bound in this case).
			candidate := prob.ExtractIntegerSolution(cgResult.Solution)
			if best == nil || isBetter(opts.Formulation, candidate.Objective, best.Objective) {
				best = &candidate
			}
			opts.Logger.Node(node.Depth, lpBound, "integral")

			continue
		}

		down := cloneNode(node)
		down.addForbidden(frac.vehicleIdx, frac.i, frac.j)
		down.Depth++

		up := cloneNode(node)
		up.addRequired(frac.vehicleIdx, frac.i, frac.j)
		up.Depth++

		opts.Logger.Node(node.Depth, lpBound, "branched")
		frontier = append(frontier, down, up)
	}

	if stopReason == "" {
		stopReason = "frontier exhausted"
	}

	return &Result{Best: best, Pool: pool, NodesExplored: explored, StopReason: stopReason}, nil
}

func buildArcRestrictions(node Node) map[int]colgen.ArcRestriction {
	out := make(map[int]colgen.ArcRestriction, len(node.Forbidden)+len(node.Required))
	for v, arcs := range node.Forbidden {
		r := out[v]
		r.Forbidden = arcs
		out[v] = r
	}
	for v, reqs := range node.Required {
		r := out[v]
		r.Required = reqs
		out[v] = r
	}

	return out
}

// routeFeasibleForNode reports whether r respects every forbidden/required
// arc decision node carries for r's owning vehicle.
func routeFeasibleForNode(r *route.Route, node Node) bool {
	if forb, ok := node.Forbidden[r.VehicleIdx]; ok {
		for arc := range forb {
			if r.EdgePresence[arc[0]][arc[1]] {
				return false
			}
		}
	}
	if req, ok := node.Required[r.VehicleIdx]; ok {
		for from, to := range req {
			if actual, found := nextOf(r, from); found && actual != to {
				return false
			}
		}
	}

	return true
}

func nextOf(r *route.Route, from int) (int, bool) {
	for j, used := range r.EdgePresence[from] {
		if used {
			return j, true
		}
	}

	return 0, false
}

func mergePool(pool []*route.Route, candidates []*route.Route) []*route.Route {
	for _, c := range candidates {
		found := false
		for _, r := range pool {
			if r.Equal(c) {
				found = true

				break
			}
		}
		if !found {
			pool = append(pool, c)
		}
	}

	return pool
}

type fractionalArc struct {
	vehicleIdx, i, j int
}

// findFractionalArc implements spec §9's deterministic branching-variable
// selection: iterate vehicles in caller order, accumulate each arc's
// aggregated usage over the route pool in pool-insertion order, then scan
// node pairs in ascending index order and return the first fractional one.
func findFractionalArc(inst *trpinstance.Instance, vehicleIdxs []int, prob *master.Problem, sol solverapi.Solution) (fractionalArc, bool) {
	n := inst.NumNodes()
	for _, v := range vehicleIdxs {
		usage := make(map[[2]int]float64)
		for _, r := range prob.Routes() {
			if r.VehicleIdx != v {
				continue
			}
			val := prob.ColumnValue(sol, r)
			if val == 0 {
				continue
			}
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if r.EdgePresence[i][j] {
						usage[[2]int{i, j}] += val
					}
				}
			}
		}

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				val, ok := usage[[2]int{i, j}]
				if !ok {
					continue
				}
				if val > branchingBand && val < 1-branchingBand {
					return fractionalArc{vehicleIdx: v, i: i, j: j}, true
				}
			}
		}
	}

	return fractionalArc{}, false
}

func boundCannotImprove(formulation master.Formulation, bound, incumbent float64) bool {
	if formulation == master.MaximizeWeightedDuration {
		return bound <= incumbent
	}

	return bound >= incumbent
}

func isBetter(formulation master.Formulation, candidate, incumbent float64) bool {
	if formulation == master.MaximizeWeightedDuration {
		return candidate > incumbent
	}

	return candidate < incumbent
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}
