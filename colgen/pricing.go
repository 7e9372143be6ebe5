package colgen

import (
	"context"
	"errors"
	"math/rand"

	"github.com/technician-routing/trp/cluster"
	"github.com/technician-routing/trp/pulse"
	"github.com/technician-routing/trp/solverapi"
	"github.com/technician-routing/trp/trpinstance"
)

// candidate is one priced column before it is checked against the master's
// vehicle-row dual and materialized into a route.Route.
type candidate struct {
	vehicleIdx int
	sequence   []int
	// nodeReducedCost is the reduced cost pulse computed: routing cost
	// minus node duals only, not yet netting out the vehicle usage dual.
	nodeReducedCost float64
}

// price dispatches to the configured strategy, returning every candidate
// whose raw (node-dual-only) reduced cost is negative enough to be worth
// the caller's vehicle-row adjustment, for the given vehicleIdxs.
func price(ctx context.Context, inst *trpinstance.Instance, duals []float64, vehicleIdxs []int, opts Options, rng *rand.Rand) ([]candidate, error) {
	switch opts.Strategy {
	case Grouped:
		return priceGrouped(inst, duals, vehicleIdxs, opts)
	case Diversified:
		return priceDiversified(inst, duals, vehicleIdxs, opts)
	case Clustering:
		return priceClustering(inst, duals, vehicleIdxs, opts, rng)
	case Tabu:
		return priceTabu(ctx, inst, duals, vehicleIdxs, opts)
	default:
		return priceBasic(inst, duals, vehicleIdxs, opts)
	}
}

func pulseOptions(opts Options) pulse.Options {
	return pulse.Options{Delta: opts.Delta, PoolSize: opts.PoolSize, UseBound: true, UseSplice: true, Logger: opts.Logger}
}

// priceBasic runs one pulse.Solver per vehicle and harvests its whole pool.
func priceBasic(inst *trpinstance.Instance, duals []float64, vehicleIdxs []int, opts Options) ([]candidate, error) {
	var out []candidate
	for _, v := range vehicleIdxs {
		problem := pulse.NewProblem(inst, v, duals)
		if r, ok := opts.ArcRestrictions[v]; ok {
			for arc := range r.Forbidden {
				problem.Forbid(arc[0], arc[1])
			}
			for from, to := range r.Required {
				problem.Require(from, to)
			}
		}
		solver, err := pulse.New(problem, pulseOptions(opts))
		if err != nil {
			return nil, err
		}
		if _, err := solver.BoundAndSolve(); err != nil {
			continue // no negative column for this vehicle this round
		}
		for _, res := range solver.Pool() {
			out = append(out, candidate{vehicleIdx: v, sequence: res.Sequence, nodeReducedCost: res.ReducedCost})
		}
	}

	return out, nil
}

// priceGrouped amortizes Phase A across each depot's vehicle group.
func priceGrouped(inst *trpinstance.Instance, duals []float64, vehicleIdxs []int, opts Options) ([]candidate, error) {
	groups := cluster.GroupByDepot(inst, vehicleIdxs)

	var out []candidate
	for _, group := range groups {
		results, err := pulse.GroupedSolve(inst, group, duals, pulseOptions(opts))
		if errors.Is(err, pulse.ErrNoNegativeColumn) {
			continue // no negative column for this group this round
		}
		if err != nil {
			return nil, err
		}
		for _, res := range results {
			out = append(out, candidate{vehicleIdx: res.VehicleIdx, sequence: res.Sequence, nodeReducedCost: res.ReducedCost})
		}
	}

	return out, nil
}

// chainLength bounds the Diversified/Clustering greedy chain.
const chainLength = 3

// priceDiversified runs a short greedy chain of masked pulses per vehicle:
// each hop prices over only the interventions no earlier hop (for this
// vehicle) has already covered, surfacing several disjoint columns per
// vehicle per round instead of one.
func priceDiversified(inst *trpinstance.Instance, duals []float64, vehicleIdxs []int, opts Options) ([]candidate, error) {
	var out []candidate
	for _, v := range vehicleIdxs {
		covered := make(map[int]bool)
		for step := 0; step < chainLength; step++ {
			masked := trpinstance.MaskVehicle(&inst.Vehicles[v], covered)
			problem := pulse.NewGroupedProblem(inst, &masked, duals)
			solver, err := pulse.New(problem, pulseOptions(opts))
			if err != nil {
				return nil, err
			}
			if _, err := solver.BoundAndSolve(); err != nil {
				break
			}
			res := solver.Pool()
			if len(res) == 0 {
				break
			}
			best := res[0]
			out = append(out, candidate{vehicleIdx: v, sequence: best.Sequence, nodeReducedCost: best.ReducedCost})
			for _, n := range best.Sequence {
				if inst.Nodes[n].Kind == trpinstance.NodeIntervention {
					covered[n] = true
				}
			}
		}
	}

	return out, nil
}

// priceClustering partitions vehicleIdxs by pairwise similarity, then runs
// Diversified pricing within each cluster (a shared dual snapshot is
// already guaranteed since colgen computes duals once per round).
func priceClustering(inst *trpinstance.Instance, duals []float64, vehicleIdxs []int, opts Options, rng *rand.Rand) ([]candidate, error) {
	sim := cluster.SimilarityMatrix(inst)

	var clusters [][]int
	var err error
	if len(vehicleIdxs) <= 12 {
		clusters, err = cluster.OptimalPairs(subMatrix(sim, vehicleIdxs))
	} else {
		clusters, err = cluster.Optimal2Clustering(subMatrix(sim, vehicleIdxs))
		if err == nil {
			for i := 0; i < 3; i++ {
				clusters = cluster.GreedyNeighbor(subMatrix(sim, vehicleIdxs), clusters, deriveRNG(rng, uint64(i)).Int63())
			}
		}
	}
	if err != nil {
		return nil, err
	}

	var out []candidate
	for _, c := range clusters {
		realIdxs := make([]int, len(c))
		for i, localIdx := range c {
			realIdxs[i] = vehicleIdxs[localIdx]
		}
		cands, err := priceDiversified(inst, duals, realIdxs, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, cands...)
	}

	return out, nil
}

// subMatrix projects the full similarity matrix onto the rows/columns
// named by idxs, since cluster.OptimalPairs/Optimal2Clustering operate on
// a dense 0..n-1 index space.
func subMatrix(sim [][]int, idxs []int) [][]int {
	out := make([][]int, len(idxs))
	for i, a := range idxs {
		out[i] = make([]int, len(idxs))
		for j, b := range idxs {
			out[i][j] = sim[a][b]
		}
	}

	return out
}

// priceTabu takes one Basic-priced route per vehicle and iteratively
// re-solves a small MILP over that route's own node set, forbidding the
// previous edge set, for up to opts.TabuMaxRounds rounds. The MILP has no
// subtour-elimination constraints (the node set is small and the pulse
// seed route already gives a feasible depot-anchored structure to forbid
// against); a round whose MILP solution is not a single elementary
// depot-to-depot path is rejected and the chain stops, which is the
// "bounded-modification budget" spec §4.6 asks for.
func priceTabu(ctx context.Context, inst *trpinstance.Instance, duals []float64, vehicleIdxs []int, opts Options) ([]candidate, error) {
	seeds, err := priceBasic(inst, duals, vehicleIdxs, opts)
	if err != nil {
		return nil, err
	}

	var out []candidate
	for _, seed := range seeds {
		out = append(out, seed)

		nodes := seed.sequence
		forbidden := edgeSet(nodes)

		for round := 0; round < opts.TabuMaxRounds; round++ {
			if err := ctx.Err(); err != nil {
				return out, nil
			}

			next, cost, ok := tabuRound(inst, duals, seed.vehicleIdx, nodes, forbidden)
			if !ok {
				break
			}

			out = append(out, candidate{vehicleIdx: seed.vehicleIdx, sequence: next, nodeReducedCost: cost})
			forbidden = unionEdges(forbidden, edgeSet(next))
			nodes = next
		}
	}

	return out, nil
}

// tabuRound solves one forbidding-MILP over nodes's node set (fixed vertex
// set, free arc selection) and returns the resulting path if it forms a
// single elementary depot cycle.
func tabuRound(inst *trpinstance.Instance, duals []float64, vehicleIdx int, nodes []int, forbidden map[[2]int]bool) ([]int, float64, bool) {
	depot := inst.Vehicles[vehicleIdx].DepotIndex
	set := make([]int, 0, len(nodes))
	seen := make(map[int]bool)
	for _, n := range nodes {
		if !seen[n] {
			seen[n] = true
			set = append(set, n)
		}
	}

	s := solverapi.NewGonumSolver()
	varOf := make(map[[2]int]int)
	objCoeffs := make(map[int]float64)
	for _, i := range set {
		for _, j := range set {
			if i == j {
				continue
			}
			idx := s.AddVariable("edge", 0, 1, true)
			varOf[[2]int{i, j}] = idx
			objCoeffs[idx] = inst.CostPerKm*float64(inst.DistMatrix[i][j]) - duals[j]
		}
	}
	s.SetObjective(objCoeffs, solverapi.Minimize)

	for _, v := range set {
		outCoeffs, inCoeffs := map[int]float64{}, map[int]float64{}
		for _, u := range set {
			if u == v {
				continue
			}
			outCoeffs[varOf[[2]int{v, u}]] = 1
			inCoeffs[varOf[[2]int{u, v}]] = 1
		}
		rhs := 1.0
		if v == depot {
			rhs = 1 // exactly one departure/arrival at the depot too (single-vehicle path)
		}
		s.AddConstraint(outCoeffs, solverapi.Equal, rhs)
		s.AddConstraint(inCoeffs, solverapi.Equal, rhs)
	}

	forbidCoeffs := make(map[int]float64)
	for e := range forbidden {
		if idx, ok := varOf[e]; ok {
			forbidCoeffs[idx] = 1
		}
	}
	if len(forbidCoeffs) > 0 {
		s.AddConstraint(forbidCoeffs, solverapi.LessEqual, float64(len(forbidCoeffs)-1))
	}

	sol, err := s.SolveMIP(context.Background(), solverapi.DefaultMIPOptions())
	if err != nil {
		return nil, 0, false
	}

	seq, cost, ok := reconstructPath(sol, varOf, depot, len(set))

	return seq, cost, ok
}

// reconstructPath walks the chosen edges from depot back to depot; ok is
// false if the MILP solution is not a single elementary cycle covering
// every vertex in the candidate set (a subtour, since no elimination
// constraints were posed).
func reconstructPath(sol solverapi.Solution, varOf map[[2]int]int, depot, numVertices int) ([]int, float64, bool) {
	next := make(map[int]int)
	for e, idx := range varOf {
		if idx < len(sol.Values) && sol.Values[idx] > 0.5 {
			if _, dup := next[e[0]]; dup {
				return nil, 0, false
			}
			next[e[0]] = e[1]
		}
	}

	seq := []int{depot}
	cur := depot
	for i := 0; i < numVertices; i++ {
		n, ok := next[cur]
		if !ok {
			return nil, 0, false
		}
		seq = append(seq, n)
		cur = n
		if cur == depot {
			break
		}
	}
	if cur != depot || len(seq) != numVertices+1 {
		return nil, 0, false
	}

	return seq, sol.Objective, true
}

func edgeSet(seq []int) map[[2]int]bool {
	out := make(map[[2]int]bool, len(seq))
	for i := 0; i+1 < len(seq); i++ {
		out[[2]int{seq[i], seq[i+1]}] = true
	}

	return out
}

func unionEdges(a, b map[[2]int]bool) map[[2]int]bool {
	out := make(map[[2]int]bool, len(a)+len(b))
	for e := range a {
		out[e] = true
	}
	for e := range b {
		out[e] = true
	}

	return out
}
