package pulse

import (
	"github.com/technician-routing/trp/cluster"
	"github.com/technician-routing/trp/trpinstance"
)

// GroupByDepot partitions vehicleIdxs by their DepotIndex, preserving
// input order within each group. It delegates to cluster.GroupByDepot, the
// canonical implementation shared with the Clustering pricing strategy.
func GroupByDepot(inst *trpinstance.Instance, vehicleIdxs []int) map[int][]int {
	return cluster.GroupByDepot(inst, vehicleIdxs)
}

// GroupedSolve prices one depot group as a single virtual vehicle (the
// Grouped pricing strategy, spec §4.4): it amortizes the expensive Phase-A
// bounding sweep across every vehicle based at the depot, then reattaches
// each candidate path (the incumbent plus the pool) to every real vehicle
// in the group that can actually run it — same eligible nodes, same
// capacities — producing one Result per compatible (path, vehicle) pair.
//
// A path the virtual vehicle finds is a necessary but not sufficient
// condition for any single real vehicle to run it (the virtual vehicle's
// capacities are a componentwise maximum, so its eligible set is a
// superset of each member's); GroupedSolve's per-vehicle filter is what
// makes the result columns trustworthy.
func GroupedSolve(inst *trpinstance.Instance, group []int, duals []float64, opts Options) ([]Result, error) {
	if len(group) == 0 {
		return nil, nil
	}

	virtual := trpinstance.VirtualVehicle(inst, group)
	problem := NewGroupedProblem(inst, &virtual, duals)

	solver, err := New(problem, opts)
	if err != nil {
		return nil, err
	}
	if _, err := solver.BoundAndSolve(); err != nil {
		return nil, err
	}

	candidates := solver.Pool()

	results := make([]Result, 0, len(candidates)*len(group))
	for _, cand := range candidates {
		for _, vIdx := range group {
			if compatible(inst, vIdx, cand.Sequence) {
				results = append(results, Result{
					VehicleIdx:  vIdx,
					Sequence:    cand.Sequence,
					ReducedCost: cand.ReducedCost + inst.Vehicles[vIdx].FixedCost - virtual.FixedCost,
				})
			}
		}
	}

	return results, nil
}

// compatible reports whether vehicle vIdx can run seq: every internal node
// is in its eligible set and cumulative resource consumption stays within
// its capacities.
func compatible(inst *trpinstance.Instance, vIdx int, seq []int) bool {
	vehicle := &inst.Vehicles[vIdx]
	consumption := make(map[string]int, len(inst.CapacityLabels))

	for i := 1; i < len(seq)-1; i++ {
		node := &inst.Nodes[seq[i]]
		if !vehicle.IsEligible(seq[i]) {
			return false
		}
		for label, qty := range node.Resources {
			consumption[label] += qty
		}
	}

	for label, used := range consumption {
		if cap, ok := vehicle.Capacities[label]; ok && used > cap {
			return false
		}
	}

	return true
}
