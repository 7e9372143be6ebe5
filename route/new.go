package route

import (
	"math"

	"github.com/technician-routing/trp/trpinstance"
)

// roundScale stabilizes floating-point cost summation across platforms by
// rounding the summed cost to a fixed number of decimal places.
const roundScale = 1e9

// New constructs a Route from a full depot-to-depot sequence and the
// vehicle that services it, recomputing all derived totals in one pass:
// distance, intervention duration, cost, the presence vector, and the
// edge-presence matrix.
//
// New only checks the structural invariants of spec §3 (endpoints,
// elementarity, eligibility, capacity); time-window feasibility is a
// separate call (Feasible) since pricing frequently wants the schedule
// reconstruction anyway and callers should not pay for it twice.
func New(inst *trpinstance.Instance, vehicleIdx int, seq []int) (Route, error) {
	if len(seq) < 2 {
		return Route{}, ErrEmptySequence
	}

	vehicle := &inst.Vehicles[vehicleIdx]
	if seq[0] != vehicle.DepotIndex || seq[len(seq)-1] != vehicle.DepotIndex {
		return Route{}, ErrBadEndpoints
	}

	n := inst.NumNodes()
	presence := make([]bool, n)
	edgePresence := make([][]bool, n)
	for i := range edgePresence {
		edgePresence[i] = make([]bool, n)
	}

	seen := make(map[int]bool, len(seq))
	consumption := make(map[string]int, len(inst.CapacityLabels))

	var distance, duration int
	for i, nodeIdx := range seq {
		isInternal := i > 0 && i < len(seq)-1
		if isInternal {
			if nodeIdx == vehicle.DepotIndex || seen[nodeIdx] {
				return Route{}, ErrNotElementary
			}
			if !vehicle.IsEligible(nodeIdx) {
				return Route{}, ErrIneligible
			}
			seen[nodeIdx] = true

			node := &inst.Nodes[nodeIdx]
			duration += node.Duration
			for label, qty := range node.Resources {
				consumption[label] += qty
			}
		}
		presence[nodeIdx] = true

		if i+1 < len(seq) {
			next := seq[i+1]
			distance += inst.DistMatrix[nodeIdx][next]
			edgePresence[nodeIdx][next] = true
		}
	}

	for label, used := range consumption {
		if cap, ok := vehicle.Capacities[label]; ok && used > cap {
			return Route{}, ErrCapacityExceeded
		}
	}

	var cost float64
	if len(seq) > 2 {
		cost = vehicle.FixedCost
	}
	cost += inst.CostPerKm * float64(distance)
	cost = round1e9(cost)

	return Route{
		VehicleIdx:   vehicleIdx,
		Sequence:     append([]int(nil), seq...),
		Distance:     distance,
		Duration:     duration,
		Cost:         cost,
		Presence:     presence,
		EdgePresence: edgePresence,
	}, nil
}

func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
