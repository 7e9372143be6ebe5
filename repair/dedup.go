package repair

import (
	"github.com/technician-routing/trp/master"
	"github.com/technician-routing/trp/route"
	"github.com/technician-routing/trp/trpinstance"
)

// Dedup removes each intervention covered by two or more of sol's chosen
// routes from every route but the one where removing it saves the least
// travel cost (the triangle-inequality saving of dropping a node between
// its current neighbors, cost_per_km * (dist(prev,i)+dist(i,next) -
// dist(prev,next))). Routes reduced to depot-only are dropped. pool is
// consulted so a route whose sequence after removal matches one already
// priced by column generation reuses that *route.Route (preserving its
// ReducedCost) instead of rebuilding an equivalent one from scratch.
//
// Outsourced interventions are untouched: Dedup only ever demotes a node
// from "covered by several routes" to "covered by exactly one", never to
// "uncovered", so sol.Outsourced carries over unchanged.
//
// Idempotent: every intervention is covered by at most one route after one
// pass, so a second pass finds nothing to remove.
func Dedup(sol *master.IntegerSolution, inst *trpinstance.Instance, pool []route.Route) (*master.IntegerSolution, error) {
	coveredBy := make(map[int][]int) // nodeIdx -> indices into sequences
	sequences := make([][]int, len(sol.Routes))
	vehicleOf := make([]int, len(sol.Routes))

	for ri, r := range sol.Routes {
		sequences[ri] = append([]int(nil), r.Sequence...)
		vehicleOf[ri] = r.VehicleIdx
		for _, n := range r.Sequence {
			if inst.Nodes[n].Kind == trpinstance.NodeIntervention {
				coveredBy[n] = append(coveredBy[n], ri)
			}
		}
	}

	for nodeIdx, routeIdxs := range coveredBy {
		if len(routeIdxs) < 2 {
			continue
		}

		keepIdx, minSaving := routeIdxs[0], removalSaving(inst, sequences[routeIdxs[0]], nodeIdx)
		for _, ri := range routeIdxs[1:] {
			if s := removalSaving(inst, sequences[ri], nodeIdx); s < minSaving {
				keepIdx, minSaving = ri, s
			}
		}

		for _, ri := range routeIdxs {
			if ri == keepIdx {
				continue
			}
			sequences[ri] = removeNode(sequences[ri], nodeIdx)
		}
	}

	var outRoutes []*route.Route
	for ri, seq := range sequences {
		if len(seq) <= 2 {
			continue // depot-only: deactivated
		}

		r, err := resolveRoute(inst, vehicleOf[ri], seq, pool)
		if err != nil {
			return nil, err
		}
		outRoutes = append(outRoutes, r)
	}

	objective := 0.0
	for _, r := range outRoutes {
		objective += r.Cost
	}
	for _, nodeIdx := range sol.Outsourced {
		objective += inst.M * float64(inst.Nodes[nodeIdx].Duration)
	}

	return &master.IntegerSolution{Routes: outRoutes, Outsourced: sol.Outsourced, Objective: objective}, nil
}

// removalSaving is the travel-cost saving of dropping nodeIdx from seq,
// computed from its current neighbors; 0 if nodeIdx is not present in seq
// (should not happen — callers only call this for routes in coveredBy).
func removalSaving(inst *trpinstance.Instance, seq []int, nodeIdx int) float64 {
	pos := indexOf(seq, nodeIdx)
	if pos <= 0 || pos >= len(seq)-1 {
		return 0
	}
	prev, next := seq[pos-1], seq[pos+1]
	delta := inst.DistMatrix[prev][nodeIdx] + inst.DistMatrix[nodeIdx][next] - inst.DistMatrix[prev][next]

	return inst.CostPerKm * float64(delta)
}

func indexOf(seq []int, nodeIdx int) int {
	for i, n := range seq {
		if n == nodeIdx {
			return i
		}
	}

	return -1
}

func removeNode(seq []int, nodeIdx int) []int {
	out := make([]int, 0, len(seq)-1)
	for _, n := range seq {
		if n != nodeIdx {
			out = append(out, n)
		}
	}

	return out
}

// resolveRoute returns an existing pool route equal to (vehicleIdx, seq) if
// one is already present, else builds a fresh one.
func resolveRoute(inst *trpinstance.Instance, vehicleIdx int, seq []int, pool []route.Route) (*route.Route, error) {
	candidate := route.Route{VehicleIdx: vehicleIdx, Sequence: seq}
	for i := range pool {
		if pool[i].Equal(&candidate) {
			return &pool[i], nil
		}
	}

	r, err := route.New(inst, vehicleIdx, seq)
	if err != nil {
		return nil, err
	}

	return &r, nil
}
