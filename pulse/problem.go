package pulse

import (
	"github.com/technician-routing/trp/schedule"
	"github.com/technician-routing/trp/trpinstance"
)

// Problem is the pricing subproblem for one vehicle (real or, for the
// grouped strategy, a synthesized virtual one): the instance, the vehicle's
// eligible node set (origin and destination are both its depot), and the
// current dual price vector from the restricted master (spec §4.5). A
// fresh Problem is built once per column-generation round per vehicle (or
// per depot group, see Grouped) from the master's latest dual solution.
type Problem struct {
	Inst *trpinstance.Instance

	// VehicleIdx is the owning vehicle's index in Inst.Vehicles, or -1 for
	// a synthesized virtual vehicle (see NewGroupedProblem).
	VehicleIdx int

	vehicle *trpinstance.Vehicle

	// Duals[i] is the dual price of covering node i (0 for depots and for
	// interventions not yet in the restricted master's coverage
	// constraints).
	Duals []float64

	// FixedCost is added once to the path cost at the origin (the
	// vehicle's FixedCost, since using the vehicle at all is what incurs
	// it).
	FixedCost float64

	origin      int
	destination int
	neighbors   [][]int
	labels      []string

	// forbidden/required encode branch-and-price arc decisions (§4.7):
	// forbidden[i][j] excludes edge i->j from the search entirely;
	// required[i] pins vertex i's only forward successor to a single
	// vertex. Both are nil on a Problem built for plain column generation.
	forbidden map[[2]int]bool
	required  map[int]int
}

// Forbid excludes edge i->j from this Problem's search (the "down" branch
// of branch-and-price arc branching: the aggregated arc usage is fixed to
// zero).
func (p *Problem) Forbid(i, j int) {
	if p.forbidden == nil {
		p.forbidden = make(map[[2]int]bool)
	}
	p.forbidden[[2]int{i, j}] = true
}

// Require pins vertex i's only admissible forward successor to j (the "up"
// branch: any new route visiting i must continue to j). A route that never
// visits i is unaffected.
func (p *Problem) Require(i, j int) {
	if p.required == nil {
		p.required = make(map[int]int)
	}
	p.required[i] = j
}

// NewProblem builds the pricing problem for vehicle vehicleIdx with the
// given dual price vector (indexed by node, same length as Inst.Nodes).
func NewProblem(inst *trpinstance.Instance, vehicleIdx int, duals []float64) *Problem {
	return newProblem(inst, vehicleIdx, &inst.Vehicles[vehicleIdx], duals)
}

// NewGroupedProblem builds the pricing problem over a synthesized virtual
// vehicle (see trpinstance.VirtualVehicle): VehicleIdx is -1 since no real
// vehicle owns it; GroupedSolve is responsible for reattaching a resulting
// path to every real vehicle in the group that can actually run it.
func NewGroupedProblem(inst *trpinstance.Instance, virtual *trpinstance.Vehicle, duals []float64) *Problem {
	return newProblem(inst, -1, virtual, duals)
}

func newProblem(inst *trpinstance.Instance, vehicleIdx int, vehicle *trpinstance.Vehicle, duals []float64) *Problem {
	n := inst.NumNodes()

	neighbors := make([][]int, n)
	for v := 0; v < n; v++ {
		if v == vehicle.DepotIndex {
			neighbors[v] = append([]int(nil), vehicle.Eligible...)
			continue
		}
		if !vehicle.IsEligible(v) {
			continue
		}
		ns := make([]int, 0, len(vehicle.Eligible)+1)
		for _, u := range vehicle.Eligible {
			if u != v {
				ns = append(ns, u)
			}
		}
		ns = append(ns, vehicle.DepotIndex)
		neighbors[v] = ns
	}

	return &Problem{
		Inst:        inst,
		VehicleIdx:  vehicleIdx,
		vehicle:     vehicle,
		Duals:       duals,
		FixedCost:   vehicle.FixedCost,
		origin:      vehicle.DepotIndex,
		destination: vehicle.DepotIndex,
		neighbors:   neighbors,
		labels:      inst.CapacityLabels,
	}
}

// numRes returns the number of capacity resources tracked alongside time.
func (p *Problem) numRes() int { return len(p.labels) }

// neighborsOf returns the forward neighbors of vertex (empty at the
// destination).
func (p *Problem) neighborsOf(vertex int) []int {
	if vertex == p.destination {
		return nil
	}
	if to, ok := p.required[vertex]; ok {
		if p.forbidden[[2]int{vertex, to}] {
			return nil
		}

		return []int{to}
	}
	if len(p.forbidden) == 0 {
		return p.neighbors[vertex]
	}

	out := make([]int, 0, len(p.neighbors[vertex]))
	for _, n := range p.neighbors[vertex] {
		if !p.forbidden[[2]int{vertex, n}] {
			out = append(out, n)
		}
	}

	return out
}

// arcReducedCost is the reduced-cost weight of edge i->j: travel cost minus
// the dual price collected by visiting j (duals are charged once, at
// arrival, matching the master's one-constraint-per-node convention).
func (p *Problem) arcReducedCost(i, j int) float64 {
	return p.Inst.CostPerKm*float64(p.Inst.DistMatrix[i][j]) - p.Duals[j]
}

// step extends a start time at i forward across edge i->j via the shared
// wait-to-window / wait-past-midday rule, returning the new start time at j
// and whether j's window was respected.
func (p *Problem) step(i, j, startAtI int) (startAtJ int, ok bool) {
	t := startAtI + p.Inst.Nodes[i].Duration + p.Inst.TimeMatrix[i][j]
	start, _, feasible := schedule.Step(&p.Inst.Nodes[j], t)

	return start, feasible
}

// extendQuantities adds node j's resource consumption to quantities (one
// slot per CapacityLabels entry) and reports whether the vehicle's capacity
// is still respected.
func (p *Problem) extendQuantities(quantities []int, j int) ([]int, bool) {
	next := append([]int(nil), quantities...)
	node := &p.Inst.Nodes[j]

	ok := true
	for k, label := range p.labels {
		next[k] += node.Resources[label]
		if cap, has := p.vehicle.Capacities[label]; has && next[k] > cap {
			ok = false
		}
	}

	return next, ok
}
