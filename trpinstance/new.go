package trpinstance

import (
	"fmt"
	"sort"
)

// VehicleInput is the pre-eligibility-derivation shape a caller (ioformat,
// or a hand-built test fixture) supplies per vehicle; New derives Eligible
// and eligibleSet from each node's Skills against the vehicle's pooled
// Skills and fills in FixedCost from Options.TechFixedCost times crew size.
type VehicleInput struct {
	ID          string
	Technicians []string
	Skills      map[string]int
	DepotIndex  int
	Capacities  map[string]int
}

// New builds an immutable Instance from already-parsed nodes and vehicle
// inputs, running preprocessing (ambiguity classification, window
// tightening), eligibility derivation, big-M computation, and the vehicle
// similarity matrix in one pass.
//
// nodes must already carry correct Index values matching their position in
// the slice and in timeMatrix/distMatrix; nodes[i].Index == i for all i.
func New(nodes []Node, vehicleInputs []VehicleInput, timeMatrix, distMatrix [][]int, capacityLabels []string, opts Options) (*Instance, error) {
	if len(vehicleInputs) == 0 {
		return nil, ErrNoVehicles
	}
	if err := validateMatrices(nodes, timeMatrix, distMatrix); err != nil {
		return nil, err
	}

	Preprocess(nodes)

	for i := range nodes {
		if nodes[i].Kind == NodeIntervention && nodes[i].StartWindow+nodes[i].Duration > nodes[i].EndWindow {
			return nil, fmt.Errorf("%w: node %q", ErrWindowTooTight, nodes[i].ID)
		}
	}

	vehicles := make([]Vehicle, len(vehicleInputs))
	for i, vi := range vehicleInputs {
		if vi.DepotIndex < 0 || vi.DepotIndex >= len(nodes) || nodes[vi.DepotIndex].Kind != NodeDepot {
			return nil, fmt.Errorf("%w: vehicle %q has no valid depot", ErrMalformed, vi.ID)
		}
		elig, eligSet := deriveEligibility(nodes, vi.Skills)
		vehicles[i] = Vehicle{
			ID:          vi.ID,
			Technicians: vi.Technicians,
			Skills:      vi.Skills,
			Eligible:    elig,
			eligibleSet: eligSet,
			DepotIndex:  vi.DepotIndex,
			Capacities:  vi.Capacities,
			FixedCost:   opts.TechFixedCost * float64(len(vi.Technicians)),
		}
	}

	var m float64
	switch opts.BigMMode {
	case BigMGlobal:
		m = computeBigMGlobal(nodes, timeMatrix, distMatrix, opts.CostPerKm)
	default:
		m = computeBigMPerVehicle(nodes, vehicles, timeMatrix, distMatrix, opts.CostPerKm)
	}

	return &Instance{
		Nodes:          nodes,
		Vehicles:       vehicles,
		TimeMatrix:     timeMatrix,
		DistMatrix:     distMatrix,
		CapacityLabels: capacityLabels,
		CostPerKm:      opts.CostPerKm,
		M:              m,
		Similarity:     similarityMatrix(vehicles),
	}, nil
}

// VirtualVehicle synthesizes a union vehicle over a depot group for the
// grouped pricing strategy (§4.4): its eligible set is the union of the
// group's eligible sets and its capacity per label is the componentwise
// maximum, so that any path it rules infeasible is infeasible for every
// vehicle in the group too. It is never added to Instance.Vehicles; it
// exists only as the Problem a grouped Solver prices against.
func VirtualVehicle(inst *Instance, group []int) Vehicle {
	eligSet := make(map[int]bool)
	capacities := make(map[string]int, len(inst.CapacityLabels))
	depot := -1
	if len(group) > 0 {
		depot = inst.Vehicles[group[0]].DepotIndex
	}

	for _, vIdx := range group {
		v := &inst.Vehicles[vIdx]
		for _, n := range v.Eligible {
			eligSet[n] = true
		}
		for label, cap := range v.Capacities {
			if cap > capacities[label] {
				capacities[label] = cap
			}
		}
	}

	elig := make([]int, 0, len(eligSet))
	for n := range eligSet {
		elig = append(elig, n)
	}
	sort.Ints(elig)

	return Vehicle{
		ID:          "virtual-group",
		Eligible:    elig,
		eligibleSet: eligSet,
		DepotIndex:  depot,
		Capacities:  capacities,
	}
}

// MaskVehicle returns a copy of v with exclude's members removed from its
// eligible set, same DepotIndex/Capacities/FixedCost otherwise. Used by the
// Diversified pricing strategy to re-price a vehicle over only the
// currently-uncovered interventions without mutating the shared Instance.
func MaskVehicle(v *Vehicle, exclude map[int]bool) Vehicle {
	eligSet := make(map[int]bool, len(v.Eligible))
	elig := make([]int, 0, len(v.Eligible))
	for _, n := range v.Eligible {
		if exclude[n] {
			continue
		}
		eligSet[n] = true
		elig = append(elig, n)
	}

	return Vehicle{
		ID:          v.ID,
		Technicians: v.Technicians,
		Skills:      v.Skills,
		Eligible:    elig,
		eligibleSet: eligSet,
		DepotIndex:  v.DepotIndex,
		Capacities:  v.Capacities,
		FixedCost:   v.FixedCost,
	}
}

// deriveEligibility returns, in ascending index order, every intervention
// node a vehicle with the given pooled skills can service (it meets or
// exceeds every required skill headcount), plus a membership set for O(1)
// lookups.
func deriveEligibility(nodes []Node, vehicleSkills map[string]int) ([]int, map[int]bool) {
	elig := make([]int, 0, len(nodes))
	eligSet := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		if n.Kind != NodeIntervention {
			continue
		}
		if hasSkills(vehicleSkills, n.Skills) {
			elig = append(elig, n.Index)
			eligSet[n.Index] = true
		}
	}

	return elig, eligSet
}

func hasSkills(have, need map[string]int) bool {
	for skill, count := range need {
		if have[skill] < count {
			return false
		}
	}

	return true
}

func validateMatrices(nodes []Node, timeMatrix, distMatrix [][]int) error {
	n := len(nodes)
	if len(timeMatrix) != n || len(distMatrix) != n {
		return fmt.Errorf("%w: matrix row count != node count", ErrMalformed)
	}
	for i := 0; i < n; i++ {
		if len(timeMatrix[i]) != n || len(distMatrix[i]) != n {
			return fmt.Errorf("%w: matrix not square at row %d", ErrMalformed, i)
		}
		if nodes[i].Index != i {
			return fmt.Errorf("%w: node %q has Index %d, expected %d", ErrMalformed, nodes[i].ID, nodes[i].Index, i)
		}
	}

	return nil
}
