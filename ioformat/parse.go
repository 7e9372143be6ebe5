package ioformat

import (
	"encoding/json"
	"fmt"

	"github.com/technician-routing/trp/trpinstance"
)

// ParseOptions configures Parse (spec §6.2's CLI "intervention cap").
type ParseOptions struct {
	// MaxInterventions, if > 0, keeps only the first MaxInterventions
	// interventions in document order (all warehouses are always kept),
	// so large instances can be sampled down for a quick solve.
	MaxInterventions int
}

// Parse decodes an instance JSON document (spec §6.1) into a
// trpinstance.Instance, converting clock-time windows to work-day minutes
// and filtering JOU/MA/AP from the capacity label roster.
func Parse(data []byte, opts ParseOptions) (*trpinstance.Instance, error) {
	var doc instanceDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", trpinstance.ErrMalformed, err)
	}

	n := len(doc.LocManager.Matrix.Distance)
	if n == 0 || len(doc.LocManager.Matrix.Time) != n {
		return nil, fmt.Errorf("%w: loc_manager.matrix is empty or distance/time dimensions disagree", trpinstance.ErrMalformed)
	}

	if opts.MaxInterventions > 0 && len(doc.StepManager.Interventions) > opts.MaxInterventions {
		doc, err := capInterventions(doc, n, opts.MaxInterventions)
		if err != nil {
			return nil, err
		}

		return parseDoc(doc)
	}

	return parseDoc(doc)
}

func parseDoc(doc instanceDoc) (*trpinstance.Instance, error) {
	n := len(doc.LocManager.Matrix.Distance)

	nodes, err := buildNodes(n, doc.StepManager)
	if err != nil {
		return nil, err
	}

	opeBaseToDepot := make(map[string]int, len(doc.StepManager.Warehouses))
	for _, w := range doc.StepManager.Warehouses {
		opeBaseToDepot[w.OpeBase] = w.NodeID
	}

	vehicles, err := buildVehicles(doc.TechManager, opeBaseToDepot)
	if err != nil {
		return nil, err
	}

	opts := trpinstance.Options{
		CostPerKm:     doc.ConstManager.KmCost,
		TechFixedCost: doc.ConstManager.TechCost,
		BigMMode:      trpinstance.BigMPerVehicle,
	}
	capacityLabels := filterCapacityLabels(doc.ConstManager.CapacitiesLabels)

	return trpinstance.New(nodes, vehicles, doc.LocManager.Matrix.Time, doc.LocManager.Matrix.Distance, capacityLabels, opts)
}

// capInterventions keeps every warehouse plus the first maxInterventions
// interventions in document order, remapping node_id references into a
// dense [0, len(kept)) index space and slicing the distance/time matrices
// down to match.
func capInterventions(doc instanceDoc, n, maxInterventions int) (instanceDoc, error) {
	kept := doc.StepManager.Interventions[:maxInterventions]

	oldToNew := make(map[int]int, len(doc.StepManager.Warehouses)+len(kept))
	var oldIdx []int
	for _, w := range doc.StepManager.Warehouses {
		if _, dup := oldToNew[w.NodeID]; dup {
			continue
		}
		oldToNew[w.NodeID] = len(oldIdx)
		oldIdx = append(oldIdx, w.NodeID)
	}
	for _, iv := range kept {
		if _, dup := oldToNew[iv.NodeID]; dup {
			continue
		}
		oldToNew[iv.NodeID] = len(oldIdx)
		oldIdx = append(oldIdx, iv.NodeID)
	}

	for _, idx := range oldIdx {
		if idx < 0 || idx >= n {
			return instanceDoc{}, fmt.Errorf("%w: node_id %d out of range", trpinstance.ErrMalformed, idx)
		}
	}

	remapped := doc
	remapped.StepManager.Warehouses = make([]warehouseDoc, len(doc.StepManager.Warehouses))
	for i, w := range doc.StepManager.Warehouses {
		w.NodeID = oldToNew[w.NodeID]
		remapped.StepManager.Warehouses[i] = w
	}
	remapped.StepManager.Interventions = make([]interventionDoc, len(kept))
	for i, iv := range kept {
		iv.NodeID = oldToNew[iv.NodeID]
		remapped.StepManager.Interventions[i] = iv
	}

	remapped.LocManager.Matrix.Distance = subMatrix(doc.LocManager.Matrix.Distance, oldIdx)
	remapped.LocManager.Matrix.Time = subMatrix(doc.LocManager.Matrix.Time, oldIdx)

	return remapped, nil
}

func subMatrix(full [][]int, keep []int) [][]int {
	out := make([][]int, len(keep))
	for i, oi := range keep {
		row := make([]int, len(keep))
		for j, oj := range keep {
			row[j] = full[oi][oj]
		}
		out[i] = row
	}

	return out
}

func buildNodes(n int, sm stepManagerDoc) ([]trpinstance.Node, error) {
	nodes := make([]trpinstance.Node, n)
	seen := make([]bool, n)

	for _, w := range sm.Warehouses {
		if w.NodeID < 0 || w.NodeID >= n {
			return nil, fmt.Errorf("%w: warehouse node_id %d out of range", trpinstance.ErrMalformed, w.NodeID)
		}
		nodes[w.NodeID] = trpinstance.Node{
			ID:          fmt.Sprintf("depot-%d", w.NodeID),
			Index:       w.NodeID,
			Kind:        trpinstance.NodeDepot,
			StartWindow: 0,
			EndWindow:   trpinstance.EndDay,
			X:           w.Longitude,
			Y:           w.Latitude,
		}
		seen[w.NodeID] = true
	}

	for _, iv := range sm.Interventions {
		if iv.NodeID < 0 || iv.NodeID >= n {
			return nil, fmt.Errorf("%w: intervention node_id %d out of range", trpinstance.ErrMalformed, iv.NodeID)
		}
		if seen[iv.NodeID] {
			return nil, fmt.Errorf("%w: node_id %d used by both a warehouse and an intervention", trpinstance.ErrMalformed, iv.NodeID)
		}
		nodes[iv.NodeID] = trpinstance.Node{
			ID:          iv.ID,
			Index:       iv.NodeID,
			Kind:        trpinstance.NodeIntervention,
			Duration:    iv.Duration,
			StartWindow: toWorkdayMinutes(iv.StartWindow),
			EndWindow:   toWorkdayMinutes(iv.EndWindow),
			Resources:   iv.Quantities,
			Skills:      flattenSkills(iv.Skills),
			X:           iv.Longitude,
			Y:           iv.Latitude,
		}
		seen[iv.NodeID] = true
	}

	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: node_id %d appears in no warehouse or intervention entry", trpinstance.ErrMalformed, i)
		}
	}

	return nodes, nil
}

func buildVehicles(tm techManagerDoc, opeBaseToDepot map[string]int) ([]trpinstance.VehicleInput, error) {
	techByID := make(map[string]technicianDoc, len(tm.Technicians))
	for _, t := range tm.Technicians {
		techByID[t.ID] = t
	}

	assigned := make(map[string]bool, len(tm.Technicians))
	vehicles := make([]trpinstance.VehicleInput, 0, len(tm.Technicians))

	for _, team := range tm.Teams.FixedTeams {
		v, err := buildTeamVehicle(team, techByID, opeBaseToDepot)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
		for _, id := range team {
			assigned[id] = true
		}
	}

	for _, t := range tm.Technicians {
		if assigned[t.ID] {
			continue
		}
		v, err := buildTeamVehicle([]string{t.ID}, techByID, opeBaseToDepot)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}

// buildTeamVehicle pools ids' skills (headcount) and capacities (summed)
// into one VehicleInput, requiring every technician in the team to share
// an ope_base that resolves to a known depot.
func buildTeamVehicle(ids []string, techByID map[string]technicianDoc, opeBaseToDepot map[string]int) (trpinstance.VehicleInput, error) {
	skills := make(map[string]int)
	capacities := make(map[string]int)
	var opeBase string

	for i, id := range ids {
		t, ok := techByID[id]
		if !ok {
			return trpinstance.VehicleInput{}, fmt.Errorf("%w: unknown technician %q in team", trpinstance.ErrMalformed, id)
		}
		if i == 0 {
			opeBase = t.OpeBase
		} else if t.OpeBase != opeBase {
			return trpinstance.VehicleInput{}, fmt.Errorf("%w: team %v spans more than one ope_base", trpinstance.ErrInconsistentDepot, ids)
		}
		for _, s := range t.Skills {
			skills[s]++
		}
		for label, qty := range t.Capacities {
			capacities[label] += qty
		}
	}

	depotIdx, ok := opeBaseToDepot[opeBase]
	if !ok {
		return trpinstance.VehicleInput{}, fmt.Errorf("%w: no warehouse for ope_base %q", trpinstance.ErrInconsistentDepot, opeBase)
	}

	return trpinstance.VehicleInput{
		ID:          "team-" + ids[0],
		Technicians: ids,
		Skills:      skills,
		DepotIndex:  depotIdx,
		Capacities:  capacities,
	}, nil
}
