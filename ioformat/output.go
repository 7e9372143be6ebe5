package ioformat

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/technician-routing/trp/colgen"
	"github.com/technician-routing/trp/master"
	"github.com/technician-routing/trp/route"
	"github.com/technician-routing/trp/schedule"
	"github.com/technician-routing/trp/trpinstance"
)

// outputDoc mirrors the output JSON document (spec §6.1): instance echo is
// omitted here since the caller already holds the parsed instanceDoc it fed
// to Parse; this covers the solved-result half.
type outputDoc struct {
	Objective            float64         `json:"objective"`
	InterventionsCovered int             `json:"interventions_covered"`
	VehiclesUsed         int             `json:"vehicles_used"`
	FixedCosts           float64         `json:"fixed_costs"`
	WorkingMinutes       int             `json:"working_minutes"`
	TravelMinutes        int             `json:"travel_minutes"`
	WaitingMinutes       int             `json:"waiting_minutes"`
	Kilometres           float64         `json:"kilometres"`
	WallTimeMillis       int64           `json:"wall_time_millis"`
	Routes               []routeDoc      `json:"routes"`
	Parameters           cgParamsDoc     `json:"cg_parameters"`
	Evolution            []evolutionDoc  `json:"evolution"`
}

type routeDoc struct {
	VehicleID   string   `json:"vehicle_id"`
	Sequence    []int    `json:"sequence"`
	SequenceIDs []string `json:"sequence_ids"`
	StartTimes  []int    `json:"start_times"`
	Technicians []string `json:"technicians"`
}

type cgParamsDoc struct {
	Epsilon           float64 `json:"epsilon"`
	MaxIterations     int     `json:"max_iterations"`
	MaxNonImprovement int     `json:"max_non_improvement"`
	Stabilization     float64 `json:"stabilization"`
	Strategy          string  `json:"strategy"`
	Delta             int     `json:"delta"`
	PoolSize          int     `json:"pool_size"`
}

type evolutionDoc struct {
	Iteration            int     `json:"iteration"`
	ElapsedMillis         int64   `json:"elapsed_millis"`
	Objective            float64 `json:"objective"`
	InterventionsCovered int     `json:"interventions_covered"`
	RoutesAdded          int     `json:"routes_added"`
}

// BuildOutput assembles the output document for sol against inst, echoing
// cgOpts and reporting wallTime, with one evolution point per recorded
// colgen.IterationSnapshot.
func BuildOutput(inst *trpinstance.Instance, sol *master.IntegerSolution, cgOpts colgen.Options, snapshots []colgen.IterationSnapshot, wallTime time.Duration) (*outputDoc, error) {
	doc := &outputDoc{
		Objective:            sol.Objective,
		InterventionsCovered: countCovered(inst, sol.Routes),
		VehiclesUsed:         len(sol.Routes),
		Parameters:           cgParamsFrom(cgOpts),
		WallTimeMillis:       wallTime.Milliseconds(),
	}

	for _, r := range sol.Routes {
		rd, sc, err := buildRouteDoc(inst, r)
		if err != nil {
			return nil, err
		}
		doc.Routes = append(doc.Routes, rd)
		doc.FixedCosts += inst.Vehicles[r.VehicleIdx].FixedCost
		doc.WorkingMinutes += r.Duration
		doc.Kilometres += float64(r.Distance)
		doc.TravelMinutes += totalTravel(inst, r)
		doc.WaitingMinutes += totalWaiting(sc)
	}

	for _, s := range snapshots {
		doc.Evolution = append(doc.Evolution, evolutionDoc{
			Iteration:            s.Iteration,
			ElapsedMillis:        s.Elapsed.Milliseconds(),
			Objective:            s.Objective,
			InterventionsCovered: s.InterventionsCovered,
			RoutesAdded:          s.RoutesAdded,
		})
	}

	return doc, nil
}

// Marshal renders doc as indented JSON (spec §6.1's document is
// human-inspectable, read by operators as well as downstream tooling).
func Marshal(doc interface{}) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

func buildRouteDoc(inst *trpinstance.Instance, r *route.Route) (routeDoc, schedule.Schedule, error) {
	sc, err := schedule.Simulate(inst, r.Sequence)
	if err != nil {
		return routeDoc{}, schedule.Schedule{}, fmt.Errorf("rebuilding schedule for vehicle %q: %w", inst.Vehicles[r.VehicleIdx].ID, err)
	}

	sequenceIDs := make([]string, len(r.Sequence))
	for i, n := range r.Sequence {
		sequenceIDs[i] = inst.Nodes[n].ID
	}

	startTimes := make([]int, len(sc.Stops))
	for i, stop := range sc.Stops {
		startTimes[i] = stop.Start
	}

	v := inst.Vehicles[r.VehicleIdx]

	return routeDoc{
		VehicleID:   v.ID,
		Sequence:    append([]int(nil), r.Sequence...),
		SequenceIDs: sequenceIDs,
		StartTimes:  startTimes,
		Technicians: append([]string(nil), v.Technicians...),
	}, sc, nil
}

func totalTravel(inst *trpinstance.Instance, r *route.Route) int {
	total := 0
	for i := 0; i+1 < len(r.Sequence); i++ {
		total += inst.TimeMatrix[r.Sequence[i]][r.Sequence[i+1]]
	}

	return total
}

func totalWaiting(sc schedule.Schedule) int {
	total := 0
	for _, stop := range sc.Stops {
		total += stop.Start - stop.Arrival
	}

	return total
}

func countCovered(inst *trpinstance.Instance, routes []*route.Route) int {
	count := 0
	for _, r := range routes {
		for nodeIdx, present := range r.Presence {
			if present && inst.Nodes[nodeIdx].Kind == trpinstance.NodeIntervention {
				count++
			}
		}
	}

	return count
}

func cgParamsFrom(opts colgen.Options) cgParamsDoc {
	return cgParamsDoc{
		Epsilon:           opts.Epsilon,
		MaxIterations:     opts.MaxIterations,
		MaxNonImprovement: opts.MaxNonImprovement,
		Stabilization:     opts.Stabilization,
		Strategy:          strategyName(opts.Strategy),
		Delta:             opts.Delta,
		PoolSize:          opts.PoolSize,
	}
}

func strategyName(s colgen.PricingStrategy) string {
	switch s {
	case colgen.Basic:
		return "basic"
	case colgen.Grouped:
		return "grouped"
	case colgen.Diversified:
		return "diversified"
	case colgen.Clustering:
		return "clustering"
	case colgen.Tabu:
		return "tabu"
	default:
		return "unknown"
	}
}
