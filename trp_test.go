package trp_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/technician-routing/trp/branchprice"
	"github.com/technician-routing/trp/colgen"
	"github.com/technician-routing/trp/master"
	"github.com/technician-routing/trp/schedule"
	"github.com/technician-routing/trp/solverapi"
	"github.com/technician-routing/trp/trpinstance"
)

// TestScenario_SingleVehicleTwoJobsTrivialTW covers spec §8 scenario 1: one
// vehicle, two jobs, windows wide open, every leg 10 km. The tour visits A
// and B in either order; kilometres=30, duration=120, objective=30.
func TestScenario_SingleVehicleTwoJobsTrivialTW(t *testing.T) {
	nodes := []trpinstance.Node{
		{ID: "D", Kind: trpinstance.NodeDepot, Index: 0, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "A", Kind: trpinstance.NodeIntervention, Index: 1, Duration: 60, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "B", Kind: trpinstance.NodeIntervention, Index: 2, Duration: 60, StartWindow: 0, EndWindow: trpinstance.EndDay},
	}
	dist := [][]int{
		{0, 10, 10},
		{10, 0, 10},
		{10, 10, 0},
	}

	inst, err := trpinstance.New(nodes, []trpinstance.VehicleInput{{ID: "v0", DepotIndex: 0}}, dist, dist, nil,
		trpinstance.Options{CostPerKm: 1, BigMMode: trpinstance.BigMPerVehicle})
	require.NoError(t, err)

	opts := branchprice.DefaultOptions()
	opts.Colgen = colgen.NewOptions(colgen.WithMaxIterations(20), colgen.WithTimeLimit(5*time.Second))
	opts.TimeLimit = 10 * time.Second

	result, err := branchprice.Run(context.Background(), inst, []int{0}, nil, opts)
	require.NoError(t, err)
	require.NotNil(t, result.Best)
	require.Empty(t, result.Best.Outsourced)
	require.Len(t, result.Best.Routes, 1)

	r := result.Best.Routes[0]
	require.Len(t, r.Sequence, 4)
	require.Equal(t, 0, r.Sequence[0])
	require.Equal(t, 0, r.Sequence[3])
	require.ElementsMatch(t, []int{1, 2}, r.Sequence[1:3])
	require.Equal(t, 30, r.Distance)
	require.Equal(t, 120, r.Duration)
	require.InDelta(t, 30.0, result.Best.Objective, 1e-6)
}

// TestScenario_OutsourceForcedByCapacity covers spec §8 scenario 2: a single
// vehicle with one unit of capacity label "k" cannot serve two jobs each
// consuming a full unit, so exactly one is outsourced at cost M*duration.
func TestScenario_OutsourceForcedByCapacity(t *testing.T) {
	nodes := []trpinstance.Node{
		{ID: "D", Kind: trpinstance.NodeDepot, Index: 0, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "A", Kind: trpinstance.NodeIntervention, Index: 1, Duration: 30, StartWindow: 0, EndWindow: trpinstance.EndDay, Resources: map[string]int{"k": 1}},
		{ID: "B", Kind: trpinstance.NodeIntervention, Index: 2, Duration: 30, StartWindow: 0, EndWindow: trpinstance.EndDay, Resources: map[string]int{"k": 1}},
	}
	dist := [][]int{
		{0, 10, 10},
		{10, 0, 10},
		{10, 10, 0},
	}

	inst, err := trpinstance.New(nodes, []trpinstance.VehicleInput{{ID: "v0", DepotIndex: 0, Capacities: map[string]int{"k": 1}}},
		dist, dist, []string{"k"}, trpinstance.Options{CostPerKm: 1, BigMMode: trpinstance.BigMPerVehicle})
	require.NoError(t, err)

	opts := branchprice.DefaultOptions()
	opts.Colgen = colgen.NewOptions(colgen.WithMaxIterations(20), colgen.WithTimeLimit(5*time.Second))
	opts.TimeLimit = 10 * time.Second

	result, err := branchprice.Run(context.Background(), inst, []int{0}, nil, opts)
	require.NoError(t, err)
	require.NotNil(t, result.Best)
	require.Len(t, result.Best.Outsourced, 1)

	served := 0
	for _, r := range result.Best.Routes {
		for _, n := range r.Sequence {
			if inst.Nodes[n].Kind == trpinstance.NodeIntervention {
				served++
			}
		}
	}
	require.Equal(t, 1, served)

	outsourcedNode := result.Best.Outsourced[0]
	expectedPenalty := inst.M * float64(nodes[outsourcedNode].Duration)
	var routeCost float64
	for _, r := range result.Best.Routes {
		routeCost += r.Cost
	}
	require.InDelta(t, routeCost+expectedPenalty, result.Best.Objective, 1e-6)
}

// TestScenario_LunchBreakActivation covers spec §8 scenario 3: an ambiguous
// intervention's start is delayed to MidDay when arriving early would
// straddle the lunch break, and the route still returns by EndDay.
func TestScenario_LunchBreakActivation(t *testing.T) {
	nodes := []trpinstance.Node{
		{ID: "D", Kind: trpinstance.NodeDepot, Index: 0, StartWindow: 0, EndWindow: trpinstance.EndDay},
		// Duration 60 with a fully open window is ambiguous (fits in either
		// half); travel from D puts arrival just before MidDay, so serving
		// it immediately would straddle the lunch break.
		{ID: "A", Kind: trpinstance.NodeIntervention, Index: 1, Duration: 60, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "B", Kind: trpinstance.NodeIntervention, Index: 2, Duration: 30, StartWindow: trpinstance.MidDay, EndWindow: trpinstance.EndDay},
	}
	dist := [][]int{
		{0, trpinstance.MidDay - 30, 10},
		{trpinstance.MidDay - 30, 0, 10},
		{10, 10, 0},
	}

	inst, err := trpinstance.New(nodes, []trpinstance.VehicleInput{{ID: "v0", DepotIndex: 0}}, dist, dist, nil,
		trpinstance.Options{CostPerKm: 1, BigMMode: trpinstance.BigMPerVehicle})
	require.NoError(t, err)
	require.True(t, inst.Nodes[1].IsAmbiguous)

	sched, err := schedule.Simulate(inst, []int{0, 1, 2, 0})
	require.NoError(t, err)
	require.Len(t, sched.Stops, 4)

	aStop := sched.Stops[1]
	require.True(t, aStop.WaitedForMidday, "arrival at A just before MidDay must wait rather than straddle lunch")
	require.Equal(t, trpinstance.MidDay, aStop.Start)
	require.LessOrEqual(t, sched.ReturnTime, trpinstance.EndDay)
}

// TestScenario_TwoVehiclesOneJob covers spec §8 scenario 4: two vehicles
// both eligible for one job; the LP assigns it to exactly one, and each
// vehicle's usage row stays at most 1.
func TestScenario_TwoVehiclesOneJob(t *testing.T) {
	nodes := []trpinstance.Node{
		{ID: "D", Kind: trpinstance.NodeDepot, Index: 0, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "A", Kind: trpinstance.NodeIntervention, Index: 1, Duration: 30, StartWindow: 0, EndWindow: trpinstance.EndDay},
	}
	dist := [][]int{
		{0, 10},
		{10, 0},
	}

	inst, err := trpinstance.New(nodes, []trpinstance.VehicleInput{
		{ID: "v0", DepotIndex: 0},
		{ID: "v1", DepotIndex: 0},
	}, dist, dist, nil, trpinstance.Options{CostPerKm: 1, BigMMode: trpinstance.BigMPerVehicle})
	require.NoError(t, err)

	opts := branchprice.DefaultOptions()
	opts.Colgen = colgen.NewOptions(colgen.WithMaxIterations(20), colgen.WithTimeLimit(5*time.Second))
	opts.TimeLimit = 10 * time.Second

	result, err := branchprice.Run(context.Background(), inst, []int{0, 1}, nil, opts)
	require.NoError(t, err)
	require.NotNil(t, result.Best)

	usedVehicles := 0
	for _, r := range result.Best.Routes {
		if len(r.Sequence) > 2 {
			usedVehicles++
		}
	}
	require.Equal(t, 1, usedVehicles)
}

// TestScenario_DualFeasibleCertificate covers spec §8 scenario 6: once
// column generation converges with no route added, every vehicle's reduced
// cost is non-negative (within epsilon) — addNegativeColumns' own stopping
// condition is exactly this certificate.
func TestScenario_DualFeasibleCertificate(t *testing.T) {
	nodes := []trpinstance.Node{
		{ID: "D", Kind: trpinstance.NodeDepot, Index: 0, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "A", Kind: trpinstance.NodeIntervention, Index: 1, Duration: 30, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "B", Kind: trpinstance.NodeIntervention, Index: 2, Duration: 30, StartWindow: 0, EndWindow: trpinstance.EndDay},
	}
	dist := [][]int{
		{0, 10, 10},
		{10, 0, 10},
		{10, 10, 0},
	}

	inst, err := trpinstance.New(nodes, []trpinstance.VehicleInput{{ID: "v0", DepotIndex: 0}}, dist, dist, nil,
		trpinstance.Options{CostPerKm: 1, BigMMode: trpinstance.BigMPerVehicle})
	require.NoError(t, err)

	solver := solverapi.NewGonumSolver()
	prob := master.New(inst, solver, master.MinimizeCostWithOutsourcing, false)

	result, err := colgen.Run(context.Background(), inst, prob, []int{0},
		colgen.NewOptions(colgen.WithMaxIterations(20), colgen.WithTimeLimit(5*time.Second)))
	require.NoError(t, err)
	require.Equal(t, "no route added", result.StopReason)
}
