package repair_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/technician-routing/trp/master"
	"github.com/technician-routing/trp/repair"
	"github.com/technician-routing/trp/route"
	"github.com/technician-routing/trp/trpinstance"
)

// buildOverlapInstance: depot 0, interventions A(1), B(2), C(3) on a line
// 0-1-2-3 so that inserting B into a route costs little (it sits directly
// between A and C) versus a route that must detour far to reach it.
func buildOverlapInstance(t *testing.T) *trpinstance.Instance {
	t.Helper()

	nodes := []trpinstance.Node{
		{ID: "D", Kind: trpinstance.NodeDepot, Index: 0, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "A", Kind: trpinstance.NodeIntervention, Index: 1, Duration: 10, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "B", Kind: trpinstance.NodeIntervention, Index: 2, Duration: 10, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "C", Kind: trpinstance.NodeIntervention, Index: 3, Duration: 10, StartWindow: 0, EndWindow: trpinstance.EndDay},
	}
	dist := [][]int{
		{0, 1, 2, 3},
		{1, 0, 1, 2},
		{2, 1, 0, 1},
		{3, 2, 1, 0},
	}

	inst, err := trpinstance.New(nodes, []trpinstance.VehicleInput{{ID: "v0", DepotIndex: 0}, {ID: "v1", DepotIndex: 0}}, dist, dist, nil,
		trpinstance.Options{CostPerKm: 1, BigMMode: trpinstance.BigMPerVehicle})
	require.NoError(t, err)

	return inst
}

func TestDedup_RemovesDuplicateFromTheMoreExpensiveRoute(t *testing.T) {
	inst := buildOverlapInstance(t)

	// Route 0: depot -> A -> B -> C -> depot (B sits cheaply between A and C).
	r0, err := route.New(inst, 0, []int{0, 1, 2, 3, 0})
	require.NoError(t, err)
	// Route 1: depot -> B -> depot (B visited alone by a second vehicle: a
	// costlier way to cover B, since the whole round trip is attributed to it).
	r1, err := route.New(inst, 1, []int{0, 2, 0})
	require.NoError(t, err)

	sol := &master.IntegerSolution{Routes: []*route.Route{&r0, &r1}, Objective: r0.Cost + r1.Cost}

	out, err := repair.Dedup(sol, inst, nil)
	require.NoError(t, err)

	// Route 1 should have been dropped entirely (reduced to depot-only).
	require.Len(t, out.Routes, 1)
	require.Equal(t, []int{0, 1, 2, 3, 0}, out.Routes[0].Sequence)
}

func TestDedup_IsIdempotent(t *testing.T) {
	inst := buildOverlapInstance(t)

	r0, err := route.New(inst, 0, []int{0, 1, 2, 3, 0})
	require.NoError(t, err)
	r1, err := route.New(inst, 1, []int{0, 2, 0})
	require.NoError(t, err)

	sol := &master.IntegerSolution{Routes: []*route.Route{&r0, &r1}, Objective: r0.Cost + r1.Cost}

	once, err := repair.Dedup(sol, inst, nil)
	require.NoError(t, err)

	twice, err := repair.Dedup(once, inst, nil)
	require.NoError(t, err)

	require.Equal(t, len(once.Routes), len(twice.Routes))
	for i := range once.Routes {
		require.True(t, once.Routes[i].Equal(twice.Routes[i]))
	}
	require.InDelta(t, once.Objective, twice.Objective, 1e-9)
}

func TestDedup_LeavesNonOverlappingRoutesUnchanged(t *testing.T) {
	inst := buildOverlapInstance(t)

	r0, err := route.New(inst, 0, []int{0, 1, 0})
	require.NoError(t, err)
	r1, err := route.New(inst, 1, []int{0, 2, 3, 0})
	require.NoError(t, err)

	sol := &master.IntegerSolution{Routes: []*route.Route{&r0, &r1}, Objective: r0.Cost + r1.Cost}

	out, err := repair.Dedup(sol, inst, nil)
	require.NoError(t, err)
	require.Len(t, out.Routes, 2)
}
