package route_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/technician-routing/trp/route"
	"github.com/technician-routing/trp/trpinstance"
)

// buildInstance reproduces spec §8 scenario 1: one vehicle, two jobs,
// trivial time windows, D-A=10, A-B=10, B-D=10, cost_per_km=1, fixed_cost=0.
func buildInstance(t *testing.T) *trpinstance.Instance {
	t.Helper()

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
	timeM := dist // unit speed for this fixture

	inst, err := trpinstance.New(nodes, []trpinstance.VehicleInput{
		{ID: "v1", DepotIndex: 0},
	}, timeM, dist, nil, trpinstance.Options{CostPerKm: 1, TechFixedCost: 0, BigMMode: trpinstance.BigMPerVehicle})
	require.NoError(t, err)

	return inst
}

func TestNew_ScenarioOne(t *testing.T) {
	inst := buildInstance(t)

	r, err := route.New(inst, 0, []int{0, 1, 2, 0})
	require.NoError(t, err)
	require.Equal(t, 30, r.Distance)
	require.Equal(t, 120, r.Duration)
	require.Equal(t, 30.0, r.Cost)

	sched, err := r.Feasible(inst)
	require.NoError(t, err)
	require.LessOrEqual(t, sched.ReturnTime, trpinstance.EndDay)
}

func TestNew_RejectsWrongEndpoints(t *testing.T) {
	inst := buildInstance(t)

	_, err := route.New(inst, 0, []int{1, 2, 0})
	require.ErrorIs(t, err, route.ErrBadEndpoints)
}

func TestNew_RejectsRepeatedIntervention(t *testing.T) {
	inst := buildInstance(t)

	_, err := route.New(inst, 0, []int{0, 1, 1, 0})
	require.ErrorIs(t, err, route.ErrNotElementary)
}

func TestEqual(t *testing.T) {
	inst := buildInstance(t)
	a, err := route.New(inst, 0, []int{0, 1, 2, 0})
	require.NoError(t, err)
	b, err := route.New(inst, 0, []int{0, 1, 2, 0})
	require.NoError(t, err)
	c, err := route.New(inst, 0, []int{0, 2, 1, 0})
	require.NoError(t, err)

	require.True(t, a.Equal(&b))
	require.False(t, a.Equal(&c))
}
