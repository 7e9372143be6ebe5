package branchprice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/technician-routing/trp/branchprice"
	"github.com/technician-routing/trp/colgen"
	"github.com/technician-routing/trp/master"
	"github.com/technician-routing/trp/trpinstance"
)

func buildTwoVehicleInstance(t *testing.T) *trpinstance.Instance {
	t.Helper()

	nodes := []trpinstance.Node{
		{ID: "D", Kind: trpinstance.NodeDepot, Index: 0, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "A", Kind: trpinstance.NodeIntervention, Index: 1, Duration: 30, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "B", Kind: trpinstance.NodeIntervention, Index: 2, Duration: 30, StartWindow: 0, EndWindow: trpinstance.EndDay},
	}
	dist := [][]int{
		{0, 5, 50},
		{5, 0, 50},
		{50, 50, 0},
	}

	inst, err := trpinstance.New(nodes, []trpinstance.VehicleInput{{ID: "v0", DepotIndex: 0}, {ID: "v1", DepotIndex: 0}}, dist, dist, nil,
		trpinstance.Options{CostPerKm: 1, BigMMode: trpinstance.BigMPerVehicle})
	require.NoError(t, err)

	return inst
}

func TestRun_ReturnsIntegralIncumbentCoveringBothJobs(t *testing.T) {
	inst := buildTwoVehicleInstance(t)

	opts := branchprice.DefaultOptions()
	opts.Colgen = colgen.NewOptions(colgen.WithMaxIterations(20), colgen.WithTimeLimit(5*time.Second))
	opts.TimeLimit = 10 * time.Second

	result, err := branchprice.Run(context.Background(), inst, []int{0, 1}, nil, opts)
	require.NoError(t, err)
	require.NotNil(t, result.Best)
	require.Less(t, result.Best.Objective, inst.M*30)

	covered := make(map[int]bool)
	for _, r := range result.Best.Routes {
		for _, n := range r.Sequence {
			if inst.Nodes[n].Kind == trpinstance.NodeIntervention {
				covered[n] = true
			}
		}
	}
	for _, n := range result.Best.Outsourced {
		covered[n] = true
	}
	require.True(t, covered[1])
	require.True(t, covered[2])
}

func TestRun_StopsAtMaxNodes(t *testing.T) {
	inst := buildTwoVehicleInstance(t)

	opts := branchprice.DefaultOptions()
	opts.Colgen = colgen.NewOptions(colgen.WithMaxIterations(20), colgen.WithTimeLimit(5*time.Second))
	opts.MaxNodes = 1

	result, err := branchprice.Run(context.Background(), inst, []int{0, 1}, nil, opts)
	require.NoError(t, err)
	require.LessOrEqual(t, result.NodesExplored, 1)
}

func TestRun_MaximizeWeightedDurationFormulationProducesNonNegativeIncumbent(t *testing.T) {
	inst := buildTwoVehicleInstance(t)

	opts := branchprice.DefaultOptions()
	opts.Formulation = master.MaximizeWeightedDuration
	opts.Colgen = colgen.NewOptions(colgen.WithMaxIterations(20), colgen.WithTimeLimit(5*time.Second))

	result, err := branchprice.Run(context.Background(), inst, []int{0, 1}, nil, opts)
	require.NoError(t, err)
	require.NotNil(t, result.Best)
	require.GreaterOrEqual(t, result.Best.Objective, 0.0)
}
