package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/technician-routing/trp/cluster"
	"github.com/technician-routing/trp/trpinstance"
)

// buildFleet returns a small instance with four vehicles at two depots and
// a mix of skills, enough to exercise grouping and similarity clustering.
func buildFleet(t *testing.T) *trpinstance.Instance {
	t.Helper()

	nodes := []trpinstance.Node{
		{ID: "D0", Kind: trpinstance.NodeDepot, Index: 0, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "D1", Kind: trpinstance.NodeDepot, Index: 1, StartWindow: 0, EndWindow: trpinstance.EndDay},
		{ID: "A", Kind: trpinstance.NodeIntervention, Index: 2, Duration: 30, StartWindow: 0, EndWindow: trpinstance.EndDay, Skills: map[string]int{"elec": 1}},
		{ID: "B", Kind: trpinstance.NodeIntervention, Index: 3, Duration: 30, StartWindow: 0, EndWindow: trpinstance.EndDay, Skills: map[string]int{"plumb": 1}},
	}
	n := len(nodes)
	dist := make([][]int, n)
	for i := range dist {
		dist[i] = make([]int, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = 10
			}
		}
	}

	vehicles := []trpinstance.VehicleInput{
		{ID: "v0", DepotIndex: 0, Skills: map[string]int{"elec": 1}},
		{ID: "v1", DepotIndex: 0, Skills: map[string]int{"elec": 1}},
		{ID: "v2", DepotIndex: 1, Skills: map[string]int{"plumb": 1}},
		{ID: "v3", DepotIndex: 1, Skills: map[string]int{"elec": 1, "plumb": 1}},
	}

	inst, err := trpinstance.New(nodes, vehicles, dist, dist, nil, trpinstance.Options{CostPerKm: 1, BigMMode: trpinstance.BigMPerVehicle})
	require.NoError(t, err)

	return inst
}

func TestGroupByDepot(t *testing.T) {
	inst := buildFleet(t)

	groups := cluster.GroupByDepot(inst, []int{0, 1, 2, 3})
	require.ElementsMatch(t, []int{0, 1}, groups[0])
	require.ElementsMatch(t, []int{2, 3}, groups[1])
}

func TestHamming_MatchesInstanceSimilarity(t *testing.T) {
	inst := buildFleet(t)

	require.Equal(t, inst.Similarity[0][1], cluster.Hamming(&inst.Vehicles[0], &inst.Vehicles[1]))
	require.Equal(t, 0, cluster.Hamming(&inst.Vehicles[0], &inst.Vehicles[0]))
}

func TestSimilarityMatrix_ReturnsInstanceMatrix(t *testing.T) {
	inst := buildFleet(t)

	sim := cluster.SimilarityMatrix(inst)
	require.Equal(t, inst.Similarity, sim)
	require.Equal(t, 0, sim[0][0])
}

func TestCost_SumsIntraClusterSimilarity(t *testing.T) {
	sim := [][]int{
		{0, 1, 3},
		{1, 0, 2},
		{3, 2, 0},
	}

	require.Equal(t, 1, cluster.Cost([][]int{{0, 1}, {2}}, sim))
	require.Equal(t, 1+3+2, cluster.Cost([][]int{{0, 1, 2}}, sim))
}

func TestOptimalPairs_PairsClosestFirstAndCoversEveryVehicle(t *testing.T) {
	sim := [][]int{
		{0, 1, 5, 5},
		{1, 0, 5, 5},
		{5, 5, 0, 2},
		{5, 5, 2, 0},
	}

	clusters, err := cluster.OptimalPairs(sim)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, c := range clusters {
		require.LessOrEqual(t, len(c), 2)
		for _, v := range c {
			require.False(t, seen[v], "vehicle %d assigned twice", v)
			seen[v] = true
		}
	}
	require.Len(t, seen, 4)

	require.Contains(t, clusters, []int{0, 1})
	require.Contains(t, clusters, []int{2, 3})
}

func TestOptimalPairs_RejectsEmptyMatrix(t *testing.T) {
	_, err := cluster.OptimalPairs(nil)
	require.ErrorIs(t, err, cluster.ErrEmptyMatrix)
}

func TestOptimal2Clustering_CoversEveryVehicleInExactlyTwoClusters(t *testing.T) {
	sim := [][]int{
		{0, 1, 5, 5},
		{1, 0, 5, 5},
		{5, 5, 0, 1},
		{5, 5, 1, 0},
	}

	clusters, err := cluster.Optimal2Clustering(sim)
	require.NoError(t, err)
	require.Len(t, clusters, 2)

	seen := make(map[int]bool)
	for _, c := range clusters {
		for _, v := range c {
			seen[v] = true
		}
	}
	require.Len(t, seen, 4)
}

func TestOptimal2Clustering_RejectsEmptyMatrix(t *testing.T) {
	_, err := cluster.Optimal2Clustering(nil)
	require.ErrorIs(t, err, cluster.ErrEmptyMatrix)
}

func TestGreedyNeighbor_SwapsAcrossClustersDeterministically(t *testing.T) {
	sim := [][]int{
		{0, 1, 5, 5},
		{1, 0, 5, 5},
		{5, 5, 0, 1},
		{5, 5, 1, 0},
	}
	clusters := [][]int{{0, 2}, {1, 3}}

	out := cluster.GreedyNeighbor(sim, clusters, 7)

	seen := make(map[int]bool)
	for _, c := range out {
		for _, v := range c {
			seen[v] = true
		}
	}
	require.Len(t, seen, 4)
	// Every vehicle has a partner in the other cluster, so a swap always happens,
	// and the same seed reproduces the same result.
	require.NotEqual(t, clusters, out)
	require.Equal(t, out, cluster.GreedyNeighbor(sim, clusters, 7))

	// The input clustering is untouched (GreedyNeighbor must not mutate it).
	require.Equal(t, [][]int{{0, 2}, {1, 3}}, clusters)
}

func TestGreedyNeighbor_EmptyMatrixReturnsInputUnchanged(t *testing.T) {
	out := cluster.GreedyNeighbor(nil, [][]int{{0}}, 1)
	require.Equal(t, [][]int{{0}}, out)
}
