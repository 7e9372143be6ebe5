package cluster

import (
	"sort"

	"github.com/technician-routing/trp/trpinstance"
)

// SimilarityMatrix returns inst.Similarity, the Hamming-distance matrix
// computed once at instance construction (trpinstance.New).
func SimilarityMatrix(inst *trpinstance.Instance) [][]int {
	return inst.Similarity
}

// Hamming counts interventions eligible for exactly one of the two
// vehicles. trpinstance.New already computes this once per pair into
// Instance.Similarity; Hamming exists so
// callers building an ad hoc vehicle (e.g. a candidate not yet in the
// fleet) can compare it against one already in the instance.
func Hamming(v1, v2 *trpinstance.Vehicle) int {
	a, b := make(map[int]bool, len(v1.Eligible)), make(map[int]bool, len(v2.Eligible))
	for _, n := range v1.Eligible {
		a[n] = true
	}
	for _, n := range v2.Eligible {
		b[n] = true
	}

	dist := 0
	for n := range a {
		if !b[n] {
			dist++
		}
	}
	for n := range b {
		if !a[n] {
			dist++
		}
	}

	return dist
}

// GroupByDepot partitions vehicleIdxs by DepotIndex, preserving input order
// within each group.
func GroupByDepot(inst *trpinstance.Instance, vehicleIdxs []int) map[int][]int {
	groups := make(map[int][]int)
	for _, v := range vehicleIdxs {
		depot := inst.Vehicles[v].DepotIndex
		groups[depot] = append(groups[depot], v)
	}

	return groups
}

// Cost sums the similarity distance between every pair of vehicles sharing
// a cluster: a good clustering groups similar (low-distance) vehicles
// together, so lower is better.
func Cost(clusters [][]int, similarity [][]int) int {
	cost := 0
	for _, c := range clusters {
		for i := 0; i < len(c); i++ {
			for j := i + 1; j < len(c); j++ {
				cost += similarity[c[i]][c[j]]
			}
		}
	}

	return cost
}

// OptimalPairs partitions the n vehicles indexed 0..n-1 (n =
// len(similarity)) into clusters of size at most 2, greedily pairing the
// globally closest (lowest-distance) vehicles first — a polynomial stand-in
// for the original's exact minimum-weight-matching ILP (optimal_clustering_by_2),
// which this codebase does not wire to a MILP backend (see DESIGN.md).
func OptimalPairs(similarity [][]int) ([][]int, error) {
	n := len(similarity)
	if n == 0 {
		return nil, ErrEmptyMatrix
	}

	type edge struct{ i, j, dist int }
	edges := make([]edge, 0, n*n/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, edge{i, j, similarity[i][j]})
		}
	}
	sort.Slice(edges, func(a, b int) bool { return edges[a].dist < edges[b].dist })

	paired := make([]bool, n)
	clusters := make([][]int, 0, (n+1)/2)
	for _, e := range edges {
		if paired[e.i] || paired[e.j] {
			continue
		}
		clusters = append(clusters, []int{e.i, e.j})
		paired[e.i], paired[e.j] = true, true
	}
	for v := 0; v < n; v++ {
		if !paired[v] {
			clusters = append(clusters, []int{v})
		}
	}

	return clusters, nil
}

// Optimal2Clustering splits the n vehicles into at most two clusters via a
// deterministic greedy construction (each vehicle in turn joins whichever
// side currently has lower accumulated similarity to it, ties going to the
// first side) — a polynomial stand-in for the original's exact Gurobi ILP
// (optimal_2_clustering). The result is not guaranteed to minimize Cost, and
// a single cluster is returned when the second side stays empty (for
// example n == 1). Pair the result with GreedyNeighbor for further
// improvement.
func Optimal2Clustering(similarity [][]int) ([][]int, error) {
	n := len(similarity)
	if n == 0 {
		return nil, ErrEmptyMatrix
	}

	a, b := []int{}, []int{}
	for v := 0; v < n; v++ {
		costA, costB := 0, 0
		for _, u := range a {
			costA += similarity[v][u]
		}
		for _, u := range b {
			costB += similarity[v][u]
		}
		if costA <= costB {
			a = append(a, v)
		} else {
			b = append(b, v)
		}
	}

	if len(b) == 0 {
		return [][]int{a}, nil
	}

	return [][]int{a, b}, nil
}

// GreedyNeighbor proposes one swap-based local-search move: pick a
// deterministic pseudo-random vehicle, find its closest neighbor outside
// its current cluster, and swap the two between clusters. It returns a new
// clustering (clusters is never mutated); callers
// iterate this (e.g. accept-if-improves hill climbing) to refine a starting
// OptimalPairs/Optimal2Clustering result.
func GreedyNeighbor(similarity [][]int, clusters [][]int, seed int64) [][]int {
	n := len(similarity)
	if n == 0 {
		return clusters
	}

	out := make([][]int, len(clusters))
	for i, c := range clusters {
		out[i] = append([]int(nil), c...)
	}

	vehicleCluster := make([]int, n)
	for ci, c := range out {
		for _, v := range c {
			vehicleCluster[v] = ci
		}
	}

	rng := rngFromSeed(seed)
	vehicle := rng.Intn(n)
	cluster := vehicleCluster[vehicle]

	closest, minDist := -1, int(^uint(0)>>1)
	for u := 0; u < n; u++ {
		if u == vehicle || vehicleCluster[u] == cluster {
			continue
		}
		if similarity[vehicle][u] < minDist {
			minDist, closest = similarity[vehicle][u], u
		}
	}
	if closest < 0 {
		return out
	}

	neighborCluster := vehicleCluster[closest]
	replaceInPlace(out[cluster], vehicle, closest)
	replaceInPlace(out[neighborCluster], closest, vehicle)

	return out
}

func replaceInPlace(s []int, from, to int) {
	for i, v := range s {
		if v == from {
			s[i] = to
			return
		}
	}
}
