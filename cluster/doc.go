// Package cluster groups vehicles by similarity and by depot for the
// Clustering pricing strategy and the Grouped pulse variant (spec §4.4,
// §4.8).
//
// Vehicle similarity is the Hamming distance between eligible-intervention
// sets (trpinstance.Instance.Similarity, computed once at instance
// construction); this package consumes that matrix rather than
// recomputing it. Two families of grouping are offered:
//
//   - GroupByDepot: an exact partition by DepotIndex, used by the Grouped
//     pulse variant to amortize Phase A bounding.
//   - OptimalPairs / Optimal2Clustering (+ GreedyNeighbor local search): approximate
//     clusterings by similarity, used by the Clustering pricing strategy to
//     decide which vehicles should be priced together with a shared dual
//     snapshot.
//
// OptimalPairs and Optimal2Clustering are greedy constructions refined by
// GreedyNeighbor's randomized swap search rather than an exact ILP (see
// DESIGN.md for why no MILP solver is wired in here).
package cluster

import "errors"

// ErrEmptyMatrix indicates an empty similarity matrix was supplied.
var ErrEmptyMatrix = errors.New("cluster: similarity matrix is empty")
