package branchprice

import (
	"github.com/technician-routing/trp/master"
	"github.com/technician-routing/trp/route"
)

// Result is the outcome of one Run.
type Result struct {
	// Best is nil iff no node ever produced a feasible closed solution
	// (should not happen once depth-cutoff fallback fires, but a time
	// limit reached before any node closes is possible).
	Best *master.IntegerSolution

	// Pool is every route discovered across every explored node, in
	// discovery order — callers pass it to repair.Dedup so a route whose
	// sequence survives deduplication unchanged reuses its priced
	// ReducedCost instead of being rebuilt from scratch.
	Pool []*route.Route

	NodesExplored int
	StopReason    string
}
