// Package trp is a technician routing solver: branch-and-price over a
// column-generation loop (pulse-based elementary shortest-path pricing),
// producing vehicle routes that cover interventions under time-window,
// skill, and capacity constraints while outsourcing whatever no route can
// reach.
//
// Subpackages:
//
//	trpinstance/ — problem data: nodes, vehicles, matrices, preprocessing
//	schedule/    — forward time-window simulation over a node sequence
//	route/       — a concrete vehicle tour and its derived totals
//	pulse/       — the elementary shortest-path pricing algorithm
//	cluster/     — vehicle-similarity pairing/grouping for pricing
//	solverapi/   — the narrow LP/MIP surface master and branchprice use
//	master/      — the restricted master LP/MIP over route columns
//	colgen/      — the column-generation round loop
//	branchprice/ — the branch-and-price search tree
//	repair/      — post-solve deduplication of overlapping routes
//	ioformat/    — instance/output JSON (un)marshaling
//	trplog/      — structured progress logging
//	cmd/trpsolve/ — the CLI entry point
package trp
