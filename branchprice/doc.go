// Package branchprice drives the branch-and-price search of spec §4.7: a
// FIFO frontier of Node values, each holding one subtree's accumulated
// arc-branching decisions. For every node it builds a fresh
// solverapi.Solver and master.Problem (cheap — GonumSolver holds only
// in-memory matrices, no OS handle, see SPEC_FULL.md §9), seeds it with
// every pool route still feasible under the node's restrictions
// (routeFeasibleForNode), and runs colgen.Run to reconverge the LP
// relaxation.
//
// One struct carries the whole search (frontier, incumbent, pool) in an
// engine-with-explicit-state style, generalized from a single best-tour
// search over one DFS stack to a tree of LP/MIP subproblems explored
// breadth-first.
//
// Branching picks the first fractional aggregated arc usage x_ijv found by
// iterating vehicles (in caller order), then the route pool (in
// pool-insertion order) to accumulate x_ijv, then node pairs (i,j) in
// ascending index order to search for a fractional value — fully
// deterministic (spec §9). Each branch produces two children: "down"
// (x_ijv fixed to 0 via Problem.Forbid, and any pool route using the arc
// is excluded when the child node seeds its master) and "up" (x_ijv fixed
// to 1 via Problem.Require, and any pool route for that vehicle that
// reaches the arc's tail without continuing to its head is excluded the
// same way). Neither child adds an explicit master constraint — the fresh
// Problem built per node makes pool filtering and pricing-graph
// restriction sufficient without Ryan-Foster-style row surgery.
//
// A node closes — becomes an incumbent candidate without further
// branching — either because its LP relaxation is already integral, or
// because its restricted-pool MIP bound is within NodeCloseTolerance of
// its LP bound (spec §4.7's "node closing at |MIP-LP|<1e-3").
package branchprice
