// Package colgen runs the restricted-master/pricing loop of spec §4.6:
// solve the master LP, derive a (optionally stabilized) dual price vector,
// call one of five pricing strategies for negative-reduced-cost routes,
// add every one found to the master, and repeat until a stopping rule
// fires. Options is a functional-options struct (colgen.WithStabilization,
// colgen.WithMaxIterations, ...) built by applying a chain of With*
// functions over DefaultOptions.
//
// A priced column's reduced cost from pulse only nets out the node duals
// (pulse.Problem.arcReducedCost); colgen additionally subtracts the owning
// vehicle's usage-row dual (master.Problem.VehicleRowIndex) before applying
// the add-if-negative-reduced-cost rule, since every route contributes
// coefficient 1 to that row too.
package colgen

import "errors"

// ErrMasterInfeasible is returned when the master LP itself is infeasible
// (e.g. branch-and-price cuts conflict); colgen cannot recover from this,
// the caller (branchprice) must discard the node.
var ErrMasterInfeasible = errors.New("colgen: master LP is infeasible")
