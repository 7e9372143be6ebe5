package master

import (
	"context"

	"github.com/technician-routing/trp/route"
	"github.com/technician-routing/trp/solverapi"
	"github.com/technician-routing/trp/trpinstance"
)

// Formulation selects the master problem's objective/constraint shape (see
// doc.go).
type Formulation int

const (
	MinimizeCostWithOutsourcing Formulation = iota
	MaximizeWeightedDuration
)

// column is one route's bookkeeping: its solver variable index and the
// route it represents, kept so duals/solution values can be read back.
type column struct {
	route  *route.Route
	varIdx int
}

// Problem is the master LP/MIP over a growing pool of route columns.
type Problem struct {
	inst        *trpinstance.Instance
	solver      solverapi.Solver
	formulation Formulation
	integer     bool

	columns []column

	// coverRow[nodeIdx] is the constraint index for intervention nodeIdx's
	// covering row.
	coverRow map[int]int

	// vehicleRow[vehicleIdx] is the constraint index for that vehicle's
	// at-most-one-route row.
	vehicleRow map[int]int

	// outsourceVar[nodeIdx] exists only for MinimizeCostWithOutsourcing.
	outsourceVar map[int]int
}

// New builds the empty master problem (covering + vehicle rows, and
// outsourcing variables if formulation needs them) over inst, backed by
// solver. integer selects whether columns are added with an integrality
// flag (used by branchprice's SolveMIP calls) or left continuous (colgen's
// relaxation).
func New(inst *trpinstance.Instance, solver solverapi.Solver, formulation Formulation, integer bool) *Problem {
	p := &Problem{
		inst:        inst,
		solver:      solver,
		formulation: formulation,
		integer:     integer,
		coverRow:    make(map[int]int),
		vehicleRow:  make(map[int]int),
	}

	sense := solverapi.LessEqual
	if formulation == MinimizeCostWithOutsourcing {
		sense = solverapi.Equal
	}

	for i := range inst.Nodes {
		if inst.Nodes[i].Kind != trpinstance.NodeIntervention {
			continue
		}
		p.coverRow[i] = solver.AddConstraint(map[int]float64{}, sense, 1)
	}

	for v := range inst.Vehicles {
		p.vehicleRow[v] = solver.AddConstraint(map[int]float64{}, solverapi.LessEqual, 1)
	}

	objSense := solverapi.Minimize
	if formulation == MaximizeWeightedDuration {
		objSense = solverapi.Maximize
	}
	solver.SetObjective(map[int]float64{}, objSense)

	if formulation == MinimizeCostWithOutsourcing {
		p.outsourceVar = make(map[int]int, len(p.coverRow))
		for nodeIdx, rowIdx := range p.coverRow {
			varIdx := solver.AddVariable("outsource", 0, 1, integer)
			solver.SetCoefficient(rowIdx, varIdx, 1)
			solver.SetObjectiveCoefficient(varIdx, inst.M*float64(inst.Nodes[nodeIdx].Duration))
			p.outsourceVar[nodeIdx] = varIdx
		}
	}

	return p
}

// AddRoute appends r as a new lambda column: one variable in [0,1] wired
// into every intervention it covers and its owning vehicle's usage row,
// with the objective coefficient determined by the Problem's formulation.
// It returns the new variable's solver index.
func (p *Problem) AddRoute(r *route.Route) (int, error) {
	for _, c := range p.columns {
		if c.route.Equal(r) {
			return 0, ErrDuplicateRoute
		}
	}

	varIdx := p.solver.AddVariable("lambda", 0, 1, p.integer)

	for nodeIdx, present := range r.Presence {
		if !present || p.inst.Nodes[nodeIdx].Kind != trpinstance.NodeIntervention {
			continue
		}
		p.solver.SetCoefficient(p.coverRow[nodeIdx], varIdx, 1)
	}

	if row, ok := p.vehicleRow[r.VehicleIdx]; ok {
		p.solver.SetCoefficient(row, varIdx, 1)
	}

	switch p.formulation {
	case MinimizeCostWithOutsourcing:
		p.solver.SetObjectiveCoefficient(varIdx, r.Cost)
	case MaximizeWeightedDuration:
		p.solver.SetObjectiveCoefficient(varIdx, p.inst.M*float64(r.Duration)-r.Cost)
	}

	p.columns = append(p.columns, column{route: r, varIdx: varIdx})

	return varIdx, nil
}

// SolveLP solves the current relaxation.
func (p *Problem) SolveLP(ctx context.Context) (solverapi.Solution, error) {
	return p.solver.SolveLP(ctx)
}

// SolveMIP solves with integrality enforced.
func (p *Problem) SolveMIP(ctx context.Context, opts solverapi.MIPOptions) (solverapi.Solution, error) {
	return p.solver.SolveMIP(ctx, opts)
}

// CoverDual reads back the dual value (shadow price) of intervention
// nodeIdx's covering row from sol — the per-node dual the pricing problems
// subtract from arc cost (pulse.Problem.Duals).
func (p *Problem) CoverDual(sol solverapi.Solution, nodeIdx int) (float64, bool) {
	row, ok := p.coverRow[nodeIdx]
	if !ok || row >= len(sol.Duals) {
		return 0, false
	}

	return sol.Duals[row], true
}

// CoverRowIndex returns the solver constraint index for intervention
// nodeIdx's covering row, for callers (colgen's dual extraction) that need
// to query the solver directly.
func (p *Problem) CoverRowIndex(nodeIdx int) (int, bool) {
	idx, ok := p.coverRow[nodeIdx]

	return idx, ok
}

// VehicleRowIndex returns the solver constraint index for vehicleIdx's
// usage row.
func (p *Problem) VehicleRowIndex(vehicleIdx int) (int, bool) {
	idx, ok := p.vehicleRow[vehicleIdx]

	return idx, ok
}

// OutsourceVarIndex returns the solver variable index for intervention
// nodeIdx's outsourcing variable. Only valid for MinimizeCostWithOutsourcing.
func (p *Problem) OutsourceVarIndex(nodeIdx int) (int, error) {
	if p.formulation != MinimizeCostWithOutsourcing {
		return 0, ErrWrongFormulation
	}
	idx, ok := p.outsourceVar[nodeIdx]
	if !ok {
		return 0, ErrWrongFormulation
	}

	return idx, nil
}

// Routes returns every route added so far, in addition order.
func (p *Problem) Routes() []*route.Route {
	out := make([]*route.Route, len(p.columns))
	for i, c := range p.columns {
		out[i] = c.route
	}

	return out
}

// ColumnValue returns sol's value for route r's lambda variable, or 0 if r
// was never added.
func (p *Problem) ColumnValue(sol solverapi.Solution, r *route.Route) float64 {
	for _, c := range p.columns {
		if c.route == r {
			if c.varIdx < len(sol.Values) {
				return sol.Values[c.varIdx]
			}

			return 0
		}
	}

	return 0
}
