package master

import (
	"sort"

	"github.com/technician-routing/trp/route"
	"github.com/technician-routing/trp/solverapi"
	"github.com/technician-routing/trp/trpinstance"
)

// integralTolerance bounds how far a {0,1} variable's solved value may sit
// from 1 and still count as "selected" when reading back an integer
// solution.
const integralTolerance = 1e-6

// IntegerSolution is a TRP-domain-shaped readback of a solved (integer)
// master problem: the chosen routes and, for MinimizeCostWithOutsourcing,
// the interventions left outsourced.
type IntegerSolution struct {
	Routes     []*route.Route
	Outsourced []int
	Objective  float64
}

// ExtractIntegerSolution reads sol (normally the result of a SolveMIP call
// against this same Problem) back into domain terms: every route whose
// lambda variable solved to ~1, and, for MinimizeCostWithOutsourcing, every
// intervention whose outsourcing variable solved to ~1.
func (p *Problem) ExtractIntegerSolution(sol solverapi.Solution) IntegerSolution {
	var routes []*route.Route
	for _, c := range p.columns {
		if c.varIdx < len(sol.Values) && sol.Values[c.varIdx] > 1-integralTolerance {
			routes = append(routes, c.route)
		}
	}

	var outsourced []int
	if p.formulation == MinimizeCostWithOutsourcing {
		for nodeIdx, varIdx := range p.outsourceVar {
			if varIdx < len(sol.Values) && sol.Values[varIdx] > 1-integralTolerance {
				outsourced = append(outsourced, nodeIdx)
			}
		}
		sort.Ints(outsourced)
	}

	return IntegerSolution{Routes: routes, Outsourced: outsourced, Objective: sol.Objective}
}

// CoveredCount returns how many interventions are covered (lambda-weighted
// presence > 0.5) by sol, for progress reporting (ioformat's evolution
// block) — a cheap proxy for "served by a real route" that does not
// require sol to be integral.
func (p *Problem) CoveredCount(sol solverapi.Solution) int {
	coverage := make(map[int]float64, len(p.coverRow))
	for _, c := range p.columns {
		var val float64
		if c.varIdx < len(sol.Values) {
			val = sol.Values[c.varIdx]
		}
		if val == 0 {
			continue
		}
		for nodeIdx, present := range c.route.Presence {
			if present && p.inst.Nodes[nodeIdx].Kind == trpinstance.NodeIntervention {
				coverage[nodeIdx] += val
			}
		}
	}

	count := 0
	for _, v := range coverage {
		if v > 0.5 {
			count++
		}
	}

	return count
}
