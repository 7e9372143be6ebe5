package pulse

import (
	"math"

	"github.com/technician-routing/trp/trpinstance"
)

// Solver runs the pulse algorithm over a single Problem. A Solver is built
// once per Problem and reused across Solve calls that only change the
// initial (fixedCost - dualValue) offset; Bound is the expensive step and
// need not be rerun unless the underlying duals or instance change.
type Solver struct {
	problem *Problem
	opts    Options

	n int
	k int // number of capacity resources

	bestObjective float64
	bestPath      PartialPath

	poolBound float64
	pool      []poolEntry

	bounds [][]boundData
}

// poolEntry is one retained solution, kept sorted ascending by cost.
type poolEntry struct {
	cost float64
	path PartialPath
}

// New builds a Solver for problem with the given options (zero Options
// selects DefaultOptions).
func New(problem *Problem, opts Options) (*Solver, error) {
	if opts.Delta == 0 && opts.PoolSize == 0 {
		opts = DefaultOptions()
	}
	if opts.PoolSize <= 0 {
		return nil, ErrInvalidPoolSize
	}

	s := &Solver{
		problem: problem,
		opts:    opts,
		n:       problem.Inst.NumNodes(),
		k:       problem.numRes(),
	}
	s.Reset()

	return s, nil
}

// Reset clears the best path/objective and solution pool; it does not
// touch the bound table (the bounding phase is independent of the
// fixed-cost/dual offset and is normally computed once).
func (s *Solver) Reset() {
	s.bestObjective = math.Inf(1)
	s.bestPath = emptyPath(s.n)
	s.poolBound = math.Inf(1)
	s.pool = s.pool[:0]
}

// isFeasible checks elementarity, capacity, and time-window feasibility of
// extending the current partial path to vertex. windowOK is the result of
// the time-window check already performed by the caller (schedule.Step for
// an edge extension, or the raw EndWindow check for a bounding-phase
// launch), since both call sites compute it differently but isFeasible only
// needs the verdict.
func (s *Solver) isFeasible(vertex int, quantities []int, path PartialPath, windowOK bool) bool {
	if path.Visited[vertex] {
		return false
	}
	if !windowOK {
		return false
	}

	for k, label := range s.problem.labels {
		if cap, has := s.problem.vehicle.Capacities[label]; has && quantities[k] > cap {
			return false
		}
	}

	return true
}

// boundIndex maps a clock time to its bucket in the bound table: the lowest
// j such that EndDay - (j+1)*delta <= time.
func boundIndex(time, delta int) int {
	return int(math.Ceil(float64(trpinstance.EndDay-time)/float64(delta))) - 1
}

// checkBounds reports whether vertex can still plausibly contribute to an
// improving solution given the time remaining in the work day.
func (s *Solver) checkBounds(vertex, start int, cost float64) bool {
	if s.bounds == nil {
		return true
	}

	j := boundIndex(start, s.opts.Delta)
	if j < 0 {
		// start has reached (or sits exactly at) EndDay; spec §4.3 permits
		// a return time of EndDay itself, so there is no remaining-time
		// bucket to bound against and the prune must not fire.
		return true
	}
	if j >= len(s.bounds[vertex]) {
		return true
	}

	return cost+s.bounds[vertex][j].cost < s.bestObjective
}

// rollback reports whether the last hop in path (ending at vertex) should
// be undone: the triangle inequality guarantees the direct edge from the
// previous vertex is never worse, so a path that took the detour is
// dominated and pruned.
func (s *Solver) rollback(vertex int, path PartialPath) bool {
	if len(path.Sequence) < 2 {
		return false
	}
	if len(path.Sequence) == 2 && path.Sequence[0] == s.problem.origin && vertex == s.problem.destination {
		return false
	}

	last := path.Sequence[len(path.Sequence)-1]
	prev := path.Sequence[len(path.Sequence)-2]

	direct := s.problem.arcReducedCost(prev, vertex)
	viaLast := s.problem.arcReducedCost(prev, last) + s.problem.arcReducedCost(last, vertex)

	return direct <= viaLast
}

// pulse is the depth-first recursion (spec §4.4): check feasibility, bound,
// and rollback in that order, then fan out to every forward neighbor.
func (s *Solver) pulse(vertex, startTime int, quantities []int, cost float64, path PartialPath, windowOK bool) {
	if !s.isFeasible(vertex, quantities, path, windowOK) {
		return
	}
	if !s.checkBounds(vertex, startTime, cost) {
		return
	}
	if s.rollback(vertex, path) {
		return
	}

	extended := path.extend(vertex, startTime)

	// len(path.Sequence) > 0 excludes the very first call (vertex is the
	// depot and path is still empty): origin and destination are the same
	// node, so without this guard every search would terminate before
	// leaving the depot.
	if vertex == s.problem.destination && len(path.Sequence) > 0 {
		s.updatePool(cost, extended)

		return
	}

	if s.opts.UseSplice && len(s.pool) > 0 && s.splice(vertex, startTime, quantities, cost, extended) {
		return
	}

	for _, next := range s.problem.neighborsOf(vertex) {
		nextStart, ok := s.problem.step(vertex, next, startTime)
		nextCost := cost + s.problem.arcReducedCost(vertex, next)
		nextQuantities, capOK := s.problem.extendQuantities(quantities, next)
		if !capOK {
			continue
		}
		s.pulse(next, nextStart, nextQuantities, nextCost, extended, ok)
	}
}

// updatePool records a complete path reaching the destination: it always
// updates the incumbent if cost improves, and separately inserts into the
// bounded solution pool column generation reads from.
func (s *Solver) updatePool(cost float64, path PartialPath) {
	if cost < s.bestObjective {
		s.bestObjective = cost
		s.bestPath = path
		if vertex, _, ok := path.last(); ok {
			s.opts.Logger.Debug(vertex, cost)
		}
	}
	if cost >= s.poolBound && len(s.pool) >= s.opts.PoolSize {
		return
	}

	i := 0
	for i < len(s.pool) && s.pool[i].cost < cost {
		i++
	}
	s.pool = append(s.pool, poolEntry{})
	copy(s.pool[i+1:], s.pool[i:])
	s.pool[i] = poolEntry{cost: cost, path: path}

	if len(s.pool) > s.opts.PoolSize {
		s.pool = s.pool[:s.opts.PoolSize]
	}
	if len(s.pool) > 0 {
		s.poolBound = s.pool[len(s.pool)-1].cost
	}
}

// updateBound records the Phase-A bound table entry for vertex at the given
// remaining-time bucket, from the best path found while bounding from it.
func (s *Solver) updateBound(vertex, tau int, cost float64, path PartialPath, quantities []int) {
	idx := boundIndex(tau, s.opts.Delta)
	if cost == math.Inf(1) || len(path.Sequence) < 2 {
		s.bounds[vertex][idx] = boundData{cost: infeasibleBoundCost, path: emptyPath(s.n), quantities: quantities, latestStartTime: trpinstance.EndDay}
		return
	}

	starts := append([]int(nil), path.StartTimes...)
	for i := len(path.Sequence) - 2; i >= 0; i-- {
		a, b := path.Sequence[i], path.Sequence[i+1]
		startB := trpinstance.EndDay
		if b != s.problem.destination {
			startB = starts[i+1]
		}
		travel := s.problem.Inst.TimeMatrix[a][b]
		duration := s.problem.Inst.Nodes[a].Duration
		arrivalSlack := startB - (starts[i] + duration + travel)
		if arrivalSlack < 0 {
			arrivalSlack = 0
		}
		twSlack := s.problem.Inst.Nodes[a].EndWindow - s.problem.Inst.Nodes[a].Duration - starts[i]
		if twSlack < 0 {
			twSlack = 0
		}
		slack := arrivalSlack
		if twSlack < slack {
			slack = twSlack
		}
		starts[i] += slack
	}

	latest := trpinstance.EndDay
	if len(starts) > 0 {
		latest = starts[0]
	}

	s.bounds[vertex][idx] = boundData{cost: cost, path: path, quantities: quantities, latestStartTime: latest}
}

// Bound runs the Phase-A bounding sweep: for every non-depot vertex and
// every remaining-time bucket, launch an unconstrained pulse from that
// vertex and record the best cost reached. It must be rerun whenever the
// dual prices change (Problem.Duals is rebuilt fresh each round, so in
// practice every Solver is built once per round and Bound runs once).
func (s *Solver) Bound() error {
	numBounds := int(math.Ceil(float64(trpinstance.EndDay) / float64(s.opts.Delta)))
	if numBounds <= 0 {
		return ErrDeltaTooLarge
	}

	s.bounds = make([][]boundData, s.n)
	for v := range s.bounds {
		row := make([]boundData, numBounds)
		for j := range row {
			row[j] = boundData{cost: nonComputedBoundCost, path: emptyPath(s.n), quantities: make([]int, s.k), latestStartTime: trpinstance.EndDay}
		}
		s.bounds[v] = row
	}

	zero := make([]int, s.k)
	for tau := trpinstance.EndDay - s.opts.Delta; tau > 0; tau -= s.opts.Delta {
		for v := 0; v < s.n; v++ {
			if v == s.problem.origin || v == s.problem.destination {
				continue
			}
			s.Reset()
			p := emptyPath(s.n)
			node := &s.problem.Inst.Nodes[v]
			windowOK := tau <= node.EndWindow-node.Duration
			s.pulse(v, tau, zero, 0, p, windowOK)
			s.updateBound(v, tau, s.bestObjective, s.bestPath, zero)
		}
	}

	for j := 0; j < numBounds; j++ {
		s.bounds[s.problem.origin][j] = boundData{cost: nonComputedBoundCost, path: emptyPath(s.n), quantities: zero, latestStartTime: trpinstance.EndDay}
		s.bounds[s.problem.destination][j] = boundData{cost: 0, path: emptyPath(s.n), quantities: zero, latestStartTime: trpinstance.EndDay}
	}

	return nil
}

// Solve launches Phase B from the vehicle's depot with the given initial
// offset (fixedCost, already folded into the Problem but re-applied here
// since Reset clears the incumbent) and returns the best negative-reduced-
// cost path, or ErrNoNegativeColumn if none was found.
func (s *Solver) Solve() (Result, error) {
	s.Reset()
	p := emptyPath(s.n)
	zero := make([]int, s.k)
	s.pulse(s.problem.origin, 0, zero, s.problem.FixedCost, p, true)

	if math.IsInf(s.bestObjective, 1) || s.bestObjective >= 0 {
		return Result{}, ErrNoNegativeColumn
	}

	return Result{
		VehicleIdx:  s.problem.VehicleIdx,
		Sequence:    append([]int(nil), s.bestPath.Sequence...),
		ReducedCost: s.bestObjective,
	}, nil
}

// BoundAndSolve runs Bound followed by Solve; the common entry point for a
// one-shot pricing call on a freshly built Problem.
func (s *Solver) BoundAndSolve() (Result, error) {
	if s.opts.UseBound {
		if err := s.Bound(); err != nil {
			return Result{}, err
		}
	}

	return s.Solve()
}

// Pool returns up to PoolSize distinct negative-reduced-cost paths found by
// the last Solve/BoundAndSolve call, cheapest first — column generation
// adds every one of these as a new master column, not just the incumbent.
func (s *Solver) Pool() []Result {
	out := make([]Result, 0, len(s.pool))
	for _, e := range s.pool {
		if e.cost >= 0 {
			continue
		}
		out = append(out, Result{
			VehicleIdx:  s.problem.VehicleIdx,
			Sequence:    append([]int(nil), e.path.Sequence...),
			ReducedCost: e.cost,
		})
	}

	return out
}
