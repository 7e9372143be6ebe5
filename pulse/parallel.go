package pulse

import (
	"context"
	"errors"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ParallelSolver wraps a Solver to fan the top-level recursion out over the
// origin's forward neighbors with errgroup, one goroutine per first hop,
// each running its own depth-first pulse search against a mutex-guarded
// shared incumbent and pool — a context-cancellable, lock-protected
// concurrent traversal.
//
// The bound table (read-only once built) and Problem are shared without
// copying; only the incumbent, pool, and pool bound are mutated
// concurrently, so a single mutex around those three fields is sufficient.
type ParallelSolver struct {
	*Solver
	mu sync.Mutex
}

// NewParallel builds a ParallelSolver for problem; Bound must still be run
// (serially) before Solve, same as Solver.
func NewParallel(problem *Problem, opts Options) (*ParallelSolver, error) {
	s, err := New(problem, opts)
	if err != nil {
		return nil, err
	}

	return &ParallelSolver{Solver: s}, nil
}

// updatePool overrides Solver.updatePool with a locked version; every
// worker goroutine funnels its completions through this instead of the
// embedded Solver's unsynchronized one.
func (ps *ParallelSolver) updatePool(cost float64, path PartialPath) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.Solver.updatePool(cost, path)
}

// SolveParallel runs Phase B concurrently: one goroutine per forward
// neighbor of the depot, each doing its own sequential pulse recursion from
// there. ctx cancellation (deadline or explicit Cancel) stops launching new
// work and causes in-flight goroutines to return early at their next
// feasibility check.
func (ps *ParallelSolver) SolveParallel(ctx context.Context) (Result, error) {
	ps.Reset()

	p := emptyPath(ps.n)
	zero := make([]int, ps.k)
	origin := ps.problem.origin

	startTime, ok := 0, true
	if !ps.isFeasible(origin, zero, p, ok) {
		return Result{}, ErrNoNegativeColumn
	}

	rootPath := p.extend(origin, startTime)

	g, gctx := errgroup.WithContext(ctx)
	for _, next := range ps.problem.neighborsOf(origin) {
		next := next
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			nextStart, stepOK := ps.problem.step(origin, next, startTime)
			nextCost := ps.problem.FixedCost + ps.problem.arcReducedCost(origin, next)
			nextQuantities, capOK := ps.problem.extendQuantities(zero, next)
			if !capOK {
				return nil
			}

			ps.pulseConcurrent(gctx, next, nextStart, nextQuantities, nextCost, rootPath, stepOK)

			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return Result{}, err
	}

	if math.IsInf(ps.bestObjective, 1) || ps.bestObjective >= 0 {
		return Result{}, ErrNoNegativeColumn
	}

	ps.mu.Lock()
	best := Result{
		VehicleIdx:  ps.problem.VehicleIdx,
		Sequence:    append([]int(nil), ps.bestPath.Sequence...),
		ReducedCost: ps.bestObjective,
	}
	ps.mu.Unlock()

	return best, nil
}

// pulseConcurrent is Solver.pulse with two differences: it checks ctx
// between recursive calls, and it routes pool updates through the locked
// ParallelSolver.updatePool instead of Solver's bare one. Reading
// ps.bestObjective for pruning is racy in the classic sense (it can read a
// slightly stale value), but that only costs a missed prune, never an
// incorrect result, since updatePool is the sole writer and is locked.
// Splice is intentionally not attempted here: it reads the pool without
// locking, and serializing it would remove the parallelism this variant
// exists for.
func (ps *ParallelSolver) pulseConcurrent(ctx context.Context, vertex, startTime int, quantities []int, cost float64, path PartialPath, windowOK bool) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	if !ps.isFeasible(vertex, quantities, path, windowOK) {
		return
	}
	if !ps.checkBounds(vertex, startTime, cost) {
		return
	}
	if ps.rollback(vertex, path) {
		return
	}

	extended := path.extend(vertex, startTime)

	if vertex == ps.problem.destination && len(path.Sequence) > 0 {
		ps.updatePool(cost, extended)

		return
	}

	for _, next := range ps.problem.neighborsOf(vertex) {
		nextStart, ok := ps.problem.step(vertex, next, startTime)
		nextCost := cost + ps.problem.arcReducedCost(vertex, next)
		nextQuantities, capOK := ps.problem.extendQuantities(quantities, next)
		if !capOK {
			continue
		}
		ps.pulseConcurrent(ctx, next, nextStart, nextQuantities, nextCost, extended, ok)
	}
}
