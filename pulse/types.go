package pulse

import (
	"math"

	"github.com/technician-routing/trp/trplog"
)

// PartialPath is an in-progress depot-to-X path: the visited-set bitmap
// (elementarity), the node sequence, and the service start time computed at
// each node (schedule.Step's "start", not raw arrival).
//
// PartialPath is copied by value at every recursive pulse call, mirroring
// the original algorithm's copy-on-extend discipline: a child call can
// mutate its own copy freely without the parent's state needing to be
// unwound on backtrack.
type PartialPath struct {
	Visited    []bool
	Sequence   []int
	StartTimes []int
}

// emptyPath returns a PartialPath over n nodes with nothing visited yet.
func emptyPath(n int) PartialPath {
	return PartialPath{
		Visited:    make([]bool, n),
		Sequence:   make([]int, 0, n),
		StartTimes: make([]int, 0, n),
	}
}

// extend returns a copy of p with vertex appended at the given start time.
func (p PartialPath) extend(vertex, start int) PartialPath {
	np := PartialPath{
		Visited:    append([]bool(nil), p.Visited...),
		Sequence:   append(append([]int(nil), p.Sequence...), vertex),
		StartTimes: append(append([]int(nil), p.StartTimes...), start),
	}
	np.Visited[vertex] = true

	return np
}

// last returns the final vertex and start time in p, or (-1, 0, false) if p
// is empty.
func (p PartialPath) last() (vertex, start int, ok bool) {
	if len(p.Sequence) == 0 {
		return -1, 0, false
	}

	n := len(p.Sequence)

	return p.Sequence[n-1], p.StartTimes[n-1], true
}

// boundData is one entry of the Phase-A bound table: the best reduced cost
// reachable from a vertex with at least the associated remaining time, the
// path that achieves it, the resource consumption along that path, and the
// latest the path could have started without losing feasibility (used only
// for diagnostics; not consumed by check_bounds).
type boundData struct {
	cost            float64
	path            PartialPath
	quantities      []int
	latestStartTime int
}

var (
	infeasibleBoundCost  = math.Inf(1)
	nonComputedBoundCost = math.Inf(-1)
)

// Options configures a Solver.
type Options struct {
	// Delta is the time-bucket width (minutes) for the Phase-A bound
	// table; smaller buckets tighten pruning at the cost of a longer
	// bounding phase.
	Delta int

	// PoolSize caps the number of distinct solutions retained by
	// update_pool; column generation reads up to PoolSize columns per
	// pricing call.
	PoolSize int

	// UseBound enables the Phase-A bounding phase; disabling it (Solve
	// instead of BoundAndSolve) is useful when the same Solver is reused
	// across many dual-price updates without its bound table changing.
	UseBound bool

	// UseSplice enables the splice fast-path (see splice.go): once the
	// pool holds at least one completed path, try to jump straight to its
	// suffix instead of fully expanding every forward neighbor.
	UseSplice bool

	// Logger receives a Debug event on every incumbent improvement when its
	// verbose flag is set (spec §6.3); the zero value is silent.
	Logger trplog.Logger
}

// DefaultOptions returns production-safe defaults: a 15-minute bucket width
// and a pool of 10 columns.
func DefaultOptions() Options {
	return Options{
		Delta:     15,
		PoolSize:  10,
		UseBound:  true,
		UseSplice: true,
	}
}

// Result is one priced path: the node sequence (depot-to-depot) and the
// reduced cost the pricing problem found for it.
type Result struct {
	VehicleIdx  int
	Sequence    []int
	ReducedCost float64
}
