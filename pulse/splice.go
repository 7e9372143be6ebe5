package pulse

import "math"

// Splice implements the pulse algorithm's splice optimization (spec §4.4):
// instead of continuing the depth-first recursion all the way to the
// destination, try to jump straight from the current partial path to the
// best pool entry's remaining suffix, skipping the intermediate expansion.
//
// It only helps when the pool already holds a completed path through
// vertex; that is common late in a pricing call, once several branches have
// reached the destination and the pool is populated. Splice returns true
// (and records the spliced path via updatePool) iff it found and applied a
// feasible completion cheaper than the best cost known; it never explores
// further itself.
func (s *Solver) splice(vertex, startTime int, quantities []int, cost float64, path PartialPath) bool {
	best := -1
	bestCost := math.Inf(1)
	for i, e := range s.pool {
		idx := indexOf(e.path.Sequence, vertex)
		if idx < 0 {
			continue
		}
		if e.cost < bestCost {
			best, bestCost = i, e.cost
		}
	}
	if best < 0 {
		return false
	}

	suffix := s.pool[best].path
	start := indexOf(suffix.Sequence, vertex)

	t := startTime
	q := append([]int(nil), quantities...)
	total := cost
	cur := path
	ok := true

	for i := start; i < len(suffix.Sequence)-1; i++ {
		from, to := suffix.Sequence[i], suffix.Sequence[i+1]
		if cur.Visited[to] {
			ok = false
			break
		}
		next, feasible := s.problem.step(from, to, t)
		if !feasible {
			ok = false
			break
		}
		nq, capOK := s.problem.extendQuantities(q, to)
		if !capOK {
			ok = false
			break
		}
		total += s.problem.arcReducedCost(from, to)
		cur = cur.extend(to, next)
		t, q = next, nq
	}

	if !ok || total >= s.bestObjective {
		return false
	}

	s.updatePool(total, cur)

	return true
}

// indexOf returns the position of target in seq, or -1.
func indexOf(seq []int, target int) int {
	for i, v := range seq {
		if v == target {
			return i
		}
	}

	return -1
}
