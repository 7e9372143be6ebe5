package schedule

import "github.com/technician-routing/trp/trpinstance"

// Step applies one node of the forward-simulation rule: given arrival time t
// at node, it returns the (possibly waited) service start time and whether
// that start respects node's time window. It does not advance past node —
// callers add node's Duration and the travel time to the next node
// themselves (Simulate and pulse.Problem both do this, since pulse needs the
// intermediate arrival/start values for rollback and bound bookkeeping).
//
//   - if t < StartWindow, wait to StartWindow.
//   - if IsAmbiguous and t < MidDay and t+Duration > MidDay, wait to MidDay
//     (so the intervention does not straddle the lunch break).
//   - feasible iff start+Duration ≤ EndWindow.
func Step(node *trpinstance.Node, t int) (start int, waitedMidday bool, ok bool) {
	start = t
	if start < node.StartWindow {
		start = node.StartWindow
	}
	if node.IsAmbiguous && start < trpinstance.MidDay && start+node.Duration > trpinstance.MidDay {
		start = trpinstance.MidDay
		waitedMidday = true
	}

	return start, waitedMidday, start+node.Duration <= node.EndWindow
}

// Simulate performs the forward simulation of spec §4.3 over seq (a full
// route: depot, ..., depot) for the given instance, returning the resulting
// Schedule or the first violated constraint.
//
// Each node is processed with Step; the return leg to the final depot must
// additionally satisfy t+travel(last, depot) ≤ EndDay, else
// ErrReturnTooLate.
func Simulate(inst *trpinstance.Instance, seq []int) (Schedule, error) {
	if len(seq) < 2 {
		return Schedule{}, ErrEmptySequence
	}

	stops := make([]Stop, 0, len(seq))
	t := 0

	for idx, nodeIdx := range seq {
		node := &inst.Nodes[nodeIdx]

		arrival := t
		start, waitedMidday, feasible := Step(node, t)
		if !feasible {
			return Schedule{}, ErrWindowViolation
		}

		stops = append(stops, Stop{
			NodeIndex:       nodeIdx,
			Arrival:         arrival,
			Start:           start,
			WaitedForMidday: waitedMidday,
		})

		t = start + node.Duration
		if idx+1 < len(seq) {
			t += inst.TimeMatrix[nodeIdx][seq[idx+1]]
		}
	}

	if t > trpinstance.EndDay {
		return Schedule{}, ErrReturnTooLate
	}

	return Schedule{Stops: stops, ReturnTime: t}, nil
}
