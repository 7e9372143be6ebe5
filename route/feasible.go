package route

import (
	"github.com/technician-routing/trp/schedule"
	"github.com/technician-routing/trp/trpinstance"
)

// Feasible runs the shared forward-simulation scheduling rule (§4.3) over
// the route's sequence and returns the resulting Schedule, or the first
// violated time-window/return-time constraint.
//
// Structural invariants (endpoints, elementarity, eligibility, capacity)
// are already guaranteed by New; Feasible only adds the time dimension.
func (r *Route) Feasible(inst *trpinstance.Instance) (schedule.Schedule, error) {
	return schedule.Simulate(inst, r.Sequence)
}
