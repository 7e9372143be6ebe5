package route

// Route is an immutable, concrete vehicle tour: the ordered node-id
// sequence (starting and ending at the vehicle's depot), its derived
// totals, and the presence vectors the master problem wrapper reads to
// build a column (§4.5).
type Route struct {
	// VehicleIdx is this route's owning vehicle's index in Instance.Vehicles.
	VehicleIdx int

	// Sequence is the ordered node index sequence, depot-to-depot
	// inclusive.
	Sequence []int

	// Distance is the total travel distance along Sequence.
	Distance int

	// Duration is the total intervention service duration (excludes
	// travel and waiting).
	Duration int

	// Cost is CostPerKm * Distance + VehicleFixedCost if the vehicle is
	// used (len(Sequence) > 2), else 0.
	Cost float64

	// ReducedCost is set by the pricer when this Route is produced by
	// pricing; zero for routes built outside a CG round (e.g. the initial
	// empty route, or a parsed solution route).
	ReducedCost float64

	// Presence[i] is true iff node i appears in Sequence (depot included).
	Presence []bool

	// EdgePresence[i][j] is true iff the directed edge i→j is used by
	// Sequence; consumed by branching's fractional-edge aggregation
	// (§4.7).
	EdgePresence [][]bool
}

// UsesVehicle reports whether this route visits any intervention (a
// depot-only route, Sequence == [depot, depot], does not use the vehicle
// and contributes no fixed cost).
func (r *Route) UsesVehicle() bool {
	return len(r.Sequence) > 2
}

// Equal reports whether two routes share the same vehicle and node
// sequence (spec §4.2: "equality by vehicle id + sequence").
func (r *Route) Equal(other *Route) bool {
	if r.VehicleIdx != other.VehicleIdx || len(r.Sequence) != len(other.Sequence) {
		return false
	}
	for i, n := range r.Sequence {
		if other.Sequence[i] != n {
			return false
		}
	}

	return true
}
