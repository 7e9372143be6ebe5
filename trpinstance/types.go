package trpinstance

// NodeKind distinguishes an intervention from a depot in the node table.
type NodeKind int

const (
	// NodeIntervention is a job: duration, time window, skill/resource demand.
	NodeIntervention NodeKind = iota

	// NodeDepot is a vehicle's home base: zero duration, the full-day window.
	NodeDepot
)

// Node is either an intervention or a depot. Fields not meaningful for a
// given Kind are left at their zero value (a depot has Duration 0 and an
// empty Skills/Resources map).
//
// Node is immutable after New returns; callers must treat slices/maps as
// read-only.
type Node struct {
	// ID is the caller-facing identifier (as found in the source JSON).
	ID string

	// Index is this node's position in Instance.Nodes and the row/column
	// index into Instance.TimeMatrix / Instance.DistMatrix.
	Index int

	Kind NodeKind

	// Duration is the service time in work-day minutes (0 for depots).
	Duration int

	// StartWindow / EndWindow bound service, in work-day minutes: it starts
	// no earlier than StartWindow and ends no later than EndWindow.
	StartWindow int
	EndWindow   int

	// IsAmbiguous is true iff this intervention is short enough to fit in
	// the midday gap and its window straddles MidDay; see Preprocess.
	IsAmbiguous bool

	// Resources maps a capacity label to the units consumed by this node.
	Resources map[string]int

	// Skills maps a skill name to the headcount required to service this
	// node (an intervention may require several technicians with possibly
	// different skills present).
	Skills map[string]int

	// X, Y are a 2-D position used only for diagnostics/plotting hand-off;
	// the engine never uses Euclidean distance, only the supplied matrices.
	X, Y float64
}

// Vehicle is a crewed resource: an ordered technician roster with pooled
// skills and capacities, based at one depot node.
//
// Vehicle is immutable after New returns.
type Vehicle struct {
	ID string

	// Technicians lists the crew's technician IDs, in team order.
	Technicians []string

	// Skills is the pooled skill headcount across all technicians on this
	// vehicle (e.g. {"electrical": 2} if two crew members hold it).
	Skills map[string]int

	// Eligible lists, in ascending order, the node indices this vehicle may
	// service (it has every skill the node requires, in sufficient count).
	Eligible []int

	// eligibleSet mirrors Eligible for O(1) membership tests.
	eligibleSet map[int]bool

	// DepotIndex is this vehicle's home depot's node index.
	DepotIndex int

	// Capacities maps a capacity label to this vehicle's limit.
	Capacities map[string]int

	// FixedCost is paid once if this vehicle is used at all (§4.5, §4.6).
	FixedCost float64
}

// IsEligible reports whether nodeIndex is in this vehicle's eligible set.
func (v *Vehicle) IsEligible(nodeIndex int) bool {
	return v.eligibleSet[nodeIndex]
}

// BigMMode selects which of the two outsourcing-cost coefficient formulas
// is used (see bigm.go). Both are admissible; the chosen mode must not
// change within a single branch-and-price run.
type BigMMode int

const (
	// BigMPerVehicle scales M by the number of vehicles and adds the sum of
	// fixed costs minus the cheapest one (compute_M_perV); the default,
	// conservative bound.
	BigMPerVehicle BigMMode = iota

	// BigMGlobal ignores vehicle count and fixed costs (compute_M_naive);
	// tighter but only valid when fixed costs are negligible or zero.
	BigMGlobal
)

// Options configures Instance construction.
type Options struct {
	// CostPerKm converts a distance-matrix unit into routing cost.
	CostPerKm float64

	// TechFixedCost is a per-technician activation cost folded into a
	// vehicle's FixedCost at construction time, mirroring const_manager's
	// tech_cost field (see ioformat).
	TechFixedCost float64

	// BigMMode selects the coefficient-M formula (default BigMPerVehicle).
	BigMMode BigMMode
}

// DefaultOptions returns production-safe defaults: a cost of 1 per km, no
// technician fixed cost, and BigMPerVehicle (the original implementation's preferred production path).
func DefaultOptions() Options {
	return Options{
		CostPerKm:     1,
		TechFixedCost: 0,
		BigMMode:      BigMPerVehicle,
	}
}

// Instance is the immutable, shared-by-reference problem data: nodes,
// vehicles, distance/time matrices, capacity labels, and the derived
// coefficient M and vehicle-similarity matrix.
//
// Instance is built once by New and never mutated thereafter; every
// downstream package holds it by pointer and reads it concurrently without
// locking.
type Instance struct {
	Nodes    []Node
	Vehicles []Vehicle

	// TimeMatrix[i][j] and DistMatrix[i][j] are travel time (minutes) and
	// distance (the same integer unit CostPerKm is denominated in) between
	// node i and node j.
	TimeMatrix [][]int
	DistMatrix [][]int

	CapacityLabels []string

	CostPerKm float64

	// M is the large coefficient used to price uncovered work (§4.1).
	M float64

	// Similarity[v1][v2] is the Hamming distance between vehicle v1's and
	// v2's eligible-intervention sets (used by the Clustering pricing
	// strategy; see cluster.SimilarityMatrix).
	Similarity [][]int
}

// NumNodes returns len(Nodes).
func (inst *Instance) NumNodes() int { return len(inst.Nodes) }

// NumVehicles returns len(Vehicles).
func (inst *Instance) NumVehicles() int { return len(inst.Vehicles) }

// Depot returns the depot Node for the given vehicle index.
func (inst *Instance) Depot(vehicleIdx int) *Node {
	return &inst.Nodes[inst.Vehicles[vehicleIdx].DepotIndex]
}
