package solverapi

// ConstraintSense is the relational operator of one linear constraint row.
type ConstraintSense int

const (
	LessEqual ConstraintSense = iota
	GreaterEqual
	Equal
)

// ObjectiveSense selects minimize or maximize; internally everything is
// converted to minimization (maximize negates c), matching GoMILP's
// minimize-only c^T x convention.
type ObjectiveSense int

const (
	Minimize ObjectiveSense = iota
	Maximize
)

// variable is one column: a lower/upper bound and whether it is restricted
// to integers (MIP) or left continuous (LP relaxation / pure LP).
type variable struct {
	name    string
	lb, ub  float64
	integer bool
}

// constraint is one sparse row: coeffs maps variable index to coefficient,
// zero entries omitted.
type constraint struct {
	coeffs map[int]float64
	sense  ConstraintSense
	rhs    float64
}

// Solution is the outcome of SolveLP or SolveMIP: Values is indexed the same
// way as the variables were added (AddVariable's return value).
type Solution struct {
	Values    []float64
	Objective float64
	IsInteger bool

	// Duals[i] is the shadow price of the constraint added by the i-th
	// AddConstraint call (index-aligned, zero for a removed/never-solved
	// row). Column generation reads this to price new columns (master.
	// Problem.CoverRowIndex names which entry is which intervention/
	// vehicle row). Populated by SolveLP; left nil by SolveMIP, where
	// duals are not well-defined once integrality is enforced.
	Duals []float64
}

// MIPOptions bounds a branch-and-bound search the way column generation and
// branch-and-price need to: a node cap, after which the best incumbent found
// so far (if any) is returned instead of blocking indefinitely. Wall-clock
// limits come from the ctx passed to SolveMIP.
type MIPOptions struct {
	MaxNodes int
	// IntegralityTolerance is how close to an integer a value must be to be
	// accepted as integral (floating point simplex output rarely lands on
	// an exact integer).
	IntegralityTolerance float64
}

// DefaultMIPOptions caps the search at 10000 nodes and accepts a value as
// integral within 1e-6.
func DefaultMIPOptions() MIPOptions {
	return MIPOptions{MaxNodes: 10000, IntegralityTolerance: 1e-6}
}
