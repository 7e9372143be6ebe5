package schedule

// Stop records the simulated arrival and service-start time at one node of
// a sequence.
type Stop struct {
	// NodeIndex is the node's position in Instance.Nodes.
	NodeIndex int

	// Arrival is the raw arrival time before any waiting.
	Arrival int

	// Start is the time service actually begins, after waiting for the
	// window to open and/or waiting past MidDay for an ambiguous node.
	Start int

	// WaitedForMidday is true iff this stop waited past MidDay to avoid
	// straddling the lunch break.
	WaitedForMidday bool
}

// Schedule is the result of a successful Simulate call: one Stop per node
// in the input sequence (depot included at both ends) plus the final
// return time to the depot.
type Schedule struct {
	Stops []Stop

	// ReturnTime is the time of arrival back at the depot, always ≤ EndDay.
	ReturnTime int
}
