package branchprice

import (
	"time"

	"github.com/technician-routing/trp/colgen"
	"github.com/technician-routing/trp/master"
	"github.com/technician-routing/trp/solverapi"
	"github.com/technician-routing/trp/trplog"
)

// Options configures one Run call.
type Options struct {
	Formulation master.Formulation

	// Colgen is applied at every node; its Strategy and ArcRestrictions
	// fields are overridden by Run (branchprice always prices with
	// colgen.Basic, the only strategy that honors ArcRestrictions).
	Colgen colgen.Options

	// MIP is used for each node's restricted-pool integer bound.
	MIP solverapi.MIPOptions

	// MaxDepth bounds branching; a node at MaxDepth is closed by solving
	// its restricted-pool MIP directly instead of branching further.
	MaxDepth int

	// MaxNodes bounds the total number of frontier nodes explored.
	MaxNodes int

	// NodeCloseTolerance is the |MIP-LP| gap under which a fractional
	// node is still closed without branching (spec §4.7).
	NodeCloseTolerance float64

	TimeLimit time.Duration

	// Logger receives one Node event per explored node (spec §6.3); the
	// zero value is silent.
	Logger trplog.Logger
}

// DefaultOptions mirrors spec §4.7's conservative, always-terminating
// defaults.
func DefaultOptions() Options {
	return Options{
		Formulation:        master.MinimizeCostWithOutsourcing,
		Colgen:             colgen.DefaultOptions(),
		MIP:                solverapi.DefaultMIPOptions(),
		MaxDepth:           50,
		MaxNodes:           500,
		NodeCloseTolerance: 1e-3,
		TimeLimit:          60 * time.Second,
	}
}
