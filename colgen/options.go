package colgen

import (
	"time"

	"github.com/technician-routing/trp/trplog"
)

// PricingStrategy selects which pricer produces candidate columns each
// round (spec §4.6).
type PricingStrategy int

const (
	// Basic runs one pulse.Solver per vehicle.
	Basic PricingStrategy = iota

	// Grouped amortizes Phase A across each depot's vehicle group via
	// pulse.GroupedSolve.
	Grouped

	// Diversified runs a short greedy chain of masked pulses per vehicle,
	// re-pricing over the currently-uncovered interventions after each
	// accepted hop to surface more than one column per vehicle per round.
	Diversified

	// Clustering partitions vehicles by similarity (cluster.OptimalPairs /
	// cluster.Optimal2Clustering refined by cluster.GreedyNeighbor) and runs
	// Diversified pricing per cluster with a shared dual snapshot.
	Clustering

	// Tabu takes one Basic-priced route per vehicle and iteratively
	// re-solves a small MILP over its edge set forbidding the previous
	// solution, for a bounded number of rounds, via solverapi.
	Tabu
)

// ArcRestriction is one vehicle's branch-and-price arc decisions (§4.7),
// applied by priceBasic against its pulse.Problem. Other pricing strategies
// ignore ArcRestrictions: branchprice always runs colgen with
// colgen.Basic, so this is the only strategy that needs to honor them.
type ArcRestriction struct {
	Forbidden map[[2]int]bool
	Required  map[int]int
}

// Options configures one colgen.Run call, built by applying a chain of
// With* functions over DefaultOptions.
type Options struct {
	Epsilon           float64
	MaxIterations     int
	MaxNonImprovement int
	TimeLimit         time.Duration
	Stabilization     float64 // α ∈ [0,1]; 1 disables stabilization (π = π_now always)
	Strategy          PricingStrategy
	Delta             int // pulse.Options.Delta
	PoolSize          int // pulse.Options.PoolSize
	SolveMIPAtEnd     bool
	Seed              int64
	TabuMaxRounds     int

	// ArcRestrictions, keyed by vehicle index, is consulted by priceBasic
	// only (see ArcRestriction); nil for plain column generation.
	ArcRestrictions map[int]ArcRestriction

	// OnIteration, if set, is called once per round after the master LP
	// resolve (ioformat's evolution block is built from these).
	OnIteration func(IterationSnapshot)

	// Logger receives one Round event per iteration (spec §6.3); the zero
	// value is silent.
	Logger trplog.Logger
}

// IterationSnapshot is one round's progress report, handed to
// Options.OnIteration.
type IterationSnapshot struct {
	Iteration            int
	Objective             float64
	RoutesAdded           int
	InterventionsCovered  int
	Elapsed               time.Duration
}

// Option mutates an Options value being built by NewOptions.
type Option func(*Options)

// NewOptions applies opts over DefaultOptions in order.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// DefaultOptions mirrors spec §4.6's stated default ε and conservative,
// always-terminating iteration bounds.
func DefaultOptions() Options {
	return Options{
		Epsilon:           1e-6,
		MaxIterations:     1000,
		MaxNonImprovement: 20,
		TimeLimit:         30 * time.Second,
		Stabilization:     1.0,
		Strategy:          Basic,
		Delta:             15,
		PoolSize:          10,
		SolveMIPAtEnd:     false,
		TabuMaxRounds:     5,
	}
}

func WithEpsilon(eps float64) Option             { return func(o *Options) { o.Epsilon = eps } }
func WithMaxIterations(n int) Option             { return func(o *Options) { o.MaxIterations = n } }
func WithMaxNonImprovement(n int) Option         { return func(o *Options) { o.MaxNonImprovement = n } }
func WithTimeLimit(d time.Duration) Option       { return func(o *Options) { o.TimeLimit = d } }
func WithStabilization(alpha float64) Option     { return func(o *Options) { o.Stabilization = alpha } }
func WithStrategy(s PricingStrategy) Option      { return func(o *Options) { o.Strategy = s } }
func WithDelta(delta int) Option                 { return func(o *Options) { o.Delta = delta } }
func WithPoolSize(n int) Option                  { return func(o *Options) { o.PoolSize = n } }
func WithSolveMIPAtEnd(v bool) Option            { return func(o *Options) { o.SolveMIPAtEnd = v } }
func WithSeed(seed int64) Option                 { return func(o *Options) { o.Seed = seed } }
func WithTabuMaxRounds(n int) Option             { return func(o *Options) { o.TabuMaxRounds = n } }

func WithArcRestrictions(r map[int]ArcRestriction) Option {
	return func(o *Options) { o.ArcRestrictions = r }
}
