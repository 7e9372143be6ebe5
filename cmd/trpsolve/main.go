// Command trpsolve reads an instance JSON document (spec §6.1), runs
// branch-and-price, deduplicates the resulting integer solution, and
// writes the output JSON document (spec §6.1/§6.2) to stdout or a file.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/technician-routing/trp/branchprice"
	"github.com/technician-routing/trp/colgen"
	"github.com/technician-routing/trp/ioformat"
	"github.com/technician-routing/trp/master"
	"github.com/technician-routing/trp/repair"
	"github.com/technician-routing/trp/route"
	"github.com/technician-routing/trp/solverapi"
	"github.com/technician-routing/trp/trplog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "trpsolve:", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	instancePath     string
	outputPath       string
	maxInterventions int
	formulation      string
	strategy         string
	cgTimeLimit      time.Duration
	bpTimeLimit      time.Duration
	maxNodes         int
	maxDepth         int
	verbose          bool
}

func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:   "trpsolve",
		Short: "Solve a technician routing instance by branch-and-price",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags)
		},
	}

	pf := cmd.Flags()
	pf.StringVar(&flags.instancePath, "instance", "", "path to the instance JSON document (required)")
	pf.StringVar(&flags.outputPath, "output", "", "path to write the output JSON document (default: stdout)")
	pf.IntVar(&flags.maxInterventions, "max-interventions", 0, "keep only the first N interventions (0 = no cap)")
	pf.StringVar(&flags.formulation, "formulation", "cost", "master objective: cost|duration")
	pf.StringVar(&flags.strategy, "strategy", "basic", "pricing strategy: basic|grouped|diversified|clustering|tabu")
	pf.DurationVar(&flags.cgTimeLimit, "cg-time-limit", 30*time.Second, "per-node column-generation time limit")
	pf.DurationVar(&flags.bpTimeLimit, "bp-time-limit", 60*time.Second, "branch-and-price overall time limit")
	pf.IntVar(&flags.maxNodes, "max-nodes", 500, "branch-and-price node budget")
	pf.IntVar(&flags.maxDepth, "max-depth", 50, "branch-and-price depth cutoff")
	pf.BoolVar(&flags.verbose, "verbose", false, "also log pulse debug events (rounds and nodes are always logged)")

	cobra.CheckErr(cmd.MarkFlagRequired("instance"))

	return cmd
}

func run(ctx context.Context, flags cliFlags) error {
	data, err := os.ReadFile(flags.instancePath)
	if err != nil {
		return fmt.Errorf("reading instance file: %w", err)
	}

	inst, err := ioformat.Parse(data, ioformat.ParseOptions{MaxInterventions: flags.maxInterventions})
	if err != nil {
		return fmt.Errorf("parsing instance: %w", err)
	}

	formulation, err := parseFormulation(flags.formulation)
	if err != nil {
		return err
	}
	strategy, err := parseStrategy(flags.strategy)
	if err != nil {
		return err
	}

	logger := trplog.New(flags.verbose)

	var snapshots []colgen.IterationSnapshot
	cgOpts := colgen.DefaultOptions()
	cgOpts.Strategy = strategy
	cgOpts.TimeLimit = flags.cgTimeLimit
	cgOpts.Logger = logger
	cgOpts.OnIteration = func(s colgen.IterationSnapshot) {
		snapshots = append(snapshots, s)
	}

	bpOpts := branchprice.DefaultOptions()
	bpOpts.Formulation = formulation
	bpOpts.Colgen = cgOpts
	bpOpts.MIP = solverapi.DefaultMIPOptions()
	bpOpts.MaxNodes = flags.maxNodes
	bpOpts.MaxDepth = flags.maxDepth
	bpOpts.TimeLimit = flags.bpTimeLimit
	bpOpts.Logger = logger

	vehicleIdxs := make([]int, inst.NumVehicles())
	for i := range vehicleIdxs {
		vehicleIdxs[i] = i
	}

	start := time.Now()
	result, err := branchprice.Run(ctx, inst, vehicleIdxs, nil, bpOpts)
	if err != nil {
		return fmt.Errorf("branch-and-price: %w", err)
	}
	if result.Best == nil {
		return fmt.Errorf("no feasible solution found (stop reason: %s)", result.StopReason)
	}

	pool := make([]route.Route, len(result.Pool))
	for i, r := range result.Pool {
		pool[i] = *r
	}

	solved, err := repair.Dedup(result.Best, inst, pool)
	if err != nil {
		return fmt.Errorf("deduplicating solution: %w", err)
	}

	doc, err := ioformat.BuildOutput(inst, solved, cgOpts, snapshots, time.Since(start))
	if err != nil {
		return fmt.Errorf("building output document: %w", err)
	}

	out, err := ioformat.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling output document: %w", err)
	}

	if flags.outputPath == "" {
		_, err = os.Stdout.Write(append(out, '\n'))
		return err
	}

	return os.WriteFile(flags.outputPath, append(out, '\n'), 0o644)
}

func parseFormulation(s string) (master.Formulation, error) {
	switch s {
	case "cost":
		return master.MinimizeCostWithOutsourcing, nil
	case "duration":
		return master.MaximizeWeightedDuration, nil
	default:
		return 0, fmt.Errorf("unknown --formulation %q (want cost|duration)", s)
	}
}

func parseStrategy(s string) (colgen.PricingStrategy, error) {
	switch s {
	case "basic":
		return colgen.Basic, nil
	case "grouped":
		return colgen.Grouped, nil
	case "diversified":
		return colgen.Diversified, nil
	case "clustering":
		return colgen.Clustering, nil
	case "tabu":
		return colgen.Tabu, nil
	default:
		return 0, fmt.Errorf("unknown --strategy %q (want basic|grouped|diversified|clustering|tabu)", s)
	}
}
