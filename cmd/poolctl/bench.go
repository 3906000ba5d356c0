package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/joshuapare/stackpool/pool"
	"github.com/spf13/cobra"
)

var (
	benchOps     int
	benchStacks  int
	benchSeed    int64
	benchReserve int
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchOps, "ops", 1_000_000, "Number of operations to run")
	cmd.Flags().IntVar(&benchStacks, "stacks", 8, "Number of stacks sharing the pool")
	cmd.Flags().Int64Var(&benchSeed, "seed", 1, "Seed for the workload generator")
	cmd.Flags().IntVar(&benchReserve, "reserve", 0, "Pre-reserve capacity for this many nodes")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Run a randomized push/pop/free workload and report throughput",
		Long: `The bench command runs a seeded random workload of push, pop and
free-stack operations across several stacks sharing one pool, then reports
throughput and the pool's internal statistics.

Example:
  poolctl bench --ops 5000000 --stacks 16
  poolctl bench --reserve 100000 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
}

// BenchReport is the bench command's output document.
type BenchReport struct {
	Ops       int           `json:"ops"`
	Stacks    int           `json:"stacks"`
	Seed      int64         `json:"seed"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	OpsPerSec float64       `json:"ops_per_sec"`
	Stats     pool.Stats    `json:"stats"`
}

func runBench() error {
	if benchOps <= 0 || benchStacks <= 0 {
		return fmt.Errorf("ops and stacks must be positive")
	}

	p := pool.New[uint64]()
	if benchReserve > 0 {
		if err := p.Reserve(benchReserve); err != nil {
			return fmt.Errorf("reserve %d: %w", benchReserve, err)
		}
		printVerbose("Reserved capacity for %d nodes\n", benchReserve)
	}

	heads := make([]pool.Handle, benchStacks)
	rng := rand.New(rand.NewSource(benchSeed))

	start := time.Now()

	for i := 0; i < benchOps; i++ {
		id := rng.Intn(benchStacks)
		var err error

		switch op := rng.Intn(10); {
		case op < 6:
			heads[id], err = p.Push(rng.Uint64(), heads[id])
		case op < 9:
			if heads[id] != pool.None {
				heads[id], err = p.Pop(heads[id])
			}
		default:
			heads[id], err = p.FreeStack(heads[id])
		}
		if err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
	}

	elapsed := time.Since(start)

	report := BenchReport{
		Ops:       benchOps,
		Stacks:    benchStacks,
		Seed:      benchSeed,
		Elapsed:   elapsed,
		OpsPerSec: float64(benchOps) / elapsed.Seconds(),
		Stats:     p.Stats(),
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("Ran %d ops over %d stacks in %s (%.0f ops/sec)\n",
		report.Ops, report.Stacks, report.Elapsed, report.OpsPerSec)
	printInfo("Nodes: %d created, %d live, %d free (capacity %d)\n",
		report.Stats.Length, report.Stats.LiveNodes, report.Stats.FreeNodes, report.Stats.Capacity)
	printInfo("Pushes: %d (%d grew storage, %d reused freed slots)\n",
		report.Stats.PushCalls, report.Stats.NodeGrows, report.Stats.NodeReuses)
	printInfo("Pops: %d, FreeStacks: %d, nodes recycled: %d\n",
		report.Stats.PopCalls, report.Stats.FreeStackCalls, report.Stats.NodesRecycled)

	return nil
}
