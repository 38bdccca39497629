package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/kmc-sim/sim"
	"github.com/inference-sim/kmc-sim/sim/queue"
	"github.com/inference-sim/kmc-sim/sim/random"
	"github.com/inference-sim/kmc-sim/sim/ssa"
	"github.com/inference-sim/kmc-sim/sim/trace"
)

var (
	// CLI flags shared by run and sample
	seed           int64  // Master seed for every RNG subsystem
	logLevel       string // Log verbosity level
	thresholdsName string // Poisson threshold preset
	thresholdsFile string // Optional YAML file of extra presets

	// CLI flags for run
	modelPath    string  // YAML model file
	solverName   string  // next-reaction or tau-leap
	queueKind    string  // Priority queue backing next-reaction
	costConstant float64 // Cost constant of the propensities queue
	tau          float64 // Leap interval for tau-leap
	horizon      float64 // Simulated time at which the run stops
	maxSteps     int64   // Step limit; 0 means unlimited
	traceLevel   string  // Event trace verbosity
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "kmc-sim",
	Short: "Stochastic simulator for well-mixed reaction systems",
}

// runOptions collects the run flags so the wiring can be tested without cobra.
type runOptions struct {
	Solver         string
	Queue          string
	CostConstant   float64
	Tau            float64
	Horizon        float64
	MaxSteps       int64
	Seed           int64
	Thresholds     string
	ThresholdsFile string
	TraceLevel     string
}

// newSolver builds the solver named by opts on per-subsystem RNG streams.
func newSolver(m *ssa.Model, opts runOptions) (ssa.Solver, error) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(opts.Seed))
	switch opts.Solver {
	case "", ssa.SolverNextReaction:
		kind := opts.Queue
		if kind == "" {
			kind = queue.KindPropensities
		}
		q, err := queue.New(kind, len(m.Reactions))
		if err != nil {
			return nil, err
		}
		if pq, ok := q.(*queue.PropensityQueue); ok && opts.CostConstant > 0 {
			pq.SetCostConstant(opts.CostConstant)
		}
		exp := random.NewExponential(random.NewUniformFrom(rng.ForSubsystem(sim.SubsystemReactions)))
		return ssa.NewNextReaction(m, q, exp)
	case ssa.SolverTauLeap:
		thresholds, err := resolveThresholds(opts.Thresholds, opts.ThresholdsFile)
		if err != nil {
			return nil, err
		}
		p := random.NewPoisson(random.NewUniformFrom(rng.ForSubsystem(sim.SubsystemLeaping)), thresholds)
		return ssa.NewTauLeap(m, p, opts.Tau)
	default:
		return nil, fmt.Errorf("unknown solver %q", opts.Solver)
	}
}

// runSimulation loads the model at path and runs it to completion. The trace
// is nil unless opts.TraceLevel enables it.
func runSimulation(path string, opts runOptions) (*ssa.Metrics, *trace.SimulationTrace, error) {
	if !trace.IsValidTraceLevel(opts.TraceLevel) {
		return nil, nil, fmt.Errorf("unknown trace level %q", opts.TraceLevel)
	}
	m, err := ssa.LoadModel(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := newSolver(m, opts)
	if err != nil {
		return nil, nil, err
	}
	var st *trace.SimulationTrace
	if trace.TraceLevel(opts.TraceLevel) == trace.TraceLevelEvents {
		st = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
		s.SetTrace(st)
	}
	logrus.Infof("Starting %s simulation: %d species, %d reactions, horizon=%g",
		opts.Solver, len(m.Species), len(m.Reactions), opts.Horizon)
	if err := ssa.Run(s, opts.Horizon, opts.MaxSteps); err != nil {
		return s.Metrics(), st, err
	}
	return s.Metrics(), st, nil
}

// setLogLevel applies the --log flag.
func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a reaction model",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		if modelPath == "" {
			logrus.Fatalf("Model file not provided. Exiting simulation.")
		}
		if !ssa.ValidSolvers[solverName] {
			logrus.Fatalf("Unknown solver %q (valid: next-reaction, tau-leap)", solverName)
		}
		if !queue.ValidKinds[queueKind] {
			logrus.Fatalf("Unknown queue %q (valid: %v)", queueKind, queue.KindNames())
		}
		if thresholdsFile == "" && !random.ValidThresholdNames[thresholdsName] {
			logrus.Fatalf("Unknown thresholds %q (valid: default, alternate)", thresholdsName)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q (valid: none, events)", traceLevel)
		}

		startTime := time.Now()
		metrics, st, err := runSimulation(modelPath, runOptions{
			Solver:         solverName,
			Queue:          queueKind,
			CostConstant:   costConstant,
			Tau:            tau,
			Horizon:        horizon,
			MaxSteps:       maxSteps,
			Seed:           seed,
			Thresholds:     thresholdsName,
			ThresholdsFile: thresholdsFile,
			TraceLevel:     traceLevel,
		})
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		metrics.Print()
		if st != nil {
			trace.Summarize(st).Print()
		}

		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&modelPath, "model", "", "YAML reaction model")
	runCmd.Flags().StringVar(&solverName, "solver", ssa.SolverNextReaction, "Solver (next-reaction, tau-leap)")
	runCmd.Flags().StringVar(&queueKind, "queue", queue.KindPropensities, "Priority queue for next-reaction (linear, partition, propensities, heap)")
	runCmd.Flags().Float64Var(&costConstant, "cost-constant", queue.DefaultCostConstant, "Cost constant of the propensities queue")
	runCmd.Flags().Float64Var(&tau, "tau", 0.01, "Leap interval for tau-leap")
	runCmd.Flags().Float64Var(&horizon, "horizon", 100, "Simulated time at which the run stops")
	runCmd.Flags().Int64Var(&maxSteps, "max-steps", 0, "Maximum number of solver steps (0 = unlimited)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Event trace verbosity (none, events)")

	for _, c := range []*cobra.Command{runCmd, sampleCmd} {
		c.Flags().Int64Var(&seed, "seed", 42, "Seed for every random stream")
		c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
		c.Flags().StringVar(&thresholdsName, "thresholds", "default", "Poisson method thresholds (default, alternate, or a preset from --thresholds-file)")
		c.Flags().StringVar(&thresholdsFile, "thresholds-file", "", "YAML file of named Poisson threshold presets")
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sampleCmd)
}
