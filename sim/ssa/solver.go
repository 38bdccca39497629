package ssa

import (
	"fmt"

	"github.com/inference-sim/kmc-sim/sim/trace"
)

// Solver names accepted by the CLI.
const (
	SolverNextReaction = "next-reaction"
	SolverTauLeap      = "tau-leap"
)

// ValidSolvers is the set of recognised solver names.
var ValidSolvers = map[string]bool{"": true, SolverNextReaction: true, SolverTauLeap: true}

// Solver advances a Model in simulated time.
type Solver interface {
	// Step fires the next event. It returns false once nothing can fire or
	// the horizon is reached.
	Step(horizon float64) (bool, error)
	// Time returns the current simulated time.
	Time() float64
	// State returns the current species counts. Callers must not modify it.
	State() []int64
	// Metrics returns the running statistics.
	Metrics() *Metrics
	// SetTrace attaches an event trace; nil detaches it.
	SetTrace(st *trace.SimulationTrace)
}

// Run steps s until horizon, maxSteps (ignored when <= 0), or extinction.
func Run(s Solver, horizon float64, maxSteps int64) error {
	if !(horizon >= 0) {
		return fmt.Errorf("horizon must be non-negative, got %g", horizon)
	}
	for maxSteps <= 0 || s.Metrics().Steps < maxSteps {
		ok, err := s.Step(horizon)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	m := s.Metrics()
	copy(m.Populations, s.State())
	return nil
}

func applyChange(state []int64, change []Term, times int64) {
	for _, t := range change {
		state[t.Species] += t.Count * times
	}
}
