package ssa

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/kmc-sim/sim/random"
	"github.com/inference-sim/kmc-sim/sim/trace"
)

// DefaultMaxHalvings bounds how often one leap may be retried.
const DefaultMaxHalvings = 40

// TauLeap is an approximate solver firing Poisson numbers of every reaction
// over a fixed interval tau.
type TauLeap struct {
	model        *Model
	poisson      *random.Poisson
	tau          float64
	maxHalvings  int
	state        []int64
	trial        []int64
	propensities []float64
	fires        []int64
	changes      [][]Term
	time         float64
	metrics      *Metrics
	trace        *trace.SimulationTrace
}

// NewTauLeap creates a tau-leaping solver for m.
func NewTauLeap(m *Model, p *random.Poisson, tau float64) (*TauLeap, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if !(tau > 0) || math.IsInf(tau, 1) {
		return nil, fmt.Errorf("tau must be positive and finite, got %g", tau)
	}
	s := &TauLeap{
		model:        m,
		poisson:      p,
		tau:          tau,
		maxHalvings:  DefaultMaxHalvings,
		state:        append([]int64(nil), m.Initial...),
		trial:        make([]int64, len(m.Species)),
		propensities: make([]float64, len(m.Reactions)),
		fires:        make([]int64, len(m.Reactions)),
		changes:      make([][]Term, len(m.Reactions)),
		metrics:      newMetrics(m),
	}
	for j := range m.Reactions {
		s.changes[j] = m.NetChange(j)
	}
	return s, nil
}

// SetMaxHalvings changes the retry bound of a single leap.
func (s *TauLeap) SetMaxHalvings(n int) { s.maxHalvings = n }

// Step performs one leap of length min(tau, horizon-time). A leap that would
// drive a population negative is discarded and retried with half the
// interval.
func (s *TauLeap) Step(horizon float64) (bool, error) {
	if s.time >= horizon {
		return false, nil
	}
	if sum := s.model.Propensities(s.state, s.propensities); !(sum > 0) {
		logrus.Debugf("[t=%.6g] all propensities are zero", s.time)
		return false, nil
	}
	h := math.Min(s.tau, horizon-s.time)
	for attempt := 0; ; attempt++ {
		accepted, err := s.leap(h)
		if err != nil {
			return false, err
		}
		if s.trace.Enabled() {
			record := trace.LeapRecord{Time: s.time, Tau: h, Accepted: accepted}
			if accepted {
				for _, k := range s.fires {
					record.Firings += k
				}
			}
			s.trace.RecordLeap(record)
		}
		if accepted {
			break
		}
		if attempt == s.maxHalvings {
			return false, fmt.Errorf("%w at t=%g after %d halvings", ErrLeapRejected, s.time, attempt)
		}
		s.metrics.Rejections++
		logrus.Debugf("[t=%.6g] negative population with tau=%g, halving", s.time, h)
		h /= 2
	}
	copy(s.state, s.trial)
	for j, k := range s.fires {
		s.metrics.Firings[j] += k
	}
	s.time += h
	// Short leaps can round below the horizon forever.
	if horizon-s.time <= 1e-12*math.Max(1, math.Abs(horizon)) {
		s.time = horizon
	}
	s.metrics.Steps++
	s.metrics.Time = s.time
	return true, nil
}

// leap draws firing counts over h into trial and reports whether every
// resulting population is non-negative.
func (s *TauLeap) leap(h float64) (bool, error) {
	copy(s.trial, s.state)
	for j, a := range s.propensities {
		k := int64(0)
		if a > 0 {
			mean := a * h
			if math.IsInf(mean, 1) {
				return false, fmt.Errorf("%w: reaction %s has propensity %g over tau=%g",
					ErrPropensityOverflow, s.model.Reactions[j].Name, a, h)
			}
			k = int64(s.poisson.Sample(mean))
		}
		s.fires[j] = k
		applyChange(s.trial, s.changes[j], k)
	}
	for _, x := range s.trial {
		if x < 0 {
			return false, nil
		}
	}
	return true, nil
}

func (s *TauLeap) Time() float64 { return s.time }

func (s *TauLeap) State() []int64 { return s.state }

func (s *TauLeap) Metrics() *Metrics { return s.metrics }

func (s *TauLeap) SetTrace(st *trace.SimulationTrace) { s.trace = st }
