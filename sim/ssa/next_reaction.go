package ssa

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/kmc-sim/sim/queue"
	"github.com/inference-sim/kmc-sim/sim/random"
	"github.com/inference-sim/kmc-sim/sim/trace"
)

// NextReaction is an exact solver. Every reaction with positive propensity
// holds its absolute next firing time as its key in the queue.
type NextReaction struct {
	model        *Model
	queue        queue.KeyQueue
	exponential  *random.Exponential
	state        []int64
	propensities []float64
	changes      [][]Term
	deps         [][]int
	time         float64
	metrics      *Metrics
	trace        *trace.SimulationTrace
}

// NewNextReaction schedules every reaction of m on q, which is cleared first.
// Queues implementing queue.PropensityBinder are bound to the live
// propensity array.
func NewNextReaction(m *Model, q queue.KeyQueue, exp *random.Exponential) (*NextReaction, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if q.Capacity() < len(m.Reactions) {
		return nil, fmt.Errorf("%w: %d < %d", ErrQueueTooSmall, q.Capacity(), len(m.Reactions))
	}
	s := &NextReaction{
		model:        m,
		queue:        q,
		exponential:  exp,
		state:        append([]int64(nil), m.Initial...),
		propensities: make([]float64, q.Capacity()),
		changes:      make([][]Term, len(m.Reactions)),
		deps:         m.Dependencies(),
		metrics:      newMetrics(m),
	}
	for j := range m.Reactions {
		s.changes[j] = m.NetChange(j)
	}
	if b, ok := q.(queue.PropensityBinder); ok {
		b.SetPropensities(s.propensities)
	}
	q.Clear()
	for j := range m.Reactions {
		s.propensities[j] = m.Propensity(j, s.state)
		s.schedule(j)
	}
	return s, nil
}

// schedule draws a fresh firing time for reaction j from its propensity.
func (s *NextReaction) schedule(j int) {
	a := s.propensities[j]
	if a <= 0 {
		s.queue.Pop(j)
		return
	}
	key := s.time + s.exponential.Sample()/a
	if !(key < queue.Sentinel) {
		s.queue.Pop(j)
		return
	}
	s.queue.Set(j, key)
}

// Step fires the reaction with the earliest firing time if it is not after
// horizon.
func (s *NextReaction) Step(horizon float64) (bool, error) {
	r, ok := s.queue.Top()
	if !ok {
		logrus.Debugf("[t=%.6g] no reaction can fire", s.time)
		return false, nil
	}
	t, _ := s.queue.Get(r)
	if t > horizon {
		s.time = horizon
		s.metrics.Time = horizon
		return false, nil
	}
	s.time = t
	applyChange(s.state, s.changes[r], 1)
	for _, j := range s.deps[r] {
		s.propensities[j] = s.model.Propensity(j, s.state)
		s.schedule(j)
	}
	s.metrics.Steps++
	s.metrics.Firings[r]++
	s.metrics.Time = t
	if rq, ok := s.queue.(interface{ Rebuilds() int }); ok {
		s.metrics.Rebuilds = rq.Rebuilds()
	}
	if s.trace.Enabled() {
		s.trace.RecordFiring(trace.FiringRecord{
			Step:     s.metrics.Steps,
			Time:     t,
			Reaction: s.model.Reactions[r].Name,
			QueueLen: s.queue.Len(),
		})
	}
	logrus.Debugf("[t=%.6g] fired %s", t, s.model.Reactions[r].Name)
	return true, nil
}

func (s *NextReaction) Time() float64 { return s.time }

func (s *NextReaction) State() []int64 { return s.state }

func (s *NextReaction) Metrics() *Metrics { return s.metrics }

func (s *NextReaction) SetTrace(st *trace.SimulationTrace) { s.trace = st }

// Propensities returns the live propensity array shared with the queue.
func (s *NextReaction) Propensities() []float64 { return s.propensities }
