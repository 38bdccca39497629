package ssa

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/inference-sim/kmc-sim/sim/internal/testutil"
	"github.com/inference-sim/kmc-sim/sim/queue"
	"github.com/inference-sim/kmc-sim/sim/random"
	"github.com/inference-sim/kmc-sim/sim/trace"
)

func newNextReaction(t testing.TB, m *Model, kind string, seed int64) *NextReaction {
	t.Helper()
	q, err := queue.New(kind, len(m.Reactions))
	require.NoError(t, err)
	s, err := NewNextReaction(m, q, random.NewExponential(random.NewUniform(seed)))
	require.NoError(t, err)
	return s
}

func TestNextReaction_DecayRunsToExtinction(t *testing.T) {
	for _, kind := range queue.KindNames() {
		t.Run(kind, func(t *testing.T) {
			// GIVEN A -> 0 with 500 molecules
			s := newNextReaction(t, decayModel(500, 1), kind, 1)

			// WHEN run without a horizon
			require.NoError(t, Run(s, math.Inf(1), 0))

			// THEN every molecule decays exactly once
			m := s.Metrics()
			assert.Equal(t, int64(500), m.Steps)
			assert.Equal(t, int64(500), m.Firings[0])
			assert.Equal(t, []int64{0}, m.Populations)
			assert.Greater(t, m.Time, 0.0)
		})
	}
}

func TestNextReaction_OverflowedPropensity_RunsToExtinction(t *testing.T) {
	for _, kind := range queue.KindNames() {
		t.Run(kind, func(t *testing.T) {
			// GIVEN a finite rate whose propensity overflows to +Inf
			m := decayModel(4, 1e308)
			require.True(t, math.IsInf(m.Propensity(0, m.Initial), 1))
			s := newNextReaction(t, m, kind, 1)

			// WHEN run without a horizon
			require.NoError(t, Run(s, math.Inf(1), 0))

			// THEN every molecule decays and the clock stays finite
			assert.Equal(t, []int64{0}, s.Metrics().Populations)
			assert.Equal(t, int64(4), s.Metrics().Steps)
			assert.False(t, math.IsInf(s.Time(), 0))
		})
	}
}

func TestNextReaction_DecayMeanAtHorizon(t *testing.T) {
	const a0 = 10000
	for _, kind := range queue.KindNames() {
		t.Run(kind, func(t *testing.T) {
			s := newNextReaction(t, decayModel(a0, 1), kind, 3)

			require.NoError(t, Run(s, 1, 0))

			// A(1) is binomial(a0, e^-1); its standard deviation is about 48.
			want := a0 * math.Exp(-1)
			assert.InDelta(t, want, float64(s.State()[0]), 250)
			assert.Equal(t, 1.0, s.Time())
		})
	}
}

func TestNextReaction_DecayIsBinomialAtHorizon(t *testing.T) {
	// Each of 20 molecules survives to t=0.5 independently with p=e^-0.5.
	const runs = 3000
	dist := distuv.Binomial{N: 20, P: math.Exp(-0.5)}
	pmf := func(k int) float64 { return dist.Prob(float64(k)) }
	for _, kind := range queue.KindNames() {
		t.Run(kind, func(t *testing.T) {
			samples := make([]int, runs)
			for i := range samples {
				s := newNextReaction(t, decayModel(20, 1), kind, int64(i))
				require.NoError(t, Run(s, 0.5, 0))
				samples[i] = int(s.State()[0])
			}
			testutil.AssertDiscreteFit(t, kind, samples, pmf, 20)
		})
	}
}

func TestNextReaction_QueueKindsAgree(t *testing.T) {
	// GIVEN the same seed for every queue kind
	var reference *Metrics
	for _, kind := range queue.KindNames() {
		s := newNextReaction(t, dimerModel(), kind, 11)

		require.NoError(t, Run(s, 50, 0))

		// THEN the trajectories are identical because keys never tie
		m := s.Metrics()
		if reference == nil {
			reference = m
			continue
		}
		assert.Equal(t, reference.Steps, m.Steps, kind)
		assert.Equal(t, reference.Firings, m.Firings, kind)
		assert.Equal(t, reference.Populations, m.Populations, kind)
		assert.Equal(t, reference.Time, m.Time, kind)
	}
}

func TestNextReaction_ConservesMass(t *testing.T) {
	s := newNextReaction(t, dimerModel(), queue.KindPropensities, 5)
	for i := 0; i < 2000; i++ {
		ok, err := s.Step(math.Inf(1))
		require.NoError(t, err)
		if !ok {
			break
		}
		x := s.State()
		require.Equal(t, int64(400), x[0]+2*x[1]+2*x[2], "step %d", i)
	}
}

func TestNextReaction_ZeroPropensityLeavesQueue(t *testing.T) {
	// GIVEN a model whose only reaction needs two molecules of A
	m := &Model{
		Species:   []string{"A", "B"},
		Initial:   []int64{3, 0},
		Reactions: []Reaction{{Name: "pair", Rate: 1, Reactants: []Term{{0, 2}}, Products: []Term{{1, 1}}}},
	}
	q := queue.NewLinearScanQueue(1)
	s, err := NewNextReaction(m, q, random.NewExponential(random.NewUniform(1)))
	require.NoError(t, err)

	// WHEN it fires once
	ok, err := s.Step(math.Inf(1))
	require.NoError(t, err)
	require.True(t, ok)

	// THEN the exhausted reaction is no longer queued and the run stops
	assert.Equal(t, 0, q.Len())
	ok, err = s.Step(math.Inf(1))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []int64{1, 1}, s.State())
}

func TestNextReaction_BindsPropensities(t *testing.T) {
	q := queue.NewPropensityQueue(3)
	s, err := NewNextReaction(dimerModel(), q, random.NewExponential(random.NewUniform(1)))
	require.NoError(t, err)

	assert.InDelta(t, 0.002*400*399/2, s.Propensities()[0], 1e-9)
	assert.Equal(t, 0.0, s.Propensities()[1])

	// Only the binding reaction can fire first.
	top, ok := q.Top()
	require.True(t, ok)
	assert.Equal(t, 0, top)
}

func TestNextReaction_MaxSteps(t *testing.T) {
	s := newNextReaction(t, decayModel(100, 1), queue.KindHeap, 1)

	require.NoError(t, Run(s, math.Inf(1), 10))

	assert.Equal(t, int64(10), s.Metrics().Steps)
	assert.Equal(t, []int64{90}, s.Metrics().Populations)
}

func TestNewNextReaction_Errors(t *testing.T) {
	exp := random.NewExponential(random.NewUniform(1))

	_, err := NewNextReaction(dimerModel(), queue.NewLinearScanQueue(2), exp)
	assert.True(t, errors.Is(err, ErrQueueTooSmall))

	bad := dimerModel()
	bad.Initial[0] = -1
	_, err = NewNextReaction(bad, queue.NewLinearScanQueue(3), exp)
	assert.True(t, errors.Is(err, ErrInvalidModel))
}

func TestRun_NegativeHorizon(t *testing.T) {
	s := newNextReaction(t, decayModel(1, 1), queue.KindLinear, 1)
	assert.Error(t, Run(s, -1, 0))
}

func newTauLeap(t testing.TB, m *Model, tau float64, seed int64) *TauLeap {
	t.Helper()
	s, err := NewTauLeap(m, random.NewPoisson(random.NewUniform(seed), random.DefaultThresholds), tau)
	require.NoError(t, err)
	return s
}

func TestTauLeap_DecayMeanAtHorizon(t *testing.T) {
	const a0 = 10000
	s := newTauLeap(t, decayModel(a0, 1), 0.01, 7)

	require.NoError(t, Run(s, 1, 0))

	// The leap bias at tau=0.01 is about 20 molecules, well inside the band.
	testutil.AssertFloat64Equal(t, "A(1)", a0*math.Exp(-1), float64(s.State()[0]), 0.07)
	assert.Equal(t, 1.0, s.Time())
	assert.Equal(t, int64(100), s.Metrics().Steps)
}

func TestTauLeap_HalvesOnNegativePopulation(t *testing.T) {
	// GIVEN a leap far too long for a fast decay of few molecules
	s := newTauLeap(t, decayModel(5, 100), 1, 9)

	// WHEN run to the horizon
	require.NoError(t, Run(s, 10, 0))

	// THEN leaps were retried and no population went negative
	m := s.Metrics()
	assert.Positive(t, m.Rejections)
	assert.Equal(t, []int64{0}, m.Populations)
	assert.Equal(t, int64(5), m.Firings[0])
}

func TestTauLeap_RetryBound(t *testing.T) {
	s := newTauLeap(t, decayModel(5, 100), 1, 9)
	s.SetMaxHalvings(0)

	_, err := s.Step(10)

	assert.True(t, errors.Is(err, ErrLeapRejected))
}

func TestTauLeap_OverflowedPropensity_ReturnsError(t *testing.T) {
	s := newTauLeap(t, decayModel(4, 1e308), 1, 9)

	ok, err := s.Step(10)

	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrPropensityOverflow))
	assert.Equal(t, []int64{4}, s.State())
}

func TestTauLeap_StopsWhenNothingCanFire(t *testing.T) {
	s := newTauLeap(t, decayModel(0, 1), 0.1, 1)

	ok, err := s.Step(10)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0.0, s.Time())
}

func TestNewTauLeap_InvalidTau(t *testing.T) {
	p := random.NewPoisson(random.NewUniform(1), random.DefaultThresholds)
	for _, tau := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewTauLeap(decayModel(1, 1), p, tau)
		assert.Error(t, err, fmt.Sprint(tau))
	}
}

func TestMetrics_TotalFirings(t *testing.T) {
	m := newMetrics(dimerModel())
	m.Firings = []int64{3, 4, 5}
	assert.Equal(t, int64(12), m.TotalFirings())
	assert.Equal(t, []int64{400, 0, 0}, m.Populations)
}

func BenchmarkNextReaction_Step(b *testing.B) {
	for _, kind := range queue.KindNames() {
		b.Run(kind, func(b *testing.B) {
			s := newNextReaction(b, dimerModel(), kind, 1)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if ok, _ := s.Step(math.Inf(1)); !ok {
					b.StopTimer()
					s = newNextReaction(b, dimerModel(), kind, int64(i))
					b.StartTimer()
				}
			}
		})
	}
}

func TestNextReaction_TraceRecordsFirings(t *testing.T) {
	// GIVEN a traced decay of three molecules
	s := newNextReaction(t, decayModel(3, 1), queue.KindLinear, 1)
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
	s.SetTrace(st)

	// WHEN run to extinction
	require.NoError(t, Run(s, math.Inf(1), 0))

	// THEN each firing is recorded in time order and the last empties the queue
	require.Len(t, st.Firings, 3)
	for i, f := range st.Firings {
		assert.Equal(t, int64(i+1), f.Step)
		if i > 0 {
			assert.Greater(t, f.Time, st.Firings[i-1].Time)
		}
	}
	assert.Equal(t, []int{1, 1, 0}, []int{st.Firings[0].QueueLen, st.Firings[1].QueueLen, st.Firings[2].QueueLen})
}

func TestTauLeap_TraceRecordsRejectedAttempts(t *testing.T) {
	s := newTauLeap(t, decayModel(5, 100), 1, 9)
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
	s.SetTrace(st)

	require.NoError(t, Run(s, 10, 0))

	summary := trace.Summarize(st)
	assert.Equal(t, int(s.Metrics().Steps), summary.AcceptedLeaps)
	assert.Equal(t, int(s.Metrics().Rejections), summary.RejectedLeaps)
	assert.Less(t, summary.MinTau, 1.0)
	assert.False(t, st.Leaps[0].Accepted, "the first full-length leap overshoots")
}
