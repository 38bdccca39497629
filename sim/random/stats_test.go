package random

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/inference-sim/kmc-sim/sim/internal/testutil"
)

// assertPoissonFit checks samples against the Poisson mass function.
func assertPoissonFit(t testing.TB, samples []int, mean float64) {
	t.Helper()
	dist := distuv.Poisson{Lambda: mean}
	kmax := int(math.Ceil(mean + 8*math.Sqrt(mean) + 10))
	testutil.AssertDiscreteFit(t, "poisson", samples, func(k int) float64 { return dist.Prob(float64(k)) }, kmax)
}

func meanVariance(xs []float64) (float64, float64) {
	return stat.MeanVariance(xs, nil)
}
