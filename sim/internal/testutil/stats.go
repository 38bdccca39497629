// Package testutil provides shared statistical assertions for the sim/ test
// packages.
package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

// FitLevel is the chi-square quantile below which a sample is accepted.
const FitLevel = 0.9999

// minExpected is the smallest expected count of a chi-square bin.
const minExpected = 10

// DiscreteChiSquare bins integer samples against pmf on 0..kmax so that every
// bin expects at least minExpected draws. Mass beyond kmax is folded into the
// last bin. It returns the statistic and its degrees of freedom.
func DiscreteChiSquare(samples []int, pmf func(k int) float64, kmax int) (float64, int) {
	n := float64(len(samples))
	counts := make(map[int]int)
	for _, k := range samples {
		counts[k]++
	}

	var chi, expected, observed, seenProb float64
	var bins, seen int
	for k := 0; k <= kmax; k++ {
		p := pmf(k)
		expected += n * p
		seenProb += p
		observed += float64(counts[k])
		seen += counts[k]
		if expected >= minExpected && n*(1-seenProb) >= minExpected {
			chi += (observed - expected) * (observed - expected) / expected
			bins++
			expected, observed = 0, 0
		}
	}
	expected += n * math.Max(0, 1-seenProb)
	observed += float64(len(samples) - seen)
	chi += (observed - expected) * (observed - expected) / expected
	bins++
	return chi, bins - 1
}

// AssertDiscreteFit fails t when samples reject pmf at FitLevel.
func AssertDiscreteFit(t testing.TB, name string, samples []int, pmf func(k int) float64, kmax int) {
	t.Helper()
	chi, df := DiscreteChiSquare(samples, pmf, kmax)
	if df < 1 {
		t.Fatalf("%s: too few samples for a chi-square test", name)
	}
	if limit := (distuv.ChiSquared{K: float64(df)}).Quantile(FitLevel); chi > limit {
		t.Errorf("%s: chi-square %.2f exceeds %.2f (df=%d)", name, chi, limit, df)
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t testing.TB, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
