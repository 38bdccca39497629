package random

import (
	"fmt"
	"math"
)

// NormalMethod selects the algorithm for standard normal deviates.
type NormalMethod int

const (
	// NormalPolar is Marsaglia's polar method; it yields deviates in pairs and
	// caches the second one.
	NormalPolar NormalMethod = iota
	// NormalZiggurat uses the ziggurat tables of math/rand.
	NormalZiggurat
)

// String returns the string representation of NormalMethod
func (m NormalMethod) String() string {
	switch m {
	case NormalPolar:
		return "polar"
	case NormalZiggurat:
		return "ziggurat"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Normal generates normal deviates.
type Normal struct {
	uniform *Uniform
	method  NormalMethod

	spare    float64
	hasSpare bool
}

// NewNormal creates a polar generator on u.
func NewNormal(u *Uniform) *Normal {
	return NewNormalWithMethod(u, NormalPolar)
}

// NewNormalWithMethod creates a generator on u using method.
func NewNormalWithMethod(u *Uniform, method NormalMethod) *Normal {
	return &Normal{uniform: u, method: method}
}

// Seed reseeds the shared uniform source and drops any cached deviate.
func (n *Normal) Seed(seed int64) {
	n.uniform.Seed(seed)
	n.hasSpare = false
}

// Sample returns a deviate with zero mean and unit variance.
func (n *Normal) Sample() float64 {
	if n.method == NormalZiggurat {
		return n.uniform.rng.NormFloat64()
	}
	if n.hasSpare {
		n.hasSpare = false
		return n.spare
	}
	for {
		x := 2*n.uniform.Float64() - 1
		y := 2*n.uniform.Float64() - 1
		r := x*x + y*y
		if r == 0 || r >= 1 {
			continue
		}
		f := math.Sqrt(-2 * math.Log(r) / r)
		n.spare, n.hasSpare = y*f, true
		return x * f
	}
}

// SampleWith returns a deviate with the given mean and variance.
func (n *Normal) SampleWith(mean, variance float64) float64 {
	return math.Sqrt(variance)*n.Sample() + mean
}
