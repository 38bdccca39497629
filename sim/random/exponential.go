package random

import (
	"fmt"
	"math"
)

// ExponentialMethod selects the algorithm for standard exponential deviates.
type ExponentialMethod int

const (
	// ExpInversion computes -ln(U).
	ExpInversion ExponentialMethod = iota
	// ExpZiggurat uses the ziggurat tables of math/rand.
	ExpZiggurat
)

// String returns the string representation of ExponentialMethod
func (m ExponentialMethod) String() string {
	switch m {
	case ExpInversion:
		return "inversion"
	case ExpZiggurat:
		return "ziggurat"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Exponential generates exponential deviates.
type Exponential struct {
	uniform *Uniform
	method  ExponentialMethod
}

// NewExponential creates an inversion generator on u.
func NewExponential(u *Uniform) *Exponential {
	return NewExponentialWithMethod(u, ExpInversion)
}

// NewExponentialWithMethod creates a generator on u using method.
func NewExponentialWithMethod(u *Uniform, method ExponentialMethod) *Exponential {
	return &Exponential{uniform: u, method: method}
}

// Seed reseeds the shared uniform source.
func (e *Exponential) Seed(seed int64) {
	e.uniform.Seed(seed)
}

// Sample returns a deviate with unit mean.
func (e *Exponential) Sample() float64 {
	if e.method == ExpZiggurat {
		return e.uniform.rng.ExpFloat64()
	}
	return -math.Log(e.uniform.Open())
}

// SampleMean returns a deviate with the given mean.
func (e *Exponential) SampleMean(mean float64) float64 {
	return mean * e.Sample()
}

// Uniform returns the borrowed source.
func (e *Exponential) Uniform() *Uniform {
	return e.uniform
}
