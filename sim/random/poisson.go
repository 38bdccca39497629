package random

import (
	"fmt"
	"math"
)

// PoissonMethod is a family of Poisson sampling algorithms.
type PoissonMethod int

const (
	// MethodInterArrival counts unit-rate exponential arrivals in [0, mean).
	MethodInterArrival PoissonMethod = iota
	// MethodInversion walks the cumulative distribution (chop-down search).
	MethodInversion
	// MethodAcceptanceComplement is Ahrens and Dieter's normal-based
	// acceptance-complement algorithm, with table inversion below mean 10.
	MethodAcceptanceComplement
	// MethodNormal rounds a normal deviate. It is an approximation and is
	// only chosen above PoissonThresholds.Normal.
	MethodNormal
)

// String returns the string representation of PoissonMethod
func (m PoissonMethod) String() string {
	switch m {
	case MethodInterArrival:
		return "inter-arrival"
	case MethodInversion:
		return "inversion"
	case MethodAcceptanceComplement:
		return "acceptance-complement"
	case MethodNormal:
		return "normal"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParsePoissonMethod parses a string into a PoissonMethod
func ParsePoissonMethod(s string) (PoissonMethod, error) {
	switch s {
	case "inter-arrival":
		return MethodInterArrival, nil
	case "inversion":
		return MethodInversion, nil
	case "acceptance-complement":
		return MethodAcceptanceComplement, nil
	case "normal":
		return MethodNormal, nil
	default:
		return MethodInversion, fmt.Errorf("%w %q (must be 'inter-arrival', 'inversion', 'acceptance-complement', or 'normal')", ErrUnknownMethod, s)
	}
}

// MaxInversionMean is the largest mean inversion accepts in double precision:
// above it exp(-mean) underflows. The single precision ceiling would be 87.
const MaxInversionMean = 708.0

// PoissonThresholds are the mean values at which the dispatcher switches
// method family. A mean below ExpVsInv uses inter-arrival, below InvVsAc
// inversion, below Normal acceptance-complement, and the normal approximation
// from there on.
type PoissonThresholds struct {
	ExpVsInv float64 `yaml:"exp_vs_inv"`
	InvVsAc  float64 `yaml:"inv_vs_ac"`
	Normal   float64 `yaml:"normal"`
}

var (
	// DefaultThresholds are tuned for a fast exponential generator.
	DefaultThresholds = PoissonThresholds{ExpVsInv: 2.0, InvVsAc: 6.5, Normal: math.Inf(1)}
	// AlternateThresholds suit a slower exponential generator.
	AlternateThresholds = PoissonThresholds{ExpVsInv: 0.4, InvVsAc: 13, Normal: math.Inf(1)}
)

// ValidThresholdNames is the set of recognised threshold presets.
var ValidThresholdNames = map[string]bool{"": true, "default": true, "alternate": true}

// ThresholdsByName returns a preset; the empty name means "default".
func ThresholdsByName(name string) (PoissonThresholds, error) {
	switch name {
	case "", "default":
		return DefaultThresholds, nil
	case "alternate":
		return AlternateThresholds, nil
	default:
		return PoissonThresholds{}, fmt.Errorf("unknown poisson thresholds %q", name)
	}
}

// Validate checks that the thresholds are ordered and that inversion is never
// dispatched above its ceiling.
func (t PoissonThresholds) Validate() error {
	if !(t.ExpVsInv >= 0) {
		return fmt.Errorf("exp_vs_inv must be non-negative, got %g", t.ExpVsInv)
	}
	if !(t.InvVsAc >= t.ExpVsInv) {
		return fmt.Errorf("inv_vs_ac (%g) must be >= exp_vs_inv (%g)", t.InvVsAc, t.ExpVsInv)
	}
	if t.InvVsAc > MaxInversionMean {
		return fmt.Errorf("inv_vs_ac (%g) exceeds the inversion ceiling %g", t.InvVsAc, MaxInversionMean)
	}
	if !(t.Normal >= t.InvVsAc) {
		return fmt.Errorf("normal (%g) must be >= inv_vs_ac (%g)", t.Normal, t.InvVsAc)
	}
	return nil
}

// Poisson generates Poisson deviates by dispatching on the mean.
type Poisson struct {
	uniform     *Uniform
	exponential *Exponential
	normal      *Normal
	thresholds  PoissonThresholds

	ac acceptanceComplement
}

// NewPoisson creates a dispatcher on u. The exponential and normal helpers
// share u. It panics if thresholds do not validate.
func NewPoisson(u *Uniform, thresholds PoissonThresholds) *Poisson {
	if err := thresholds.Validate(); err != nil {
		panic(err)
	}
	return &Poisson{
		uniform:     u,
		exponential: NewExponential(u),
		normal:      NewNormal(u),
		thresholds:  thresholds,
	}
}

// Seed reseeds the shared uniform source.
func (p *Poisson) Seed(seed int64) {
	p.normal.Seed(seed)
}

// Thresholds returns the dispatch thresholds.
func (p *Poisson) Thresholds() PoissonThresholds {
	return p.thresholds
}

// Method returns the family Sample uses for mean.
func (p *Poisson) Method(mean float64) PoissonMethod {
	switch {
	case mean < p.thresholds.ExpVsInv:
		return MethodInterArrival
	case mean < p.thresholds.InvVsAc:
		return MethodInversion
	case mean < p.thresholds.Normal:
		return MethodAcceptanceComplement
	default:
		return MethodNormal
	}
}

// Sample returns a Poisson deviate with the given mean. A negative or NaN
// mean panics with ErrMeanOutOfRange.
func (p *Poisson) Sample(mean float64) int {
	return p.SampleWith(p.Method(mean), mean)
}

// SampleWith forces a method family.
func (p *Poisson) SampleWith(method PoissonMethod, mean float64) int {
	if !(mean >= 0) || math.IsInf(mean, 1) {
		meanOutOfRange(method, mean)
	}
	switch method {
	case MethodInterArrival:
		return p.interArrival(mean)
	case MethodInversion:
		return p.inversion(mean)
	case MethodAcceptanceComplement:
		return p.ac.sample(p, mean)
	case MethodNormal:
		return p.normalApproximation(mean)
	default:
		panic(fmt.Errorf("%w: %s", ErrUnknownMethod, method))
	}
}
