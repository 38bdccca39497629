package random

import "math/rand"

// Uniform is the uniform bit source shared by the generators.
type Uniform struct {
	rng *rand.Rand
}

// NewUniform creates a source seeded with seed.
func NewUniform(seed int64) *Uniform {
	return &Uniform{rng: rand.New(rand.NewSource(seed))}
}

// NewUniformFrom wraps an existing stream, for example one handed out by
// sim.PartitionedRNG. The stream is borrowed, not copied.
func NewUniformFrom(rng *rand.Rand) *Uniform {
	return &Uniform{rng: rng}
}

// Seed restarts the stream.
func (u *Uniform) Seed(seed int64) {
	u.rng.Seed(seed)
}

// Float64 returns a deviate in [0, 1).
func (u *Uniform) Float64() float64 {
	return u.rng.Float64()
}

// Open returns a deviate in (0, 1), safe to pass to math.Log.
func (u *Uniform) Open() float64 {
	for {
		if x := u.rng.Float64(); x != 0 {
			return x
		}
	}
}

// Rand exposes the underlying stream.
func (u *Uniform) Rand() *rand.Rand {
	return u.rng
}
