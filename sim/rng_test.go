package sim

import (
	"math"
	"math/rand"
	"testing"
)

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// GIVEN two partitioned RNGs with the same key
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	// WHEN drawing from the leaping subsystem of each
	for i := 0; i < 3; i++ {
		a := rng1.ForSubsystem(SubsystemLeaping).Float64()
		b := rng2.ForSubsystem(SubsystemLeaping).Float64()

		// THEN the sequences are identical
		if a != b {
			t.Errorf("Value %d: got %v and %v, want identical", i, a, b)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// GIVEN one run that draws heavily from reactions before leaping
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemReactions).Float64()
	}

	// WHEN it first touches the leaping stream
	got := rngA.ForSubsystem(SubsystemLeaping).Float64()

	// THEN it sees the first leaping value of a fresh run
	fresh := NewPartitionedRNG(NewSimulationKey(42))
	if want := fresh.ForSubsystem(SubsystemLeaping).Float64(); got != want {
		t.Errorf("leaping first value = %v, want %v (isolation broken)", got, want)
	}
}

func TestPartitionedRNG_ReactionsUseMasterSeed(t *testing.T) {
	seed := int64(42)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	reactions := rng.ForSubsystem(SubsystemReactions)
	direct := newRandFromSeed(seed)

	for i := 0; i < 10; i++ {
		if got, want := reactions.Float64(), direct.Float64(); got != want {
			t.Errorf("Value %d: reactions RNG = %v, direct RNG = %v", i, got, want)
		}
	}
}

func TestPartitionedRNG_SeedFor_MatchesForSubsystem(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(7))
	for _, name := range []string{SubsystemReactions, SubsystemLeaping, SubsystemSampling} {
		direct := newRandFromSeed(rng.SeedFor(name))
		if got, want := rng.ForSubsystem(name).Int63(), direct.Int63(); got != want {
			t.Errorf("%s: ForSubsystem drew %d, SeedFor stream drew %d", name, got, want)
		}
	}
	if len(rng.subsystems) != 3 {
		t.Errorf("have %d cached subsystems, want 3", len(rng.subsystems))
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if rng.ForSubsystem(SubsystemSampling) != rng.ForSubsystem(SubsystemSampling) {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_MinInt64Seed(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(math.MinInt64))

	val := rng.ForSubsystem(SubsystemLeaping).Float64()
	if val < 0 || val >= 1 {
		t.Errorf("Float64() returned %v, want [0, 1)", val)
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.subsystems) != 0 {
		t.Errorf("New PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}

	rng.ForSubsystem(SubsystemReactions)
	rng.SeedFor(SubsystemLeaping)

	if len(rng.subsystems) != 1 {
		t.Errorf("After one ForSubsystem call, have %d subsystems, want 1", len(rng.subsystems))
	}
}

func TestFnv1a64_Collision(t *testing.T) {
	names := []string{SubsystemReactions, SubsystemLeaping, SubsystemSampling, ""}

	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}

func BenchmarkPartitionedRNG_ForSubsystem_CacheHit(b *testing.B) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	rng.ForSubsystem(SubsystemReactions)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.ForSubsystem(SubsystemReactions)
	}
}

// newRandFromSeed creates a *rand.Rand with the given seed.
func newRandFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
