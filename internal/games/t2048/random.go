package t2048

import "math/rand"

// RandomSource supplies the randomness used for spawning tiles.
// *rand.Rand satisfies it; tests can substitute a scripted source.
type RandomSource interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
	// Float64 returns a uniform value in [0.0, 1.0).
	Float64() float64
}

// NewRandSource returns a deterministic source seeded with seed.
func NewRandSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}
