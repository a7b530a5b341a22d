package engine

import "math/rand/v2"

// Rand is the only source of chance in a match: deck reshuffles, the selector's
// overheat gamble and melt rolls. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a PCG-backed source. Matches seeded with the same pair replay identically.
func NewRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}
