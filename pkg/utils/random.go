package utils

import "math/rand/v2"

// NewSeededRand returns the random source handed to generators for one
// sequence. The same seed always reproduces the same sequence.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// RandomSeed picks a seed for requests that did not provide one.
// It draws once from the global source; the seed is reported back to the
// caller and generators only ever see the seeded source built from it.
func RandomSeed() uint64 {
	return rand.Uint64()
}
