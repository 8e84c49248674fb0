package randutil

import (
	"math"
	rand "math/rand/v2"

	"lukechampine.com/frand"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided seed.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(mix(seed), mix(seed+goldenRatio64)))
}

// Derive returns the seed of an independent stream of a base seed. Streams
// depend only on (base, stream), so a chunk of work seeds identically no
// matter which worker runs it.
func Derive(base, stream uint64) uint64 {
	return mix(base ^ mix(stream+goldenRatio64))
}

// Entropy returns a fresh seed from the process-wide CSPRNG.
func Entropy() uint64 {
	return frand.Uint64n(math.MaxUint64)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
