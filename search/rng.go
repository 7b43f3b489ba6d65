// Package search - RNG streams for populations.
//
// Determinism:
//   - One base *rand.Rand per solve, seeded from Options.Seed (0 means the
//     fixed default).
//   - Each chain draws its own stream from the base, so chain i of a run
//     is reproducible regardless of how many steps chain j takes.
//
// Concurrency:
//   - A *rand.Rand is not goroutine-safe; streams are never shared.

package search

import "math/rand"

// defaultRNGSeed replaces a zero Options.Seed.
const defaultRNGSeed int64 = 1

const (
	golden = 0x9e3779b97f4a7c15
	mixA   = 0xbf58476d1ce4e5b9
	mixB   = 0x94d049bb133111eb
)

// chainStreams hands out one RNG per chain, all derived from a single base
// seeded by the solve. Each call advances the base, so populations built
// one after another get fresh streams even for the same chain index.
type chainStreams struct {
	base *rand.Rand
}

func newChainStreams(seed int64) *chainStreams {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return &chainStreams{base: rand.New(rand.NewSource(seed))}
}

// next returns the stream for chain id.
func (cs *chainStreams) next(id int) *rand.Rand {
	return rand.New(rand.NewSource(splitMix(cs.base.Int63(), uint64(id))))
}

// splitMix folds a chain id into a parent draw with the SplitMix64
// finalizer.
func splitMix(parent int64, id uint64) int64 {
	x := uint64(parent) ^ (id + golden) + golden
	x = (x ^ x>>30) * mixA
	x = (x ^ x>>27) * mixB

	return int64(x ^ x>>31)
}
