package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChainsFor(t *testing.T) {
	want := map[int]int{4: 5, 5: 4, 6: 3, 7: 3, 8: 3, 9: 2, 100: 2}
	for leaves, k := range want {
		require.Equal(t, k, chainsFor(leaves), "leaves=%d", leaves)
	}
}

func TestValidateOptions(t *testing.T) {
	require.NoError(t, validateOptions(DefaultOptions()))
	require.NoError(t, validateSchedule(DefaultSchedule()))

	for _, o := range []Options{{Chains: -1}, {Chains: 1}, {MaxSteps: -1}, {MaxAttempts: -2}} {
		require.ErrorIs(t, validateOptions(o), ErrBadOptions)
	}

	s := DefaultSchedule()
	s.LevelGrowth = 0.5
	require.ErrorIs(t, validateSchedule(s), ErrBadOptions)
}

func TestChainStreams(t *testing.T) {
	require.NotEqual(t, splitMix(1, 0), splitMix(1, 1))
	require.Equal(t, splitMix(7, 3), splitMix(7, 3))

	a := newChainStreams(0).next(0)
	b := newChainStreams(defaultRNGSeed).next(0)
	require.Equal(t, a.Int63(), b.Int63(), "seed 0 maps to the default seed")

	cs := newChainStreams(9)
	first, second := cs.next(0), cs.next(0)
	require.NotEqual(t, first.Int63(), second.Int63(), "each call advances the base")
}
