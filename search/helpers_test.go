package search_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qsearch/matrix"
	"github.com/katalvlaran/qsearch/mutation"
	"github.com/katalvlaran/qsearch/quartet"
	"github.com/katalvlaran/qsearch/tree"
)

// planted returns a random tree and its induced metric with edge weights
// in [0.5, 1.5), so the tree scores exactly 1.
func planted(t *testing.T, leaves int, seed int64) (*tree.Tree, *matrix.Dense) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	tr, err := mutation.NewRandomTree(leaves, rng)
	require.NoError(t, err)
	dist, err := quartet.InducedDistances(tr, func(int, int) float64 {
		return 0.5 + rng.Float64()
	})
	require.NoError(t, err)
	return tr, dist
}

// noisy returns a symmetric matrix with entries in [1, 2), which no tree
// fits perfectly in general.
func noisy(t *testing.T, leaves int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m, err := matrix.NewDense(leaves, leaves)
	require.NoError(t, err)
	for i := 0; i < leaves; i++ {
		for j := i + 1; j < leaves; j++ {
			v := 1 + rng.Float64()
			require.NoError(t, m.Set(i, j, v))
			require.NoError(t, m.Set(j, i, v))
		}
	}
	return m
}

func scorer(t *testing.T, m matrix.Matrix) *quartet.Scorer {
	t.Helper()
	sc, err := quartet.NewScorer(m)
	require.NoError(t, err)
	return sc
}
