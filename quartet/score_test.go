package quartet_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qsearch/matrix"
	"github.com/katalvlaran/qsearch/mutation"
	"github.com/katalvlaran/qsearch/quartet"
	"github.com/katalvlaran/qsearch/tree"
)

// randomDistances returns a symmetric matrix with entries in [1, 2).
func randomDistances(t *testing.T, n int, rng *rand.Rand) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := 1 + rng.Float64()
			require.NoError(t, m.Set(i, j, v))
			require.NoError(t, m.Set(j, i, v))
		}
	}
	return m
}

// swapped returns m with rows and columns i and j exchanged.
func swapped(t *testing.T, m *matrix.Dense, i, j int) *matrix.Dense {
	t.Helper()
	n := m.Rows()
	perm := make([]int, n)
	for k := range perm {
		perm[k] = k
	}
	perm[i], perm[j] = j, i

	out, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v, err := m.At(perm[r], perm[c])
			require.NoError(t, err)
			require.NoError(t, out.Set(r, c, v))
		}
	}
	return out
}

func mustScore(t *testing.T, tr *tree.Tree, m matrix.Matrix) float64 {
	t.Helper()
	s, err := quartet.Score(tr, m)
	require.NoError(t, err)
	return s
}

// TestScore_SingleQuartet: with four leaves the score is 1 for the cheapest
// pairing and 0 for the most expensive one.
func TestScore_SingleQuartet(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{
		{0, 5, 1, 5},
		{5, 0, 5, 1},
		{1, 5, 0, 5},
		{5, 1, 5, 0},
	})
	require.NoError(t, err)

	seed, err := tree.New(4) // {0,2}|{1,3}
	require.NoError(t, err)
	require.Equal(t, 1.0, mustScore(t, seed, m))

	worst := seed.Clone() // {1,2}|{0,3}
	require.NoError(t, worst.SwapLeaves(0, 1))
	require.Equal(t, 0.0, mustScore(t, worst, m))
}

// TestScore_InducedIsPerfect: every tree resolves its own weighted metric
// perfectly, and the score is exactly 1.
func TestScore_InducedIsPerfect(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for _, leaves := range []int{4, 5, 6, 8, 11} {
		tr, err := mutation.NewRandomTree(leaves, rng)
		require.NoError(t, err)

		dist, err := quartet.InducedDistances(tr, func(u, v int) float64 {
			return 0.5 + rng.Float64()
		})
		require.NoError(t, err)
		require.Equal(t, 1.0, mustScore(t, tr, dist), "leaves=%d", leaves)

		other := tr.Clone()
		require.NoError(t, other.SwapLeaves(0, leaves-1))
		if !tree.Equal(tr, other) {
			require.Less(t, mustScore(t, other, dist), 1.0)
		}
	}
}

func TestScore_RelabelInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for trial := 0; trial < 10; trial++ {
		const leaves = 8
		tr, err := mutation.NewRandomTree(leaves, rng)
		require.NoError(t, err)
		m := randomDistances(t, leaves, rng)

		i, j := rng.Intn(leaves), rng.Intn(leaves)
		if i == j {
			continue
		}
		relabeled := tr.Clone()
		require.NoError(t, relabeled.SwapLeaves(i, j))

		require.InDelta(t, mustScore(t, tr, m), mustScore(t, relabeled, swapped(t, m, i, j)), 1e-9)
	}
}

func TestScore_Range(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for trial := 0; trial < 20; trial++ {
		leaves := 4 + rng.Intn(7)
		tr, err := mutation.NewRandomTree(leaves, rng)
		require.NoError(t, err)

		s := mustScore(t, tr, randomDistances(t, leaves, rng))
		require.GreaterOrEqual(t, s, 0.0)
		require.LessOrEqual(t, s, 1.0)
	}
}

func TestScore_UniformMatrix(t *testing.T) {
	m, err := matrix.NewDense(6, 6)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if i != j {
				require.NoError(t, m.Set(i, j, 3))
			}
		}
	}
	tr, err := tree.New(6)
	require.NoError(t, err)
	require.Equal(t, 1.0, mustScore(t, tr, m), "no topology is preferred")
}

func TestNewScorer_Errors(t *testing.T) {
	_, err := quartet.NewScorer(nil)
	require.ErrorIs(t, err, quartet.ErrInvalidDistances)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	small, err := matrix.NewDenseFromRows([][]float64{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}})
	require.NoError(t, err)
	_, err = quartet.NewScorer(small)
	require.ErrorIs(t, err, quartet.ErrInvalidDistances)
	require.ErrorIs(t, err, tree.ErrInvalidLeafCount)

	asym := randomDistances(t, 5, rand.New(rand.NewSource(1)))
	require.NoError(t, asym.Set(0, 1, 9))
	_, err = quartet.NewScorer(asym)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
}

func TestScorer_Mismatch(t *testing.T) {
	sc, err := quartet.NewScorer(randomDistances(t, 6, rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	require.Equal(t, 6, sc.Leaves())

	tr, err := tree.New(7)
	require.NoError(t, err)
	_, err = sc.Score(tr)
	require.ErrorIs(t, err, tree.ErrLeafCountMismatch)

	pm, err := tree.NewPathMatrix(tr)
	require.NoError(t, err)
	_, err = sc.ScorePaths(pm)
	require.ErrorIs(t, err, tree.ErrPathMatrixMismatch)
}

func TestScorer_ScorePathsMatchesScore(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	sc, err := quartet.NewScorer(randomDistances(t, 9, rng))
	require.NoError(t, err)
	tr, err := mutation.NewRandomTree(9, rng)
	require.NoError(t, err)

	full, err := tree.NewPathMatrix(tr)
	require.NoError(t, err)
	leaf, err := full.Truncate(9)
	require.NoError(t, err)

	a, err := sc.Score(tr)
	require.NoError(t, err)
	b, err := sc.ScorePaths(leaf)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
