package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qsearch/tree"
)

func mustPaths(t *testing.T, tr *tree.Tree) *tree.PathMatrix {
	t.Helper()
	pm, err := tree.NewPathMatrix(tr)
	require.NoError(t, err)
	return pm
}

// TestPathMatrix_Seed4 checks every entry of the L=4 seed by hand.
func TestPathMatrix_Seed4(t *testing.T) {
	pm := mustPaths(t, mustNew(t, 4))
	want := [][]int{
		{0, 3, 2, 3, 1, 2},
		{3, 0, 3, 2, 2, 1},
		{2, 3, 0, 3, 1, 2},
		{3, 2, 3, 0, 2, 1},
		{1, 2, 1, 2, 0, 1},
		{2, 1, 2, 1, 1, 0},
	}
	require.Equal(t, 6, pm.Order())
	for i := range want {
		for j := range want[i] {
			require.Equal(t, want[i][j], pm.At(i, j), "(%d,%d)", i, j)
		}
	}
}

// TestPathMatrix_Metric checks symmetry, the zero diagonal and the triangle
// inequality on a larger tree.
func TestPathMatrix_Metric(t *testing.T) {
	tr := mustNew(t, 12)
	require.NoError(t, tr.SwapLeaves(0, 11))
	pm := mustPaths(t, tr)

	n := pm.Order()
	for i := 0; i < n; i++ {
		require.Zero(t, pm.At(i, i))
		for j := 0; j < n; j++ {
			require.Equal(t, pm.At(i, j), pm.At(j, i))
			if i != j {
				require.Positive(t, pm.At(i, j))
			}
			if tr.IsConnected(i, j) {
				require.Equal(t, 1, pm.At(i, j))
			}
			for k := 0; k < n; k++ {
				require.LessOrEqual(t, pm.At(i, j), pm.At(i, k)+pm.At(k, j))
			}
		}
	}
}

func TestPathMatrix_WriteReuse(t *testing.T) {
	tr := mustNew(t, 8)
	pm := mustPaths(t, tr)

	require.NoError(t, tr.SwapLeaves(0, 7))
	require.NoError(t, pm.Write(tr))
	require.Equal(t, mustPaths(t, tr), pm)

	require.ErrorIs(t, pm.Write(mustNew(t, 9)), tree.ErrPathMatrixMismatch)
}

func TestNewPathMatrix_ZeroTree(t *testing.T) {
	_, err := tree.NewPathMatrix(&tree.Tree{})
	require.ErrorIs(t, err, tree.ErrInvalidLeafCount)
}

func TestTruncate(t *testing.T) {
	pm := mustPaths(t, mustNew(t, 7))

	leaf, err := pm.Truncate(7)
	require.NoError(t, err)
	require.Equal(t, 7, leaf.Order())
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			require.Equal(t, pm.At(i, j), leaf.At(i, j))
		}
	}

	var dst tree.PathMatrix
	require.NoError(t, pm.TruncateInto(&dst, 7))
	require.Equal(t, leaf, &dst)

	_, err = pm.Truncate(pm.Order() + 1)
	require.ErrorIs(t, err, tree.ErrPathMatrixMismatch)
}

func TestPathBetween(t *testing.T) {
	tr := mustNew(t, 4)
	pm := mustPaths(t, tr)

	p, err := tr.PathBetween(pm, 0, 1)
	require.NoError(t, err)
	require.Equal(t, []int{0, 4, 5, 1}, p)

	p, err = tr.PathBetween(pm, 5, 5)
	require.NoError(t, err)
	require.Equal(t, []int{5}, p)

	p, err = tr.PathBetween(pm, 2, 4)
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, p)
}

func TestPathBetween_LengthMatchesMatrix(t *testing.T) {
	tr := mustNew(t, 10)
	pm := mustPaths(t, tr)
	for a := 0; a < tr.Nodes(); a++ {
		for b := 0; b < tr.Nodes(); b++ {
			p, err := tr.PathBetween(pm, a, b)
			require.NoError(t, err)
			require.Len(t, p, pm.At(a, b)+1)
			require.Equal(t, a, p[0])
			require.Equal(t, b, p[len(p)-1])
			for i := 1; i < len(p); i++ {
				require.True(t, tr.IsConnected(p[i-1], p[i]))
			}
		}
	}
}

func TestPathBetween_Errors(t *testing.T) {
	tr := mustNew(t, 6)
	pm := mustPaths(t, tr)

	_, err := tr.PathBetween(pm, 0, 10)
	require.ErrorIs(t, err, tree.ErrNodeOutOfRange)

	_, err = tr.PathBetween(mustPaths(t, mustNew(t, 5)), 0, 1)
	require.ErrorIs(t, err, tree.ErrPathMatrixMismatch)

	_, err = tr.PathBetween(nil, 0, 1)
	require.ErrorIs(t, err, tree.ErrPathMatrixMismatch)

	// A matrix from a different topology of the same size sends the walk
	// astray; it must stop at the node limit rather than loop.
	other := tr.Clone()
	require.NoError(t, other.SwapLeaves(0, 5))
	stale := mustPaths(t, other)
	for a := 0; a < tr.Nodes(); a++ {
		for b := 0; b < tr.Nodes(); b++ {
			p, err := tr.PathBetween(stale, a, b)
			if err != nil {
				require.ErrorIs(t, err, tree.ErrStructuralInvariant)
				require.ErrorContains(t, err, "overran")
				continue
			}
			require.Equal(t, b, p[len(p)-1])
		}
	}
}
