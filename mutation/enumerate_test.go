package mutation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qsearch/mutation"
	"github.com/katalvlaran/qsearch/tree"
)

// seed returns the seed tree over leaves leaves and its full path matrix.
func seed(t *testing.T, leaves int) (*tree.Tree, *tree.PathMatrix) {
	t.Helper()
	tr, err := tree.New(leaves)
	require.NoError(t, err)
	pm, err := tree.NewPathMatrix(tr)
	require.NoError(t, err)
	return tr, pm
}

func enumerator(t *testing.T, tr *tree.Tree, pm *tree.PathMatrix) *mutation.Enumerator {
	t.Helper()
	e, err := mutation.NewEnumerator(tr, pm)
	require.NoError(t, err)
	return e
}

// kinds tallies the yielded candidates per operator.
func kinds(t *testing.T, e *mutation.Enumerator) map[mutation.Kind]int {
	t.Helper()
	out := map[mutation.Kind]int{}
	for c := range e.Candidates() {
		out[c.Code.Kind()]++
	}
	require.NoError(t, e.Err())
	return out
}

// TestEnumerate_Seed4 checks that the smallest tree has exactly the four
// distinct leaf swaps and nothing else.
func TestEnumerate_Seed4(t *testing.T) {
	tr, pm := seed(t, 4)
	e := enumerator(t, tr, pm)

	var codes []string
	for c := range e.Candidates() {
		codes = append(codes, c.Code.String())
	}
	require.NoError(t, e.Err())
	require.Equal(t, []string{"swap(0,1)", "swap(0,3)", "swap(1,2)", "swap(2,3)"}, codes)

	n, err := e.Count()
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestEnumerate_Seed5(t *testing.T) {
	tr, pm := seed(t, 5)
	got := kinds(t, enumerator(t, tr, pm))

	require.Equal(t, 8, got[mutation.LeafSwap])
	require.Zero(t, got[mutation.SubtreeInterchange])
}

// TestEnumerate_Properties checks, on several shapes, that every candidate
// is a valid tree distinct from the source and from every other candidate,
// and that Seq and CodeAt agree.
func TestEnumerate_Properties(t *testing.T) {
	for _, leaves := range []int{4, 5, 6, 9} {
		tr, pm := seed(t, leaves)
		if leaves > 5 {
			require.NoError(t, tr.SwapLeaves(0, leaves-1))
			require.NoError(t, pm.Write(tr))
		}
		e := enumerator(t, tr, pm)
		srcHash := tr.Hash()

		seen := map[uint64]bool{}
		codes := map[int]mutation.Code{}
		next := 0
		for c := range e.Candidates() {
			require.Equal(t, next, c.Seq)
			next++

			require.NoError(t, c.Tree.Verify(), "%s", c.Code)
			h := c.Tree.Hash()
			require.NotEqual(t, srcHash, h, "%s reproduces the source", c.Code)
			require.False(t, seen[h], "%s duplicates an earlier candidate", c.Code)
			seen[h] = true
			codes[c.Seq] = c.Code

			// Re-applying the code to a clone reproduces the candidate.
			cp := tr.Clone()
			require.NoError(t, mutation.Apply(cp, pm, c.Code))
			require.True(t, tree.Equal(cp, c.Tree))
		}
		require.NoError(t, e.Err())
		require.Equal(t, srcHash, tr.Hash(), "enumeration must not touch the source")

		n, err := e.Count()
		require.NoError(t, err)
		require.Equal(t, next, n, "leaves=%d", leaves)
		n2, err := e.Count()
		require.NoError(t, err)
		require.Equal(t, n, n2, "count must be stable across passes")

		for _, seq := range []int{0, n / 2, n - 1} {
			code, err := e.CodeAt(seq)
			require.NoError(t, err)
			require.Equal(t, codes[seq], code)
		}
		_, err = e.CodeAt(n)
		require.ErrorIs(t, err, mutation.ErrSeqOutOfRange)
	}
}

func TestEnumerate_LargerTreeHasAllKinds(t *testing.T) {
	tr, pm := seed(t, 8)
	got := kinds(t, enumerator(t, tr, pm))

	require.Positive(t, got[mutation.LeafSwap])
	require.Positive(t, got[mutation.SubtreeTransfer])
	require.Positive(t, got[mutation.SubtreeInterchange])
}

func TestEnumerate_EarlyBreak(t *testing.T) {
	tr, pm := seed(t, 7)
	e := enumerator(t, tr, pm)

	taken := 0
	for range e.Candidates() {
		taken++
		if taken == 3 {
			break
		}
	}
	require.Equal(t, 3, taken)
	require.NoError(t, e.Err())

	// A new pass starts from the beginning.
	for c := range e.Candidates() {
		require.Zero(t, c.Seq)
		break
	}
}

func TestEnumerate_Mismatch(t *testing.T) {
	tr, _ := seed(t, 6)
	_, other := seed(t, 7)

	_, err := mutation.NewEnumerator(tr, other)
	require.ErrorIs(t, err, tree.ErrPathMatrixMismatch)

	var errs []error
	for c, err := range mutation.Enumerate(tr, other) {
		require.Nil(t, c.Tree)
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], tree.ErrPathMatrixMismatch)
}

func TestEnumerate_MatchesEnumerator(t *testing.T) {
	tr, pm := seed(t, 7)
	e, err := mutation.NewEnumerator(tr, pm)
	require.NoError(t, err)

	var want []mutation.Code
	for c := range e.Candidates() {
		want = append(want, c.Code)
	}
	require.NoError(t, e.Err())

	var got []mutation.Code
	for c, err := range mutation.Enumerate(tr, pm) {
		require.NoError(t, err)
		got = append(got, c.Code)
	}
	require.Equal(t, want, got)
}

func TestApply_UnknownKind(t *testing.T) {
	tr, pm := seed(t, 5)
	err := mutation.Apply(tr, pm, mutation.NewCode(7, 0, 1, 0))
	require.ErrorIs(t, err, mutation.ErrUnknownKind)
	require.ErrorIs(t, err, tree.ErrStructuralInvariant)
}
