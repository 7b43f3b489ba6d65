// Package mutation - uniform random mutations and random trees.

package mutation

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/qsearch/tree"
)

// randomMutationsPerLeaf scales the scramble applied by NewRandomTree.
const randomMutationsPerLeaf = 10

// ApplyUniformRandom rewrites t with one mutation drawn uniformly from its
// distinct neighbors and returns the code applied. It takes two passes over
// the neighborhood: one to count, one to pick the drawn sequence number.
//
// A tree with no neighbors yields ErrNoMutations and is left unchanged.
// rng must not be nil.
// Complexity: O(M·L) per pass, M = neighborhood size.
func ApplyUniformRandom(t *tree.Tree, rng *rand.Rand) (Code, error) {
	pm, err := tree.NewPathMatrix(t)
	if err != nil {
		return 0, err
	}
	e, err := NewEnumerator(t, pm)
	if err != nil {
		return 0, err
	}
	n, err := e.Count()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNoMutations
	}
	code, err := e.CodeAt(rng.Intn(n))
	if err != nil {
		return 0, err
	}
	if err = Apply(t, pm, code); err != nil {
		return 0, err
	}

	return code, nil
}

// Randomize applies n uniform random mutations to t in sequence.
func Randomize(t *tree.Tree, n int, rng *rand.Rand) error {
	for i := 0; i < n; i++ {
		if _, err := ApplyUniformRandom(t, rng); err != nil {
			return fmt.Errorf("randomize step %d: %w", i, err)
		}
	}

	return nil
}

// NewRandomTree returns the seed tree over leaves leaves scrambled by
// 10·leaves uniform random mutations.
func NewRandomTree(leaves int, rng *rand.Rand) (*tree.Tree, error) {
	t, err := tree.New(leaves)
	if err != nil {
		return nil, err
	}
	if err = Randomize(t, randomMutationsPerLeaf*leaves, rng); err != nil {
		return nil, err
	}

	return t, nil
}
