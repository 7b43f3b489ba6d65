package mutation

import (
	"fmt"

	"github.com/katalvlaran/qsearch/tree"
)

// Apply rewrites t in place with the mutation named by code. pm must be the
// full path matrix of t before the rewrite; it is stale afterwards.
func Apply(t *tree.Tree, pm *tree.PathMatrix, code Code) error {
	a, b, c := code.Operands()
	switch code.Kind() {
	case LeafSwap:
		return t.SwapLeaves(a, b)
	case SubtreeTransfer:
		return t.TransferSubtree(pm, a, b, c)
	case SubtreeInterchange:
		return t.InterchangeSubtrees(pm, a, b)
	default:
		return fmt.Errorf("apply %#x: %w", uint64(code), ErrUnknownKind)
	}
}
