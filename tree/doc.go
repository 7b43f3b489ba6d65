// Package tree implements the compact encoding of unrooted binary trees used
// by the quartet search.
//
// A tree over L labeled leaves has 2L−2 nodes:
//
//   - leaves   0 .. L−1     — degree 1,
//   - kernels  L .. 2L−3    — degree 3 (internal, unlabeled).
//
// Connectivity is one flat []uint16: slot i holds the single neighbor of leaf
// i, and kernel k owns the three slots starting at L + 3(k−L). There are no
// pointers, neighbor lookup is O(1), and a whole tree is one contiguous
// buffer that clones with a single copy.
//
//	      0       1
//	       \     /
//	        4───5          L = 4, slots: [4 5 4 5 | 0 2 5 | 1 3 4]
//	       /     \
//	      2       3
//
// Kernel triples are kept in ascending order (Normalize), which makes the
// buffer a canonical byte form: Compare, Equal and Hash work on it directly.
// Two labelings of isomorphic shapes are different trees here.
//
// The package also owns everything that reads or rewrites this encoding:
// the hop-count PathMatrix (Floyd–Warshall), the greedy PathBetween walk,
// and the three topology rewrites (SwapLeaves, TransferSubtree,
// InterchangeSubtrees). All rewrites keep every leaf at degree 1 and every
// kernel at degree 3; none of them exposes a partially linked tree.
//
// Errors are sentinels from errors.go. ErrStructuralInvariant means a bug
// upstream (corrupted tree or a path matrix from another tree), not bad
// user input.
package tree
