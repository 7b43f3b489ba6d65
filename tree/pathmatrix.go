// Package tree - hop-count path matrix and path extraction.
//
// Contract:
//   - A full matrix has order 2L-2 and must be rewritten after every rewrite
//     of its tree; PathBetween trusts it.
//   - Truncated matrices (order L) are for scoring only.

package tree

import "fmt"

// PathMatrix holds hop counts between nodes of one tree, row-major.
//
// A full matrix has order 2L−2 and is what PathBetween and the rewrites
// need; Truncate keeps the top-left L×L leaf block, which is all quartet
// scoring reads.
type PathMatrix struct {
	n    int
	data []uint16
}

// NewPathMatrix allocates a full path matrix for t and fills it.
// Complexity: O(N³) time, O(N²) space, N = 2L−2.
func NewPathMatrix(t *Tree) (*PathMatrix, error) {
	if t == nil || t.leaves == 0 {
		return nil, fmt.Errorf("path matrix: %w", ErrInvalidLeafCount)
	}
	n := t.Nodes()
	pm := &PathMatrix{n: n, data: make([]uint16, n*n)}
	if err := pm.Write(t); err != nil {
		return nil, err
	}

	return pm, nil
}

// Write recomputes every entry from t, reusing the existing buffer. The
// order of pm must equal t.Nodes().
//
// Entries start at N (longer than any simple path), the diagonal is 0 and
// each edge is 1; a k→i→j Floyd–Warshall relaxation then settles the rest.
func (pm *PathMatrix) Write(t *Tree) error {
	n := t.Nodes()
	if pm.n != n {
		return fmt.Errorf("path matrix order %d for %d nodes: %w", pm.n, n, ErrPathMatrixMismatch)
	}

	far := uint16(n)
	for i := range pm.data {
		pm.data[i] = far
	}
	var i, s, v int
	var ok bool
	for i = 0; i < n; i++ {
		pm.data[i*n+i] = 0
		for s = 0; s < t.Degree(i); s++ {
			if v, ok = t.Neighbor(i, s); ok {
				pm.data[i*n+v] = 1
			}
		}
	}

	var k, j, ik, sum int
	var row, krow []uint16
	for k = 0; k < n; k++ {
		krow = pm.data[k*n : (k+1)*n]
		for i = 0; i < n; i++ {
			row = pm.data[i*n : (i+1)*n]
			ik = int(row[k])
			if ik >= n {
				continue
			}
			for j = 0; j < n; j++ {
				sum = ik + int(krow[j])
				if sum < int(row[j]) {
					row[j] = uint16(sum)
				}
			}
		}
	}

	return nil
}

// Order returns the matrix dimension.
func (pm *PathMatrix) Order() int { return pm.n }

// At returns the hop count between i and j. It panics on out-of-range ids
// like a slice index would.
func (pm *PathMatrix) At(i, j int) int { return int(pm.data[i*pm.n+j]) }

// Truncate returns a new matrix holding the top-left leaves×leaves block.
func (pm *PathMatrix) Truncate(leaves int) (*PathMatrix, error) {
	dst := &PathMatrix{}
	if err := pm.TruncateInto(dst, leaves); err != nil {
		return nil, err
	}

	return dst, nil
}

// TruncateInto writes the top-left leaves×leaves block into dst, growing
// its buffer only when needed.
func (pm *PathMatrix) TruncateInto(dst *PathMatrix, leaves int) error {
	if leaves <= 0 || leaves > pm.n {
		return fmt.Errorf("truncate order %d to %d: %w", pm.n, leaves, ErrPathMatrixMismatch)
	}
	if cap(dst.data) < leaves*leaves {
		dst.data = make([]uint16, leaves*leaves)
	}
	dst.data = dst.data[:leaves*leaves]
	dst.n = leaves
	for i := 0; i < leaves; i++ {
		copy(dst.data[i*leaves:(i+1)*leaves], pm.data[i*pm.n:i*pm.n+leaves])
	}

	return nil
}

// PathBetween returns the nodes on the unique path from a to b, both
// endpoints included. pm must be the full path matrix of t.
//
// The walk steps to whichever neighbor is closest to b, taking the first in
// slot order on ties. A kernel whose three neighbors are equally far from b
// means pm does not describe t.
// Complexity: O(path length).
func (t *Tree) PathBetween(pm *PathMatrix, a, b int) ([]int, error) {
	if err := t.checkPathArgs(pm, a, b); err != nil {
		return nil, err
	}

	return t.pathInto(make([]int, 0, pm.At(a, b)+1), pm, a, b)
}

func (t *Tree) checkPathArgs(pm *PathMatrix, a, b int) error {
	n := t.Nodes()
	if pm == nil || pm.n != n {
		return fmt.Errorf("path %d->%d: %w", a, b, ErrPathMatrixMismatch)
	}
	if a < 0 || a >= n || b < 0 || b >= n {
		return fmt.Errorf("path %d->%d: %w", a, b, ErrNodeOutOfRange)
	}

	return nil
}

// pathInto appends the a→b path to buf. Arguments are assumed checked.
func (t *Tree) pathInto(buf []int, pm *PathMatrix, a, b int) ([]int, error) {
	limit := pm.n
	var (
		base, size, s int
		best, bestAt  int
		d             [3]int
		nb            uint16
	)
	for a != b {
		if len(buf) >= limit {
			return buf, fmt.Errorf("path overran %d nodes: %w", limit, ErrStructuralInvariant)
		}
		base, size = t.slots(a)
		for s = 0; s < size; s++ {
			nb = t.adj[base+s]
			if nb == empty {
				return buf, fmt.Errorf("path through unlinked node %d: %w", a, ErrStructuralInvariant)
			}
			d[s] = pm.At(b, int(nb))
		}
		best, bestAt = d[0], 0
		if size > 1 {
			if d[1] < best {
				best, bestAt = d[1], 1
			}
			if d[2] < best {
				best, bestAt = d[2], 2
			}
			if d[0] == best && d[1] == best && d[2] == best {
				return buf, fmt.Errorf("path at node %d: three-way tie: %w", a, ErrStructuralInvariant)
			}
		}
		buf = append(buf, a)
		a = int(t.adj[base+bestAt])
	}

	return append(buf, a), nil
}
