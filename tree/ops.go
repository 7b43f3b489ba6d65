// Package tree - the three structural rewrites.
//
// Every operator checks all of its preconditions before the first write, so
// a returned error leaves the tree untouched.

package tree

import "fmt"

// SwapLeaves exchanges the attachment points of leaves i and j. Swapping
// two leaves that share a kernel leaves the tree unchanged.
// Complexity: O(L) (dominated by Normalize).
func (t *Tree) SwapLeaves(i, j int) error {
	if !t.IsLeaf(i) || !t.IsLeaf(j) {
		return fmt.Errorf("swap leaves %d, %d: %w", i, j, ErrNodeOutOfRange)
	}
	if i == j {
		return fmt.Errorf("swap leaf %d with itself: %w", i, ErrStructuralInvariant)
	}

	ni, nj := int(t.adj[i]), int(t.adj[j])
	ok := t.unlink(i, ni)
	ok = t.unlink(j, nj) && ok
	ok = t.link(i, nj) && ok
	ok = t.link(j, ni) && ok
	if !ok {
		return fmt.Errorf("swap leaves %d, %d: %w", i, j, ErrStructuralInvariant)
	}
	t.Normalize()

	return nil
}

// TransferSubtree prunes the subtree hanging off k1 (on the side away from
// k2) and regrafts it onto the edge k2–m3.
//
// Let i1 be the node after k1 on the path to k2. i1 is lifted out and its
// two other neighbors are joined; i1 is then spliced into k2–m3 and k1 is
// re-hung from it. pm must be the full path matrix of t, k2 a kernel at
// distance > 2 from k1, and m3 a neighbor of k2 that is not on the path.
// Complexity: O(L).
func (t *Tree) TransferSubtree(pm *PathMatrix, k1, k2, m3 int) error {
	if err := t.checkPathArgs(pm, k1, k2); err != nil {
		return err
	}
	if t.IsLeaf(k2) || pm.At(k1, k2) <= 2 || !t.IsConnected(k2, m3) {
		return fmt.Errorf("transfer %d to %d-%d: %w", k1, k2, m3, ErrStructuralInvariant)
	}
	path, err := t.PathBetween(pm, k1, k2)
	if err != nil {
		return err
	}
	i1 := path[1]
	if m3 == i1 || m3 == path[len(path)-2] {
		return fmt.Errorf("transfer %d to %d-%d: target edge on path: %w", k1, k2, m3, ErrStructuralInvariant)
	}

	ok := t.unlink(k1, i1)
	var m [2]int
	base, _ := t.slots(i1)
	c := 0
	for _, v := range t.adj[base : base+3] {
		if v != empty && c < 2 {
			m[c] = int(v)
			c++
		}
	}
	if !ok || c != 2 {
		return fmt.Errorf("transfer %d to %d-%d: %w", k1, k2, m3, ErrStructuralInvariant)
	}
	ok = t.unlink(m[0], i1)
	ok = t.unlink(m[1], i1) && ok
	ok = t.unlink(m3, k2) && ok
	ok = t.link(m[0], m[1]) && ok
	ok = t.link(k2, i1) && ok
	ok = t.link(m3, i1) && ok
	ok = t.link(k1, i1) && ok
	if !ok {
		return fmt.Errorf("transfer %d to %d-%d: %w", k1, k2, m3, ErrStructuralInvariant)
	}
	t.Normalize()

	return nil
}

// InterchangeSubtrees swaps the subtree behind k1 with the subtree behind
// k2: each is detached from its first path neighbor toward the other and
// reattached where the other was. pm must be the full path matrix of t and
// k1, k2 at distance > 2.
// Complexity: O(L).
func (t *Tree) InterchangeSubtrees(pm *PathMatrix, k1, k2 int) error {
	if err := t.checkPathArgs(pm, k1, k2); err != nil {
		return err
	}
	if pm.At(k1, k2) <= 2 {
		return fmt.Errorf("interchange %d, %d: too close: %w", k1, k2, ErrStructuralInvariant)
	}
	path, err := t.PathBetween(pm, k1, k2)
	if err != nil {
		return err
	}
	n1, n2 := path[1], path[len(path)-2]

	ok := t.unlink(n1, k1)
	ok = t.unlink(n2, k2) && ok
	ok = t.link(n1, k2) && ok
	ok = t.link(n2, k1) && ok
	if !ok {
		return fmt.Errorf("interchange %d, %d: %w", k1, k2, ErrStructuralInvariant)
	}
	t.Normalize()

	return nil
}
