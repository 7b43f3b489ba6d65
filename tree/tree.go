// Package tree - array encoding of unrooted binary trees.
//
// Purpose:
//   - Leaves 0..L-1 own one slot each; kernel k >= L owns three slots at
//     L+3(k-L). Node ids fit in uint16 and 0xFFFF marks an empty slot.
//   - New builds the caterpillar seed; every rewrite keeps the tree valid.
//
// Complexity quicksheet:
//   - New, Clone, CopyFrom: O(L); Neighbor, IsConnected, Degree: O(1).

package tree

import "fmt"

const (
	// MinLeaves is the smallest leaf count with a non-trivial topology.
	MinLeaves = 4

	// MaxLeaves keeps every node id (≤ 2·MaxLeaves−3) and every hop sum
	// inside uint16 while leaving 0xFFFF free for the empty marker.
	MaxLeaves = 16000

	// empty marks a slot that is not linked yet. A valid tree contains none.
	empty uint16 = 0xFFFF
)

// Tree is an unrooted binary tree with a fixed set of labeled leaves.
//
// The zero value is not usable; build trees with New, Clone or CopyFrom.
// A Tree is not safe for concurrent mutation.
type Tree struct {
	leaves int
	adj    []uint16 // leaves + 3*(leaves-2) neighbor slots
}

// slotCount returns the length of the neighbor array for a leaf count.
func slotCount(leaves int) int { return leaves + 3*(leaves-2) }

// ValidateLeafCount returns ErrInvalidLeafCount unless MinLeaves ≤ n ≤ MaxLeaves.
func ValidateLeafCount(n int) error {
	if n < MinLeaves || n > MaxLeaves {
		return fmt.Errorf("leaf count %d: %w", n, ErrInvalidLeafCount)
	}

	return nil
}

// New returns the deterministic caterpillar seed tree over leaves leaves:
// kernels L..2L−3 form a chain, leaf i hangs off kernel L+i, and the two
// chain ends additionally take leaves L−2 and L−1.
//
// Complexity: O(L).
func New(leaves int) (*Tree, error) {
	if err := ValidateLeafCount(leaves); err != nil {
		return nil, err
	}
	t := &Tree{leaves: leaves, adj: make([]uint16, slotCount(leaves))}
	t.disintegrate()

	var i int
	for i = 0; i < leaves-2; i++ {
		t.link(i, leaves+i)
		if i > 0 {
			t.link(leaves+i-1, leaves+i)
		}
	}
	t.link(leaves-2, leaves)
	t.link(leaves-1, 2*leaves-3)
	t.Normalize()

	return t, nil
}

// Clone returns an independent deep copy of t.
// Complexity: O(L).
func (t *Tree) Clone() *Tree {
	adj := make([]uint16, len(t.adj))
	copy(adj, t.adj)

	return &Tree{leaves: t.leaves, adj: adj}
}

// CopyFrom overwrites t with the contents of src. Both trees must have the
// same leaf count.
// Complexity: O(L), no allocation.
func (t *Tree) CopyFrom(src *Tree) error {
	if t.leaves != src.leaves {
		return fmt.Errorf("copy %d leaves into %d: %w", src.leaves, t.leaves, ErrLeafCountMismatch)
	}
	copy(t.adj, src.adj)

	return nil
}

// Leaves returns the number of leaves L.
func (t *Tree) Leaves() int { return t.leaves }

// Nodes returns the total node count 2L−2.
func (t *Tree) Nodes() int { return 2*t.leaves - 2 }

// IsLeaf reports whether n is a leaf id.
func (t *Tree) IsLeaf(n int) bool { return n >= 0 && n < t.leaves }

// Degree returns 1 for leaves and 3 for kernels. The result is the slot
// capacity of n, not a count of linked neighbors.
func (t *Tree) Degree(n int) int {
	if n < t.leaves {
		return 1
	}

	return 3
}

// slots returns the first slot index and the slot count owned by node n.
func (t *Tree) slots(n int) (base, size int) {
	if n < t.leaves {
		return n, 1
	}

	return t.leaves + 3*(n-t.leaves), 3
}

// Neighbor returns the node in slot (0 for leaves, 0..2 for kernels) of n.
// ok is false when the slot is empty or out of range.
func (t *Tree) Neighbor(n, slot int) (id int, ok bool) {
	if n < 0 || n >= t.Nodes() {
		return 0, false
	}
	base, size := t.slots(n)
	if slot < 0 || slot >= size {
		return 0, false
	}
	v := t.adj[base+slot]
	if v == empty {
		return 0, false
	}

	return int(v), true
}

// Neighbors returns the linked neighbors of n in slot order.
func (t *Tree) Neighbors(n int) ([]int, error) {
	if n < 0 || n >= t.Nodes() {
		return nil, fmt.Errorf("node %d: %w", n, ErrNodeOutOfRange)
	}
	base, size := t.slots(n)
	out := make([]int, 0, size)
	for _, v := range t.adj[base : base+size] {
		if v != empty {
			out = append(out, int(v))
		}
	}

	return out, nil
}

// IsConnected reports whether a and b are adjacent. It is false for a == b
// and for ids out of range.
// Complexity: O(1).
func (t *Tree) IsConnected(a, b int) bool {
	if a == b || a < 0 || b < 0 || a >= t.Nodes() || b >= t.Nodes() {
		return false
	}
	if a > b {
		a, b = b, a
	}

	return t.holds(a, b)
}

// holds reports whether one of n's own slots contains target.
func (t *Tree) holds(n, target int) bool {
	base, size := t.slots(n)
	for _, v := range t.adj[base : base+size] {
		if int(v) == target {
			return true
		}
	}

	return false
}

// disintegrate clears every slot. The tree is invalid until relinked.
func (t *Tree) disintegrate() {
	for i := range t.adj {
		t.adj[i] = empty
	}
}

// connectOne places target into the first empty slot of n. Leaves have a
// single slot which is overwritten. Reports false when n has no free slot.
func (t *Tree) connectOne(n, target int) bool {
	base, size := t.slots(n)
	if size == 1 {
		t.adj[base] = uint16(target)
		return true
	}
	for s := base; s < base+size; s++ {
		if t.adj[s] == empty {
			t.adj[s] = uint16(target)
			return true
		}
	}

	return false
}

// removeOne clears the slot of n that holds target. Leaves clear their only
// slot. Reports false when target is not a neighbor of n.
func (t *Tree) removeOne(n, target int) bool {
	base, size := t.slots(n)
	if size == 1 {
		ok := int(t.adj[base]) == target
		t.adj[base] = empty
		return ok
	}
	for s := base; s < base+size; s++ {
		if int(t.adj[s]) == target {
			t.adj[s] = empty
			return true
		}
	}

	return false
}

// link adds the undirected edge a–b.
func (t *Tree) link(a, b int) bool {
	okA := t.connectOne(a, b)
	okB := t.connectOne(b, a)

	return okA && okB
}

// unlink removes the undirected edge a–b.
func (t *Tree) unlink(a, b int) bool {
	okA := t.removeOne(a, b)
	okB := t.removeOne(b, a)

	return okA && okB
}
