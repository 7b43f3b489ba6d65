// Package tree - canonical form, verification and fingerprints.
//
// Normalize sorts each kernel triple so that equal topologies with equal
// labels share one encoding; Compare, Equal and Hash all read that encoding.

package tree

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"slices"
)

// Normalize sorts every kernel's three neighbor ids ascending. Leaf slots
// are untouched. Idempotent; required before Compare, Equal or Hash.
// Complexity: O(L).
func (t *Tree) Normalize() {
	var s []uint16
	for base := t.leaves; base < len(t.adj); base += 3 {
		s = t.adj[base : base+3]
		if s[0] > s[1] {
			s[0], s[1] = s[1], s[0]
		}
		if s[1] > s[2] {
			s[1], s[2] = s[2], s[1]
		}
		if s[0] > s[1] {
			s[0], s[1] = s[1], s[0]
		}
	}
}

// Verify checks, over the whole neighbor array, that every leaf id appears
// exactly once and every kernel id exactly three times, and that no slot is
// empty. It catches disconnection and half-applied rewrites.
// Complexity: O(L) time, O(L) space.
func (t *Tree) Verify() error {
	if err := ValidateLeafCount(t.leaves); err != nil {
		return err
	}
	if len(t.adj) != slotCount(t.leaves) {
		return fmt.Errorf("verify: %d slots for %d leaves: %w", len(t.adj), t.leaves, ErrStructuralInvariant)
	}

	nodes := t.Nodes()
	histo := make([]int, nodes)
	for slot, v := range t.adj {
		if v == empty {
			return fmt.Errorf("verify: slot %d is empty: %w", slot, ErrStructuralInvariant)
		}
		if int(v) >= nodes {
			return fmt.Errorf("verify: slot %d holds %d: %w", slot, v, ErrStructuralInvariant)
		}
		histo[v]++
	}
	for n, c := range histo {
		want := 3
		if n < t.leaves {
			want = 1
		}
		if c != want {
			return fmt.Errorf("verify: node %d referenced %d times, want %d: %w", n, c, want, ErrStructuralInvariant)
		}
	}

	// Counting alone accepts a leaf listing itself or an edge recorded on
	// one side only; require every slot to be mirrored.
	var n, s, v int
	for n = 0; n < nodes; n++ {
		for s = 0; s < t.Degree(n); s++ {
			v, _ = t.Neighbor(n, s)
			if v == n || !t.holds(v, n) {
				return fmt.Errorf("verify: edge %d-%d is one-sided: %w", n, v, ErrStructuralInvariant)
			}
		}
	}

	return nil
}

// Compare orders trees by leaf count, then element-wise over the neighbor
// array. It returns 0 only for identical encodings; isomorphic trees with
// different leaf placements compare unequal. Both trees should be normalized.
func Compare(a, b *Tree) int {
	if a.leaves != b.leaves {
		if a.leaves < b.leaves {
			return -1
		}
		return 1
	}

	return slices.Compare(a.adj, b.adj)
}

// Equal reports whether a and b have identical encodings.
func Equal(a, b *Tree) bool { return Compare(a, b) == 0 }

// Hasher computes tree fingerprints with a reusable buffer. A Hasher is not
// safe for concurrent use.
type Hasher struct {
	h   hash.Hash64
	buf []byte
}

// NewHasher returns a Hasher ready for use.
func NewHasher() *Hasher {
	return &Hasher{h: fnv.New64a()}
}

// Sum returns the 64-bit FNV-1a fingerprint of t: the leaf count as a
// little-endian uint16 followed by every slot as a little-endian uint16.
func (h *Hasher) Sum(t *Tree) uint64 {
	h.buf = t.AppendBinary(h.buf[:0])
	h.h.Reset()
	_, _ = h.h.Write(h.buf) // hash.Hash never returns an error

	return h.h.Sum64()
}

// AppendBinary appends the canonical byte encoding of t to b: leaf count
// then slots, each as a little-endian uint16.
func (t *Tree) AppendBinary(b []byte) []byte {
	b = slices.Grow(b, 2*(len(t.adj)+1))
	b = binary.LittleEndian.AppendUint16(b, uint16(t.leaves))
	for _, v := range t.adj {
		b = binary.LittleEndian.AppendUint16(b, v)
	}

	return b
}

// Hash returns the fingerprint of t (see Hasher.Sum).
func (t *Tree) Hash() uint64 { return NewHasher().Sum(t) }

// HashHex returns Hash as 16 lowercase hex digits.
func (t *Tree) HashHex() string { return fmt.Sprintf("%016x", t.Hash()) }
