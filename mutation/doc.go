// Package mutation enumerates and applies the neighborhood of a tree: every
// distinct tree reachable by one leaf swap, subtree transfer or subtree
// interchange.
//
// A mutation is named by a 64-bit Code (kind plus up to three node ids).
// Enumeration order is fixed: leaf swaps over ordered leaf pairs, then
// transfers, then interchanges over kernel pairs, skipping operands at
// distance ≤ 2 and any result whose fingerprint was already produced (the
// source tree included). Sequence numbers are dense over the survivors, so
// Count and CodeAt together give a uniform draw without materializing the
// neighborhood.
//
// Nothing here is safe for concurrent use on the same tree.
package mutation
