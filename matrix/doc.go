// Package matrix provides the dense float64 matrix used to carry pairwise
// distance matrices into the quartet scorer and the search drivers.
//
// The package provides:
//
//   - Matrix, a minimal bounds-checked interface (Rows, Cols, At, Set, Clone).
//   - Dense, a row-major implementation with an optional finite-only policy.
//   - Validators for the distance-matrix contract: square, finite,
//     non-negative, zero diagonal, symmetric within a tolerance.
//   - FloydWarshall, an in-place all-pairs shortest-path closure with a
//     deterministic k → i → j loop order.
//
// Nothing in this package panics on user input; every failure is one of the
// sentinels in errors.go, possibly wrapped with a context tag.
package matrix
