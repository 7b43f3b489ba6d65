// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep consumers minimal by delegating shape/nil/symmetry checks here.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
//
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols). Assumes m != nil.
//
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquareNonNil – Composite: NotNil → Square.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}

	return nil
}

// ValidateSymmetric checks |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Returns ErrNilMatrix/ErrDimensionMismatch on structural issues, ErrNaNInf
// on a bad tolerance, ErrAsymmetry on violation.
// Complexity: O(n²) time, O(1) space.
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquareNonNil(m); err != nil {
		return validatorErrorf("ValidateSymmetric", err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n := m.Rows()
	var (
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j) // indices are in range after the shape check
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateDistance verifies the pairwise-distance contract:
//   - non-nil and square,
//   - every entry finite (no NaN/±Inf),
//   - no negative entries,
//   - |a_ii| ≤ tol,
//   - |a_ij − a_ji| ≤ tol.
//
// Returns n (matrix order) on success.
//
// Complexity: O(n²).
func ValidateDistance(m Matrix, tol float64) (int, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, validatorErrorf("ValidateDistance", err)
	}
	n := m.Rows()

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, validatorErrorf("ValidateDistance", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, validatorErrorf("ValidateDistance", denseErrorf(ctxAt, i, j, ErrNaNInf))
			}
			if v < 0 {
				return 0, validatorErrorf("ValidateDistance", denseErrorf(ctxAt, i, j, ErrNegative))
			}
			if i == j && v > tol {
				return 0, validatorErrorf("ValidateDistance", denseErrorf(ctxAt, i, j, ErrNonZeroDiagonal))
			}
		}
	}
	if err = ValidateSymmetric(m, tol); err != nil {
		return 0, validatorErrorf("ValidateDistance", err)
	}

	return n, nil
}
