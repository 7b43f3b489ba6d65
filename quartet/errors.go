package quartet

import "errors"

var (
	// ErrInvalidDistances indicates a distance matrix the scorer cannot use.
	// It is joined with the underlying matrix or tree sentinel.
	ErrInvalidDistances = errors.New("quartet: invalid distance matrix")

	// ErrInvalidWeight indicates a non-positive or non-finite edge weight
	// passed to InducedDistances.
	ErrInvalidWeight = errors.New("quartet: edge weight must be positive and finite")
)
