package tree

import "errors"

// Sentinel errors returned by the tree package. Callers match them with
// errors.Is; call sites add context with fmt.Errorf("...: %w", ErrX).
var (
	// ErrInvalidLeafCount indicates a leaf count outside [MinLeaves, MaxLeaves].
	ErrInvalidLeafCount = errors.New("tree: leaf count must be in [4, 16000]")

	// ErrLeafCountMismatch indicates two trees (or a tree and a path matrix)
	// built for different leaf counts.
	ErrLeafCountMismatch = errors.New("tree: leaf count mismatch")

	// ErrNodeOutOfRange indicates a node id outside [0, Nodes()).
	ErrNodeOutOfRange = errors.New("tree: node id out of range")

	// ErrPathMatrixMismatch indicates a path matrix whose order does not
	// match the node count of the tree it is used with.
	ErrPathMatrixMismatch = errors.New("tree: path matrix does not match tree")

	// ErrStructuralInvariant marks an internal defect: a corrupted tree, a
	// path matrix that belongs to another tree, or an operator applied to
	// operands that violate its preconditions. It is never caused by valid
	// input and is not meant to be recovered from.
	ErrStructuralInvariant = errors.New("tree: structural invariant violated")
)
