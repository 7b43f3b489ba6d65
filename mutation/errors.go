package mutation

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qsearch/tree"
)

var (
	// ErrUnknownKind indicates a Code whose kind field is not one of the
	// three operators. Codes only come from enumeration, so this is a defect.
	ErrUnknownKind = fmt.Errorf("mutation: unknown kind: %w", tree.ErrStructuralInvariant)

	// ErrNoMutations indicates a tree with no distinct neighbor to move to.
	ErrNoMutations = errors.New("mutation: no candidate mutations")

	// ErrSeqOutOfRange indicates a sequence number past the end of the
	// enumeration.
	ErrSeqOutOfRange = errors.New("mutation: sequence number out of range")
)
