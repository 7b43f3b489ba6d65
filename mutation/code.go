package mutation

import "fmt"

// Kind selects a mutation operator.
type Kind uint16

const (
	// LeafSwap exchanges the attachment points of two leaves.
	LeafSwap Kind = iota
	// SubtreeTransfer prunes a subtree and regrafts it onto another edge.
	SubtreeTransfer
	// SubtreeInterchange swaps two subtrees across a path.
	SubtreeInterchange
)

func (k Kind) String() string {
	switch k {
	case LeafSwap:
		return "swap"
	case SubtreeTransfer:
		return "transfer"
	case SubtreeInterchange:
		return "interchange"
	default:
		return fmt.Sprintf("kind(%d)", uint16(k))
	}
}

// Code packs a mutation into 64 bits: kind in bits 0–15, then operands
// A, B and C in the following 16-bit fields. Unused operands are zero.
type Code uint64

// NewCode packs k and up to three operands. Operands are truncated to 16 bits.
func NewCode(k Kind, a, b, c int) Code {
	return Code(uint64(k) |
		uint64(uint16(a))<<16 |
		uint64(uint16(b))<<32 |
		uint64(uint16(c))<<48)
}

// Kind returns the operator field.
func (c Code) Kind() Kind { return Kind(uint16(c)) }

// Operands returns the three operand fields.
func (c Code) Operands() (a, b, m int) {
	return int(uint16(c >> 16)), int(uint16(c >> 32)), int(uint16(c >> 48))
}

// String renders the code as kind(a,b[,c]).
func (c Code) String() string {
	a, b, m := c.Operands()
	if c.Kind() == SubtreeTransfer {
		return fmt.Sprintf("%s(%d,%d,%d)", c.Kind(), a, b, m)
	}

	return fmt.Sprintf("%s(%d,%d)", c.Kind(), a, b)
}
