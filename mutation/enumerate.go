// Package mutation - deduplicated neighborhood enumeration.
//
// Order: leaf swaps, then subtree transfers, then subtree interchanges. A
// candidate is yielded only if its fingerprint differs from the source and
// from every earlier candidate of the same pass.

package mutation

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/qsearch/tree"
)

// Candidate is one distinct neighbor of the source tree.
//
// Tree is a scratch buffer owned by the enumeration; it is valid only until
// the loop body returns. Clone it to keep it.
type Candidate struct {
	Tree *tree.Tree
	Seq  int
	Code Code
}

// Enumerator walks the neighborhood of one tree. Each call to Candidates
// starts a fresh pass with its own seen-set and scratch tree, so passes are
// independent and always yield the same sequence. The source tree and path
// matrix must not change while an Enumerator is in use.
type Enumerator struct {
	src *tree.Tree
	pm  *tree.PathMatrix
	err error
}

// NewEnumerator binds an enumeration to t and its full path matrix.
func NewEnumerator(t *tree.Tree, pm *tree.PathMatrix) (*Enumerator, error) {
	if t == nil || pm == nil || pm.Order() != t.Nodes() {
		return nil, fmt.Errorf("enumerate: %w", tree.ErrPathMatrixMismatch)
	}

	return &Enumerator{src: t, pm: pm}, nil
}

// Enumerate ranges over the neighborhood of t in one pass. A construction
// or rewrite failure is yielded once as a final (zero Candidate, error)
// pair, so an empty neighborhood and a bad path matrix stay distinct.
func Enumerate(t *tree.Tree, pm *tree.PathMatrix) iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		e, err := NewEnumerator(t, pm)
		if err != nil {
			yield(Candidate{}, err)
			return
		}
		if err = e.walk(func(c Candidate) bool { return yield(c, nil) }); err != nil {
			yield(Candidate{}, err)
		}
	}
}

// Err returns the error that stopped the most recent pass, if any.
func (e *Enumerator) Err() error { return e.err }

// Candidates returns the lazy neighborhood sequence. Breaking out of the
// loop stops the pass early; the sequence may be ranged over again.
func (e *Enumerator) Candidates() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		e.err = e.walk(yield)
	}
}

// Count returns the number of distinct neighbors.
func (e *Enumerator) Count() (int, error) {
	n := 0
	err := e.walk(func(Candidate) bool {
		n++
		return true
	})

	return n, err
}

// CodeAt returns the code of the candidate with sequence number seq.
func (e *Enumerator) CodeAt(seq int) (Code, error) {
	var (
		code  Code
		found bool
	)
	err := e.walk(func(c Candidate) bool {
		if c.Seq == seq {
			code, found = c.Code, true
			return false
		}
		return true
	})
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("code at %d: %w", seq, ErrSeqOutOfRange)
	}

	return code, nil
}

// walk runs one pass and feeds surviving candidates to fn until it returns
// false. A returned error means the pass was cut short by a failed rewrite.
func (e *Enumerator) walk(fn func(Candidate) bool) error {
	var (
		src     = e.src
		pm      = e.pm
		leaves  = src.Leaves()
		nodes   = src.Nodes()
		scratch = src.Clone()
		hasher  = tree.NewHasher()
		seen    = map[uint64]struct{}{hasher.Sum(src): {}}
		seq     int
		err     error
	)

	// try rewrites a fresh copy of src with code and yields it when new.
	// It reports false once the pass has to end; err tells a failure from
	// an early stop requested by fn.
	try := func(code Code) bool {
		if err = scratch.CopyFrom(src); err != nil {
			return false
		}
		if err = Apply(scratch, pm, code); err != nil {
			err = fmt.Errorf("enumerate %s: %w", code, err)
			return false
		}
		fp := hasher.Sum(scratch)
		if _, dup := seen[fp]; dup {
			return true
		}
		seen[fp] = struct{}{}
		if !fn(Candidate{Tree: scratch, Seq: seq, Code: code}) {
			return false
		}
		seq++
		return true
	}

	var i, j, s int
	for i = 0; i < leaves; i++ {
		for j = 0; j < leaves; j++ {
			if i == j || pm.At(i, j) <= 2 {
				continue
			}
			if !try(NewCode(LeafSwap, i, j, 0)) {
				return err
			}
		}
	}

	var (
		path []int
		m3   int
		ok   bool
	)
	for i = 0; i < nodes; i++ {
		for j = leaves; j < nodes; j++ {
			if i == j || pm.At(i, j) <= 2 {
				continue
			}
			if path, err = src.PathBetween(pm, i, j); err != nil {
				return fmt.Errorf("enumerate transfers: %w", err)
			}
			for s = 0; s < src.Degree(j); s++ {
				if m3, ok = src.Neighbor(j, s); !ok {
					return fmt.Errorf("enumerate transfers: node %d slot %d: %w", j, s, tree.ErrStructuralInvariant)
				}
				if m3 == path[len(path)-2] || m3 == path[1] {
					continue
				}
				if !try(NewCode(SubtreeTransfer, i, j, m3)) {
					return err
				}
			}
		}
	}

	for i = leaves; i < nodes; i++ {
		for j = i + 1; j < nodes; j++ {
			if pm.At(i, j) <= 2 {
				continue
			}
			if !try(NewCode(SubtreeInterchange, i, j, 0)) {
				return err
			}
		}
	}

	return nil
}
