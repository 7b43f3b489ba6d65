// Package quartet - normalized quartet scoring.
//
// Purpose:
//   - Compare every 4-leaf subset's tree split with the three possible
//     pairings weighted by the distance matrix.
//   - Scale the consistent total between the best and worst totals to [0, 1].
//
// Complexity: O(L^4) per score, plus O(L^3) for the path matrix.

package quartet

import (
	"fmt"

	"github.com/katalvlaran/qsearch/matrix"
	"github.com/katalvlaran/qsearch/tree"
)

// distanceTolerance bounds diagonal entries and asymmetry in input matrices.
const distanceTolerance = 1e-12

// Scorer holds a validated distance matrix in a flat row-major buffer.
// It is read-only after construction and safe for concurrent use.
type Scorer struct {
	n    int
	dist []float64
}

// NewScorer validates dist and copies it for scoring. The matrix must be
// square of order [4, 16000], finite, non-negative, symmetric and zero on
// the diagonal.
// Complexity: O(n²).
func NewScorer(dist matrix.Matrix) (*Scorer, error) {
	n, err := matrix.ValidateDistance(dist, distanceTolerance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDistances, err)
	}
	if err = tree.ValidateLeafCount(n); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDistances, err)
	}

	s := &Scorer{n: n, dist: make([]float64, n*n)}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = dist.At(i, j); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidDistances, err)
			}
			s.dist[i*n+j] = v
		}
	}

	return s, nil
}

// Leaves returns the matrix order, which is the leaf count of every tree
// this scorer accepts.
func (s *Scorer) Leaves() int { return s.n }

// Score computes the normalized quartet score of t.
// Complexity: O(L⁴) plus an O(L³) path matrix.
func (s *Scorer) Score(t *tree.Tree) (float64, error) {
	if t.Leaves() != s.n {
		return 0, fmt.Errorf("score %d-leaf tree with %d×%d matrix: %w", t.Leaves(), s.n, s.n, tree.ErrLeafCountMismatch)
	}
	full, err := tree.NewPathMatrix(t)
	if err != nil {
		return 0, err
	}
	leaf, err := full.Truncate(s.n)
	if err != nil {
		return 0, err
	}

	return s.ScorePaths(leaf)
}

// ScorePaths scores a topology given only its leaf×leaf hop counts.
func (s *Scorer) ScorePaths(p *tree.PathMatrix) (float64, error) {
	if p == nil || p.Order() != s.n {
		return 0, fmt.Errorf("score paths: %w", tree.ErrPathMatrixMismatch)
	}

	n, d := s.n, s.dist
	var (
		cur, lo, hi float64
		qmin, qmax  float64
		ab, ac, ad  float64
		bc, bd, cd  float64
		a, b, c, e  int
		pab, pac    int
		pad, pbc    int
		pbd, pcd    int
	)
	for a = 0; a < n; a++ {
		for b = a + 1; b < n; b++ {
			ab, pab = d[a*n+b], p.At(a, b)
			for c = b + 1; c < n; c++ {
				ac, pac = d[a*n+c], p.At(a, c)
				bc, pbc = d[b*n+c], p.At(b, c)
				for e = c + 1; e < n; e++ {
					cd, pcd = d[c*n+e], p.At(c, e)
					bd, pbd = d[b*n+e], p.At(b, e)
					ad, pad = d[a*n+e], p.At(a, e)

					// cur and lo add the same pair sums in the same order, so
					// a perfect fit gives cur == lo exactly.
					qmin = min(ab+cd, ac+bd, ad+bc)
					qmax = max(ab+cd, ac+bd, ad+bc)
					if pab+pcd < pac+pbd {
						cur, lo, hi = cur+(ab+cd), lo+qmin, hi+qmax
					}
					if pac+pbd < pab+pcd {
						cur, lo, hi = cur+(ac+bd), lo+qmin, hi+qmax
					}
					if pad+pbc < pab+pcd {
						cur, lo, hi = cur+(ad+bc), lo+qmin, hi+qmax
					}
				}
			}
		}
	}
	if hi == lo {
		return 1, nil
	}

	return 1 - (cur-lo)/(hi-lo), nil
}

// Score is a one-shot NewScorer(dist).Score(t).
func Score(t *tree.Tree, dist matrix.Matrix) (float64, error) {
	s, err := NewScorer(dist)
	if err != nil {
		return 0, err
	}

	return s.Score(t)
}
