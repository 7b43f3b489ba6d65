package quartet

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qsearch/matrix"
	"github.com/katalvlaran/qsearch/tree"
)

// InducedDistances returns the leaf×leaf additive metric of t with edge
// weights given by weight(u, v), u < v. A nil weight means unit weights.
//
// Any tree scores exactly 1 against its own induced metric, which makes
// this the standard way to build solvable inputs.
// Complexity: O(N³), N = 2L−2.
func InducedDistances(t *tree.Tree, weight func(u, v int) float64) (*matrix.Dense, error) {
	if err := t.Verify(); err != nil {
		return nil, err
	}
	nodes, leaves := t.Nodes(), t.Leaves()
	full, err := matrix.NewPreparedDense(nodes, nodes, matrix.WithAllowInfDistances())
	if err != nil {
		return nil, err
	}

	inf := math.Inf(1)
	var (
		u, v, s int
		w       float64
		ok      bool
	)
	for u = 0; u < nodes; u++ {
		for v = 0; v < nodes; v++ {
			if u != v {
				if err = full.Set(u, v, inf); err != nil {
					return nil, err
				}
			}
		}
	}
	for u = 0; u < nodes; u++ {
		for s = 0; s < t.Degree(u); s++ {
			if v, ok = t.Neighbor(u, s); !ok || v < u {
				continue
			}
			w = 1
			if weight != nil {
				w = weight(u, v)
			}
			if !(w > 0) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("edge %d-%d weight %g: %w", u, v, w, ErrInvalidWeight)
			}
			if err = full.Set(u, v, w); err != nil {
				return nil, err
			}
			if err = full.Set(v, u, w); err != nil {
				return nil, err
			}
		}
	}
	if err = matrix.FloydWarshall(full); err != nil {
		return nil, err
	}

	out, err := matrix.NewDense(leaves, leaves)
	if err != nil {
		return nil, err
	}
	for u = 0; u < leaves; u++ {
		for v = 0; v < leaves; v++ {
			if w, err = full.At(u, v); err != nil {
				return nil, err
			}
			if err = out.Set(u, v, w); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
