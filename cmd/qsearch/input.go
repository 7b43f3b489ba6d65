// Matrix sources for the qsearch command: JSON files, the demo matrix and
// planted tree metrics.

package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/tidwall/gjson"

	"github.com/katalvlaran/qsearch/matrix"
	"github.com/katalvlaran/qsearch/mutation"
	"github.com/katalvlaran/qsearch/quartet"
)

var errBadInput = errors.New("bad input")

// problem is a distance matrix ready for search plus optional leaf labels.
type problem struct {
	labels []string
	dist   *matrix.Dense
}

// parseInput accepts either a bare matrix, [[0,1,...],...], or an object
// {"labels": [...], "distances": [[...]]}.
func parseInput(data []byte) (*problem, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", errBadInput)
	}
	root := gjson.ParseBytes(data)
	rowsJSON := root
	p := &problem{}
	hasLabels := false
	if root.IsObject() {
		rowsJSON = root.Get("distances")
		if !rowsJSON.Exists() {
			return nil, fmt.Errorf("%w: missing \"distances\"", errBadInput)
		}
		labels := root.Get("labels")
		hasLabels = labels.Exists()
		if hasLabels && !labels.IsArray() {
			return nil, fmt.Errorf("%w: labels must be an array", errBadInput)
		}
		labels.ForEach(func(_, v gjson.Result) bool {
			p.labels = append(p.labels, v.String())
			return true
		})
	}
	if !rowsJSON.IsArray() {
		return nil, fmt.Errorf("%w: distances must be an array of rows", errBadInput)
	}

	var (
		rows [][]float64
		err  error
	)
	rowsJSON.ForEach(func(_, row gjson.Result) bool {
		if !row.IsArray() {
			err = fmt.Errorf("%w: row %d is not an array", errBadInput, len(rows))
			return false
		}
		var vals []float64
		row.ForEach(func(_, v gjson.Result) bool {
			if v.Type != gjson.Number {
				err = fmt.Errorf("%w: row %d has non-numeric %q", errBadInput, len(rows), v.Raw)
				return false
			}
			vals = append(vals, v.Float())
			return true
		})
		rows = append(rows, vals)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", errBadInput)
	}
	if hasLabels && len(p.labels) != len(rows) {
		return nil, fmt.Errorf("%w: %d labels for %d rows", errBadInput, len(p.labels), len(rows))
	}
	if p.dist, err = matrix.NewDenseFromRows(rows); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadInput, err)
	}

	return p, nil
}

// demoProblem builds the deterministic sin-based test matrix over n leaves.
func demoProblem(n int) (*problem, error) {
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	var lo, hi, sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			lo, hi = float64(min(i, j)), float64(max(i, j))
			sum = float64(i+j)*0.17 + lo*lo*0.3 + hi*hi*hi*0.01
			if err = m.Set(i, j, math.Abs(math.Sin(sum))); err != nil {
				return nil, err
			}
		}
	}

	return &problem{dist: m}, nil
}

// plantedProblem draws a random tree over n leaves and returns its induced
// metric with random edge weights, so a perfect answer exists.
func plantedProblem(n int, seed int64) (*problem, error) {
	rng := rand.New(rand.NewSource(seed))
	t, err := mutation.NewRandomTree(n, rng)
	if err != nil {
		return nil, err
	}
	dist, err := quartet.InducedDistances(t, func(int, int) float64 {
		return 0.5 + rng.Float64()
	})
	if err != nil {
		return nil, err
	}

	return &problem{dist: dist}, nil
}
