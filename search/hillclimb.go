package search

import (
	"context"
	"errors"
	"math/rand"

	"github.com/katalvlaran/qsearch/matrix"
	"github.com/katalvlaran/qsearch/mutation"
	"github.com/katalvlaran/qsearch/quartet"
	"github.com/katalvlaran/qsearch/tree"
)

// StepHillClimb tries random multi-mutations of t until one scores strictly
// higher, adopts it and returns its score. Each attempt applies one uniform
// mutation and keeps adding more with probability ½.
//
// After maxAttempts failed attempts (0 means unbounded) t is unchanged and
// the current score is returned with ErrNoImprovement.
func StepHillClimb(t *tree.Tree, sc *quartet.Scorer, rng *rand.Rand, maxAttempts int) (float64, error) {
	base, err := sc.Score(t)
	if err != nil {
		return 0, err
	}
	cand := t.Clone()

	var s float64
	for attempt := 0; maxAttempts <= 0 || attempt < maxAttempts; attempt++ {
		if err = cand.CopyFrom(t); err != nil {
			return base, err
		}
		for {
			if _, err = mutation.ApplyUniformRandom(cand, rng); err != nil {
				return base, err
			}
			if rng.Intn(2) != 0 {
				break
			}
		}
		if s, err = sc.Score(cand); err != nil {
			return base, err
		}
		if s > base {
			return s, t.CopyFrom(cand)
		}
	}

	return base, ErrNoImprovement
}

// SolveHillClimb searches for the tree that best fits dist by hill-climbing
// a population of random trees round-robin. It stops when a chain reaches
// score 1, when all chain scores have agreed for a full round, or when
// opts.MaxSteps is exhausted. When every chain in turn fails to improve
// within opts.MaxAttempts the population is replaced.
func SolveHillClimb(ctx context.Context, dist matrix.Matrix, opts Options) (Result, error) {
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}

	return solve(ctx, driverHillClimb, dist, opts, &hillClimber{maxAttempts: opts.MaxAttempts})
}

// hillClimber tracks which chains are stuck in the current population.
type hillClimber struct {
	maxAttempts int
	stuck       []bool
}

func (h *hillClimber) begin(chains int) {
	h.stuck = make([]bool, chains)
}

func (h *hillClimber) step(c *chain, sc *quartet.Scorer) (stepResult, error) {
	s, err := StepHillClimb(c.tree, sc, c.rng, h.maxAttempts)
	switch {
	case err == nil:
		h.stuck[c.id] = false
	case errors.Is(err, ErrNoImprovement):
		h.stuck[c.id] = true
	default:
		return stepResult{}, err
	}
	for _, st := range h.stuck {
		if !st {
			return stepResult{score: s, stepped: true}, nil
		}
	}

	return stepResult{score: s, stepped: true, restart: true}, nil
}
