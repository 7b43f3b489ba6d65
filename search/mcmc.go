package search

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/qsearch/matrix"
	"github.com/katalvlaran/qsearch/mutation"
	"github.com/katalvlaran/qsearch/quartet"
	"github.com/katalvlaran/qsearch/tree"
)

// StepMCMC moves t to a neighbor sampled in proportion to its acceptance
// weight, or leaves it in place with weight w(0, β), and returns the new
// score. A nil weight means Metropolis.
//
// The neighborhood is walked twice: once to score and weigh every
// candidate, and once to fetch the code of the drawn sequence number.
// Complexity: O(M·L⁴), M = neighborhood size.
func StepMCMC(t *tree.Tree, sc *quartet.Scorer, rng *rand.Rand, beta float64, weight WeightFunc) (float64, error) {
	s, _, err := stepMCMC(t, sc, rng, beta, weight)
	return s, err
}

// stepMCMC is StepMCMC that also reports the neighborhood size.
func stepMCMC(t *tree.Tree, sc *quartet.Scorer, rng *rand.Rand, beta float64, weight WeightFunc) (float64, int, error) {
	if weight == nil {
		weight = Metropolis
	}
	base, err := sc.Score(t)
	if err != nil {
		return 0, 0, err
	}
	pm, err := tree.NewPathMatrix(t)
	if err != nil {
		return base, 0, err
	}
	e, err := mutation.NewEnumerator(t, pm)
	if err != nil {
		return base, 0, err
	}

	leaves := t.Leaves()
	candPM, err := tree.NewPathMatrix(t)
	if err != nil {
		return base, 0, err
	}
	var (
		leafPM  tree.PathMatrix
		weights []float64
		scores  []float64
		s, w    float64
	)
	stay := sanitizeWeight(weight(0, beta))
	total := stay
	for c := range e.Candidates() {
		if err = candPM.Write(c.Tree); err != nil {
			break
		}
		if err = candPM.TruncateInto(&leafPM, leaves); err != nil {
			break
		}
		if s, err = sc.ScorePaths(&leafPM); err != nil {
			break
		}
		w = sanitizeWeight(weight(s-base, beta))
		weights = append(weights, w)
		scores = append(scores, s)
		total += w
	}
	if err == nil {
		err = e.Err()
	}
	if err != nil {
		return base, len(weights), fmt.Errorf("mcmc weigh: %w", err)
	}

	threshold := rng.Float64() * total
	cum := stay
	if cum >= threshold || len(weights) == 0 {
		return base, len(weights), nil
	}
	seq := len(weights) - 1
	for i, wi := range weights {
		if cum += wi; cum >= threshold {
			seq = i
			break
		}
	}
	code, err := e.CodeAt(seq)
	if err != nil {
		return base, len(weights), fmt.Errorf("mcmc select: %w", err)
	}
	if err = mutation.Apply(t, pm, code); err != nil {
		return base, len(weights), fmt.Errorf("mcmc apply %s: %w", code, err)
	}

	return scores[seq], len(weights), nil
}

// sanitizeWeight maps NaN and negative weights to 0 and +Inf to MaxFloat64.
func sanitizeWeight(w float64) float64 {
	switch {
	case !(w > 0):
		return 0
	case math.IsInf(w, 1):
		return math.MaxFloat64
	}

	return w
}

// SolveMCMC searches for the tree that best fits dist with annealed MCMC
// over a population of random trees stepped round-robin. Stopping rules
// match SolveHillClimb; in addition the population is replaced each time
// the annealing counter reaches its horizon.
func SolveMCMC(ctx context.Context, dist matrix.Matrix, opts Options) (Result, error) {
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	if err := validateSchedule(opts.Schedule); err != nil {
		return Result{}, err
	}
	a := &annealer{
		sched:   opts.Schedule,
		weight:  opts.Weight,
		count:   opts.Schedule.StartCount,
		horizon: opts.Schedule.Horizon,
		level:   opts.Schedule.Level,
		metrics: opts.Metrics,
	}

	return solve(ctx, driverMCMC, dist, opts, a)
}

// annealer carries the schedule state across populations.
type annealer struct {
	sched   Schedule
	weight  WeightFunc
	count   int
	horizon int
	level   float64
	metrics *Metrics
}

func (a *annealer) begin(int) {}

func (a *annealer) step(c *chain, sc *quartet.Scorer) (stepResult, error) {
	a.count++
	if a.count >= a.horizon {
		a.horizon = int(float64(a.horizon) * a.sched.HorizonGrowth)
		a.count = a.sched.StartCount
		a.level *= a.sched.LevelGrowth
		return stepResult{restart: true}, nil
	}
	beta := a.sched.Beta(a.count, a.horizon, a.level)
	s, n, err := stepMCMC(c.tree, sc, c.rng, beta, a.weight)
	a.metrics.observeCandidates(n)
	if err != nil {
		return stepResult{}, err
	}

	return stepResult{score: s, beta: beta, stepped: true}, nil
}
