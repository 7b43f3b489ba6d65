// Package search - the population loop shared by both drivers.
//
// Stop rules: context and the step cap before each chain step; a perfect
// score and agreement held for a full round after it. A stepper may then
// ask for a fresh population.

package search

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/qsearch/matrix"
	"github.com/katalvlaran/qsearch/mutation"
	"github.com/katalvlaran/qsearch/quartet"
	"github.com/katalvlaran/qsearch/tree"
)

const (
	driverHillClimb = "hillclimb"
	driverMCMC      = "mcmc"
)

// StopReason tells why a solve ended.
type StopReason int

const (
	// StopPerfect means a chain reached score 1.
	StopPerfect StopReason = iota + 1
	// StopAgreement means all chains held equal scores through a full
	// round of steps.
	StopAgreement
	// StopStepLimit means Options.MaxSteps was reached.
	StopStepLimit
)

func (r StopReason) String() string {
	switch r {
	case StopPerfect:
		return "perfect"
	case StopAgreement:
		return "agreement"
	case StopStepLimit:
		return "step_limit"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Result is the outcome of a solve.
type Result struct {
	Tree     *tree.Tree // best tree; owned by the caller
	Score    float64    // quartet score of Tree
	Steps    int        // chain steps taken over all populations
	Restarts int        // populations discarded before the final one
	Reason   StopReason
	RunID    uuid.UUID // also attached to every log line and span of the run
	Chain    int       // index of the chain that produced Tree
}

// chain is one member of the population.
type chain struct {
	id      int
	tree    *tree.Tree
	rng     *rand.Rand
	score   float64
	stepped bool // stepped at least once in the current population
}

// stepResult is what a driver reports for one chain step. A step that
// only triggers a restart has stepped == false.
type stepResult struct {
	score   float64
	beta    float64
	stepped bool
	restart bool
}

// stepper advances one chain by one driver-specific step.
type stepper interface {
	begin(chains int)
	step(c *chain, sc *quartet.Scorer) (stepResult, error)
}

var (
	tracerOnce sync.Once
	pkgTracer  trace.Tracer
)

func getTracer() trace.Tracer {
	tracerOnce.Do(func() {
		pkgTracer = otel.Tracer("github.com/katalvlaran/qsearch/search")
	})
	return pkgTracer
}

// solve wraps run with validation, tracing, logging and metrics.
func solve(ctx context.Context, driver string, dist matrix.Matrix, opts Options, st stepper) (Result, error) {
	start := time.Now()
	sc, err := quartet.NewScorer(dist)
	if err != nil {
		return Result{}, err
	}
	chains := opts.Chains
	if chains == 0 {
		chains = chainsFor(sc.Leaves())
	}

	runID := uuid.New()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.Stringer("run_id", runID), zap.String("driver", driver))

	ctx, span := getTracer().Start(ctx, "search."+driver,
		trace.WithAttributes(
			attribute.String("run_id", runID.String()),
			attribute.Int("leaves", sc.Leaves()),
			attribute.Int("chains", chains),
			attribute.Int64("seed", opts.Seed),
		),
	)
	defer span.End()

	log.Info("solve started",
		zap.Int("leaves", sc.Leaves()),
		zap.Int("chains", chains),
		zap.Int64("seed", opts.Seed),
	)

	r := &run{
		driver:  driver,
		opts:    opts,
		sc:      sc,
		chains:  chains,
		stepper: st,
		log:     log,
		res:     Result{RunID: runID},
	}
	res, err := r.loop(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "solve failed")
		log.Warn("solve failed", zap.Error(err), zap.Int("steps", r.res.Steps))
		return Result{}, err
	}

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Float64("score", res.Score),
		attribute.Int("steps", res.Steps),
		attribute.Int("restarts", res.Restarts),
		attribute.String("reason", res.Reason.String()),
	)
	span.SetStatus(codes.Ok, "")
	opts.Metrics.observeSolve(driver, res.Reason, res.Score, elapsed)
	log.Info("solve finished",
		zap.Float64("score", res.Score),
		zap.Stringer("reason", res.Reason),
		zap.Int("steps", res.Steps),
		zap.Int("restarts", res.Restarts),
		zap.Int("chain", res.Chain),
		zap.Duration("elapsed", elapsed),
	)

	return res, nil
}

// run is the state of one solve.
type run struct {
	driver  string
	opts    Options
	sc      *quartet.Scorer
	chains  int
	stepper stepper
	log     *zap.Logger
	res     Result
}

// loop steps populations of chains round-robin until a stop rule fires.
func (r *run) loop(ctx context.Context) (Result, error) {
	streams := newChainStreams(r.opts.Seed)
	for {
		pop, err := r.population(ctx, streams)
		if err != nil {
			return Result{}, err
		}
		r.stepper.begin(len(pop))
		for _, c := range pop {
			if c.score == 1 {
				return r.finish(c, StopPerfect), nil
			}
		}

		// agreed counts consecutive steps after which the population agreed.
		agreed := 0
		for next := 0; ; next = (next + 1) % len(pop) {
			if err = ctx.Err(); err != nil {
				return Result{}, fmt.Errorf("%s: %w", r.driver, err)
			}
			if r.opts.MaxSteps > 0 && r.res.Steps >= r.opts.MaxSteps {
				return r.finish(best(pop), StopStepLimit), nil
			}

			c := pop[next]
			sr, err := r.stepper.step(c, r.sc)
			if err != nil {
				return Result{}, fmt.Errorf("%s chain %d: %w", r.driver, c.id, err)
			}
			if sr.stepped {
				r.res.Steps++
				c.score, c.stepped = sr.score, true
				r.opts.Metrics.observeStep(r.driver)
				if ce := r.log.Check(zap.DebugLevel, "step"); ce != nil {
					ce.Write(
						zap.Int("step", r.res.Steps),
						zap.Int("chain", c.id),
						zap.Float64("score", c.score),
						zap.Float64("beta", sr.beta),
					)
				}
				if c.score == 1 {
					return r.finish(c, StopPerfect), nil
				}
				if agree(pop) {
					agreed++
				} else {
					agreed = 0
				}
				if agreed > len(pop) {
					return r.finish(c, StopAgreement), nil
				}
			}
			if sr.restart {
				r.res.Restarts++
				r.opts.Metrics.observeRestart(r.driver)
				r.log.Debug("population restart",
					zap.Int("restarts", r.res.Restarts),
					zap.Int("step", r.res.Steps),
				)
				break
			}
		}
	}
}

// population builds a fresh set of random chains, each on its own RNG
// stream from streams.
func (r *run) population(ctx context.Context, streams *chainStreams) ([]*chain, error) {
	pop := make([]*chain, r.chains)
	for i := range pop {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", r.driver, err)
		}
		rng := streams.next(i)
		t, err := mutation.NewRandomTree(r.sc.Leaves(), rng)
		if err != nil {
			return nil, fmt.Errorf("%s chain %d: %w", r.driver, i, err)
		}
		s, err := r.sc.Score(t)
		if err != nil {
			return nil, fmt.Errorf("%s chain %d: %w", r.driver, i, err)
		}
		pop[i] = &chain{id: i, tree: t, rng: rng, score: s}
	}

	return pop, nil
}

// finish fills the result from chain c.
func (r *run) finish(c *chain, reason StopReason) Result {
	r.res.Tree = c.tree.Clone()
	r.res.Score = c.score
	r.res.Chain = c.id
	r.res.Reason = reason

	return r.res
}

// agree reports whether every chain has stepped and all scores are equal.
// The loop stops only once this has held for a whole round.
func agree(pop []*chain) bool {
	for _, c := range pop {
		if !c.stepped || c.score != pop[0].score {
			return false
		}
	}

	return true
}

// best returns the highest-scoring chain, lowest id on ties.
func best(pop []*chain) *chain {
	b := pop[0]
	for _, c := range pop[1:] {
		if c.score > b.score {
			b = c
		}
	}

	return b
}
