package search

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Schedule is the MCMC annealing schedule. Within one population the step
// counter runs from StartCount up to Horizon and
//
//	β = Level · (1 − exp(−Sharpness · count / Horizon)).
//
// When the counter reaches Horizon the population is discarded, Horizon is
// multiplied by HorizonGrowth, Level by LevelGrowth, and the counter resets.
type Schedule struct {
	StartCount    int
	Horizon       int
	Level         float64
	Sharpness     float64
	HorizonGrowth float64
	LevelGrowth   float64
}

// DefaultSchedule returns the standard schedule: counter from 5 to 1024,
// level 5, sharpness 8, horizon ×3/2 and level ×5/3 per restart.
func DefaultSchedule() Schedule {
	return Schedule{
		StartCount:    5,
		Horizon:       1024,
		Level:         5,
		Sharpness:     8,
		HorizonGrowth: 1.5,
		LevelGrowth:   5.0 / 3.0,
	}
}

// Beta returns the inverse temperature at count for the given horizon and level.
func (s Schedule) Beta(count, horizon int, level float64) float64 {
	return level * (1 - math.Exp(-s.Sharpness*float64(count)/float64(horizon)))
}

// Options configures SolveHillClimb and SolveMCMC.
type Options struct {
	// Seed drives every random choice; 0 selects a fixed default seed.
	Seed int64

	// Chains is the population size. 0 picks 5, 4, 3, 3, 3 chains for 4..8
	// leaves and 2 above. A single chain is rejected; agreement needs two.
	Chains int

	// MaxSteps caps the total number of chain steps; 0 means no cap.
	MaxSteps int

	// MaxAttempts bounds the candidates one hill-climb step may try before
	// giving up with ErrNoImprovement; 0 means no bound.
	MaxAttempts int

	// Weight is the MCMC acceptance weight; nil means Metropolis.
	Weight WeightFunc

	// Schedule is the MCMC annealing schedule.
	Schedule Schedule

	// Logger receives run events; nil disables logging.
	Logger *zap.Logger

	// Metrics, when set, records solver activity.
	Metrics *Metrics
}

// DefaultOptions returns the recommended configuration.
func DefaultOptions() Options {
	return Options{
		MaxAttempts: 2000,
		Weight:      Metropolis,
		Schedule:    DefaultSchedule(),
	}
}

// chainsFor returns the default population size for a leaf count.
func chainsFor(leaves int) int {
	small := [...]int{5, 4, 3, 3, 3}
	if leaves >= 4 && leaves-4 < len(small) {
		return small[leaves-4]
	}

	return 2
}

// validateOptions rejects values that cannot drive a search.
func validateOptions(o Options) error {
	if o.Chains < 0 || o.Chains == 1 {
		return fmt.Errorf("chains %d, want 0 or at least 2: %w", o.Chains, ErrBadOptions)
	}
	if o.MaxSteps < 0 {
		return fmt.Errorf("max steps %d: %w", o.MaxSteps, ErrBadOptions)
	}
	if o.MaxAttempts < 0 {
		return fmt.Errorf("max attempts %d: %w", o.MaxAttempts, ErrBadOptions)
	}

	return nil
}

// validateSchedule is checked by SolveMCMC only.
func validateSchedule(s Schedule) error {
	switch {
	case s.StartCount < 0 || s.Horizon <= s.StartCount+1:
		return fmt.Errorf("schedule counter %d..%d: %w", s.StartCount, s.Horizon, ErrBadOptions)
	case !(s.Level > 0) || math.IsInf(s.Level, 0):
		return fmt.Errorf("schedule level %g: %w", s.Level, ErrBadOptions)
	case !(s.Sharpness > 0) || math.IsInf(s.Sharpness, 0):
		return fmt.Errorf("schedule sharpness %g: %w", s.Sharpness, ErrBadOptions)
	case !(s.HorizonGrowth >= 1), !(s.LevelGrowth >= 1):
		return fmt.Errorf("schedule growth %g, %g: %w", s.HorizonGrowth, s.LevelGrowth, ErrBadOptions)
	}

	return nil
}
