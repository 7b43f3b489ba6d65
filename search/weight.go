package search

import "math"

// WeightFunc maps a candidate's score change (candidate minus current) and
// the inverse temperature beta to a non-negative sampling weight. The stay
// option is weighted with delta 0.
type WeightFunc func(delta, beta float64) float64

// Metropolis weighs improving and neutral moves 1 and worsening moves
// exp(β·delta). It is the default acceptance rule.
func Metropolis(delta, beta float64) float64 {
	return math.Exp(-math.Max(0, -beta*delta))
}

// BoundedBoltzmann returns exp(min(β·delta, ceil)): improving moves gain
// weight with their uplift, capped at e^ceil, and worsening moves decay as
// under Metropolis.
func BoundedBoltzmann(ceil float64) WeightFunc {
	return func(delta, beta float64) float64 {
		return math.Exp(math.Min(beta*delta, ceil))
	}
}
