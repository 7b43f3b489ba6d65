// Package search drives the quartet tree search.
//
// Two step kinds are offered. StepHillClimb keeps trying random
// multi-mutations until one strictly improves the score. StepMCMC weighs
// every neighbor (and staying put) with a temperature-controlled
// acceptance function and samples one.
//
// SolveHillClimb and SolveMCMC run a small population of chains, each
// started from its own random tree and random stream, stepped round-robin:
//
//	for each population:
//	    for chain = 0, 1, …, K−1, 0, 1, …:
//	        step(chain)
//	        stop if score == 1 or all chains scored and equal
//	        restart population if the driver asks
//
// Runs are deterministic for a fixed Options.Seed. Logging (zap) and
// metrics (Prometheus) are off unless set in Options. Each solve opens an
// OpenTelemetry span on the global tracer provider.
package search
