package search

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qsearch/quartet"
	"github.com/katalvlaran/qsearch/tree"
)

func TestMetrics_Solve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	tr, err := tree.New(6)
	require.NoError(t, err)
	require.NoError(t, tr.SwapLeaves(0, 5))
	dist, err := quartet.InducedDistances(tr, nil)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Metrics = m
	res, err := SolveMCMC(context.Background(), dist, opts)
	require.NoError(t, err)

	require.Equal(t, float64(res.Steps), testutil.ToFloat64(m.steps.WithLabelValues(driverMCMC)))
	require.Equal(t, float64(res.Restarts), testutil.ToFloat64(m.restarts.WithLabelValues(driverMCMC)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.solves.WithLabelValues(driverMCMC, res.Reason.String())))
	require.Equal(t, res.Score, testutil.ToFloat64(m.score.WithLabelValues(driverMCMC)))
	require.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestNewMetrics_Reregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewMetrics(reg)
	require.NoError(t, err)
	b, err := NewMetrics(reg)
	require.NoError(t, err)
	require.Same(t, a.steps, b.steps)

	a.observeStep(driverHillClimb)
	require.Equal(t, 1.0, testutil.ToFloat64(b.steps.WithLabelValues(driverHillClimb)))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.observeStep(driverHillClimb)
	m.observeRestart(driverMCMC)
	m.observeCandidates(3)
	m.observeSolve(driverMCMC, StopPerfect, 1, 0)
}
