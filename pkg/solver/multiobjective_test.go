package solver

import (
	"context"
	"testing"
	"time"

	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/shiftopt/scheduler/pkg/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiObjectiveOptimizer_RoundRobinsAcrossJobSources(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	req := &model.OptimizationRequest{
		Objective: model.ObjectiveMultiObjective,
		Start:     start,
		End:       start.AddDate(0, 0, 21),
		JobSources: []model.JobSource{
			{ID: "A", HourlyRate: 1000, Active: true},
			{ID: "B", HourlyRate: 1200, Active: true},
		},
	}
	p := problem.Build(req)
	opt := &MultiObjectiveOptimizer{}

	sol, err := opt.Optimize(context.Background(), p, req.Objective, req.Preferences)
	require.NoError(t, err)
	assert.Len(t, sol.Shifts, 21)
	// 21 days round-robined over two sources: A takes days 0,2,...,20 (11),
	// B takes days 1,3,...,19 (10); cv = 0.5/10.5.
	assert.Equal(t, 11, sol.PerJobDistribution["A"])
	assert.Equal(t, 10, sol.PerJobDistribution["B"])
	assert.InDelta(t, 1.0-0.5/10.5, sol.Metadata["balance_score"], 0.0001)
}

func TestMultiObjectiveOptimizer_CapsAt21Days(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	req := &model.OptimizationRequest{
		Start:      start,
		End:        start.AddDate(0, 0, 60),
		JobSources: []model.JobSource{{ID: "A", HourlyRate: 1000, Active: true}},
	}
	p := problem.Build(req)
	opt := &MultiObjectiveOptimizer{}

	sol, err := opt.Optimize(context.Background(), p, req.Objective, req.Preferences)
	require.NoError(t, err)
	assert.Len(t, sol.Shifts, 21)
}

func TestMultiObjectiveOptimizer_NoJobSourcesFallsBack(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	req := &model.OptimizationRequest{Start: start, End: start.AddDate(0, 0, 5)}
	p := problem.Build(req)
	opt := &MultiObjectiveOptimizer{}

	sol, err := opt.Optimize(context.Background(), p, req.Objective, req.Preferences)
	require.NoError(t, err)
	assert.Equal(t, true, sol.Metadata["fallback"])
}
