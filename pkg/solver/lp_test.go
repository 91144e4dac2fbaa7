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

func TestLinearProgrammingOptimizer_IncomeMaxScenario(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	req := &model.OptimizationRequest{
		Objective: model.ObjectiveMaximizeIncome,
		Algorithm: model.AlgorithmLinearProgramming,
		Start:     start,
		End:       start.AddDate(0, 0, 30),
		JobSources: []model.JobSource{
			{ID: "A", HourlyRate: 1200, Active: true},
		},
		Constraints: []model.Constraint{
			{Kind: model.ConstraintFuyouLimit, Value: 1_030_000},
			{Kind: model.ConstraintDailyHours, Value: 8},
			{Kind: model.ConstraintWeeklyHours, Value: 28},
		},
		Tier: model.TierFree,
	}

	p := problem.Build(req)
	opt := &LinearProgrammingOptimizer{}
	sol, err := opt.Optimize(context.Background(), p, req.Objective, req.Preferences)
	require.NoError(t, err)

	require.NotEmpty(t, sol.Shifts)
	assert.LessOrEqual(t, sol.TotalIncome, 1_030_000.0)
	assert.GreaterOrEqual(t, sol.Confidence, 0.9)
	assert.Equal(t, model.AlgorithmLinearProgramming, sol.Algorithm)

	byDate := make(map[string]float64)
	byWeek := make(map[string]float64)
	for _, sh := range sol.Shifts {
		byDate[sh.Date.Format("2006-01-02")] += sh.WorkingHours
		byWeek[problem.ISOWeekKey(sh.Date)] += sh.WorkingHours
	}
	for _, h := range byDate {
		assert.LessOrEqual(t, h, 8.0)
	}
	for _, h := range byWeek {
		assert.LessOrEqual(t, h, 28.0)
	}
}

func TestLinearProgrammingOptimizer_NoOverlaps(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	req := &model.OptimizationRequest{
		Objective:  model.ObjectiveMaximizeIncome,
		Start:      start,
		End:        start.AddDate(0, 0, 7),
		JobSources: []model.JobSource{{ID: "A", HourlyRate: 2000, Active: true}},
		Constraints: []model.Constraint{
			{Kind: model.ConstraintDailyHours, Value: 16},
		},
	}
	p := problem.Build(req)
	opt := &LinearProgrammingOptimizer{}
	sol, err := opt.Optimize(context.Background(), p, req.Objective, req.Preferences)
	require.NoError(t, err)

	byDate := make(map[string][]model.SuggestedShift)
	for _, sh := range sol.Shifts {
		byDate[sh.Date.Format("2006-01-02")] = append(byDate[sh.Date.Format("2006-01-02")], sh)
	}
	for _, shifts := range byDate {
		for i := 0; i < len(shifts); i++ {
			for j := i + 1; j < len(shifts); j++ {
				overlap, err := model.Overlaps(shifts[i].Start, shifts[i].End, shifts[j].Start, shifts[j].End)
				require.NoError(t, err)
				assert.False(t, overlap)
			}
		}
	}
}

func TestLinearProgrammingOptimizer_FallsBackWhenNoJobSources(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	req := &model.OptimizationRequest{
		Objective: model.ObjectiveMaximizeIncome,
		Start:     start,
		End:       start.AddDate(0, 0, 5),
	}
	p := problem.Build(req)
	opt := &LinearProgrammingOptimizer{}
	sol, err := opt.Optimize(context.Background(), p, req.Objective, req.Preferences)
	require.NoError(t, err)
	assert.Empty(t, sol.Shifts)
	assert.Equal(t, true, sol.Metadata["fallback"])
}

func TestLinearProgrammingOptimizer_MinimizeHoursWithMinimumIncome(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	req := &model.OptimizationRequest{
		Objective: model.ObjectiveMinimizeHours,
		Start:     start,
		End:       start.AddDate(0, 0, 14),
		JobSources: []model.JobSource{
			{ID: "A", HourlyRate: 1000, Active: true},
			{ID: "B", HourlyRate: 2000, Active: true},
		},
		Constraints: []model.Constraint{
			{Kind: model.ConstraintMinimumIncome, Value: 20_000},
			{Kind: model.ConstraintDailyHours, Value: 8},
		},
	}
	p := problem.Build(req)
	opt := &LinearProgrammingOptimizer{}
	sol, err := opt.Optimize(context.Background(), p, req.Objective, req.Preferences)
	require.NoError(t, err)
	require.NotEmpty(t, sol.Shifts)
	assert.GreaterOrEqual(t, sol.TotalIncome, 20_000.0)
	for _, sh := range sol.Shifts {
		assert.Equal(t, "B", sh.JobSourceID, "should prefer the higher-rate job to minimize hours")
	}
}
