package validator

import (
	"testing"
	"time"

	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() *model.OptimizationRequest {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return &model.OptimizationRequest{
		UserID:    "user-1",
		Objective: model.ObjectiveMaximizeIncome,
		Algorithm: model.AlgorithmLinearProgramming,
		Start:     start,
		End:       start.AddDate(0, 0, 30),
		Constraints: []model.Constraint{
			{Kind: model.ConstraintFuyouLimit, Value: 1_030_000, Priority: model.PriorityHard},
			{Kind: model.ConstraintDailyHours, Value: 8, Priority: model.PriorityHard},
		},
		JobSources: []model.JobSource{
			{ID: "A", Name: "Convenience store", HourlyRate: 1200, Active: true},
		},
		Tier: model.TierFree,
	}
}

func TestValidate_HappyPath(t *testing.T) {
	v := NewDefault()
	result := v.Validate(baseRequest())
	assert.True(t, result.IsValid(), "violations: %v", result.Violations)
}

type fakeRunCounter map[string]int

func (f fakeRunCounter) UserRunCount(userID string) int { return f[userID] }

func TestValidateTier_MaxRunsQuotaExceeded(t *testing.T) {
	v := New(DefaultConfig(), DefaultTierLimits(), fakeRunCounter{"user-1": 5})
	req := baseRequest()
	req.Tier = model.TierFree // free tier: MaxRuns = 5

	result := v.ValidateTier(req)
	require.False(t, result.IsValid())
	assert.Contains(t, result.Violations[0], "at most 5 runs")
}

func TestValidateTier_MaxRunsUnlimitedForProTier(t *testing.T) {
	v := New(DefaultConfig(), DefaultTierLimits(), fakeRunCounter{"user-1": 10_000})
	req := baseRequest()
	req.Tier = model.TierPro
	req.Algorithm = model.AlgorithmMultiObjectiveNSGA2

	result := v.ValidateTier(req)
	assert.True(t, result.IsValid(), "violations: %v", result.Violations)
}

func TestValidateTier_NilRunCounterSkipsQuotaCheck(t *testing.T) {
	v := NewDefault()
	req := baseRequest()

	result := v.ValidateTier(req)
	assert.True(t, result.IsValid(), "violations: %v", result.Violations)
}

func TestValidateTier_AlgorithmNotAvailable(t *testing.T) {
	v := NewDefault()
	req := baseRequest()
	req.Algorithm = model.AlgorithmGeneticAlgorithm
	req.Tier = model.TierFree

	result := v.ValidateTier(req)
	require.False(t, result.IsValid())
	assert.Contains(t, result.Violations[0], "algorithm")
}

func TestValidateConstraints_DuplicateKinds(t *testing.T) {
	v := NewDefault()
	req := baseRequest()
	req.Constraints = []model.Constraint{
		{Kind: model.ConstraintDailyHours, Value: 8, Priority: model.PriorityHard},
		{Kind: model.ConstraintDailyHours, Value: 10, Priority: model.PriorityHard},
	}

	result := v.ValidateConstraints(req)
	require.False(t, result.IsValid())
	assert.Contains(t, result.Violations[0], "duplicate constraint types")
}

func TestValidateConstraints_EmptyList(t *testing.T) {
	v := NewDefault()
	req := baseRequest()
	req.Constraints = nil

	result := v.ValidateConstraints(req)
	assert.False(t, result.IsValid())
}

func TestValidateConstraints_WeeklyExceeds7xDaily(t *testing.T) {
	v := NewDefault()
	req := baseRequest()

	req.Constraints = []model.Constraint{
		{Kind: model.ConstraintDailyHours, Value: 1, Priority: model.PriorityHard},
		{Kind: model.ConstraintWeeklyHours, Value: 7, Priority: model.PriorityHard},
	}
	assert.True(t, v.ValidateConstraints(req).IsValid(), "7 == 7x1 should be valid")

	req.Constraints = []model.Constraint{
		{Kind: model.ConstraintDailyHours, Value: 1, Priority: model.PriorityHard},
		{Kind: model.ConstraintWeeklyHours, Value: 8, Priority: model.PriorityHard},
	}
	assert.False(t, v.ValidateConstraints(req).IsValid(), "8 > 7x1 should be rejected")
}

func TestValidateTimeRange_OneDayHorizon(t *testing.T) {
	v := NewDefault()
	req := baseRequest()
	req.End = req.Start.AddDate(0, 0, 1)

	assert.True(t, v.ValidateTimeRange(req).IsValid())
}

func TestValidateTimeRange_366DayHorizonRejected(t *testing.T) {
	v := NewDefault()
	req := baseRequest()
	req.Tier = model.TierPro
	req.End = req.Start.AddDate(0, 0, 366)

	result := v.ValidateTimeRange(req)
	assert.False(t, result.IsValid())
}

func TestValidateJobSources_DuplicateIDs(t *testing.T) {
	v := NewDefault()
	req := baseRequest()
	req.JobSources = []model.JobSource{
		{ID: "A", HourlyRate: 1000, Active: true},
		{ID: "A", HourlyRate: 1200, Active: true},
	}

	result := v.ValidateJobSources(req)
	assert.False(t, result.IsValid())
}

func TestValidateJobSources_RateWarnings(t *testing.T) {
	v := NewDefault()
	req := baseRequest()
	req.JobSources = []model.JobSource{{ID: "A", HourlyRate: 12_000, Active: true}}

	result := v.ValidateJobSources(req)
	assert.True(t, result.IsValid())
	assert.NotEmpty(t, result.Warnings)
}

func TestValidate_Idempotent(t *testing.T) {
	v := NewDefault()
	req := baseRequest()

	first := v.Validate(req)
	second := v.Validate(req)
	assert.Equal(t, first, second)
}
