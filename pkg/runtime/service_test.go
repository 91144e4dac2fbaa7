package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/shiftopt/scheduler/internal/config"
	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() *model.OptimizationRequest {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return &model.OptimizationRequest{
		Objective:  model.ObjectiveMaximizeIncome,
		Algorithm:  model.AlgorithmLinearProgramming,
		Start:      start,
		End:        start.AddDate(0, 0, 30),
		JobSources: []model.JobSource{{ID: "A", HourlyRate: 1200, Active: true}},
		Constraints: []model.Constraint{
			{Kind: model.ConstraintFuyouLimit, Value: 1_030_000},
			{Kind: model.ConstraintDailyHours, Value: 8},
			{Kind: model.ConstraintWeeklyHours, Value: 28},
		},
		Tier: model.TierFree,
	}
}

func TestService_Optimize_HappyPath(t *testing.T) {
	svc := NewService(config.DefaultConfig())
	result, err := svc.Optimize(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.True(t, result.PreValidation.IsValid())
	require.NotNil(t, result.Solution)
	assert.NotEmpty(t, result.Solution.Shifts)
	assert.Empty(t, result.PostValidation.Violations)
}

func TestService_Optimize_InvalidRequestNeverSolves(t *testing.T) {
	svc := NewService(config.DefaultConfig())
	req := sampleRequest()
	req.Algorithm = model.AlgorithmGeneticAlgorithm // not allowed for free tier

	result, err := svc.Optimize(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.PreValidation.IsValid())
	assert.Nil(t, result.Solution)
}

func TestService_Optimize_FreeTierRunQuotaExhausted(t *testing.T) {
	svc := NewService(config.DefaultConfig())
	req := sampleRequest()
	req.UserID = "quota-user"

	for i := 0; i < 5; i++ {
		result, err := svc.Optimize(context.Background(), req)
		require.NoError(t, err)
		require.True(t, result.PreValidation.IsValid(), "run %d should be within the free tier's 5-run quota", i+1)
	}

	result, err := svc.Optimize(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.PreValidation.IsValid())
	assert.Nil(t, result.Solution)
}

func TestService_AsyncLifecycle(t *testing.T) {
	svc := NewService(config.DefaultConfig())
	runID, pre := svc.StartAsync(sampleRequest())
	require.True(t, pre.IsValid())
	require.NotEmpty(t, runID)

	deadline := time.Now().Add(2 * time.Second)
	var status model.RunStatus
	for time.Now().Before(deadline) {
		s, ok := svc.Status(runID)
		require.True(t, ok)
		status = s
		if status.Status == model.RunCompleted || status.Status == model.RunFailed {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	assert.Equal(t, model.RunCompleted, status.Status)
	assert.Equal(t, 1.0, status.Progress)
	require.NotNil(t, status.Solution)
}

func TestService_Status_UnknownRunIDNotFound(t *testing.T) {
	svc := NewService(config.DefaultConfig())
	_, ok := svc.Status("nonexistent")
	assert.False(t, ok)
}

func TestService_Shutdown_CancelsActiveRuns(t *testing.T) {
	svc := NewService(config.DefaultConfig())
	svc.runs.Start("r1")
	svc.Shutdown()

	status, ok := svc.Status("r1")
	require.True(t, ok)
	assert.Equal(t, model.RunCancelled, status.Status)
}
