package objective

import (
	"testing"
	"time"

	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/shiftopt/scheduler/pkg/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustShift(t *testing.T, job string, date time.Time, start, end string, rate float64) model.SuggestedShift {
	t.Helper()
	sh, err := model.NewSuggestedShift("id", job, date, start, end, rate, 0, 0.9, model.PriorityHard, "", false)
	require.NoError(t, err)
	return sh
}

func TestIncomeScore_WeekendPremiumApplied(t *testing.T) {
	saturday := time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC) // Saturday
	shifts := []model.SuggestedShift{mustShift(t, "A", saturday, "10:00", "16:00", 1000)}

	b := IncomeScore(shifts, DefaultIncomeWeights(), 0)
	assert.Greater(t, b.Weekend, 0.0)
	assert.Equal(t, 6000.0, b.Base)
}

func TestIncomeScore_OvertimeOnLongDay(t *testing.T) {
	weekday := time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC) // Monday
	shifts := []model.SuggestedShift{mustShift(t, "A", weekday, "08:00", "18:00", 1000)}

	b := IncomeScore(shifts, DefaultIncomeWeights(), 0)
	assert.Greater(t, b.Overtime, 0.0)
}

func TestWorkLifeBalanceScore_PenalizesSplitShifts(t *testing.T) {
	d := time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)
	single := []model.SuggestedShift{mustShift(t, "A", d, "09:00", "13:00", 1000)}
	split := []model.SuggestedShift{
		mustShift(t, "A", d, "09:00", "11:00", 1000),
		mustShift(t, "A", d, "15:00", "17:00", 1000),
	}

	assert.Greater(t, WorkLifeBalanceScore(single), WorkLifeBalanceScore(split))
}

func TestSourceBalanceScore_EvenSplitScoresHigherThanSkewed(t *testing.T) {
	d := time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)
	even := []model.SuggestedShift{
		mustShift(t, "A", d, "09:00", "13:00", 1000),
		mustShift(t, "B", d.AddDate(0, 0, 1), "09:00", "13:00", 1000),
	}
	skewed := []model.SuggestedShift{
		mustShift(t, "A", d, "09:00", "13:00", 1000),
		mustShift(t, "A", d.AddDate(0, 0, 1), "09:00", "13:00", 1000),
	}

	evenScore := SourceBalanceScore(even, 2)
	skewedScore := SourceBalanceScore(skewed, 2)
	assert.Greater(t, evenScore.Distribution, skewedScore.Distribution)
}

func TestConstraintPenalty_ZeroWhenWithinLimits(t *testing.T) {
	req := &model.OptimizationRequest{
		Start: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 4, 8, 0, 0, 0, 0, time.UTC),
		Constraints: []model.Constraint{
			{Kind: model.ConstraintDailyHours, Value: 8},
		},
	}
	p := problem.Build(req)
	shifts := []model.SuggestedShift{mustShift(t, "A", req.Start, "09:00", "13:00", 1000)}

	penalty := ConstraintPenalty(p, shifts, DefaultPenaltyWeights())
	assert.Equal(t, 0.0, penalty)
}

func TestConstraintPenalty_PositiveWhenOverDailyLimit(t *testing.T) {
	req := &model.OptimizationRequest{
		Start: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 4, 8, 0, 0, 0, 0, time.UTC),
		Constraints: []model.Constraint{
			{Kind: model.ConstraintDailyHours, Value: 4},
		},
	}
	p := problem.Build(req)
	shifts := []model.SuggestedShift{mustShift(t, "A", req.Start, "09:00", "17:00", 1000)}

	penalty := ConstraintPenalty(p, shifts, DefaultPenaltyWeights())
	assert.Greater(t, penalty, 0.0)
}
