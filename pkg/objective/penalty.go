package objective

import (
	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/shiftopt/scheduler/pkg/problem"
)

// PenaltyWeights are the per-kind constraint violation weights used by
// penalty-method solvers (spec §4.6).
type PenaltyWeights struct {
	Fuyou        float64
	Daily        float64
	Weekly       float64
	Availability float64
}

// DefaultPenaltyWeights matches spec §4.6's literal weight table.
func DefaultPenaltyWeights() PenaltyWeights {
	return PenaltyWeights{Fuyou: 1000, Daily: 100, Weekly: 50, Availability: 200}
}

// ConstraintPenalty sums weight × violation-magnitude across every
// constraint the problem carries, for shifts proposed against it.
func ConstraintPenalty(p *problem.Problem, shifts []model.SuggestedShift, weights PenaltyWeights) float64 {
	var penalty float64

	hoursByDate := make(map[string]float64)
	hoursByWeek := make(map[string]float64)
	var totalIncome float64
	for _, sh := range shifts {
		dateKey := sh.Date.Format("2006-01-02")
		hoursByDate[dateKey] += sh.WorkingHours
		hoursByWeek[problem.ISOWeekKey(sh.Date)] += sh.WorkingHours
		totalIncome += sh.CalculatedEarnings
	}

	if c, ok := p.Constraints[model.ConstraintFuyouLimit]; ok {
		prorated := c.Value * (float64(len(p.Dates)) / 365.0)
		if over := totalIncome - prorated; over > 0 {
			penalty += weights.Fuyou * (over / 100_000)
		}
	}

	if c, ok := p.Constraints[model.ConstraintDailyHours]; ok {
		for _, hours := range hoursByDate {
			if over := hours - c.Value; over > 0 {
				penalty += weights.Daily * over
			}
		}
	}

	if c, ok := p.Constraints[model.ConstraintWeeklyHours]; ok {
		for _, hours := range hoursByWeek {
			if over := hours - c.Value; over > 0 {
				penalty += weights.Weekly * over
			}
		}
	}

	for _, sh := range shifts {
		startMin, err := model.ClockMinutes(sh.Start)
		if err != nil {
			continue
		}
		if !p.Available(sh.Date, startMin/60) {
			penalty += weights.Availability
		}
	}

	return penalty
}
