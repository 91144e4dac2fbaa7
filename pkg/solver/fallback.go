package solver

import (
	"fmt"
	"sort"

	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/shiftopt/scheduler/pkg/problem"
)

// Fallback builds the deterministic, low-confidence schedule used whenever
// a strategy's primary path fails to converge or isn't implemented (spec
// §4.3, §9 "fallback solution pattern"). It picks the highest-rate active
// job source and schedules one 6h shift at 10:00 on each of the first 7
// dates in the horizon, stopping early once cumulative earnings reach 80%
// of the fuyou_limit constraint, if one is present.
func Fallback(p *problem.Problem, objective model.ObjectiveKind, reason string) *model.OptimizationSolution {
	sol := &model.OptimizationSolution{
		ConstraintsSatisfied: make(map[model.ConstraintKind]bool),
		Confidence:           0.5,
		Metadata: map[string]any{
			"fallback": true,
			"reason":   reason,
		},
	}

	job, ok := highestRateJob(p)
	if !ok {
		sol.RecomputeAggregates()
		return sol
	}

	fuyou, hasFuyou := p.Constraints[model.ConstraintFuyouLimit]
	limitDays := len(p.Dates)
	if limitDays > 7 {
		limitDays = 7
	}

	var cumulative float64
	for i := 0; i < limitDays; i++ {
		if hasFuyou && cumulative >= 0.8*fuyou.Value {
			break
		}
		shift, err := model.NewSuggestedShift(
			newShiftID(), job.ID, p.Dates[i], "10:00", "16:00",
			job.HourlyRate, job.DefaultBreakMinutes, 0.5, model.PrioritySoft,
			fmt.Sprintf("Deterministic fallback schedule (%s)", reason), false,
		)
		if err != nil {
			continue
		}
		cumulative += shift.CalculatedEarnings
		sol.Shifts = append(sol.Shifts, shift)
	}

	sol.RecomputeAggregates()
	if objective == model.ObjectiveMinimizeHours {
		sol.ObjectiveValue = sol.TotalHours
	} else {
		sol.ObjectiveValue = sol.TotalIncome
	}
	return sol
}

func highestRateJob(p *problem.Problem) (model.JobSource, bool) {
	var best model.JobSource
	found := false
	ids := make([]string, 0, len(p.JobSources))
	for id := range p.JobSources {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic iteration order before comparing rates
	for _, id := range ids {
		js := p.JobSources[id]
		if !js.Active {
			continue
		}
		if !found || js.HourlyRate > best.HourlyRate {
			best = js
			found = true
		}
	}
	return best, found
}
