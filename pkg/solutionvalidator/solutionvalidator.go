// Package solutionvalidator performs the post-solve structural, constraint
// satisfaction, and feasibility checks every solution passes through before
// it's returned to a caller (spec §4.7).
package solutionvalidator

import (
	"fmt"

	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/shiftopt/scheduler/pkg/problem"
)

const aggregateTolerance = 0.01

// Result mirrors the validator package's Result shape, kept separate
// because solution-side checks report against a solved schedule rather
// than a raw request.
type Result struct {
	Violations  []string `json:"violations"`
	Warnings    []string `json:"warnings"`
	Suggestions []string `json:"suggestions"`
}

func (r *Result) addViolation(format string, args ...any) {
	r.Violations = append(r.Violations, fmt.Sprintf(format, args...))
}

func (r *Result) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Check runs all three passes against sol and halves its confidence on any
// violation, still returning the (degraded) solution rather than failing
// the request (spec §4.7 "soft degradation").
func Check(p *problem.Problem, sol *model.OptimizationSolution) Result {
	var result Result
	result.Merge(checkStructural(sol))
	result.Merge(checkConstraintSatisfaction(p, sol))
	result.Merge(checkFeasibility(sol))

	if len(result.Violations) > 0 {
		sol.Confidence *= 0.5
	}
	return result
}

func (r *Result) Merge(other Result) {
	r.Violations = append(r.Violations, other.Violations...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Suggestions = append(r.Suggestions, other.Suggestions...)
}

func checkStructural(sol *model.OptimizationSolution) Result {
	var r Result

	if len(sol.Shifts) == 0 {
		r.addWarning("solution contains no shifts")
	}
	if sol.Confidence < 0 || sol.Confidence > 1 {
		r.addViolation("confidence %.4f is out of range [0,1]", sol.Confidence)
	} else if sol.Confidence < 0.5 {
		r.addWarning("confidence %.4f is below 0.5", sol.Confidence)
	}

	var income, hours float64
	for _, sh := range sol.Shifts {
		income += sh.CalculatedEarnings
		hours += sh.WorkingHours

		expectedEarnings := sh.WorkingHours * sh.HourlyRate
		if diff := abs(sh.CalculatedEarnings - expectedEarnings); diff > aggregateTolerance {
			r.addViolation("shift %s earnings %.4f do not match working_hours*rate %.4f", sh.ID, sh.CalculatedEarnings, expectedEarnings)
		}
	}
	if diff := abs(income - sol.TotalIncome); diff > aggregateTolerance {
		r.addViolation("aggregate total_income %.4f does not match per-shift sum %.4f", sol.TotalIncome, income)
	}
	if diff := abs(hours - sol.TotalHours); diff > aggregateTolerance {
		r.addViolation("aggregate total_hours %.4f does not match per-shift sum %.4f", sol.TotalHours, hours)
	}

	return r
}

func checkConstraintSatisfaction(p *problem.Problem, sol *model.OptimizationSolution) Result {
	var r Result

	hoursByDate := make(map[string]float64)
	hoursByWeek := make(map[string]float64)
	for _, sh := range sol.Shifts {
		hoursByDate[sh.Date.Format("2006-01-02")] += sh.WorkingHours
		hoursByWeek[problem.ISOWeekKey(sh.Date)] += sh.WorkingHours
	}

	if c, ok := p.Constraints[model.ConstraintFuyouLimit]; ok {
		if sol.TotalIncome > c.Value {
			r.addViolation("total_income %.2f exceeds fuyou_limit %.2f", sol.TotalIncome, c.Value)
		} else if sol.TotalIncome > 0.9*c.Value {
			r.addWarning("total_income %.2f is within 90%% of fuyou_limit %.2f", sol.TotalIncome, c.Value)
		}
	}

	if c, ok := p.Constraints[model.ConstraintDailyHours]; ok {
		for date, hours := range hoursByDate {
			if hours > c.Value {
				r.addViolation("date %s works %.2f hours, exceeding daily_hours limit %.2f", date, hours, c.Value)
			}
		}
	}

	if c, ok := p.Constraints[model.ConstraintWeeklyHours]; ok {
		for week, hours := range hoursByWeek {
			if hours > c.Value {
				r.addViolation("week %s works %.2f hours, exceeding weekly_hours limit %.2f", week, hours, c.Value)
			}
		}
	}

	// minimum_income and break_constraints are enumerated alongside
	// fuyou_limit/daily_hours/weekly_hours (spec §3) but, unlike
	// availability/job_source_limit, aren't called out as inert (spec §9
	// only names those two) — so they're given effect here rather than in
	// the solver path, where the spec's §4.3 inequality list never
	// mentions them.
	if c, ok := p.Constraints[model.ConstraintMinimumIncome]; ok {
		if sol.TotalIncome < c.Value {
			r.addViolation("total_income %.2f is below minimum_income %.2f", sol.TotalIncome, c.Value)
		}
	}
	if c, ok := p.Constraints[model.ConstraintBreakConstraints]; ok {
		for _, sh := range sol.Shifts {
			if sh.WorkingHours+float64(sh.BreakMinutes)/60.0 > 6 && float64(sh.BreakMinutes) < c.Value {
				r.addViolation("shift %s on %s has a %dm break, below the required %.0fm for shifts over 6h", sh.ID, sh.Date.Format("2006-01-02"), sh.BreakMinutes, c.Value)
			}
		}
	}

	return r
}

func checkFeasibility(sol *model.OptimizationSolution) Result {
	var r Result

	byDate := make(map[string][]model.SuggestedShift)
	for _, sh := range sol.Shifts {
		dateKey := sh.Date.Format("2006-01-02")
		byDate[dateKey] = append(byDate[dateKey], sh)

		span, err := model.SpanHours(sh.Start, sh.End)
		if err != nil || span <= 0 {
			r.addViolation("shift %s has a non-positive or invalid span (%s-%s)", sh.ID, sh.Start, sh.End)
			continue
		}
		if span > 12 {
			r.addWarning("shift %s spans %.2f hours, over the 12h soft limit", sh.ID, span)
		}
	}

	for dateKey, shifts := range byDate {
		for i := 0; i < len(shifts); i++ {
			for j := i + 1; j < len(shifts); j++ {
				overlap, err := model.Overlaps(shifts[i].Start, shifts[i].End, shifts[j].Start, shifts[j].End)
				if err == nil && overlap {
					r.addViolation("shifts %s and %s overlap on %s", shifts[i].ID, shifts[j].ID, dateKey)
				}
			}
		}
	}

	return r
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
