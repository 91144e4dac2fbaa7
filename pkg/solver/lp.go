package solver

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/shiftopt/scheduler/pkg/problem"
)

// candidateDurations and candidateStartWindow are the decision-variable
// grid from spec §4.3: duration in {4,6,8}h, start hour in [8,20], with
// start+duration <= 22.
var candidateDurations = []int{4, 6, 8}

const (
	candidateStartMin = 8
	candidateStartMax = 20
	candidateEndMax    = 22
	defaultMaxIterations = 1000
)

// lpVariable is a single binary decision variable x_{d,j,dur,s}.
type lpVariable struct {
	date        time.Time
	jobID       string
	duration    int
	start       int
	coefficient float64
}

func (v lpVariable) startClock() string { return fmt.Sprintf("%02d:00", v.start) }
func (v lpVariable) endClock() string   { return fmt.Sprintf("%02d:00", v.start+v.duration) }

// LinearProgrammingOptimizer formulates the request as a binary program and
// solves it with an iterative greedy relaxation (spec §4.3). No LP solver
// library exists anywhere in the reference corpus, so the numeric core is
// hand-rolled; see DESIGN.md.
type LinearProgrammingOptimizer struct{}

func (o *LinearProgrammingOptimizer) Optimize(ctx context.Context, p *problem.Problem, objective model.ObjectiveKind, prefs model.SolverPreferences) (*model.OptimizationSolution, error) {
	start := time.Now()

	maxIter := prefs.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}

	candidates := buildCandidates(p, objective)
	if len(candidates) == 0 {
		sol := Fallback(p, objective, "no feasible decision variables (job sources unavailable or closed horizon)")
		sol.Algorithm = model.AlgorithmLinearProgramming
		sol.ExecutionTimeMS = time.Since(start).Milliseconds()
		return sol, nil
	}

	selected := greedySelect(ctx, p, candidates, objective, maxIter)

	sol := lift(p, selected, objective)
	sol.Algorithm = model.AlgorithmLinearProgramming
	sol.ExecutionTimeMS = time.Since(start).Milliseconds()
	sol.Metadata = map[string]any{}
	return sol, nil
}

// buildCandidates enumerates every decision variable whose full duration
// falls inside an available window, with its minimization-form coefficient.
func buildCandidates(p *problem.Problem, objective model.ObjectiveKind) []lpVariable {
	var out []lpVariable

	jobIDs := make([]string, 0, len(p.JobSources))
	for id := range p.JobSources {
		jobIDs = append(jobIDs, id)
	}
	sort.Strings(jobIDs)

	for _, d := range p.Dates {
		for _, jobID := range jobIDs {
			js := p.JobSources[jobID]
			if !js.Active {
				continue
			}
			for _, dur := range candidateDurations {
				for s := candidateStartMin; s <= candidateStartMax; s++ {
					if s+dur > candidateEndMax {
						continue
					}
					if !allHoursAvailable(p, d, s, dur) {
						continue
					}
					out = append(out, lpVariable{
						date:        d,
						jobID:       jobID,
						duration:    dur,
						start:       s,
						coefficient: coefficient(objective, js.HourlyRate, dur),
					})
				}
			}
		}
	}
	return out
}

func allHoursAvailable(p *problem.Problem, d time.Time, start, duration int) bool {
	for h := start; h < start+duration; h++ {
		if !p.Available(d, h) {
			return false
		}
	}
	return true
}

// coefficient implements spec §4.3's minimization-form objective
// coefficients; any objective other than minimize_hours falls back to the
// income coefficient, per spec's literal "default: fall back to income".
func coefficient(objective model.ObjectiveKind, rate float64, dur int) float64 {
	if objective == model.ObjectiveMinimizeHours {
		return float64(dur)
	}
	return -rate * float64(dur)
}

// greedySelect approximates the binary program with an iteration-capped
// greedy pass: candidates are considered in order of most-improving
// coefficient first, and accepted whenever they don't violate the daily,
// weekly, fuyou, or overlap constraints (spec §4.3 inequalities 1-4).
//
// For minimize_hours with no minimum_income constraint present, the
// unconstrained optimum of an all-positive-coefficient minimization is the
// empty schedule, so no candidates are added; when a minimum_income floor
// exists, candidates are instead ranked by hourly rate descending (most
// income per hour worked) to reach the floor in as few hours as possible.
func greedySelect(ctx context.Context, p *problem.Problem, candidates []lpVariable, objective model.ObjectiveKind, maxIter int) []lpVariable {
	minIncome, hasMinIncome := p.Constraints[model.ConstraintMinimumIncome]
	if objective == model.ObjectiveMinimizeHours && !hasMinIncome {
		return nil
	}

	ordered := make([]lpVariable, len(candidates))
	copy(ordered, candidates)

	if objective == model.ObjectiveMinimizeHours && hasMinIncome {
		sort.SliceStable(ordered, func(i, j int) bool {
			rateI := p.JobSources[ordered[i].jobID].HourlyRate
			rateJ := p.JobSources[ordered[j].jobID].HourlyRate
			if rateI != rateJ {
				return rateI > rateJ // highest $/hour first
			}
			return ordered[i].duration < ordered[j].duration
		})
	} else {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].coefficient < ordered[j].coefficient // most negative (best) first
		})
	}

	if len(ordered) > maxIter {
		ordered = ordered[:maxIter]
	}

	dailyLimit, hasDailyLimit := p.Constraints[model.ConstraintDailyHours]
	weeklyLimit, hasWeeklyLimit := p.Constraints[model.ConstraintWeeklyHours]
	fuyouLimit, hasFuyouLimit := p.Constraints[model.ConstraintFuyouLimit]
	proratedFuyou := 0.0
	if hasFuyouLimit {
		spanDays := float64(len(p.Dates))
		proratedFuyou = fuyouLimit.Value * (spanDays / 365.0)
	}

	dailyUsed := make(map[string]float64)
	weeklyUsed := make(map[string]float64)
	var fuyouUsed float64
	var minIncomeEarned float64
	bookedByDate := make(map[string][]lpVariable)

	var selected []lpVariable
	for i, v := range ordered {
		if i%64 == 0 {
			select {
			case <-ctx.Done():
				return selected
			default:
			}
		}
		if hasMinIncome && objective == model.ObjectiveMinimizeHours && minIncomeEarned >= minIncome.Value {
			break
		}

		dateKey := v.date.Format("2006-01-02")
		weekKey := problem.ISOWeekKey(v.date)
		rate := p.JobSources[v.jobID].HourlyRate

		if hasDailyLimit && dailyUsed[dateKey]+float64(v.duration) > dailyLimit.Value {
			continue
		}
		if hasWeeklyLimit && weeklyUsed[weekKey]+float64(v.duration) > weeklyLimit.Value {
			continue
		}
		if hasFuyouLimit && fuyouUsed+rate*float64(v.duration) > proratedFuyou {
			continue
		}

		conflict := false
		for _, other := range bookedByTheSameDate(bookedByDate, dateKey) {
			if overlapsWindow(v, other) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		dailyUsed[dateKey] += float64(v.duration)
		weeklyUsed[weekKey] += float64(v.duration)
		fuyouUsed += rate * float64(v.duration)
		minIncomeEarned += rate * float64(v.duration)
		bookedByDate[dateKey] = append(bookedByDate[dateKey], v)
		selected = append(selected, v)
	}

	return selected
}

func bookedByTheSameDate(m map[string][]lpVariable, dateKey string) []lpVariable {
	return m[dateKey]
}

func overlapsWindow(a, b lpVariable) bool {
	aEnd := a.start + a.duration
	bEnd := b.start + b.duration
	return !(aEnd <= b.start || bEnd <= a.start)
}

// lift converts selected binary variables into a SuggestedShift list (spec
// §4.3 "Lifting"). Every variable reaching this point has value 1 (the
// greedy pass never emits fractional members), satisfying the > 0.5
// threshold trivially.
func lift(p *problem.Problem, selected []lpVariable, objective model.ObjectiveKind) *model.OptimizationSolution {
	sol := &model.OptimizationSolution{ConstraintsSatisfied: make(map[model.ConstraintKind]bool)}

	var solverValue float64
	for _, v := range selected {
		breakMinutes := 0
		if v.duration > 6 {
			breakMinutes = 30
		}
		rate := p.JobSources[v.jobID].HourlyRate

		shift, err := model.NewSuggestedShift(
			newShiftID(), v.jobID, v.date, v.startClock(), v.endClock(),
			rate, breakMinutes, 0.9, model.PriorityHard,
			fmt.Sprintf("Linear programming selected a %dh shift starting %s to optimize %s", v.duration, v.startClock(), objective),
			false,
		)
		if err != nil {
			continue
		}
		sol.Shifts = append(sol.Shifts, shift)
		solverValue += v.coefficient
	}

	sol.RecomputeAggregates()
	if objective == model.ObjectiveMinimizeHours {
		sol.ObjectiveValue = solverValue
	} else {
		sol.ObjectiveValue = -solverValue
	}
	sol.Confidence = 0.9
	return sol
}
