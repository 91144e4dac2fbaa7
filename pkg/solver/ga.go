package solver

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/shiftopt/scheduler/pkg/problem"
)

const (
	gaDefaultPopulation = 50
	gaDefaultGenerations = 100
	gaTournamentSize    = 3
	gaElitismFraction   = 0.2
	gaCrossoverRate     = 0.8
	gaMutationRate      = 0.1
	gaMinDuration       = 2
	gaMaxDuration       = 8
	gaInclusionProb     = 0.6
	gaFuyouCeiling      = 1_030_000.0
)

// gaGene is one candidate shift inside an individual's chromosome, kept in
// the compact (date, duration, jobID) form spec §4.4 describes rather than
// the full SuggestedShift, so crossover/mutation stay cheap.
type gaGene struct {
	date     time.Time
	jobID    string
	duration int
	start    int
}

type gaIndividual struct {
	genes   []gaGene
	fitness float64
}

// GeneticAlgorithmOptimizer evolves a population of candidate schedules
// (spec §4.4). It yields between generations so long runs remain
// cancellable (spec §5 "explicit yields between generations").
type GeneticAlgorithmOptimizer struct{}

func (o *GeneticAlgorithmOptimizer) Optimize(ctx context.Context, p *problem.Problem, objective model.ObjectiveKind, prefs model.SolverPreferences) (*model.OptimizationSolution, error) {
	start := time.Now()

	activeJobs := activeJobIDs(p)
	if len(activeJobs) == 0 || len(p.Dates) == 0 {
		sol := Fallback(p, objective, "no active job sources available for genetic search")
		sol.Algorithm = model.AlgorithmGeneticAlgorithm
		sol.ExecutionTimeMS = time.Since(start).Milliseconds()
		return sol, nil
	}

	popSize := prefs.PopulationSize
	if popSize <= 0 {
		popSize = gaDefaultPopulation
	}
	generations := prefs.Generations
	if generations <= 0 {
		generations = gaDefaultGenerations
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	population := make([]*gaIndividual, popSize)
	for i := range population {
		population[i] = randomIndividual(rng, p, activeJobs)
	}

	var best *gaIndividual

evolve:
	for gen := 0; gen < generations; gen++ {
		select {
		case <-ctx.Done():
			break evolve
		default:
		}

		for _, ind := range population {
			ind.fitness = evaluateFitness(p, ind, objective)
			if best == nil || ind.fitness > best.fitness {
				clone := *ind
				clone.genes = append([]gaGene(nil), ind.genes...)
				best = &clone
			}
		}

		sort.SliceStable(population, func(i, j int) bool { return population[i].fitness > population[j].fitness })

		eliteCount := int(math.Round(float64(popSize) * gaElitismFraction))
		next := make([]*gaIndividual, 0, popSize)
		for i := 0; i < eliteCount && i < len(population); i++ {
			clone := *population[i]
			clone.genes = append([]gaGene(nil), population[i].genes...)
			next = append(next, &clone)
		}

		for len(next) < popSize {
			parentA := tournamentSelect(rng, population)
			parentB := tournamentSelect(rng, population)
			var child *gaIndividual
			if rng.Float64() < gaCrossoverRate {
				child = crossover(rng, parentA, parentB)
			} else {
				clone := *parentA
				clone.genes = append([]gaGene(nil), parentA.genes...)
				child = &clone
			}
			if rng.Float64() < gaMutationRate {
				mutate(rng, child, p, activeJobs)
			}
			next = append(next, child)
		}
		population = next
	}

	if best == nil {
		best = population[0]
	}

	sol := liftIndividual(p, best, objective)
	postProcess(sol, objective)
	sol.RecomputeAggregates()
	sol.Algorithm = model.AlgorithmGeneticAlgorithm
	sol.Confidence = 0.85
	sol.ExecutionTimeMS = time.Since(start).Milliseconds()
	if sol.Metadata == nil {
		sol.Metadata = map[string]any{}
	}
	sol.Metadata["literal_annual_threshold"] = true
	return sol, nil
}

func activeJobIDs(p *problem.Problem) []string {
	var ids []string
	keys := make([]string, 0, len(p.JobSources))
	for id := range p.JobSources {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	for _, id := range keys {
		if p.JobSources[id].Active {
			ids = append(ids, id)
		}
	}
	return ids
}

func randomIndividual(rng *rand.Rand, p *problem.Problem, jobIDs []string) *gaIndividual {
	ind := &gaIndividual{}
	for _, d := range p.Dates {
		if rng.Float64() > gaInclusionProb {
			continue
		}
		jobID := jobIDs[rng.Intn(len(jobIDs))]
		duration := gaMinDuration + rng.Intn(gaMaxDuration-gaMinDuration+1)
		maxStart := candidateEndMax - duration
		if maxStart < candidateStartMin {
			continue
		}
		startSpan := maxStart - candidateStartMin + 1
		startHour := candidateStartMin + rng.Intn(startSpan)
		ind.genes = append(ind.genes, gaGene{date: d, jobID: jobID, duration: duration, start: startHour})
	}
	return ind
}

func tournamentSelect(rng *rand.Rand, population []*gaIndividual) *gaIndividual {
	best := population[rng.Intn(len(population))]
	for i := 1; i < gaTournamentSize; i++ {
		candidate := population[rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return best
}

// crossover unions both parents' genes and samples a random subset sized in
// [5,15], per spec §4.4.
func crossover(rng *rand.Rand, a, b *gaIndividual) *gaIndividual {
	union := append(append([]gaGene(nil), a.genes...), b.genes...)
	if len(union) == 0 {
		return &gaIndividual{}
	}
	rng.Shuffle(len(union), func(i, j int) { union[i], union[j] = union[j], union[i] })

	size := 5 + rng.Intn(11)
	if size > len(union) {
		size = len(union)
	}
	return &gaIndividual{genes: append([]gaGene(nil), union[:size]...)}
}

// mutate perturbs a random gene's duration by N(0,1) clamped to [2,8], or
// resamples its job source (spec §4.4).
func mutate(rng *rand.Rand, ind *gaIndividual, p *problem.Problem, jobIDs []string) {
	if len(ind.genes) == 0 {
		return
	}
	i := rng.Intn(len(ind.genes))
	if rng.Float64() < 0.5 {
		delta := int(math.Round(rng.NormFloat64()))
		dur := ind.genes[i].duration + delta
		if dur < gaMinDuration {
			dur = gaMinDuration
		}
		if dur > gaMaxDuration {
			dur = gaMaxDuration
		}
		if ind.genes[i].start+dur > candidateEndMax {
			dur = candidateEndMax - ind.genes[i].start
		}
		ind.genes[i].duration = dur
	} else {
		ind.genes[i].jobID = jobIDs[rng.Intn(len(jobIDs))]
	}
}

// evaluateFitness maps the request's objective kind onto spec §4.4's three
// named fitness functions, applies the earnings/weekly-hours penalty, and
// floors at 0.
func evaluateFitness(p *problem.Problem, ind *gaIndividual, objective model.ObjectiveKind) float64 {
	shifts := materializeShifts(p, ind)

	var earnings, totalHours float64
	hoursByWeek := make(map[string]float64)
	for _, sh := range shifts {
		earnings += sh.CalculatedEarnings
		totalHours += sh.WorkingHours
		hoursByWeek[problem.ISOWeekKey(sh.Date)] += sh.WorkingHours
	}

	var raw float64
	switch objective {
	case model.ObjectiveMinimizeHours:
		raw = math.Max(0, 2_000_000-earnings) / 2_000_000
	case model.ObjectiveBalanceSources:
		raw = math.Max(0, 1-math.Abs(totalHours-100)/100)
	default: // maximize_income and any other kind fall back to earnings, per §4.3's own "default: fall back to income"
		raw = earnings / 1_000_000
	}

	var penalty float64
	if earnings > gaFuyouCeiling {
		penalty += (earnings - gaFuyouCeiling) / 100_000 * 0.5
	}
	if avgWeekly := averageOf(hoursByWeek); avgWeekly > 40 {
		penalty += 0.1 * (avgWeekly - 40)
	}

	return math.Max(0, raw-penalty)
}

func averageOf(m map[string]float64) float64 {
	if len(m) == 0 {
		return 0
	}
	var sum float64
	for _, v := range m {
		sum += v
	}
	return sum / float64(len(m))
}

func materializeShifts(p *problem.Problem, ind *gaIndividual) []model.SuggestedShift {
	shifts := make([]model.SuggestedShift, 0, len(ind.genes))
	for _, g := range ind.genes {
		job, ok := p.JobSources[g.jobID]
		if !ok {
			continue
		}
		breakMinutes := 0
		if g.duration > 6 {
			breakMinutes = 30
		}
		shift, err := model.NewSuggestedShift(
			newShiftID(), g.jobID, g.date,
			fmt.Sprintf("%02d:00", g.start), fmt.Sprintf("%02d:00", g.start+g.duration),
			job.HourlyRate, breakMinutes, 0.85, model.PrioritySoft,
			"Genetic search selected this shift to improve fitness across generations", false,
		)
		if err != nil {
			continue
		}
		shifts = append(shifts, shift)
	}
	return shifts
}

func liftIndividual(p *problem.Problem, ind *gaIndividual, objective model.ObjectiveKind) *model.OptimizationSolution {
	sol := &model.OptimizationSolution{ConstraintsSatisfied: make(map[model.ConstraintKind]bool)}
	sol.Shifts = materializeShifts(p, ind)
	sol.ObjectiveValue = ind.fitness
	return sol
}

// postProcess applies spec §4.4's per-objective finishing pass.
func postProcess(sol *model.OptimizationSolution, objective model.ObjectiveKind) {
	switch objective {
	case model.ObjectiveMaximizeIncome:
		sort.SliceStable(sol.Shifts, func(i, j int) bool { return sol.Shifts[i].HourlyRate > sol.Shifts[j].HourlyRate })
	case model.ObjectiveMinimizeHours:
		sort.SliceStable(sol.Shifts, func(i, j int) bool {
			return sol.Shifts[i].CalculatedEarnings > sol.Shifts[j].CalculatedEarnings
		})
		var cumulative float64
		kept := sol.Shifts[:0]
		for _, sh := range sol.Shifts {
			if cumulative+sh.CalculatedEarnings > gaFuyouCeiling {
				continue
			}
			cumulative += sh.CalculatedEarnings
			kept = append(kept, sh)
		}
		sol.Shifts = kept
	}
}
