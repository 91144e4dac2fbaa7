// Package solver implements the three solver strategies (§4.3-4.5) behind a
// common Optimizer interface, dispatched by algorithm kind (spec §9
// "polymorphic solvers").
package solver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/shiftopt/scheduler/pkg/problem"
)

// Optimizer converts a Problem plus objective/preferences into a solution.
// Implementations never return an error for numeric non-convergence — they
// catch it internally and degrade to a deterministic fallback (spec §7
// "Solver failures... not fatal").
type Optimizer interface {
	Optimize(ctx context.Context, p *problem.Problem, objective model.ObjectiveKind, prefs model.SolverPreferences) (*model.OptimizationSolution, error)
}

// ErrUnsupportedAlgorithm is returned by Dispatch for an algorithm kind with
// no registered strategy.
type ErrUnsupportedAlgorithm struct {
	Algorithm model.AlgorithmKind
}

func (e *ErrUnsupportedAlgorithm) Error() string {
	return fmt.Sprintf("no solver strategy registered for algorithm %q", e.Algorithm)
}

// Dispatch resolves an algorithm kind to its Optimizer. Algorithm kinds
// enumerated in the data model but never given a dedicated component (spec
// §9: simulated_annealing is listed in model.AlgorithmKind but no tier ever
// allows it and §4 describes no dedicated strategy for it) resolve to the
// same deterministic fallback path a convergence failure would use.
func Dispatch(algo model.AlgorithmKind) Optimizer {
	switch algo {
	case model.AlgorithmLinearProgramming:
		return &LinearProgrammingOptimizer{}
	case model.AlgorithmGeneticAlgorithm:
		return &GeneticAlgorithmOptimizer{}
	case model.AlgorithmMultiObjectiveNSGA2:
		return &MultiObjectiveOptimizer{}
	default:
		return &fallbackOnlyOptimizer{algo: algo}
	}
}

// fallbackOnlyOptimizer always returns the deterministic fallback schedule.
// Used for algorithm kinds with no dedicated strategy.
type fallbackOnlyOptimizer struct {
	algo model.AlgorithmKind
}

func (o *fallbackOnlyOptimizer) Optimize(_ context.Context, p *problem.Problem, objective model.ObjectiveKind, _ model.SolverPreferences) (*model.OptimizationSolution, error) {
	sol := Fallback(p, objective, fmt.Sprintf("no dedicated strategy for algorithm %q", o.algo))
	sol.Algorithm = o.algo
	return sol, nil
}

func newShiftID() string {
	return uuid.NewString()
}
