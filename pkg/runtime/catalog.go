package runtime

import "github.com/shiftopt/scheduler/pkg/model"

// AlgorithmInfo describes one entry in the /algorithms catalog.
type AlgorithmInfo struct {
	ID              model.AlgorithmKind `json:"id"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Complexity      string              `json:"complexity"`
	ExecutionTime   string              `json:"execution_time"`
	SuitableFor     []string            `json:"suitable_for"`
	TierRequirement model.TierLevel     `json:"tier_requirement"`
}

// Catalog lists every algorithm kind with its descriptive metadata,
// returned by GET /algorithms.
var Catalog = []AlgorithmInfo{
	{
		ID:              model.AlgorithmLinearProgramming,
		Name:            "Linear Programming",
		Description:     "Formulates the horizon as a binary decision program and solves it with greedy relaxation under daily/weekly/fuyou/overlap constraints.",
		Complexity:      "low",
		ExecutionTime:   "fast",
		SuitableFor:     []string{"maximize_income", "minimize_hours"},
		TierRequirement: model.TierFree,
	},
	{
		ID:              model.AlgorithmGeneticAlgorithm,
		Name:            "Genetic Algorithm",
		Description:     "Evolves a population of candidate schedules across generations with tournament selection, elitism, crossover, and mutation.",
		Complexity:      "medium",
		ExecutionTime:   "moderate",
		SuitableFor:     []string{"maximize_income", "minimize_hours", "balance_sources"},
		TierRequirement: model.TierStandard,
	},
	{
		ID:              model.AlgorithmMultiObjectiveNSGA2,
		Name:            "Multi-Objective (NSGA-II-shaped)",
		Description:     "Balances income, hours, and source distribution simultaneously.",
		Complexity:      "high",
		ExecutionTime:   "slow",
		SuitableFor:     []string{"multi_objective", "balance_sources"},
		TierRequirement: model.TierPro,
	},
	{
		ID:              model.AlgorithmSimulatedAnnealing,
		Name:            "Simulated Annealing",
		Description:     "Enumerated as a recognized algorithm kind; no tier currently allows it and no dedicated strategy exists, so it resolves to the deterministic fallback schedule if ever requested directly.",
		Complexity:      "n/a",
		ExecutionTime:   "n/a",
		SuitableFor:     []string{},
		TierRequirement: model.TierPro,
	},
}
