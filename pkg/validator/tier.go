package validator

import "github.com/shiftopt/scheduler/pkg/model"

// Unlimited marks a TierLimits field as having no cap.
const Unlimited = -1

// TierLimits bounds what a request at a given tier may do (spec §6).
type TierLimits struct {
	MaxRuns           int
	AllowedAlgorithms []model.AlgorithmKind
	MaxConstraints    int
	MaxHorizonDays    int
}

// DefaultTierLimits returns the tier table from spec §6. Callers may
// construct a Validator with a different table (e.g. for tests).
func DefaultTierLimits() map[model.TierLevel]TierLimits {
	return map[model.TierLevel]TierLimits{
		model.TierFree: {
			MaxRuns:           5,
			AllowedAlgorithms: []model.AlgorithmKind{model.AlgorithmLinearProgramming},
			MaxConstraints:    5,
			MaxHorizonDays:    30,
		},
		model.TierStandard: {
			MaxRuns: 50,
			AllowedAlgorithms: []model.AlgorithmKind{
				model.AlgorithmLinearProgramming,
				model.AlgorithmGeneticAlgorithm,
			},
			MaxConstraints: 15,
			MaxHorizonDays: 90,
		},
		model.TierPro: {
			MaxRuns: Unlimited,
			AllowedAlgorithms: []model.AlgorithmKind{
				model.AlgorithmLinearProgramming,
				model.AlgorithmGeneticAlgorithm,
				model.AlgorithmMultiObjectiveNSGA2,
			},
			MaxConstraints: Unlimited,
			MaxHorizonDays: 365,
		},
	}
}

func (t TierLimits) allows(algo model.AlgorithmKind) bool {
	for _, a := range t.AllowedAlgorithms {
		if a == algo {
			return true
		}
	}
	return false
}
