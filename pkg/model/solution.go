package model

import "time"

// SuggestedShift is a single candidate shift proposed by a solver.
type SuggestedShift struct {
	ID                 string    `json:"id"`
	JobSourceID        string    `json:"job_source_id"`
	Date               time.Time `json:"date"`
	Start              string    `json:"start"` // HH:MM
	End                string    `json:"end"`   // HH:MM
	HourlyRate         float64   `json:"hourly_rate"`
	BreakMinutes       int       `json:"break_minutes"`
	WorkingHours       float64   `json:"working_hours"`
	CalculatedEarnings float64   `json:"calculated_earnings"`
	Confidence         float64   `json:"confidence"`
	Priority           int       `json:"priority"`
	Reasoning          string    `json:"reasoning"`
	IsOriginal         bool      `json:"is_original"`
}

// NewSuggestedShift builds a shift and fills WorkingHours/CalculatedEarnings
// from the span and break, keeping the invariant
// |earnings - working_hours*rate| <= 0.01 by construction.
func NewSuggestedShift(id, jobSourceID string, date time.Time, start, end string, rate float64, breakMinutes int, confidence float64, priority int, reasoning string, isOriginal bool) (SuggestedShift, error) {
	span, err := SpanHours(start, end)
	if err != nil {
		return SuggestedShift{}, err
	}
	working := span - float64(breakMinutes)/60.0
	return SuggestedShift{
		ID:                 id,
		JobSourceID:        jobSourceID,
		Date:               date,
		Start:              start,
		End:                end,
		HourlyRate:         rate,
		BreakMinutes:       breakMinutes,
		WorkingHours:       working,
		CalculatedEarnings: working * rate,
		Confidence:         confidence,
		Priority:           priority,
		Reasoning:          reasoning,
		IsOriginal:         isOriginal,
	}, nil
}

// OptimizationSolution is the full result of an optimization run.
type OptimizationSolution struct {
	Shifts               []SuggestedShift        `json:"shifts"`
	ObjectiveValue       float64                  `json:"objective_value"`
	ConstraintsSatisfied map[ConstraintKind]bool  `json:"constraints_satisfied"`
	Algorithm            AlgorithmKind            `json:"algorithm"`
	ExecutionTimeMS      int64                    `json:"execution_time_ms"`
	Confidence           float64                  `json:"confidence"`
	TotalIncome          float64                  `json:"total_income"`
	TotalHours           float64                  `json:"total_hours"`
	TotalShifts          int                      `json:"total_shifts"`
	PerJobDistribution   map[string]int           `json:"per_job_distribution"`
	Metadata             map[string]any           `json:"metadata,omitempty"`
}

// RecomputeAggregates recalculates TotalIncome/TotalHours/TotalShifts and
// PerJobDistribution from Shifts, preserving the aggregate invariant.
func (s *OptimizationSolution) RecomputeAggregates() {
	var income, hours float64
	dist := make(map[string]int)
	for _, sh := range s.Shifts {
		income += sh.CalculatedEarnings
		hours += sh.WorkingHours
		dist[sh.JobSourceID]++
	}
	s.TotalIncome = income
	s.TotalHours = hours
	s.TotalShifts = len(s.Shifts)
	s.PerJobDistribution = dist
}
