package model

import "time"

// JobSource is an employer record. Immutable within a request.
type JobSource struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	HourlyRate          float64  `json:"hourly_rate"`
	Active              bool     `json:"active"`
	ExpectedMonthlyHours *float64 `json:"expected_monthly_hours,omitempty"`
	DefaultBreakMinutes int      `json:"default_break_minutes"`
}

// ExistingShift is a committed work block.
type ExistingShift struct {
	Date         time.Time `json:"date"`
	Start        string    `json:"start"` // HH:MM
	End          string    `json:"end"`   // HH:MM
	JobSourceID  string    `json:"job_source_id"`
	Confirmed    bool      `json:"confirmed"`
	HourlyRate   float64   `json:"hourly_rate"`
	BreakMinutes int       `json:"break_minutes"`
}

// AvailabilitySlot is a recurring weekly availability window.
type AvailabilitySlot struct {
	DayOfWeek   int     `json:"day_of_week"` // 0=Sunday..6=Saturday
	Start       string  `json:"start"`       // HH:MM
	End         string  `json:"end"`         // HH:MM
	Available   bool    `json:"available"`
	JobSourceID *string `json:"job_source_id,omitempty"`
	Priority    int     `json:"priority"` // 1=hard preferred, 2=soft, 3=nice
}

// Constraint is a single scheduling constraint of a given kind.
type Constraint struct {
	Kind     ConstraintKind `json:"kind"`
	Value    float64        `json:"value"`
	Unit     string         `json:"unit"`
	Priority int            `json:"priority"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SolverPreferences tunes solver behavior. Zero values mean "use the
// component default" (§4.3 default max_iterations=1000, §5 default
// timeout).
type SolverPreferences struct {
	MaxIterations int           `json:"max_iterations,omitempty"`
	Timeout       time.Duration `json:"timeout,omitempty"`
	PopulationSize int          `json:"population_size,omitempty"`
	Generations    int          `json:"generations,omitempty"`
}

// OptimizationRequest is the top-level input to the optimization engine.
type OptimizationRequest struct {
	UserID            string             `json:"user_id"`
	Objective         ObjectiveKind      `json:"objective"`
	Algorithm         AlgorithmKind      `json:"algorithm"`
	Start             time.Time          `json:"start"`
	End               time.Time          `json:"end"`
	Constraints       []Constraint       `json:"constraints"`
	JobSources        []JobSource        `json:"job_sources"`
	ExistingShifts    []ExistingShift    `json:"existing_shifts,omitempty"`
	AvailabilitySlots []AvailabilitySlot `json:"availability_slots,omitempty"`
	Preferences       SolverPreferences  `json:"preferences"`
	Tier              TierLevel          `json:"tier"`
}

// ConstraintByKind returns the request's constraint of the given kind, if
// present. Requests are validated to carry at most one per kind.
func (r *OptimizationRequest) ConstraintByKind(kind ConstraintKind) (Constraint, bool) {
	for _, c := range r.Constraints {
		if c.Kind == kind {
			return c, true
		}
	}
	return Constraint{}, false
}

// SpanDays returns the number of days in the request's half-open horizon.
func (r *OptimizationRequest) SpanDays() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}
