package model

// ObjectiveKind selects the utility function the solver maximizes (or
// minimizes) a schedule against.
type ObjectiveKind string

const (
	ObjectiveMaximizeIncome ObjectiveKind = "maximize_income"
	ObjectiveMinimizeHours  ObjectiveKind = "minimize_hours"
	ObjectiveBalanceSources ObjectiveKind = "balance_sources"
	ObjectiveMultiObjective ObjectiveKind = "multi_objective"
)

// AlgorithmKind selects which solver strategy handles a request.
type AlgorithmKind string

const (
	AlgorithmLinearProgramming AlgorithmKind = "linear_programming"
	AlgorithmGeneticAlgorithm  AlgorithmKind = "genetic_algorithm"
	AlgorithmSimulatedAnnealing AlgorithmKind = "simulated_annealing"
	AlgorithmMultiObjectiveNSGA2 AlgorithmKind = "multi_objective_nsga2"
)

// TierLevel gates which algorithms and quotas a request may use.
type TierLevel string

const (
	TierFree     TierLevel = "free"
	TierStandard TierLevel = "standard"
	TierPro      TierLevel = "pro"
)

// ConstraintKind enumerates the recognized constraint kinds. AVAILABILITY
// and JOB_SOURCE_LIMIT are accepted and validated but never consulted by any
// solver path (spec §9).
type ConstraintKind string

const (
	ConstraintFuyouLimit        ConstraintKind = "fuyou_limit"
	ConstraintWeeklyHours       ConstraintKind = "weekly_hours"
	ConstraintDailyHours        ConstraintKind = "daily_hours"
	ConstraintAvailability      ConstraintKind = "availability"
	ConstraintJobSourceLimit    ConstraintKind = "job_source_limit"
	ConstraintMinimumIncome     ConstraintKind = "minimum_income"
	ConstraintBreakConstraints  ConstraintKind = "break_constraints"
)

// Priority levels shared by Constraint and AvailabilitySlot.
const (
	PriorityHard = 1
	PrioritySoft = 2
	PriorityNice = 3
)

// RunState is the lifecycle state of an asynchronous optimization run.
type RunState string

const (
	RunStarted   RunState = "started"
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunFailed    RunState = "failed"
	RunCancelled RunState = "cancelled"
)

// AllAlgorithms lists every algorithm kind.
var AllAlgorithms = []AlgorithmKind{
	AlgorithmLinearProgramming,
	AlgorithmGeneticAlgorithm,
	AlgorithmSimulatedAnnealing,
	AlgorithmMultiObjectiveNSGA2,
}
