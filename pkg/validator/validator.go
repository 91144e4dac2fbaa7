package validator

import (
	"time"

	"github.com/shiftopt/scheduler/pkg/model"
)

// Config holds the configurable thresholds used by the constraint and
// job-source checks. All values have sensible spec-literal defaults but may
// be overridden (spec §4.1: "illustrative; all configurable").
type Config struct {
	DailyHoursMin       float64
	DailyHoursMax       float64
	WeeklyHoursWarn     float64
	FuyouLimitMin       float64
	FuyouLimitMax       float64
	MaxHorizonDays      int
	PastStartWarnDays   int
	FutureEndWarnDays   int
	RateWarnHigh        float64
	RateWarnLow         float64
}

// DefaultConfig returns the literal thresholds from spec §4.1.
func DefaultConfig() Config {
	return Config{
		DailyHoursMin:     1,
		DailyHoursMax:     16,
		WeeklyHoursWarn:   80,
		FuyouLimitMin:     500_000,
		FuyouLimitMax:     5_000_000,
		MaxHorizonDays:    365,
		PastStartWarnDays: 30,
		FutureEndWarnDays: 365,
		RateWarnHigh:      10_000,
		RateWarnLow:       800,
	}
}

// RunCounter reports how many optimization runs a user has already started,
// so ValidateTier can enforce each tier's "Max runs" quota (spec §6). A nil
// RunCounter disables the check, which is what the bare constraint/job-source
// tests in this package want.
type RunCounter interface {
	UserRunCount(userID string) int
}

// Validator runs the full pre-solve cascade.
type Validator struct {
	cfg        Config
	tierLimits map[model.TierLevel]TierLimits
	runs       RunCounter
}

// New constructs a Validator with the given config, tier table, and run
// counter. runs may be nil to skip the per-tier run-quota check.
func New(cfg Config, tierLimits map[model.TierLevel]TierLimits, runs RunCounter) *Validator {
	return &Validator{cfg: cfg, tierLimits: tierLimits, runs: runs}
}

// NewDefault constructs a Validator using spec-literal defaults and no run
// counter (run-quota enforcement is opt-in via New).
func NewDefault() *Validator {
	return New(DefaultConfig(), DefaultTierLimits(), nil)
}

// Validate runs every stage of the cascade and merges their results. The
// caller should treat req as inadmissible whenever the merged result's
// IsValid() is false.
func (v *Validator) Validate(req *model.OptimizationRequest) Result {
	var out Result
	out.Merge(v.ValidateTier(req))
	out.Merge(v.ValidateConstraints(req))
	out.Merge(v.ValidateTimeRange(req))
	out.Merge(v.ValidateJobSources(req))
	return out
}

// ValidateTier checks algorithm eligibility, constraint count, and horizon
// length against the request's tier (spec §4.1 "Tier check").
func (v *Validator) ValidateTier(req *model.OptimizationRequest) Result {
	var r Result

	limits, ok := v.tierLimits[req.Tier]
	if !ok {
		r.addViolation("unknown tier %q", req.Tier)
		return r
	}

	if !limits.allows(req.Algorithm) {
		r.addViolation("algorithm %q is not available for tier %q", req.Algorithm, req.Tier)
	}

	if limits.MaxRuns != Unlimited && v.runs != nil {
		if used := v.runs.UserRunCount(req.UserID); used >= limits.MaxRuns {
			r.addViolation("tier %q allows at most %d runs, user %q has started %d", req.Tier, limits.MaxRuns, req.UserID, used)
		}
	}

	if limits.MaxConstraints != Unlimited && len(req.Constraints) > limits.MaxConstraints {
		r.addViolation("tier %q allows at most %d constraints, request has %d", req.Tier, limits.MaxConstraints, len(req.Constraints))
	}

	if limits.MaxHorizonDays != Unlimited {
		span := req.End.Sub(req.Start)
		if span > time.Duration(limits.MaxHorizonDays)*24*time.Hour {
			r.addViolation("tier %q allows at most %d day horizon, request spans %.0f days", req.Tier, limits.MaxHorizonDays, span.Hours()/24)
		}
	}

	return r
}

// ValidateConstraints checks constraint structure, per-kind ranges, and
// cross-constraint compatibility (spec §4.1 "Constraint checks").
func (v *Validator) ValidateConstraints(req *model.OptimizationRequest) Result {
	var r Result

	if len(req.Constraints) == 0 {
		r.addViolation("constraint list must not be empty")
		return r
	}

	seen := make(map[model.ConstraintKind]model.Constraint)
	for _, c := range req.Constraints {
		if _, dup := seen[c.Kind]; dup {
			r.addViolation("duplicate constraint types")
			continue
		}
		seen[c.Kind] = c

		if c.Value <= 0 {
			r.addViolation("constraint %q value must be strictly positive, got %v", c.Kind, c.Value)
			continue
		}

		switch c.Kind {
		case model.ConstraintDailyHours:
			if c.Value < v.cfg.DailyHoursMin || c.Value > v.cfg.DailyHoursMax {
				r.addViolation("daily_hours must be in [%v, %v], got %v", v.cfg.DailyHoursMin, v.cfg.DailyHoursMax, c.Value)
			}
		case model.ConstraintWeeklyHours:
			if c.Value > v.cfg.WeeklyHoursWarn {
				r.addWarning("weekly_hours %v exceeds the usual range (%v)", c.Value, v.cfg.WeeklyHoursWarn)
			}
		case model.ConstraintFuyouLimit:
			if c.Value < v.cfg.FuyouLimitMin || c.Value > v.cfg.FuyouLimitMax {
				r.addWarning("fuyou_limit %v is outside the usual range [%v, %v]", c.Value, v.cfg.FuyouLimitMin, v.cfg.FuyouLimitMax)
			}
		}
	}

	if daily, hasDaily := seen[model.ConstraintDailyHours]; hasDaily {
		if weekly, hasWeekly := seen[model.ConstraintWeeklyHours]; hasWeekly {
			if weekly.Value > 7*daily.Value {
				r.addViolation("weekly_hours (%v) exceeds 7x daily_hours (%v)", weekly.Value, daily.Value)
			}
		}
	}

	if fuyou, hasFuyou := seen[model.ConstraintFuyouLimit]; hasFuyou {
		if weekly, hasWeekly := seen[model.ConstraintWeeklyHours]; hasWeekly {
			if 52*weekly.Value*1000 > 2*fuyou.Value {
				r.addWarning("weekly_hours (%v) combined with fuyou_limit (%v) may be incompatible over a year", weekly.Value, fuyou.Value)
			}
		}
	}

	return r
}

// ValidateTimeRange checks the request's horizon (spec §4.1 "Time-range
// check").
func (v *Validator) ValidateTimeRange(req *model.OptimizationRequest) Result {
	var r Result

	if !req.Start.Before(req.End) {
		r.addViolation("start must precede end")
		return r
	}

	span := req.End.Sub(req.Start)
	if span > time.Duration(v.cfg.MaxHorizonDays)*24*time.Hour {
		r.addViolation("horizon spans %.0f days, exceeding the %d day maximum", span.Hours()/24, v.cfg.MaxHorizonDays)
	}

	now := time.Now()
	if req.Start.Before(now.AddDate(0, 0, -v.cfg.PastStartWarnDays)) {
		r.addWarning("start is more than %d days in the past", v.cfg.PastStartWarnDays)
	}
	if req.End.After(now.AddDate(0, 0, v.cfg.FutureEndWarnDays)) {
		r.addWarning("end is more than %d days in the future", v.cfg.FutureEndWarnDays)
	}

	return r
}

// ValidateJobSources checks the request's job-source catalog (spec §4.1
// "Job-source check").
func (v *Validator) ValidateJobSources(req *model.OptimizationRequest) Result {
	var r Result

	if len(req.JobSources) == 0 {
		r.addViolation("job source list must not be empty")
		return r
	}

	seen := make(map[string]bool, len(req.JobSources))
	for _, js := range req.JobSources {
		if seen[js.ID] {
			r.addViolation("duplicate job source id %q", js.ID)
			continue
		}
		seen[js.ID] = true

		if js.HourlyRate <= 0 {
			r.addViolation("job source %q rate must be positive, got %v", js.ID, js.HourlyRate)
			continue
		}
		if js.HourlyRate > v.cfg.RateWarnHigh {
			r.addWarning("job source %q rate %v exceeds the usual range", js.ID, js.HourlyRate)
		}
		if js.HourlyRate < v.cfg.RateWarnLow {
			r.addWarning("job source %q rate %v is below the usual range", js.ID, js.HourlyRate)
		}
	}

	return r
}
