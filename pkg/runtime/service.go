// Package runtime wires the validator, problem builder, solver dispatch,
// and solution validator into a single long-lived Service (spec §9 "model
// as a single Service value constructed at startup and passed explicitly").
package runtime

import (
	"context"
	"time"

	"github.com/shiftopt/scheduler/internal/config"
	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/shiftopt/scheduler/pkg/problem"
	"github.com/shiftopt/scheduler/pkg/solutionvalidator"
	"github.com/shiftopt/scheduler/pkg/solver"
	"github.com/shiftopt/scheduler/pkg/validator"
)

// Service is the process-wide entry point for every optimization
// operation. It is constructed once at startup and holds no per-request
// mutable state of its own beyond the guarded RunStore and Metrics.
type Service struct {
	cfg       *config.Config
	validator *validator.Validator
	runs      *RunStore
	metrics   *MetricsRecorder
	slots     chan struct{} // concurrency semaphore sized by MaxConcurrentOptimizations
}

// NewService builds a Service from cfg. Pass nil to use config.DefaultConfig().
func NewService(cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	capacity := cfg.Limits.MaxConcurrentOptimizations
	if capacity <= 0 {
		capacity = 1
	}
	runs := NewRunStore()
	return &Service{
		cfg:       cfg,
		validator: validator.New(validator.DefaultConfig(), validator.DefaultTierLimits(), runs),
		runs:      runs,
		metrics:   NewMetricsRecorder(),
		slots:     make(chan struct{}, capacity),
	}
}

// Config exposes the service's configuration for the API layer.
func (s *Service) Config() *config.Config { return s.cfg }

// Metrics exposes the metrics recorder for the API layer.
func (s *Service) Metrics() *MetricsRecorder { return s.metrics }

// ValidateConstraints runs the full pre-solve cascade against req without
// solving it (spec §6 POST /validate/constraints).
func (s *Service) ValidateConstraints(req *model.OptimizationRequest) validator.Result {
	return s.validator.Validate(req)
}

// OptimizeResult bundles everything a caller needs to build an HTTP
// response: the solution itself, the pre-solve validation result, and the
// post-solve check.
type OptimizeResult struct {
	Solution        *model.OptimizationSolution
	PreValidation   validator.Result
	PostValidation  solutionvalidator.Result
}

// Optimize runs the full synchronous pipeline: validate, build the
// problem, dispatch to the chosen solver, then post-solve check (spec
// §4.1-§4.7). Returns a non-nil error only for conditions §7 calls
// "unexpected" (ctx ending while waiting for a free concurrency slot, or a
// solver error); validation failures are reported through PreValidation
// instead.
func (s *Service) Optimize(ctx context.Context, req *model.OptimizationRequest) (*OptimizeResult, error) {
	pre := s.validator.Validate(req)
	if !pre.IsValid() {
		s.metrics.RecordViolations(violatedKinds(req))
		return &OptimizeResult{PreValidation: pre}, nil
	}
	s.runs.IncrementUserRuns(req.UserID)

	if err := s.acquireSlot(ctx); err != nil {
		return nil, err
	}
	defer s.releaseSlot()

	start := time.Now()

	timeout := s.cfg.Limits.MaxOptimizationTime
	if req.Preferences.Timeout > 0 {
		timeout = req.Preferences.Timeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prefs := req.Preferences
	if prefs.PopulationSize <= 0 {
		prefs.PopulationSize = s.cfg.Genetic.Population
	}
	if prefs.Generations <= 0 {
		prefs.Generations = s.cfg.Genetic.Generations
	}

	p := problem.Build(req)
	optimizer := solver.Dispatch(req.Algorithm)
	sol, err := optimizer.Optimize(runCtx, p, req.Objective, prefs)
	if err != nil {
		s.metrics.RecordFailure(time.Since(start).Milliseconds())
		return nil, err
	}

	if runCtx.Err() != nil {
		if sol.Metadata == nil {
			sol.Metadata = map[string]any{}
		}
		sol.Metadata["timed_out"] = true
	}

	post := solutionvalidator.Check(p, sol)
	s.metrics.RecordSuccess(sol.Algorithm, time.Since(start).Milliseconds())

	return &OptimizeResult{Solution: sol, PreValidation: pre, PostValidation: post}, nil
}

// StartAsync validates req, registers a new run, and solves it on a
// detached goroutine, returning immediately with the run_id (spec §6 POST
// /optimize/async).
func (s *Service) StartAsync(req *model.OptimizationRequest) (string, validator.Result) {
	pre := s.validator.Validate(req)
	if !pre.IsValid() {
		return "", pre
	}

	runID := newRunID()
	s.runs.Start(runID)

	go func() {
		s.runs.Update(runID, model.RunRunning, 0.1, "solving")

		ctx := context.Background()
		result, err := s.Optimize(ctx, req)
		if err != nil {
			s.runs.Complete(runID, model.RunFailed, nil, err.Error())
			return
		}
		if !result.PreValidation.IsValid() {
			s.runs.Complete(runID, model.RunFailed, nil, "validation failed after async dispatch")
			return
		}
		s.runs.Complete(runID, model.RunCompleted, result.Solution, "completed")
	}()

	return runID, pre
}

// Status polls a run by id (spec §6 GET /optimize/status/{run_id}).
func (s *Service) Status(runID string) (model.RunStatus, bool) {
	return s.runs.Get(runID)
}

// Shutdown cancels every active run. Called from the graceful-shutdown
// path in cmd/shiftopt.
func (s *Service) Shutdown() {
	s.runs.CancelAll()
}

func (s *Service) acquireSlot(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) releaseSlot() {
	<-s.slots
}

// violatedKinds returns every constraint kind a rejected request carries.
// validator.Result does not say which constraint a violation came from, so
// each of the request's kinds is counted, whatever the rejection's cause.
func violatedKinds(req *model.OptimizationRequest) []model.ConstraintKind {
	kinds := make([]model.ConstraintKind, 0, len(req.Constraints))
	for _, c := range req.Constraints {
		kinds = append(kinds, c.Kind)
	}
	return kinds
}
