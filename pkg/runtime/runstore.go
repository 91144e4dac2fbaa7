package runtime

import (
	"sync"

	"github.com/shiftopt/scheduler/pkg/model"
)

// RunStore holds active and completed runs in separate maps (spec §5
// "Active runs and completed runs live in separate process-wide maps;
// completing moves the entry"), each guarded by its own lock so polling a
// completed run never blocks a concurrently starting one.
type RunStore struct {
	activeMu sync.RWMutex
	active   map[string]*model.RunStatus

	completedMu sync.RWMutex
	completed   map[string]*model.RunStatus

	userRunsMu sync.Mutex
	userRuns   map[string]int
}

// NewRunStore builds an empty store.
func NewRunStore() *RunStore {
	return &RunStore{
		active:    make(map[string]*model.RunStatus),
		completed: make(map[string]*model.RunStatus),
		userRuns:  make(map[string]int),
	}
}

// UserRunCount reports how many runs userID has started so far, satisfying
// validator.RunCounter for tier run-quota enforcement (spec §6 "Max runs").
func (s *RunStore) UserRunCount(userID string) int {
	s.userRunsMu.Lock()
	defer s.userRunsMu.Unlock()
	return s.userRuns[userID]
}

// IncrementUserRuns records that userID has started another run and returns
// the new total.
func (s *RunStore) IncrementUserRuns(userID string) int {
	s.userRunsMu.Lock()
	defer s.userRunsMu.Unlock()
	s.userRuns[userID]++
	return s.userRuns[userID]
}

// Start registers a new run in the active map with status "started".
func (s *RunStore) Start(runID string) *model.RunStatus {
	status := &model.RunStatus{RunID: runID, Status: model.RunStarted, Progress: 0}
	s.activeMu.Lock()
	s.active[runID] = status
	s.activeMu.Unlock()
	return status
}

// Update mutates the in-place active run's status and progress. No-op if
// the run isn't active (e.g. it already completed or was never started).
func (s *RunStore) Update(runID string, state model.RunState, progress float64, message string) {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()
	status, ok := s.active[runID]
	if !ok {
		return
	}
	status.Status = state
	status.Progress = progress
	status.Message = message
}

// Complete moves runID from the active map to the completed map, attaching
// the final solution (or failure message).
func (s *RunStore) Complete(runID string, state model.RunState, solution *model.OptimizationSolution, message string) {
	s.activeMu.Lock()
	status, ok := s.active[runID]
	if ok {
		delete(s.active, runID)
	}
	s.activeMu.Unlock()

	if !ok {
		status = &model.RunStatus{RunID: runID}
	}
	status.Status = state
	status.Message = message
	status.Solution = solution
	if state == model.RunCompleted {
		status.Progress = 1.0
	}

	s.completedMu.Lock()
	s.completed[runID] = status
	s.completedMu.Unlock()
}

// Get returns a snapshot-consistent copy of a run's status, checking the
// active map first, then the completed map.
func (s *RunStore) Get(runID string) (model.RunStatus, bool) {
	s.activeMu.RLock()
	status, ok := s.active[runID]
	s.activeMu.RUnlock()
	if ok {
		return *status, true
	}

	s.completedMu.RLock()
	defer s.completedMu.RUnlock()
	status, ok = s.completed[runID]
	if !ok {
		return model.RunStatus{}, false
	}
	return *status, true
}

// CancelAll transitions every active run to cancelled, used on service
// shutdown (spec §5 "Async runs can transition running → cancelled on
// service shutdown").
func (s *RunStore) CancelAll() {
	s.activeMu.Lock()
	defer s.activeMu.Unlock()
	for _, status := range s.active {
		status.Status = model.RunCancelled
		status.Message = "cancelled: service shutting down"
	}
}
