package runtime

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shiftopt/scheduler/pkg/model"
)

// MetricsRecorder guards model.Metrics so increment-and-read operations
// stay atomic under concurrent request completions (spec §5).
type MetricsRecorder struct {
	mu sync.Mutex
	m  model.Metrics
}

// NewMetricsRecorder builds an empty recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{
		m: model.Metrics{
			AlgorithmUsage:       make(map[model.AlgorithmKind]int64),
			ConstraintViolations: make(map[model.ConstraintKind]int64),
		},
	}
}

// RecordSuccess folds a completed run's timing and algorithm into the
// counters.
func (r *MetricsRecorder) RecordSuccess(algo model.AlgorithmKind, elapsedMS int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.TotalRequests++
	r.m.SuccessfulRequests++
	r.m.AlgorithmUsage[algo]++
	r.rollingAverage(elapsedMS)
}

// RecordFailure folds a failed run into the counters.
func (r *MetricsRecorder) RecordFailure(elapsedMS int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.TotalRequests++
	r.m.FailedRequests++
	r.rollingAverage(elapsedMS)
}

// RecordViolations tallies constraint kinds that produced violations on a
// given request.
func (r *MetricsRecorder) RecordViolations(kinds []model.ConstraintKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range kinds {
		r.m.ConstraintViolations[k]++
	}
}

// rollingAverage maintains AverageProcessingMS as a running mean over
// TotalRequests. Caller must hold r.mu.
func (r *MetricsRecorder) rollingAverage(elapsedMS int64) {
	n := float64(r.m.TotalRequests)
	r.m.AverageProcessingMS += (float64(elapsedMS) - r.m.AverageProcessingMS) / n
}

// Snapshot returns a copy of the current counters.
func (r *MetricsRecorder) Snapshot() model.Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()

	usage := make(map[model.AlgorithmKind]int64, len(r.m.AlgorithmUsage))
	for k, v := range r.m.AlgorithmUsage {
		usage[k] = v
	}
	violations := make(map[model.ConstraintKind]int64, len(r.m.ConstraintViolations))
	for k, v := range r.m.ConstraintViolations {
		violations[k] = v
	}

	snap := r.m
	snap.AlgorithmUsage = usage
	snap.ConstraintViolations = violations
	return snap
}

// PrometheusText renders the metrics as Prometheus exposition-format text
// (spec §6 "one line per...").
func (r *MetricsRecorder) PrometheusText() string {
	snap := r.Snapshot()

	var sb strings.Builder
	fmt.Fprintf(&sb, "optimization_total_requests %d\n", snap.TotalRequests)
	fmt.Fprintf(&sb, "optimization_successful_requests %d\n", snap.SuccessfulRequests)
	fmt.Fprintf(&sb, "optimization_failed_requests %d\n", snap.FailedRequests)
	fmt.Fprintf(&sb, "optimization_average_processing_time_ms %f\n", snap.AverageProcessingMS)
	fmt.Fprintf(&sb, "optimization_success_rate %f\n", snap.SuccessRate())

	algos := make([]string, 0, len(snap.AlgorithmUsage))
	for algo := range snap.AlgorithmUsage {
		algos = append(algos, string(algo))
	}
	sort.Strings(algos)
	for _, algo := range algos {
		fmt.Fprintf(&sb, "optimization_algorithm_usage{algorithm=%q} %d\n", algo, snap.AlgorithmUsage[model.AlgorithmKind(algo)])
	}

	return sb.String()
}
