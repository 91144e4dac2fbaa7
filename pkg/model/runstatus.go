package model

import "time"

// RunStatus reports the lifecycle of an asynchronous optimization run.
type RunStatus struct {
	RunID          string     `json:"run_id"`
	Status         RunState   `json:"status"`
	Progress       float64    `json:"progress"`
	Message        string     `json:"message"`
	EstCompletion  *time.Time `json:"est_completion,omitempty"`
	Solution       *OptimizationSolution `json:"solution,omitempty"`
}

// Metrics holds process-wide optimization counters (spec §3, §6).
type Metrics struct {
	TotalRequests          int64              `json:"total_requests"`
	SuccessfulRequests     int64              `json:"successful_requests"`
	FailedRequests         int64              `json:"failed_requests"`
	AverageProcessingMS    float64            `json:"average_processing_time_ms"`
	AlgorithmUsage         map[AlgorithmKind]int64 `json:"algorithm_usage"`
	ConstraintViolations   map[ConstraintKind]int64 `json:"constraint_violations"`
}

// SuccessRate returns SuccessfulRequests/TotalRequests, or 0 when no
// requests have completed yet.
func (m *Metrics) SuccessRate() float64 {
	if m.TotalRequests == 0 {
		return 0
	}
	return float64(m.SuccessfulRequests) / float64(m.TotalRequests)
}
