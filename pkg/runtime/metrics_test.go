package runtime

import (
	"strings"
	"testing"

	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecorder_SuccessRateAndAverage(t *testing.T) {
	r := NewMetricsRecorder()
	r.RecordSuccess(model.AlgorithmLinearProgramming, 100)
	r.RecordSuccess(model.AlgorithmLinearProgramming, 200)
	r.RecordFailure(300)

	snap := r.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(2), snap.SuccessfulRequests)
	assert.Equal(t, int64(1), snap.FailedRequests)
	assert.InDelta(t, 200.0, snap.AverageProcessingMS, 0.01)
	assert.InDelta(t, 2.0/3.0, snap.SuccessRate(), 0.0001)
	assert.Equal(t, int64(2), snap.AlgorithmUsage[model.AlgorithmLinearProgramming])
}

func TestMetricsRecorder_PrometheusText_ContainsExpectedLines(t *testing.T) {
	r := NewMetricsRecorder()
	r.RecordSuccess(model.AlgorithmGeneticAlgorithm, 50)

	text := r.PrometheusText()
	assert.True(t, strings.Contains(text, "optimization_total_requests 1"))
	assert.True(t, strings.Contains(text, `optimization_algorithm_usage{algorithm="genetic_algorithm"} 1`))
}
