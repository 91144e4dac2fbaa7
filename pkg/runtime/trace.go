package runtime

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// newRunID generates a unique identifier for an asynchronous optimization
// run.
func newRunID() string {
	return uuid.NewString()
}

// traceCounter backs the monotonically increasing component of trace IDs.
var traceCounter int64

// NewTraceID produces an "opt_<counter>_<YYYYMMDD_HHMMSS>" identifier
// (spec §6 "X-Trace-ID"), unique per process for the lifetime of the run.
func NewTraceID(now time.Time) string {
	n := atomic.AddInt64(&traceCounter, 1)
	return fmt.Sprintf("opt_%d_%s", n, now.Format("20060102_150405"))
}
