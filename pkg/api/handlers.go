package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shiftopt/scheduler/pkg/model"
	"github.com/shiftopt/scheduler/pkg/runtime"
)

// healthHandler serves GET / and GET /health (spec §6).
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
		"version":   ServiceVersion,
		"service":   "shift-optimization-engine",
	})
}

// metricsHandler serves GET /metrics in Prometheus text exposition format
// (spec §6).
func (s *Server) metricsHandler(c *gin.Context) {
	c.String(http.StatusOK, s.svc.Metrics().PrometheusText())
}

// algorithmsHandler serves GET /algorithms (spec §6).
func (s *Server) algorithmsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, runtime.Catalog)
}

// optimizationResponse is the wire shape returned by /optimize and
// referenced by completed async runs.
type optimizationResponse struct {
	Success    bool                         `json:"success"`
	Solution   *model.OptimizationSolution  `json:"solution,omitempty"`
	Violations []string                     `json:"violations,omitempty"`
	Warnings   []string                     `json:"warnings,omitempty"`
}

// optimizeHandler serves POST /optimize (spec §6).
func (s *Server) optimizeHandler(c *gin.Context) {
	var req model.OptimizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"violations": []string{"malformed request body: " + err.Error()}})
		return
	}

	result, err := s.svc.Optimize(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(c, err))
		return
	}

	if !result.PreValidation.IsValid() {
		c.JSON(http.StatusBadRequest, optimizationResponse{
			Success:    false,
			Violations: result.PreValidation.Violations,
			Warnings:   result.PreValidation.Warnings,
		})
		return
	}

	c.JSON(http.StatusOK, optimizationResponse{
		Success:    true,
		Solution:   result.Solution,
		Violations: result.PostValidation.Violations,
		Warnings:   append(result.PreValidation.Warnings, result.PostValidation.Warnings...),
	})
}

// optimizeAsyncHandler serves POST /optimize/async (spec §6).
func (s *Server) optimizeAsyncHandler(c *gin.Context) {
	var req model.OptimizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"violations": []string{"malformed request body: " + err.Error()}})
		return
	}

	runID, pre := s.svc.StartAsync(&req)
	if !pre.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"violations": pre.Violations,
			"warnings":   pre.Warnings,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":   runID,
		"status":   model.RunStarted,
		"progress": 0,
		"message":  "optimization run started",
	})
}

// optimizeStatusHandler serves GET /optimize/status/{run_id} (spec §6).
func (s *Server) optimizeStatusHandler(c *gin.Context) {
	runID := c.Param("run_id")
	status, ok := s.svc.Status(runID)
	if !ok {
		c.JSON(http.StatusNotFound, errorBody(c, runtime.ErrRunNotFound))
		return
	}
	c.JSON(http.StatusOK, status)
}

// validateConstraintsHandler serves POST /validate/constraints (spec §6).
func (s *Server) validateConstraintsHandler(c *gin.Context) {
	var req model.OptimizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"violations": []string{"malformed request body: " + err.Error()}})
		return
	}

	result := s.svc.ValidateConstraints(&req)
	c.JSON(http.StatusOK, gin.H{
		"is_valid":    result.IsValid(),
		"violations":  result.Violations,
		"suggestions": result.Suggestions,
	})
}

// errorBody builds the error envelope from spec §7: "respond ... with
// {error, message, timestamp, trace_id}". The error code comes from a
// *runtime.ServiceError's Code when err is one, else a generic fallback.
func errorBody(c *gin.Context, err error) gin.H {
	traceID, _ := c.Get("trace_id")
	code := "internal_error"
	if svcErr, ok := err.(*runtime.ServiceError); ok {
		code = svcErr.Code
	}
	return gin.H{
		"error":     code,
		"message":   err.Error(),
		"timestamp": time.Now(),
		"trace_id":  traceID,
	}
}
