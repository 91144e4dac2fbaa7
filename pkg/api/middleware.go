package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shiftopt/scheduler/pkg/runtime"
	"golang.org/x/time/rate"
)

// loggingMiddleware provides structured request logging through the
// server's slog.Logger.
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		s.logger.Info("http request",
			"method", param.Method,
			"path", param.Path,
			"status", param.StatusCode,
			"latency", param.Latency,
			"ip", param.ClientIP,
		)
		return ""
	})
}

// tracingMiddleware stamps every response with X-Process-Time and
// X-Trace-ID (spec §6 "All responses carry...").
func (s *Server) tracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		traceID := runtime.NewTraceID(start)
		c.Set("trace_id", traceID)
		c.Header("X-Trace-ID", traceID)

		c.Next()

		c.Header("X-Process-Time", fmt.Sprintf("%f", time.Since(start).Seconds()))
	}
}

// rateLimitMiddleware throttles requests per client IP with a token
// bucket, mirroring the per-IP limiter shape used elsewhere in this
// codebase's ancestry.
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		mu.Lock()
		limiter, exists := limiters[clientIP]
		if !exists {
			limiter = rate.NewLimiter(rate.Limit(20), 40)
			limiters[clientIP] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "too many requests, please try again later",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
