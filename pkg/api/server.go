// Package api exposes the shift-scheduling engine over HTTP (spec §6
// "External Interfaces").
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shiftopt/scheduler/internal/config"
	"github.com/shiftopt/scheduler/pkg/runtime"
)

// ServiceVersion is reported in the health payload.
const ServiceVersion = "1.0.0"

// Server wraps the runtime.Service with an HTTP surface.
type Server struct {
	cfg    *config.Config
	svc    *runtime.Service
	logger *slog.Logger
	server *http.Server
}

// NewServer builds a Server bound to svc.
func NewServer(cfg *config.Config, svc *runtime.Service, logger *slog.Logger) *Server {
	return &Server{cfg: cfg, svc: svc, logger: logger}
}

// Start runs the HTTP server until ctx is cancelled or ListenAndServe
// returns a fatal error.
func (s *Server) Start(ctx context.Context) error {
	router := s.setupRouter()

	s.server = &http.Server{
		Addr:         s.cfg.Server.Host + ":" + portString(s.cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting shift-optimization API server", "address", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts the HTTP server down and cancels in-flight runs.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping shift-optimization API server")
	s.svc.Shutdown()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) setupRouter() *gin.Engine {
	if strings.EqualFold(s.cfg.Server.LogLevel, "DEBUG") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(s.loggingMiddleware())
	router.Use(gin.Recovery())
	router.Use(s.corsMiddleware())
	router.Use(s.rateLimitMiddleware())
	router.Use(s.tracingMiddleware())

	router.GET("/", s.healthHandler)
	router.GET("/health", s.healthHandler)
	router.GET("/metrics", s.metricsHandler)
	router.GET("/algorithms", s.algorithmsHandler)

	router.POST("/optimize", s.optimizeHandler)
	router.POST("/optimize/async", s.optimizeAsyncHandler)
	router.GET("/optimize/status/:run_id", s.optimizeStatusHandler)
	router.POST("/validate/constraints", s.validateConstraintsHandler)

	return router
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins: s.cfg.Cors.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
	}
	return cors.New(corsConfig)
}

func portString(port int) string {
	if port <= 0 {
		return "8000"
	}
	return strconv.Itoa(port)
}
