package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-infusion/internal/api/middleware"
	"github.com/feral-file/ff-infusion/internal/api/rest"
	"github.com/feral-file/ff-infusion/internal/api/shared/executor"
	"github.com/feral-file/ff-infusion/internal/logger"
	"github.com/feral-file/ff-infusion/internal/ratelimit"
)

// Config holds the server configuration
type Config struct {
	Debug              bool
	Host               string
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	CORSAllowedOrigins []string
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	executor   executor.Executor
	auth       middleware.AuthConfig
	limiter    ratelimit.Limiter
	httpServer *http.Server
}

// New creates a new API server. limiter may be nil to disable rate limiting.
func New(cfg Config, exec executor.Executor, auth middleware.AuthConfig, limiter ratelimit.Limiter) *Server {
	return &Server{
		config:   cfg,
		executor: exec,
		auth:     auth,
		limiter:  limiter,
	}
}

// Router builds the gin engine with middleware and routes
func (s *Server) Router() *gin.Engine {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.CORSAllowedOrigins))

	var limit gin.HandlerFunc
	if s.limiter != nil {
		limit = middleware.RateLimit(s.limiter)
	}

	restHandler := rest.NewHandler(s.config.Debug, s.executor)
	rest.SetupRoutes(router, restHandler, s.auth, limit)

	return router
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
