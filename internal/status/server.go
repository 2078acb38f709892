// Package status serves the read-only health and statistics endpoints of the stream ingester.
package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/metrics"
	"github.com/feral-file/ff-tweet-indexer/internal/status/middleware"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	handler    *handler
	httpServer *http.Server
}

// New creates a new status server
func New(cfg Config, p ProducerStatus, c ConsumerStatus, q QueueStatus) *Server {
	s := &Server{
		config:  cfg,
		handler: &handler{producer: p, consumers: c, queue: q},
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.Router(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	return s
}

// Router builds the gin engine with all routes
func (s *Server) Router() *gin.Engine {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	router.GET("/healthz", s.handler.Healthz)
	router.GET("/stats", s.handler.Stats)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	logger.Info("Starting status server", zap.String("address", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down status server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
