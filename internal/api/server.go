// Package api serves the jackpot REST surface.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/jackpot-builder/internal/config"
	"github.com/yourusername/jackpot-builder/internal/service"
)

// Server wraps the gin engine and its HTTP listener
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	logger     *logrus.Logger
}

// NewServer builds the API server with routes and middleware mounted
func NewServer(cfg config.ServerConfig, features config.FeaturesConfig, svc *service.SlipService, logger *logrus.Logger, production bool) *Server {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(requestLogger(logger), gin.Recovery())

	NewJackpotHandler(svc, features, logger).Register(engine)

	readTimeout := time.Duration(cfg.ReadTimeoutSecs) * time.Second
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := time.Duration(cfg.WriteTimeoutSecs) * time.Second
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}

	return &Server{
		engine: engine,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      engine,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Engine exposes the router, mainly for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start blocks serving HTTP until the listener fails or is shut down
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("API server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("API server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("API server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs each request with structured fields
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}).Info("Request handled")
	}
}
