package server

import (
	"net/http"
	"time"

	"user-account-service/cmd/api/di"
	"user-account-service/internal/adapter/gin/router"
	"user-account-service/internal/config"

	"go.uber.org/zap"
)

// Server struct holds the HTTP server and its dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance with the router wired up
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	engine := router.SetupRouter(c.UserHandler, c.SystemHandler, c.RateLimiter, l)

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              ":" + cfg.App.HTTPPort,
			Handler:           engine,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
