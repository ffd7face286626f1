package main

import (
	"context"
	"time"

	"codeberg.org/docrouter/server/internal/config"
	"codeberg.org/docrouter/server/internal/logger"
	"codeberg.org/docrouter/server/internal/metrics"
	"codeberg.org/docrouter/server/internal/sessions"
	"github.com/gin-gonic/gin"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()

	services, err := InitializeServices(ctx, cfg, m)
	if err != nil {
		return nil, err
	}

	server := &Server{
		config:   cfg,
		services: services,
		sessions: sessions.NewManager(services.Assistant, cfg.SessionTTL),
		metrics:  m,
		router:   gin.New(),
	}

	server.router.Use(gin.Recovery(), logger.RequestLogger())

	if err := RegisterRoutes(server.router, server); err != nil {
		server.Close()
		return nil, err
	}

	return server, nil
}

// returns active sessions and registered retrievers for the health check
func (s *Server) status() (int, int) {
	return s.sessions.GetSessionCount(), len(s.services.Catalog.Described())
}

// stops the session cleanup and releases external connections
func (s *Server) Close() {
	s.sessions.Close()
	s.services.Close()

	logger.Debug("server resources released")
}
