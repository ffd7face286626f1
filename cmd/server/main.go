package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/docrouter/server/internal/config"
	"codeberg.org/docrouter/server/internal/logger"
)

// @title docrouter API
// @version 1.0
// @description Chat assistant that routes each question to document stores or web search
// @description
// @description Features:
// @description - Retrieval augmented answers from Gemini over ingested PDF and text sources
// @description - Language model query routing with Tavily web search
// @description - Router debug output per answer
// @description - Admin routing preview behind JWT

// @contact.name API Support
// @contact.url https://codeberg.org/docrouter/server

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin JWT token. Format: Bearer {token}

func main() {
	logger.Info("starting docrouter server")

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// create server with all dependencies, ingesting sources on the way
	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	// answers can take a while when the router and the chat model both run
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.Close()

	logger.Info("server stopped")
}
