package main

import (
	"codeberg.org/docrouter/server/internal/assistant"
	"codeberg.org/docrouter/server/internal/augmentor"
	"codeberg.org/docrouter/server/internal/config"
	"codeberg.org/docrouter/server/internal/llm"
	"codeberg.org/docrouter/server/internal/memory"
	"codeberg.org/docrouter/server/internal/metrics"
	"codeberg.org/docrouter/server/internal/sessions"
	"codeberg.org/docrouter/server/internal/vectorstore"
	"github.com/gin-gonic/gin"
)

// holds all dependencies and state for the API server
type Server struct {
	config   *config.Config
	services *Services
	sessions *sessions.Manager
	metrics  *metrics.Metrics
	router   *gin.Engine
}

// holds the question answering pipeline and the resources it owns
type Services struct {
	Clients   *llm.Clients
	Catalog   *assistant.Catalog
	Augmentor *augmentor.Augmentor
	Assistant *assistant.Assistant
	Memory    memory.ChatMemory

	// nil unless DATABASE_URL is set
	DB *vectorstore.DB

	// nil unless REDIS_URL is set
	Redis *memory.Redis
}
