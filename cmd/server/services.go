package main

import (
	"context"
	"fmt"

	"codeberg.org/docrouter/server/internal/assistant"
	"codeberg.org/docrouter/server/internal/augmentor"
	"codeberg.org/docrouter/server/internal/config"
	"codeberg.org/docrouter/server/internal/llm"
	"codeberg.org/docrouter/server/internal/loader"
	"codeberg.org/docrouter/server/internal/logger"
	"codeberg.org/docrouter/server/internal/memory"
	"codeberg.org/docrouter/server/internal/metrics"
	"codeberg.org/docrouter/server/internal/retriever"
	"codeberg.org/docrouter/server/internal/router"
	"codeberg.org/docrouter/server/internal/vectorstore"
	"codeberg.org/docrouter/server/internal/websearch"
)

const webDescription = "Current news, recent events, or general topics not covered by the PDF documents (such as weather, sports, etc.)"

// creates the clients, ingests the sources and wires the assistant
func InitializeServices(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*Services, error) {
	clients, err := llm.NewClients(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM clients: %w", err)
	}

	retrievalCfg, err := retriever.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load retrieval config: %w", err)
	}

	sources, err := loader.LoadSources(cfg.SourcesFile)
	if err != nil {
		return nil, err
	}

	services := &Services{Clients: clients}

	factory := vectorstore.MemoryFactory()
	skipExisting := false

	if cfg.DatabaseURL != "" {
		db, err := vectorstore.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}

		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}

		services.DB = db
		factory = db.Factory()

		// sources filled by the ingester are reused as is
		skipExisting = true
	}

	catalog, err := assistant.Ingest(ctx, sources, clients.Embedder, factory, assistant.IngestOptions{
		Split: loader.SplitOptions{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
		},
		MaxResults:   retrievalCfg.MaxResults,
		MinScore:     retrievalCfg.MinScore,
		SkipExisting: skipExisting,
		OnIngest:     m.ObserveIngest,
	})
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to ingest sources: %w", err)
	}

	if cfg.WebSearchEnabled {
		engine := websearch.NewTavily(websearch.TavilyConfig{APIKey: cfg.TavilyKey})

		catalog.Register(retriever.Described{
			Key:         "web",
			Retriever:   retriever.NewWebSearchRetriever(engine, retrievalCfg.WebMaxResults),
			Description: webDescription,
		})
	}

	queryRouter, err := newQueryRouter(cfg, clients.Router, catalog.Described(), m)
	if err != nil {
		services.Close()
		return nil, err
	}

	services.Catalog = catalog
	services.Augmentor = augmentor.New(queryRouter).WithObserver(m.ObserveRetrieval)

	if cfg.RedisURL != "" {
		redisMemory, err := memory.NewRedis(cfg.RedisURL, cfg.MemoryMaxMessages, cfg.SessionTTL)
		if err != nil {
			services.Close()
			return nil, err
		}

		services.Redis = redisMemory
		services.Memory = redisMemory
	} else {
		services.Memory = memory.NewInMemory(cfg.MemoryMaxMessages)
	}

	services.Assistant = assistant.New(clients.Chat, services.Augmentor, services.Memory, assistant.Options{
		OnAsk: m.ObserveAsk,
	})

	logger.Info("assistant ready",
		"chat_model", clients.Chat.Model(),
		"router_model", clients.Router.Model(),
		"routing_mode", cfg.RoutingMode,
		"retrievers", len(catalog.Described()),
		"pgvector", services.DB != nil,
		"redis_memory", services.Redis != nil,
	)

	return services, nil
}

// picks the query router for the configured routing mode
func newQueryRouter(cfg *config.Config, model llm.ChatModel, options []retriever.Described, m *metrics.Metrics) (router.QueryRouter, error) {
	switch cfg.RoutingMode {
	case config.RoutingModeAll:
		return router.NewAllRouter(options), nil
	case config.RoutingModeNone:
		return router.NoneRouter{}, nil
	}

	fallback, err := router.ParseFallback(cfg.RouterFallback)
	if err != nil {
		return nil, err
	}

	return router.NewLanguageModelRouter(model, options,
		router.WithFallback(fallback),
		router.WithObserver(m.ObserveRoute),
	)
}

// releases the database pool and redis connection
func (s *Services) Close() {
	if s.Redis != nil {
		s.Redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	if s.DB != nil {
		s.DB.Close()
	}
}
