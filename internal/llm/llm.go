package llm

import (
	"context"
	"fmt"

	"codeberg.org/docrouter/server/internal/config"
)

// creates the chat, router and embedding clients from environment configuration
func NewClients(ctx context.Context, baseConfig *config.Config) (*Clients, error) {
	cfg, err := loadConfig(baseConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	return NewClientsWithConfig(ctx, cfg)
}

// creates the clients with explicit configuration
func NewClientsWithConfig(ctx context.Context, cfg *Config) (*Clients, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	chatClient, err := newGoogleAI(ctx, cfg, cfg.ChatModel)
	if err != nil {
		return nil, err
	}

	routerClient := chatClient
	if cfg.RouterModel != cfg.ChatModel {
		routerClient, err = newGoogleAI(ctx, cfg, cfg.RouterModel)
		if err != nil {
			return nil, err
		}
	}

	embedder, err := NewGeminiEmbedder(chatClient, cfg.EmbeddingBatchSize, cfg.EmbeddingDimensions)
	if err != nil {
		return nil, err
	}

	return &Clients{
		Chat:     NewGemini(chatClient, chatConfig(cfg)),
		Router:   NewGemini(routerClient, routerConfig(cfg)),
		Embedder: embedder,
	}, nil
}

func chatConfig(cfg *Config) GeminiConfig {
	return GeminiConfig{
		Model:       cfg.ChatModel,
		Temperature: cfg.ChatTemperature,
		MaxTokens:   cfg.ChatMaxTokens,
	}
}

// the router sends no per-request limits, so these apply to every routing call
func routerConfig(cfg *Config) GeminiConfig {
	return GeminiConfig{
		Model:       cfg.RouterModel,
		Temperature: cfg.RouterTemperature,
		MaxTokens:   cfg.RouterMaxTokens,
	}
}
