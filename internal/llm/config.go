package llm

import (
	"fmt"
	"os"
	"strconv"

	"codeberg.org/docrouter/server/internal/config"
)

const (
	defaultChatModel           = "gemini-2.5-flash"
	defaultChatTemperature     = 0.3
	defaultChatMaxTokens       = 2048
	defaultRouterMaxTokens     = 1024
	defaultEmbeddingModel      = "text-embedding-004"
	defaultEmbeddingDimensions = 768
	defaultEmbeddingBatchSize  = 100
)

// loads model configuration from environment variables
func loadConfig(base *config.Config) (*Config, error) {
	apiKey := getAPIKey(base)
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_KEY environment variable is required")
	}

	chatModel := os.Getenv("CHAT_MODEL")
	if chatModel == "" {
		chatModel = defaultChatModel
	}

	routerModel := os.Getenv("ROUTER_MODEL")
	if routerModel == "" {
		routerModel = chatModel
	}

	embeddingModel := os.Getenv("EMBEDDING_MODEL")
	if embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}

	chatTemperature := defaultChatTemperature
	if tempStr := os.Getenv("CHAT_TEMPERATURE"); tempStr != "" {
		val, err := strconv.ParseFloat(tempStr, 64)
		if err != nil || val < 0 || val > 2 {
			return nil, fmt.Errorf("invalid CHAT_TEMPERATURE %q", tempStr)
		}

		chatTemperature = val
	}

	chatMaxTokens := defaultChatMaxTokens
	if maxTokensStr := os.Getenv("CHAT_MAX_TOKENS"); maxTokensStr != "" {
		if val, err := strconv.Atoi(maxTokensStr); err == nil && val > 0 {
			chatMaxTokens = val
		}
	}

	// thinking models spend part of this budget before the answer
	routerMaxTokens := defaultRouterMaxTokens
	if maxTokensStr := os.Getenv("ROUTER_MAX_TOKENS"); maxTokensStr != "" {
		val, err := strconv.Atoi(maxTokensStr)
		if err != nil || val <= 0 {
			return nil, fmt.Errorf("invalid ROUTER_MAX_TOKENS %q", maxTokensStr)
		}

		routerMaxTokens = val
	}

	embeddingDimensions := defaultEmbeddingDimensions
	if dimStr := os.Getenv("EMBEDDING_DIMENSIONS"); dimStr != "" {
		if val, err := strconv.Atoi(dimStr); err == nil && val >= 0 {
			embeddingDimensions = val
		}
	}

	return &Config{
		APIKey:              apiKey,
		ChatModel:           chatModel,
		ChatTemperature:     chatTemperature,
		ChatMaxTokens:       chatMaxTokens,
		RouterModel:         routerModel,
		RouterTemperature:   0, // routing answers are a list of numbers
		RouterMaxTokens:     routerMaxTokens,
		EmbeddingModel:      embeddingModel,
		EmbeddingDimensions: embeddingDimensions,
		EmbeddingBatchSize:  defaultEmbeddingBatchSize,
	}, nil
}
