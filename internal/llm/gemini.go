package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/docrouter/server/internal/logger"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"golang.org/x/time/rate"
)

// returned when the model produced no usable text
var ErrEmptyResponse = errors.New("model returned an empty response")

// rate limiter for Gemini API calls (10 requests/second with burst capacity of 5)
var geminiRateLimiter = rate.NewLimiter(10, 5)

type GeminiConfig struct {
	Model       string  // e.g., "gemini-2.5-flash"
	Temperature float64 // 0.0 to 1.0
	MaxTokens   int
}

// chat model backed by a langchaingo model (googleai in production)
type Gemini struct {
	config  GeminiConfig
	model   llms.Model
	limiter *rate.Limiter
}

// creates a Gemini chat model over an existing langchaingo model
func NewGemini(model llms.Model, config GeminiConfig) *Gemini {
	if config.Model == "" {
		config.Model = defaultChatModel
	}

	if config.MaxTokens == 0 {
		config.MaxTokens = defaultChatMaxTokens
	}

	return &Gemini{
		config:  config,
		model:   model,
		limiter: geminiRateLimiter,
	}
}

// creates the googleai client used for chat and embeddings
func newGoogleAI(ctx context.Context, cfg *Config, model string) (*googleai.GoogleAI, error) {
	client, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(model),
		googleai.WithDefaultEmbeddingModel(cfg.EmbeddingModel),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create googleai client: %w", err)
	}

	return client, nil
}

func (g *Gemini) Model() string {
	return g.config.Model
}

// sends the conversation to the model and returns its reply
func (g *Gemini) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = g.config.Temperature
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.config.MaxTokens
	}

	logger.Debug("sending chat request",
		"model", g.config.Model,
		"messages", len(req.Messages),
		"temperature", temperature,
	)

	resp, err := g.model.GenerateContent(ctx, toMessageContent(req),
		llms.WithModel(g.config.Model),
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)

	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	choice := resp.Choices[0]
	text := strings.TrimSpace(choice.Content)

	if text == "" {
		return nil, ErrEmptyResponse
	}

	usage := usageFromInfo(choice.GenerationInfo)

	logger.Debug("received chat response",
		"model", g.config.Model,
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
	)

	return &GenerateResponse{
		Text:  text,
		Usage: usage,
	}, nil
}
