package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
)

// embedding model built on the framework embedder
type GeminiEmbedder struct {
	embedder   embeddings.Embedder
	dimensions int
}

// wraps any embeddings client (the googleai client in production)
func NewGeminiEmbedder(client embeddings.EmbedderClient, batchSize, dimensions int) (*GeminiEmbedder, error) {
	if batchSize <= 0 {
		batchSize = defaultEmbeddingBatchSize
	}

	embedder, err := embeddings.NewEmbedder(client,
		embeddings.WithBatchSize(batchSize),
		embeddings.WithStripNewLines(false),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &GeminiEmbedder{
		embedder:   embedder,
		dimensions: dimensions,
	}, nil
}

// embeds a single query text
func (e *GeminiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if err := geminiRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	vec, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return vec, nil
}

// embeds many texts in batches
func (e *GeminiEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	if err := geminiRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	vecs, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed documents: %w", err)
	}

	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(vecs))
	}

	return vecs, nil
}

// returns the configured vector size, 0 when unknown
func (e *GeminiEmbedder) Dimensions() int {
	return e.dimensions
}
