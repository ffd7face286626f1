package vectorstore

import (
	"context"

	"codeberg.org/docrouter/server/internal/loader"
)

// holds embedded segments of one document source
type Store interface {
	Add(ctx context.Context, segments []loader.Segment, embeddings [][]float32) error
	Search(ctx context.Context, embedding []float32, maxResults int, minScore float64) ([]Match, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// a segment with its relevance score in [0,1]
type Match struct {
	Segment loader.Segment `json:"segment"`
	Score   float64        `json:"score"`
}

// creates the store for a named source
type Factory func(ctx context.Context, source string) (Store, error)
