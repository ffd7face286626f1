package retriever

import (
	"context"
	"fmt"

	"codeberg.org/docrouter/server/internal/vectorstore"
)

// retrieves segments from one document store by embedding similarity
type EmbeddingStoreRetriever struct {
	source     string
	store      vectorstore.Store
	embedder   QueryEmbedder
	maxResults int
	minScore   float64
}

func NewEmbeddingStoreRetriever(source string, store vectorstore.Store, embedder QueryEmbedder, maxResults int, minScore float64) *EmbeddingStoreRetriever {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	return &EmbeddingStoreRetriever{
		source:     source,
		store:      store,
		embedder:   embedder,
		maxResults: maxResults,
		minScore:   minScore,
	}
}

func (r *EmbeddingStoreRetriever) Name() string {
	return fmt.Sprintf("EmbeddingStoreContentRetriever(%s)", r.source)
}

func (r *EmbeddingStoreRetriever) Retrieve(ctx context.Context, query Query) ([]Content, error) {
	embedding, err := r.embedder.EmbedQuery(ctx, query.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	matches, err := r.store.Search(ctx, embedding, r.maxResults, r.minScore)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", r.source, err)
	}

	contents := make([]Content, 0, len(matches))

	for _, match := range matches {
		contents = append(contents, Content{
			Text:     match.Segment.Text,
			Source:   r.source,
			Score:    match.Score,
			Metadata: match.Segment.Metadata,
		})
	}

	return contents, nil
}
