package assistant

import (
	"context"
	"fmt"

	"codeberg.org/docrouter/server/internal/llm"
	"codeberg.org/docrouter/server/internal/loader"
	"codeberg.org/docrouter/server/internal/logger"
	"codeberg.org/docrouter/server/internal/retriever"
	"codeberg.org/docrouter/server/internal/vectorstore"
)

// loads, splits and embeds every source into its own store and builds a retriever for each
func Ingest(ctx context.Context, sources []loader.Source, embedder llm.Embedder, factory vectorstore.Factory, opts IngestOptions) (*Catalog, error) {
	if err := loader.ValidateSources(sources); err != nil {
		return nil, err
	}

	catalog := &Catalog{counts: make(map[string]int, len(sources))}

	for _, src := range sources {
		store, err := factory(ctx, src.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create store for %s: %w", src.Name, err)
		}

		count, err := ingestSource(ctx, src, store, embedder, opts)
		if err != nil {
			return nil, err
		}

		catalog.counts[src.Name] = count
		catalog.entries = append(catalog.entries, retriever.Described{
			Key:         src.Name,
			Retriever:   retriever.NewEmbeddingStoreRetriever(src.Name, store, embedder, opts.MaxResults, opts.MinScore),
			Description: src.Description,
		})
	}

	return catalog, nil
}

func ingestSource(ctx context.Context, src loader.Source, store vectorstore.Store, embedder llm.Embedder, opts IngestOptions) (int, error) {
	if opts.SkipExisting {
		existing, err := store.Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count segments for %s: %w", src.Name, err)
		}

		if existing > 0 {
			logger.Info("reusing ingested source", "source", src.Name, "segments", existing)
			return existing, nil
		}
	}

	segments, err := loader.LoadSource(ctx, src, opts.Split)
	if err != nil {
		return 0, err
	}

	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}

	embeddings, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed %s: %w", src.Name, err)
	}

	if err := checkDimensions(src.Name, embeddings, embedder.Dimensions()); err != nil {
		return 0, err
	}

	if err := store.Add(ctx, segments, embeddings); err != nil {
		return 0, fmt.Errorf("failed to store %s: %w", src.Name, err)
	}

	if opts.OnIngest != nil {
		opts.OnIngest(src.Name, len(segments))
	}

	logger.Info("ingested source", "source", src.Name, "path", src.Path, "segments", len(segments))

	return len(segments), nil
}

// appends a retriever that was not built from a document source, such as web search
func (c *Catalog) Register(described retriever.Described) {
	c.entries = append(c.entries, described)
}

// returns the described retrievers in registration order
func (c *Catalog) Described() []retriever.Described {
	out := make([]retriever.Described, len(c.entries))
	copy(out, c.entries)

	return out
}

// lists registered sources with their segment counts
func (c *Catalog) Sources() []SourceInfo {
	out := make([]SourceInfo, 0, len(c.entries))

	for _, d := range c.entries {
		out = append(out, SourceInfo{
			Key:         d.Key,
			Retriever:   d.Retriever.Name(),
			Description: d.Description,
			Segments:    c.counts[d.Key],
		})
	}

	return out
}

// rejects vectors whose width differs from the embedder's; zero means unknown
func checkDimensions(source string, embeddings [][]float32, want int) error {
	if want <= 0 {
		return nil
	}

	for i, vec := range embeddings {
		if len(vec) != want {
			return fmt.Errorf("embedding %d for %s has %d dimensions, expected %d", i, source, len(vec), want)
		}
	}

	return nil
}
