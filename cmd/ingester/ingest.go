package main

import (
	"context"
	"fmt"

	"codeberg.org/docrouter/server/internal/assistant"
	"codeberg.org/docrouter/server/internal/config"
	"codeberg.org/docrouter/server/internal/llm"
	"codeberg.org/docrouter/server/internal/loader"
	"codeberg.org/docrouter/server/internal/logger"
	"codeberg.org/docrouter/server/internal/vectorstore"
)

// loads every source and stores its embedded segments in pgvector
func IngestSources(ctx context.Context, cfg *config.Config, db *vectorstore.DB, flags config.Flags) error {
	if cfg.GeminiKey == "" {
		return fmt.Errorf("GEMINI_KEY environment variable is required for ingestion")
	}

	sourcesFile := flags.SourcesFile
	if sourcesFile == "" {
		sourcesFile = cfg.SourcesFile
	}

	sources, err := loader.LoadSources(sourcesFile)
	if err != nil {
		return err
	}

	logger.Info("starting ingestion", "sources", len(sources), "clear", flags.Clear)

	// clear existing segments if requested
	if flags.Clear {
		for _, src := range sources {
			if err := db.Store(src.Name).Clear(ctx); err != nil {
				return fmt.Errorf("failed to clear %s: %w", src.Name, err)
			}
		}

		logger.Info("cleared existing segments")
	}

	clients, err := llm.NewClients(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	catalog, err := assistant.Ingest(ctx, sources, clients.Embedder, db.Factory(), assistant.IngestOptions{
		Split: loader.SplitOptions{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
		},

		// without --clear, sources that already hold segments are left alone
		SkipExisting: !flags.Clear,
	})
	if err != nil {
		return err
	}

	for _, info := range catalog.Sources() {
		fmt.Printf("%-20s %6d segments\n", info.Key, info.Segments)
	}

	logger.Info("successfully ingested sources")

	return nil
}
