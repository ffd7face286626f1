package main

import (
	"context"
	"fmt"
	"slices"

	"codeberg.org/docrouter/server/internal/config"
	"codeberg.org/docrouter/server/internal/loader"
	"codeberg.org/docrouter/server/internal/vectorstore"
)

// prints stored segments per source, including configured sources that have none
func CountSegments(ctx context.Context, cfg *config.Config, db *vectorstore.DB, flags config.Flags) error {
	sourcesFile := flags.SourcesFile
	if sourcesFile == "" {
		sourcesFile = cfg.SourcesFile
	}

	sources, err := loader.LoadSources(sourcesFile)
	if err != nil {
		return err
	}

	counts, err := db.CountBySource(ctx)
	if err != nil {
		return err
	}

	for _, line := range countLines(sources, counts) {
		fmt.Println(line)
	}

	return nil
}

// configured sources first, then anything else found in the table
func countLines(sources []loader.Source, counts map[string]int) []string {
	lines := make([]string, 0, len(counts)+len(sources))
	seen := make(map[string]bool, len(sources))

	for _, src := range sources {
		seen[src.Name] = true
		lines = append(lines, fmt.Sprintf("%-20s %6d segments", src.Name, counts[src.Name]))
	}

	var extra []string
	for name := range counts {
		if !seen[name] {
			extra = append(extra, name)
		}
	}

	slices.Sort(extra)

	for _, name := range extra {
		lines = append(lines, fmt.Sprintf("%-20s %6d segments (not configured)", name, counts[name]))
	}

	return lines
}
