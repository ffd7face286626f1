package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// returns the two built-in document sources
func DefaultSources() []Source {
	return []Source{
		{
			Name:        "rag",
			Path:        "resources/rag.md",
			Description: "Information about RAG (Retrieval-Augmented Generation), LangChain4j and artificial intelligence",
		},
		{
			Name:        "finance",
			Path:        "resources/finance.md",
			Description: "Information about finance, the economy, banks and investments",
		},
	}
}

// reads a JSON list of sources, falling back to the defaults when file is empty
func LoadSources(file string) ([]Source, error) {
	if strings.TrimSpace(file) == "" {
		return DefaultSources(), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file %s: %w", file, err)
	}

	var sources []Source
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse sources file %s: %w", file, err)
	}

	if err := ValidateSources(sources); err != nil {
		return nil, err
	}

	return sources, nil
}

// checks names are present and unique and every source has a path and description
func ValidateSources(sources []Source) error {
	if len(sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	seen := make(map[string]bool, len(sources))

	for i, src := range sources {
		if strings.TrimSpace(src.Name) == "" {
			return fmt.Errorf("source %d: name is required", i)
		}

		if seen[src.Name] {
			return fmt.Errorf("source %q: duplicate name", src.Name)
		}

		seen[src.Name] = true

		if strings.TrimSpace(src.Path) == "" {
			return fmt.Errorf("source %q: path is required", src.Name)
		}

		// the router can only pick sources it can describe
		if strings.TrimSpace(src.Description) == "" {
			return fmt.Errorf("source %q: description is required", src.Name)
		}
	}

	return nil
}
