package retriever

import (
	"context"
	"fmt"

	"codeberg.org/docrouter/server/internal/websearch"
)

const webSource = "web"

// retrieves live web search results
type WebSearchRetriever struct {
	engine     websearch.Engine
	maxResults int
}

func NewWebSearchRetriever(engine websearch.Engine, maxResults int) *WebSearchRetriever {
	if maxResults <= 0 {
		maxResults = defaultWebMaxResults
	}

	return &WebSearchRetriever{
		engine:     engine,
		maxResults: maxResults,
	}
}

func (r *WebSearchRetriever) Name() string {
	return "WebSearchRetriever(Tavily)"
}

func (r *WebSearchRetriever) Retrieve(ctx context.Context, query Query) ([]Content, error) {
	results, err := r.engine.Search(ctx, query.Text, r.maxResults)
	if err != nil {
		return nil, fmt.Errorf("web search failed: %w", err)
	}

	contents := make([]Content, 0, len(results))

	for _, result := range results {
		contents = append(contents, Content{
			Text:   formatWebResult(result),
			Source: webSource,
			Score:  result.Score,
			Metadata: map[string]any{
				"title": result.Title,
				"url":   result.URL,
			},
		})
	}

	return contents, nil
}
