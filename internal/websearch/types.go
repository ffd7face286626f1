package websearch

import "context"

// searches the web for a query
type Engine interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type TavilyConfig struct {
	APIKey      string
	BaseURL     string // defaults to https://api.tavily.com
	SearchDepth string // "basic" or "advanced"
}

type searchRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	MaxResults    int    `json:"max_results"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
}

type searchResponse struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}
