package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codeberg.org/docrouter/server/internal/logger"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://api.tavily.com"
	defaultSearchDepth = "basic"
	defaultMaxResults  = 5
)

// returned when the search provider rejects the API key
var ErrUnauthorized = errors.New("tavily: invalid or missing API key")

// shared HTTP client for Tavily API calls
var tavilyHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for Tavily API calls (5 requests/second with burst capacity of 5)
var tavilyRateLimiter = rate.NewLimiter(5, 5)

type Tavily struct {
	config     TavilyConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewTavily(config TavilyConfig) *Tavily {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	if config.SearchDepth == "" {
		config.SearchDepth = defaultSearchDepth
	}

	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Tavily{
		config:     config,
		httpClient: tavilyHTTPClient,
		limiter:    tavilyRateLimiter,
	}
}

// runs a search and returns the provider's ranked results
func (t *Tavily) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if t.config.APIKey == "" {
		return nil, ErrUnauthorized
	}

	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqBody := searchRequest{
		APIKey:      t.config.APIKey,
		Query:       query,
		MaxResults:  maxResults,
		SearchDepth: t.config.SearchDepth,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.config.BaseURL+"/search", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	logger.Debug("sending web search request", "max_results", maxResults, "depth", t.config.SearchDepth)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("tavily API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := searchResp.Results
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	logger.Debug("received web search response", "results", len(results))

	return results, nil
}
