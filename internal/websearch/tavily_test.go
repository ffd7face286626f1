package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTavily_Search(t *testing.T) {
	var got searchRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"query": "ecb rate",
			"results": [
				{"title": "ECB", "url": "https://ecb.example", "content": "rates held", "score": 0.9},
				{"title": "News", "url": "https://news.example", "content": "markets up", "score": 0.5}
			]
		}`))
	}))
	defer server.Close()

	client := NewTavily(TavilyConfig{APIKey: "key", BaseURL: server.URL + "/"})

	results, err := client.Search(context.Background(), "ecb rate", 3)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "ECB", results[0].Title)
	assert.Equal(t, "https://ecb.example", results[0].URL)
	assert.Equal(t, "rates held", results[0].Content)
	assert.InDelta(t, 0.9, results[0].Score, 1e-9)

	assert.Equal(t, "key", got.APIKey)
	assert.Equal(t, "ecb rate", got.Query)
	assert.Equal(t, 3, got.MaxResults)
	assert.Equal(t, "basic", got.SearchDepth)
}

func TestTavily_TruncatesToMaxResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[{"title":"a"},{"title":"b"},{"title":"c"}]}`))
	}))
	defer server.Close()

	results, err := NewTavily(TavilyConfig{APIKey: "key", BaseURL: server.URL}).Search(context.Background(), "q", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Title)
}

func TestTavily_Errors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		unauthorized bool
	}{
		{"unauthorized", http.StatusUnauthorized, true},
		{"forbidden", http.StatusForbidden, true},
		{"server error", http.StatusInternalServerError, false},
		{"rate limited", http.StatusTooManyRequests, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"detail":"nope"}`))
			}))
			defer server.Close()

			_, err := NewTavily(TavilyConfig{APIKey: "key", BaseURL: server.URL}).Search(context.Background(), "q", 2)
			require.Error(t, err)

			if tt.unauthorized {
				assert.ErrorIs(t, err, ErrUnauthorized)
			} else {
				assert.NotErrorIs(t, err, ErrUnauthorized)
				assert.Contains(t, err.Error(), "nope")
			}
		})
	}
}

func TestTavily_Validation(t *testing.T) {
	_, err := NewTavily(TavilyConfig{}).Search(context.Background(), "q", 2)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = NewTavily(TavilyConfig{APIKey: "key"}).Search(context.Background(), "  ", 2)
	assert.Error(t, err)
}
