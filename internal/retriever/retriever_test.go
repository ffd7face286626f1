package retriever

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codeberg.org/docrouter/server/internal/loader"
	"codeberg.org/docrouter/server/internal/vectorstore"
	"codeberg.org/docrouter/server/internal/websearch"
)

// mock embedder for testing
type mockEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (m *mockEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}

	if v, ok := m.vectors[text]; ok {
		return v, nil
	}

	return []float32{1, 0}, nil
}

// mock search engine for testing
type mockEngine struct {
	results   []websearch.Result
	err       error
	lastMax   int
	lastQuery string
}

func (m *mockEngine) Search(_ context.Context, query string, maxResults int) ([]websearch.Result, error) {
	m.lastQuery = query
	m.lastMax = maxResults

	return m.results, m.err
}

func newStore(t *testing.T) vectorstore.Store {
	t.Helper()

	store := vectorstore.NewMemory()
	err := store.Add(context.Background(),
		[]loader.Segment{
			{Text: "RAG combines retrieval and generation", Metadata: map[string]any{"index": 0}},
			{Text: "Bonds pay fixed coupons", Metadata: map[string]any{"index": 1}},
			{Text: "Embeddings map text to vectors", Metadata: map[string]any{"index": 2}},
		},
		[][]float32{{1, 0}, {0, 1}, {0.9, 0.1}},
	)

	if err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	return store
}

func TestEmbeddingStoreRetriever_Retrieve(t *testing.T) {
	r := NewEmbeddingStoreRetriever("rag", newStore(t), &mockEmbedder{}, 2, 0)

	if r.Name() != "EmbeddingStoreContentRetriever(rag)" {
		t.Errorf("unexpected name %q", r.Name())
	}

	contents, err := r.Retrieve(context.Background(), Query{Text: "what is RAG?"})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}

	if contents[0].Text != "RAG combines retrieval and generation" {
		t.Errorf("expected best match first, got %q", contents[0].Text)
	}

	for _, c := range contents {
		if c.Source != "rag" {
			t.Errorf("expected source rag, got %q", c.Source)
		}
	}

	if contents[0].Score < contents[1].Score {
		t.Errorf("contents not sorted: %f < %f", contents[0].Score, contents[1].Score)
	}
}

func TestEmbeddingStoreRetriever_DefaultMaxResults(t *testing.T) {
	r := NewEmbeddingStoreRetriever("rag", newStore(t), &mockEmbedder{}, 0, 0)

	contents, err := r.Retrieve(context.Background(), Query{Text: "q"})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if len(contents) != defaultMaxResults {
		t.Errorf("expected %d contents, got %d", defaultMaxResults, len(contents))
	}
}

func TestEmbeddingStoreRetriever_EmbedError(t *testing.T) {
	r := NewEmbeddingStoreRetriever("rag", newStore(t), &mockEmbedder{err: errors.New("quota")}, 2, 0)

	_, err := r.Retrieve(context.Background(), Query{Text: "q"})
	if err == nil || !strings.Contains(err.Error(), "quota") {
		t.Errorf("expected wrapped embed error, got %v", err)
	}
}

func TestWebSearchRetriever_Retrieve(t *testing.T) {
	engine := &mockEngine{results: []websearch.Result{
		{Title: "ECB", URL: "https://ecb.example", Content: "rates held", Score: 0.8},
		{Title: "", URL: "https://bare.example", Content: "no title"},
	}}

	r := NewWebSearchRetriever(engine, 0)

	if r.Name() != "WebSearchRetriever(Tavily)" {
		t.Errorf("unexpected name %q", r.Name())
	}

	contents, err := r.Retrieve(context.Background(), Query{Text: "ecb rate"})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if engine.lastMax != defaultWebMaxResults || engine.lastQuery != "ecb rate" {
		t.Errorf("unexpected search call: query=%q max=%d", engine.lastQuery, engine.lastMax)
	}

	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}

	if contents[0].Text != "ECB\nhttps://ecb.example\nrates held" {
		t.Errorf("unexpected content %q", contents[0].Text)
	}

	if contents[1].Text != "https://bare.example\nno title" {
		t.Errorf("unexpected content %q", contents[1].Text)
	}

	if contents[0].Metadata["url"] != "https://ecb.example" {
		t.Errorf("missing url metadata")
	}
}

func TestWebSearchRetriever_Error(t *testing.T) {
	r := NewWebSearchRetriever(&mockEngine{err: websearch.ErrUnauthorized}, 3)

	_, err := r.Retrieve(context.Background(), Query{Text: "q"})
	if !errors.Is(err, websearch.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDeduplicate(t *testing.T) {
	contents := []Content{
		{Text: "a", Source: "rag"},
		{Text: "b", Source: "rag"},
		{Text: " a ", Source: "finance"},
		{Text: "  "},
		{Text: "c", Source: "web"},
	}

	got := Deduplicate(contents)

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d contents, got %d", len(want), len(got))
	}

	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("position %d: expected %q, got %q", i, w, got[i].Text)
		}
	}

	if got[0].Source != "rag" {
		t.Errorf("expected first occurrence to be kept")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RETRIEVAL_MAX_RESULTS", "")
	t.Setenv("RETRIEVAL_MIN_SCORE", "")
	t.Setenv("WEB_MAX_RESULTS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if *cfg != DefaultConfig() {
		t.Errorf("expected defaults, got %+v", *cfg)
	}

	t.Setenv("RETRIEVAL_MIN_SCORE", "1.5")

	if _, err := LoadConfig(); err == nil {
		t.Errorf("expected error for out of range min score")
	}

	t.Setenv("RETRIEVAL_MIN_SCORE", "0.6")
	t.Setenv("RETRIEVAL_MAX_RESULTS", "4")

	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MaxResults != 4 || cfg.MinScore != 0.6 {
		t.Errorf("unexpected config %+v", *cfg)
	}
}
