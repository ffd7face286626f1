package vectorstore

import (
	"context"
	"sort"
	"sync"

	"codeberg.org/docrouter/server/internal/loader"
)

type entry struct {
	segment   loader.Segment
	embedding []float32
}

// in-process store scanned with cosine similarity
type Memory struct {
	mu      sync.RWMutex
	entries []entry
}

func NewMemory() *Memory {
	return &Memory{}
}

// returns a factory producing an independent memory store per source
func MemoryFactory() Factory {
	return func(context.Context, string) (Store, error) {
		return NewMemory(), nil
	}
}

func (m *Memory) Add(_ context.Context, segments []loader.Segment, embeddings [][]float32) error {
	if err := checkLengths(len(segments), len(embeddings)); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, seg := range segments {
		vec := make([]float32, len(embeddings[i]))
		copy(vec, embeddings[i])

		m.entries = append(m.entries, entry{segment: seg, embedding: vec})
	}

	return nil
}

// returns up to maxResults matches scoring at least minScore, best first
func (m *Memory) Search(_ context.Context, embedding []float32, maxResults int, minScore float64) ([]Match, error) {
	if maxResults <= 0 {
		return []Match{}, nil
	}

	m.mu.RLock()
	matches := make([]Match, 0, len(m.entries))

	for _, e := range m.entries {
		score := 0.0
		if cos, ok := cosineSimilarity(embedding, e.embedding); ok {
			score = relevanceScore(cos)
		}

		if score < minScore {
			continue
		}

		matches = append(matches, Match{Segment: e.segment, Score: score})
	}
	m.mu.RUnlock()

	// stable keeps insertion order for equal scores
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	return matches, nil
}

func (m *Memory) Count(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries), nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	m.entries = nil
	m.mu.Unlock()

	return nil
}
