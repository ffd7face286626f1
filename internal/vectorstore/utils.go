package vectorstore

import (
	"fmt"
	"math"
)

// maps cosine similarity from [-1,1] to a [0,1] relevance score
func relevanceScore(cosine float64) float64 {
	return (cosine + 1) / 2
}

// reports false when either vector has zero length or magnitude
func cosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64

	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, false
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}

func checkLengths(segments, embeddings int) error {
	if segments != embeddings {
		return fmt.Errorf("segments and embeddings length mismatch: %d != %d", segments, embeddings)
	}

	return nil
}
