package retriever

import (
	"strings"

	"codeberg.org/docrouter/server/internal/websearch"
)

// renders a web result as title, url and content lines
func formatWebResult(result websearch.Result) string {
	parts := make([]string, 0, 3)

	for _, part := range []string{result.Title, result.URL, result.Content} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, "\n")
}

// drops contents whose text was already seen, keeping first occurrences in order
func Deduplicate(contents []Content) []Content {
	seen := make(map[string]bool, len(contents))
	out := make([]Content, 0, len(contents))

	for _, c := range contents {
		key := strings.TrimSpace(c.Text)
		if key == "" || seen[key] {
			continue
		}

		seen[key] = true
		out = append(out, c)
	}

	return out
}

// returns the retrievers of a described list in order
func Retrievers(described []Described) []ContentRetriever {
	out := make([]ContentRetriever, len(described))
	for i, d := range described {
		out[i] = d.Retriever
	}

	return out
}
