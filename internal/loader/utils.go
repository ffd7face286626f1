package loader

import (
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/schema"
)

var frontmatterRegex = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n`)

func isSupported(ext string) bool {
	switch ext {
	case ".pdf", ".txt", ".md":
		return true
	default:
		return false
	}
}

// strips yaml frontmatter and moves its key/value pairs into metadata
func withFrontmatter(doc schema.Document) schema.Document {
	matches := frontmatterRegex.FindStringSubmatch(doc.PageContent)
	if len(matches) < 2 {
		return doc
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}

	for _, line := range strings.Split(matches[1], "\n") {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			doc.Metadata[key] = value
		}
	}

	doc.PageContent = frontmatterRegex.ReplaceAllString(doc.PageContent, "")

	return doc
}

func copyMetadata(src map[string]any) map[string]any {
	out := make(map[string]any, len(src)+2)
	for k, v := range src {
		out[k] = v
	}

	return out
}
