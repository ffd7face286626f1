package loader

// a named document collection that gets its own store and retriever
type Source struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// a piece of a document small enough to embed
type Segment struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type SplitOptions struct {
	ChunkSize    int
	ChunkOverlap int
}
