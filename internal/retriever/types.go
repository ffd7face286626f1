package retriever

import "context"

// finds content relevant to a query
type ContentRetriever interface {
	Retrieve(ctx context.Context, query Query) ([]Content, error)
	Name() string
}

// embeds query text
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

type Query struct {
	Text           string `json:"text"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// a piece of retrieved text
type Content struct {
	Text     string         `json:"text"`
	Source   string         `json:"source"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// pairs a retriever with the description a router chooses by
type Described struct {
	Key         string // short identifier, e.g. "rag", "web"
	Retriever   ContentRetriever
	Description string
}

type Config struct {
	MaxResults    int     // segments per document store
	MinScore      float64 // minimum relevance in [0,1]
	WebMaxResults int
}
