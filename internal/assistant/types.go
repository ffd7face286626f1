package assistant

import (
	"context"
	"time"

	"codeberg.org/docrouter/server/internal/augmentor"
	"codeberg.org/docrouter/server/internal/llm"
	"codeberg.org/docrouter/server/internal/loader"
	"codeberg.org/docrouter/server/internal/memory"
	"codeberg.org/docrouter/server/internal/retriever"
)

// turns a question into an augmented user message
type Augmenter interface {
	Augment(ctx context.Context, query retriever.Query) (*augmentor.Augmentation, error)
}

// answers questions with retrieval augmented generation and chat memory
type Assistant struct {
	chat         llm.ChatModel
	augmentor    Augmenter
	memory       memory.ChatMemory
	systemPrompt string
	onAsk        func(elapsed time.Duration, err error)
}

type Options struct {
	SystemPrompt string

	// called after every Ask with its duration and error
	OnAsk func(elapsed time.Duration, err error)
}

// the answer plus what the router picked to produce it
type RagResponse struct {
	Answer    string                `json:"answer"`
	DebugInfo string                `json:"debug_info"`
	Selected  []augmentor.Selection `json:"selected"`
	Model     string                `json:"model"`
	Usage     llm.Usage             `json:"usage"`
}

type IngestOptions struct {
	Split      loader.SplitOptions
	MaxResults int
	MinScore   float64

	// reuse stores that already hold segments instead of loading the source again
	SkipExisting bool

	OnIngest func(source string, segments int)
}

// a registered document source and its store
type SourceInfo struct {
	Key         string `json:"key"`
	Retriever   string `json:"retriever"`
	Description string `json:"description"`
	Segments    int    `json:"segments"`
}

// the retrievers built by ingestion
type Catalog struct {
	entries []retriever.Described
	counts  map[string]int
}
