package router

import (
	"context"

	"codeberg.org/docrouter/server/internal/llm"
	"codeberg.org/docrouter/server/internal/retriever"
)

// picks the retrievers that should answer a query
type QueryRouter interface {
	Route(ctx context.Context, query retriever.Query) ([]retriever.ContentRetriever, error)
}

// decides what happens when the model cannot pick a retriever
type FallbackStrategy int

const (
	// route nowhere and answer from the model alone
	DoNotRoute FallbackStrategy = iota
	RouteToAll
	Fail
)

type Option func(*LanguageModelRouter)

// routes with a chat model over numbered retriever descriptions
type LanguageModelRouter struct {
	model    llm.ChatModel
	options  []retriever.Described
	fallback FallbackStrategy
	onRouted func(selected []retriever.Described, fallback bool)
}
