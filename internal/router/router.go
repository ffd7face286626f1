package router

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/docrouter/server/internal/llm"
	"codeberg.org/docrouter/server/internal/logger"
	"codeberg.org/docrouter/server/internal/retriever"
)

// returned by the Fail strategy when no retriever could be selected
var ErrNoRoute = errors.New("router could not select a retriever")

func WithFallback(strategy FallbackStrategy) Option {
	return func(r *LanguageModelRouter) {
		r.fallback = strategy
	}
}

// registers a callback invoked after every routing decision
func WithObserver(fn func(selected []retriever.Described, fallback bool)) Option {
	return func(r *LanguageModelRouter) {
		r.onRouted = fn
	}
}

func NewLanguageModelRouter(model llm.ChatModel, options []retriever.Described, opts ...Option) (*LanguageModelRouter, error) {
	if model == nil {
		return nil, fmt.Errorf("router model cannot be nil")
	}

	if len(options) == 0 {
		return nil, fmt.Errorf("at least one retriever is required")
	}

	r := &LanguageModelRouter{
		model:    model,
		options:  options,
		fallback: DoNotRoute,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func (r *LanguageModelRouter) Route(ctx context.Context, query retriever.Query) ([]retriever.ContentRetriever, error) {
	// nothing to choose between
	if len(r.options) == 1 {
		r.observe(r.options, false)
		return retriever.Retrievers(r.options), nil
	}

	// token budget and temperature come from the router model's own config
	resp, err := r.model.Generate(ctx, llm.GenerateRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: buildRoutingPrompt(r.options, query.Text)}},
	})

	if err != nil {
		logger.Warn("router model call failed, applying fallback",
			"error", err,
			"fallback", r.fallback.String(),
		)

		return r.applyFallback(err)
	}

	indices := parseSelection(resp.Text, len(r.options))
	if len(indices) == 0 {
		logger.Warn("router answer selected no valid retriever, applying fallback",
			"answer", resp.Text,
			"fallback", r.fallback.String(),
		)

		return r.applyFallback(fmt.Errorf("unusable router answer %q", resp.Text))
	}

	selected := make([]retriever.Described, 0, len(indices))
	for _, idx := range indices {
		selected = append(selected, r.options[idx])
	}

	logger.Debug("router selected retrievers", "count", len(selected), "answer", resp.Text)

	r.observe(selected, false)

	return retriever.Retrievers(selected), nil
}

func (r *LanguageModelRouter) applyFallback(cause error) ([]retriever.ContentRetriever, error) {
	switch r.fallback {
	case RouteToAll:
		r.observe(r.options, true)
		return retriever.Retrievers(r.options), nil
	case Fail:
		return nil, fmt.Errorf("%w: %w", ErrNoRoute, cause)
	default:
		r.observe(nil, true)
		return []retriever.ContentRetriever{}, nil
	}
}

func (r *LanguageModelRouter) observe(selected []retriever.Described, fallback bool) {
	if r.onRouted != nil {
		r.onRouted(selected, fallback)
	}
}

// sends every query to every retriever
type AllRouter struct {
	retrievers []retriever.ContentRetriever
}

func NewAllRouter(options []retriever.Described) *AllRouter {
	return &AllRouter{retrievers: retriever.Retrievers(options)}
}

func (r *AllRouter) Route(context.Context, retriever.Query) ([]retriever.ContentRetriever, error) {
	out := make([]retriever.ContentRetriever, len(r.retrievers))
	copy(out, r.retrievers)

	return out, nil
}

// never retrieves, leaving the model to answer alone
type NoneRouter struct{}

func (NoneRouter) Route(context.Context, retriever.Query) ([]retriever.ContentRetriever, error) {
	return []retriever.ContentRetriever{}, nil
}
