package augmentor

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/docrouter/server/internal/retriever"
	"codeberg.org/docrouter/server/internal/router"
	"golang.org/x/sync/errgroup"
)

const injectionHeader = "Answer using the following information:"

// what a single retriever contributed to an augmentation
type Selection struct {
	Retriever string              `json:"retriever"`
	Contents  []retriever.Content `json:"contents"`
}

// the user message to send plus the routing decision behind it
type Augmentation struct {
	Message  string              `json:"message"`
	Contents []retriever.Content `json:"contents"`
	Selected []Selection         `json:"selected"`
}

// observes per-retriever retrieval results
type RetrievalObserver func(retrieverName string, contents int, err error)

// routes a query, retrieves content and injects it into the user message
type Augmentor struct {
	router   router.QueryRouter
	observer RetrievalObserver
}

func New(queryRouter router.QueryRouter) *Augmentor {
	return &Augmentor{router: queryRouter}
}

func (a *Augmentor) WithObserver(observer RetrievalObserver) *Augmentor {
	a.observer = observer
	return a
}

func (a *Augmentor) Augment(ctx context.Context, query retriever.Query) (*Augmentation, error) {
	retrievers, err := a.router.Route(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to route query: %w", err)
	}

	results := make([][]retriever.Content, len(retrievers))

	g, gctx := errgroup.WithContext(ctx)

	for i, r := range retrievers {
		g.Go(func() error {
			contents, err := r.Retrieve(gctx, query)

			if a.observer != nil {
				a.observer(r.Name(), len(contents), err)
			}

			if err != nil {
				return fmt.Errorf("%s: %w", r.Name(), err)
			}

			results[i] = contents

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to retrieve content: %w", err)
	}

	selected := make([]Selection, len(retrievers))
	var all []retriever.Content

	for i, r := range retrievers {
		contents := results[i]
		if contents == nil {
			contents = []retriever.Content{}
		}

		selected[i] = Selection{Retriever: r.Name(), Contents: contents}
		all = append(all, contents...)
	}

	contents := retriever.Deduplicate(all)

	return &Augmentation{
		Message:  inject(query.Text, contents),
		Contents: contents,
		Selected: selected,
	}, nil
}

// appends retrieved content to the user message
func inject(query string, contents []retriever.Content) string {
	if len(contents) == 0 {
		return query
	}

	texts := make([]string, len(contents))
	for i, c := range contents {
		texts[i] = c.Text
	}

	var sb strings.Builder

	sb.WriteString(query)
	sb.WriteString("\n\n")
	sb.WriteString(injectionHeader)
	sb.WriteString("\n")
	sb.WriteString(strings.Join(texts, "\n\n"))

	return sb.String()
}
