package assistant

import (
	"fmt"
	"strings"

	"codeberg.org/docrouter/server/internal/augmentor"
)

// renders which retrievers the router picked and what each one found
func FormatRouterDebug(selections []augmentor.Selection) string {
	if len(selections) == 0 {
		return "--- The router selected no ContentRetriever. ---"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "--- The router selected %d retriever(s) ---\n\n", len(selections))

	for _, sel := range selections {
		if len(sel.Contents) == 0 {
			fmt.Fprintf(&sb, "--- [ %s ] returned no segment.\n", sel.Retriever)
			continue
		}

		fmt.Fprintf(&sb, "--- Segments found by [ %s ] ---\n", sel.Retriever)

		for _, content := range sel.Contents {
			sb.WriteString(content.Text)
			sb.WriteString("\n---\n")
		}
	}

	return sb.String()
}
