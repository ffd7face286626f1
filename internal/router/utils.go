package router

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"codeberg.org/docrouter/server/internal/retriever"
)

func (s FallbackStrategy) String() string {
	switch s {
	case RouteToAll:
		return "route_to_all"
	case Fail:
		return "fail"
	default:
		return "do_not_route"
	}
}

// parses a strategy name as used in configuration
func ParseFallback(name string) (FallbackStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "do_not_route", "none":
		return DoNotRoute, nil
	case "route_to_all", "all":
		return RouteToAll, nil
	case "fail":
		return Fail, nil
	default:
		return DoNotRoute, fmt.Errorf("unknown router fallback %q", name)
	}
}

func buildRoutingPrompt(options []retriever.Described, query string) string {
	var sb strings.Builder

	sb.WriteString("Based on the user query, determine the most suitable data source(s) ")
	sb.WriteString("to retrieve relevant information from the following options:\n")

	for i, opt := range options {
		fmt.Fprintf(&sb, "%d: %s\n", i+1, opt.Description)
	}

	sb.WriteString("It is very important that your answer consists of either a single number ")
	sb.WriteString("or multiple numbers separated by commas and nothing else!\n")
	sb.WriteString("User query: ")
	sb.WriteString(query)

	return sb.String()
}

// extracts zero-based option indices from a model answer in order of first appearance
func parseSelection(answer string, count int) []int {
	fields := strings.FieldsFunc(answer, func(r rune) bool {
		return !unicode.IsDigit(r)
	})

	seen := make(map[int]bool, len(fields))
	indices := make([]int, 0, len(fields))

	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > count {
			continue
		}

		idx := n - 1
		if seen[idx] {
			continue
		}

		seen[idx] = true
		indices = append(indices, idx)
	}

	return indices
}
