package tool

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
	searchx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/search"
	logx "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/logger"
)

const SearchToolName = "retrieval.search"

// NewSearchTool exposes the retrieval engine as an agent tool. Every run is
// recorded as a search record so it can resurface as a chat_history candidate
// in later queries.
func NewSearchTool(engine *searchx.Engine, conversationID string, opts ...Option) *Definition {
	properties := []contractx.ToolProperty{
		{Name: "query", Type: "string", Required: true, Description: "Free-text search query"},
		{Name: "type", Type: "string", Required: false, Description: "Restrict to one result type: customer, product, content, order, chat_history, or all"},
		{Name: "limit", Type: "number", Required: false, Description: "Maximum number of results"},
	}

	handler := func(ctx context.Context, args map[string]any) contractx.ToolResult {
		query := StringArg(args, "query")
		results, err := engine.Search(ctx, query, searchx.Options{
			Type:  StringArg(args, "type"),
			Limit: IntArg(args, "limit"),
		})
		if err != nil {
			return contractx.ToolResult{Error: fmt.Sprintf("search: %v", err)}
		}

		if err := engine.SaveSearchResult(ctx, conversationID, "", query, results, nil); err != nil {
			logx.Warn().Err(err).Str("query", query).Msg("failed to record search")
		}

		if len(results) == 0 {
			return contractx.ToolResult{Content: fmt.Sprintf("Nothing matched %q.", query)}
		}

		lines := make([]string, 0, len(results))
		for _, r := range results {
			lines = append(lines, fmt.Sprintf("- [%s] %s (%.2f): %s", r.Type, r.Title, r.Relevance, r.Excerpt))
		}
		return contractx.ToolResult{
			Content: strings.Join(lines, "\n"),
			Data:    results,
		}
	}

	return New(
		SearchToolName,
		"Search customers, products, content, orders, and prior conversation history.",
		properties,
		handler,
		opts...,
	)
}
