package tool

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
)

// EntityFormatter renders one matched entity as a user-visible line.
type EntityFormatter func(entity contractx.Entity) string

// NewFilteredQueryTool builds a generic collection-search tool parameterized
// by repository and formatter. Each domain agent instantiates it against its
// own collection instead of subclassing a shared query tool.
func NewFilteredQueryTool(
	name, description, collection string,
	repo contractx.EntityRepository,
	format EntityFormatter,
	opts ...Option,
) *Definition {
	if format == nil {
		format = defaultEntityFormat
	}

	properties := []contractx.ToolProperty{
		{Name: "query", Type: "string", Required: true, Description: "Free-text keywords to match against the collection"},
		{Name: "limit", Type: "number", Required: false, Description: "Maximum number of rows to return"},
	}

	handler := func(ctx context.Context, args map[string]any) contractx.ToolResult {
		query := StringArg(args, "query")
		limit := IntArg(args, "limit")
		if limit <= 0 {
			limit = 10
		}

		keywords := splitKeywords(query)
		if len(keywords) == 0 {
			return contractx.ToolResult{Content: fmt.Sprintf("No usable keywords in query for %s.", collection)}
		}

		entities, err := repo.SearchByKeywords(ctx, keywords, limit)
		if err != nil {
			return contractx.ToolResult{Error: fmt.Sprintf("search %s: %v", collection, err)}
		}
		if len(entities) == 0 {
			return contractx.ToolResult{Content: fmt.Sprintf("No %s matched %q.", collection, query)}
		}

		lines := make([]string, 0, len(entities))
		for _, entity := range entities {
			lines = append(lines, format(entity))
		}
		return contractx.ToolResult{
			Content: strings.Join(lines, "\n"),
			Data:    entities,
		}
	}

	return New(name, description, properties, handler, opts...)
}

func defaultEntityFormat(entity contractx.Entity) string {
	if entity.Body == "" {
		return fmt.Sprintf("- %s (id=%s)", entity.Title, entity.ID)
	}
	return fmt.Sprintf("- %s (id=%s): %s", entity.Title, entity.ID, entity.Body)
}

func splitKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	keywords := fields[:0]
	for _, token := range fields {
		if len(token) > 2 {
			keywords = append(keywords, token)
		}
	}
	return keywords
}
