// Package search merges keyword search across the entity collections with
// persisted prior searches, scores relevance, and ranks deterministically.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
	logx "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/logger"
)

// DefaultLimit caps a search when the caller does not set one.
const DefaultLimit = 10

// Base relevance constants per collection. A keyword score only replaces
// these when a result arrives unscored.
const (
	relevanceProduct  = 0.9
	relevanceCustomer = 0.8
	relevanceOrder    = 0.85
	relevanceContent  = 0.7
)

type Config struct {
	Limit int `envconfig:"LIMIT" split_words:"true" default:"10"`
}

// Options narrow a search to one result type and cap the result count.
type Options struct {
	Type  string
	Limit int
}

// Collection is one searchable entity source wrapped with its type tag and
// base relevance.
type Collection struct {
	Type      string
	Source    string
	Relevance float64
	Repo      contractx.EntityRepository
}

// Engine executes the retrieval pipeline. Collections are queried in their
// registration order, after chat-history candidates.
type Engine struct {
	records     contractx.SearchRecordStore
	collections []Collection
}

func NewEngine(records contractx.SearchRecordStore, collections ...Collection) *Engine {
	return &Engine{records: records, collections: collections}
}

// DefaultCollections wires the four entity repositories in their fixed
// ranking-tie order.
func DefaultCollections(customers, products, content, orders contractx.EntityRepository) []Collection {
	return []Collection{
		{Type: contractx.ResultTypeCustomer, Source: "customers", Relevance: relevanceCustomer, Repo: customers},
		{Type: contractx.ResultTypeProduct, Source: "products", Relevance: relevanceProduct, Repo: products},
		{Type: contractx.ResultTypeContent, Source: "content", Relevance: relevanceContent, Repo: content},
		{Type: contractx.ResultTypeOrder, Source: "orders", Relevance: relevanceOrder, Repo: orders},
	}
}

// Search runs the full pipeline: prior-search candidates first, then keyword
// matches from each enabled collection, then scoring, stable ranking, and
// truncation. A failing collection contributes zero results instead of
// aborting the search.
func (e *Engine) Search(ctx context.Context, query string, opts Options) ([]contractx.SearchResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	resultType := strings.TrimSpace(opts.Type)
	if resultType == "" {
		resultType = contractx.ResultTypeAll
	}

	keywords := extractKeywords(query)
	merged := e.historyCandidates(ctx, query, limit)

	if len(keywords) > 0 {
		for _, col := range e.collections {
			if resultType != contractx.ResultTypeAll && resultType != col.Type {
				continue
			}
			entities, err := col.Repo.SearchByKeywords(ctx, keywords, limit)
			if err != nil {
				logx.Warn().Err(err).Str("collection", col.Source).Msg("collection search failed, skipping")
				continue
			}
			for _, entity := range entities {
				merged = append(merged, contractx.SearchResult{
					Type:      col.Type,
					Source:    col.Source,
					Title:     entity.Title,
					Excerpt:   excerpt(entity.Body),
					Relevance: col.Relevance,
					Metadata:  map[string]any{"entity_id": entity.ID},
				})
			}
		}
	}

	for i, result := range merged {
		if result.Relevance == 0 {
			merged[i].Relevance = scoreKeywords(result.Title+" "+result.Excerpt, keywords)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Relevance > merged[j].Relevance
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// SaveSearchResult persists the search as a chat_history candidate for future
// queries. Record relevance is the max relevance among the results.
func (e *Engine) SaveSearchResult(ctx context.Context, conversationID, messageID, query string, results []contractx.SearchResult, metadata map[string]any) error {
	relevance := 0.0
	for _, r := range results {
		if r.Relevance > relevance {
			relevance = r.Relevance
		}
	}

	rec := contractx.SearchRecord{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		MessageID:      messageID,
		Query:          query,
		Results:        results,
		Relevance:      relevance,
		Metadata:       metadata,
		CreatedAt:      time.Now().UTC(),
	}
	if err := e.records.SaveRecord(ctx, rec); err != nil {
		return fmt.Errorf("%w: save search record: %v", contractx.ErrPersistence, err)
	}
	return nil
}

func (e *Engine) historyCandidates(ctx context.Context, query string, limit int) []contractx.SearchResult {
	records, err := e.records.FindRecords(ctx, query, limit)
	if err != nil {
		logx.Warn().Err(err).Msg("search record lookup failed, skipping history candidates")
		return nil
	}

	results := make([]contractx.SearchResult, 0, len(records))
	for _, rec := range records {
		results = append(results, contractx.SearchResult{
			Type:      contractx.ResultTypeChatHistory,
			Source:    "chat_history",
			Title:     rec.Query,
			Excerpt:   summarizeRecord(rec),
			Relevance: rec.Relevance,
			Metadata: map[string]any{
				"record_id":       rec.ID,
				"conversation_id": rec.ConversationID,
			},
		})
	}
	return results
}

func summarizeRecord(rec contractx.SearchRecord) string {
	if len(rec.Results) == 0 {
		return "Previous search: " + rec.Query
	}
	titles := make([]string, 0, len(rec.Results))
	for _, r := range rec.Results {
		if r.Title != "" {
			titles = append(titles, r.Title)
		}
	}
	if len(titles) == 0 {
		return "Previous search: " + rec.Query
	}
	return "Previous search matched: " + strings.Join(titles, ", ")
}

const maxExcerptLen = 200

func excerpt(body string) string {
	body = strings.TrimSpace(body)
	if len(body) <= maxExcerptLen {
		return body
	}
	return body[:maxExcerptLen] + "..."
}
