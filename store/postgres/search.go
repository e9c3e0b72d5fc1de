package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
)

var _ contractx.SearchRecordStore = (*Store)(nil)

func (s *Store) SaveRecord(ctx context.Context, rec contractx.SearchRecord) error {
	encoded, err := json.Marshal(rec.Results)
	if err != nil {
		return fmt.Errorf("marshal search results: %w", err)
	}

	row := chatSearchRecord{
		ID:             rec.ID,
		ConversationID: rec.ConversationID,
		MessageID:      rec.MessageID,
		Query:          rec.Query,
		Results:        string(encoded),
		Metadata:       rec.Metadata,
		RelevanceScore: rec.Relevance,
		CreatedAt:      rec.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert search record: %w", err)
	}
	return nil
}

// FindRecords returns prior searches whose query or serialized results
// contain the text, case-insensitively, newest and most relevant first.
func (s *Store) FindRecords(ctx context.Context, query string, limit int) ([]contractx.SearchRecord, error) {
	pattern := "%" + query + "%"

	var rows []chatSearchRecord
	err := s.db.NewSelect().
		Model(&rows).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("query ILIKE ?", pattern).
				WhereOr("results::text ILIKE ?", pattern)
		}).
		Order("created_at DESC").
		Order("relevance_score DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select search records: %w", err)
	}

	records := make([]contractx.SearchRecord, 0, len(rows))
	for _, row := range rows {
		var results []contractx.SearchResult
		if row.Results != "" {
			if err := json.Unmarshal([]byte(row.Results), &results); err != nil {
				return nil, fmt.Errorf("unmarshal search results for record %s: %w", row.ID, err)
			}
		}
		records = append(records, contractx.SearchRecord{
			ID:             row.ID,
			ConversationID: row.ConversationID,
			MessageID:      row.MessageID,
			Query:          row.Query,
			Results:        results,
			Relevance:      row.RelevanceScore,
			Metadata:       row.Metadata,
			CreatedAt:      row.CreatedAt,
		})
	}
	return records, nil
}
