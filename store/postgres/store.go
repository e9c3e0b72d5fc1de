// Package postgres persists the durable chat log, the search-record table,
// and the four keyword-filterable entity collections on PostgreSQL via bun.
package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

type Store struct {
	db *bun.DB
}

func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	models := []any{
		(*chatMessage)(nil),
		(*chatSearchRecord)(nil),
		(*customerRow)(nil),
		(*productRow)(nil),
		(*contentItemRow)(nil),
		(*orderRow)(nil),
	}
	for _, model := range models {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	if _, err := s.db.NewCreateIndex().
		Model((*chatMessage)(nil)).
		Index("idx_chat_messages_conversation").
		Column("conversation_id", "created_at").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create chat message index: %w", err)
	}
	return nil
}
