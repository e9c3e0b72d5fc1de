package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
)

var _ contractx.ChatStore = (*Store)(nil)

func (s *Store) AppendMessage(ctx context.Context, msg contractx.Message) error {
	row := toMessageRow(msg)
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context, conversationID string) ([]contractx.Message, error) {
	var rows []chatMessage
	err := s.db.NewSelect().
		Model(&rows).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select chat messages: %w", err)
	}

	msgs := make([]contractx.Message, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, fromMessageRow(row))
	}
	return msgs, nil
}

// ReplaceMessages swaps the whole durable log for a conversation inside one
// transaction, so readers never observe a partially-replaced log.
func (s *Store) ReplaceMessages(ctx context.Context, conversationID string, msgs []contractx.Message) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*chatMessage)(nil)).
			Where("conversation_id = ?", conversationID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete chat messages: %w", err)
		}
		if len(msgs) == 0 {
			return nil
		}
		rows := make([]chatMessage, 0, len(msgs))
		for _, msg := range msgs {
			rows = append(rows, toMessageRow(msg))
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("insert chat messages: %w", err)
		}
		return nil
	})
}

func (s *Store) DeleteMessages(ctx context.Context, conversationID string) error {
	if _, err := s.db.NewDelete().
		Model((*chatMessage)(nil)).
		Where("conversation_id = ?", conversationID).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete chat messages: %w", err)
	}
	return nil
}

func toMessageRow(msg contractx.Message) chatMessage {
	return chatMessage{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		Role:           string(msg.Role),
		Content:        msg.Content,
		Metadata:       msg.Metadata,
		CreatedAt:      msg.CreatedAt,
	}
}

func fromMessageRow(row chatMessage) contractx.Message {
	return contractx.Message{
		ID:             row.ID,
		ConversationID: row.ConversationID,
		Role:           contractx.Role(row.Role),
		Content:        row.Content,
		Metadata:       row.Metadata,
		CreatedAt:      row.CreatedAt,
	}
}
