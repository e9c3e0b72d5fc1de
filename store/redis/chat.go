// Package redis provides an alternative durable chat store on Redis lists,
// one list per conversation, with TTL extended on every touch.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
	logx "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/logger"
)

type ChatStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

var _ contractx.ChatStore = (*ChatStore)(nil)

func NewChatStore(rdb redis.Cmdable, ttl time.Duration) *ChatStore {
	return &ChatStore{rdb: rdb, ttl: ttl}
}

func (s *ChatStore) conversationKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:messages", conversationID)
}

func (s *ChatStore) AppendMessage(ctx context.Context, msg contractx.Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	key := s.conversationKey(msg.ConversationID)

	if err := s.rdb.RPush(ctx, key, b).Err(); err != nil {
		return fmt.Errorf("push message: %w", err)
	}
	s.touch(ctx, key)
	return nil
}

func (s *ChatStore) ListMessages(ctx context.Context, conversationID string) ([]contractx.Message, error) {
	key := s.conversationKey(conversationID)

	rows, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []contractx.Message{}, nil
		}
		return nil, fmt.Errorf("load messages: %w", err)
	}

	msgs := make([]contractx.Message, 0, len(rows))
	for i, raw := range rows {
		var msg contractx.Message
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// ReplaceMessages swaps the whole list in one transactional pipeline.
func (s *ChatStore) ReplaceMessages(ctx context.Context, conversationID string, msgs []contractx.Message) error {
	key := s.conversationKey(conversationID)

	encoded := make([]any, 0, len(msgs))
	for _, msg := range msgs {
		b, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}
		encoded = append(encoded, b)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(encoded) > 0 {
		pipe.RPush(ctx, key, encoded...)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("replace messages: %w", err)
	}
	return nil
}

func (s *ChatStore) DeleteMessages(ctx context.Context, conversationID string) error {
	key := s.conversationKey(conversationID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return nil
}

func (s *ChatStore) touch(ctx context.Context, key string) {
	if s.ttl <= 0 {
		return
	}
	if ok, err := s.rdb.Expire(ctx, key, s.ttl).Result(); err != nil {
		logx.Warn().Err(err).Str("key", key).Msg("failed to set expire")
	} else if !ok {
		logx.Warn().Str("key", key).Dur("ttl", s.ttl).Msg("failed to set TTL on conversation key")
	}
}
