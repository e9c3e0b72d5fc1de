// Package memory maintains one conversation's durable message log together
// with a token-budget-bounded resident window over its suffix.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
)

// DefaultTokenBudget bounds the resident window's estimated token cost.
const DefaultTokenBudget = 50000

type Config struct {
	TokenBudget int `envconfig:"TOKEN_BUDGET" split_words:"true" default:"50000"`
}

// Manager owns exactly one conversation's log. The durable store is the
// source of truth; trimming only affects what is resident. A per-manager
// mutex serializes interleaved adds within this process; concurrent turns for
// the same conversation across processes remain unguarded.
type Manager struct {
	store          contractx.ChatStore
	conversationID string
	tokenBudget    int

	mu       sync.Mutex
	resident []contractx.Message
	loaded   bool
}

func NewManager(store contractx.ChatStore, conversationID string, budget int) *Manager {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}
	return &Manager{
		store:          store,
		conversationID: conversationID,
		tokenBudget:    budget,
	}
}

// EstimateTokens approximates the token cost of content as ceil(len/4).
// Empty content costs nothing.
func EstimateTokens(content string) int {
	if content == "" {
		return 0
	}
	return (len(content) + 3) / 4
}

// Add appends the message to the durable log, then re-evaluates the resident
// window. The durable write happens first: a persistence failure surfaces as
// an error and nothing is cached.
func (m *Manager) Add(ctx context.Context, msg contractx.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if msg.ConversationID == "" {
		msg.ConversationID = m.conversationID
	}
	if strings.TrimSpace(msg.Content) == "" {
		msg.Content = emptyContentPlaceholder
	}

	if err := m.store.AppendMessage(ctx, msg); err != nil {
		return fmt.Errorf("%w: append message: %v", contractx.ErrPersistence, err)
	}

	if m.loaded {
		m.resident = append(m.resident, msg)
		m.resident = trimToBudget(m.resident, m.tokenBudget)
	}
	return nil
}

// Messages returns the resident window in original order, loading the durable
// log on first access. The returned slice is a copy.
func (m *Manager) Messages(ctx context.Context) ([]contractx.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fillLocked(ctx); err != nil {
		return nil, err
	}

	out := make([]contractx.Message, len(m.resident))
	copy(out, m.resident)
	return out, nil
}

// SetMessages atomically replaces the entire durable log and re-trims.
func (m *Manager) SetMessages(ctx context.Context, msgs []contractx.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	normalized := make([]contractx.Message, len(msgs))
	for i, msg := range msgs {
		if msg.ConversationID == "" {
			msg.ConversationID = m.conversationID
		}
		if strings.TrimSpace(msg.Content) == "" {
			msg.Content = emptyContentPlaceholder
		}
		normalized[i] = msg
	}

	if err := m.store.ReplaceMessages(ctx, m.conversationID, normalized); err != nil {
		return fmt.Errorf("%w: replace messages: %v", contractx.ErrPersistence, err)
	}

	m.resident = trimToBudget(normalized, m.tokenBudget)
	m.loaded = true
	return nil
}

// Clear empties both the durable log and the resident cache.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.DeleteMessages(ctx, m.conversationID); err != nil {
		return fmt.Errorf("%w: delete messages: %v", contractx.ErrPersistence, err)
	}
	m.resident = nil
	m.loaded = true
	return nil
}

// TotalUsage sums the estimated token cost over the resident window.
func (m *Manager) TotalUsage(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fillLocked(ctx); err != nil {
		return 0, err
	}

	total := 0
	for _, msg := range m.resident {
		total += EstimateTokens(msg.Content)
	}
	return total, nil
}

func (m *Manager) fillLocked(ctx context.Context) error {
	if m.loaded {
		return nil
	}
	msgs, err := m.store.ListMessages(ctx, m.conversationID)
	if err != nil {
		return fmt.Errorf("%w: load messages: %v", contractx.ErrPersistence, err)
	}
	for i, msg := range msgs {
		msgs[i] = downgradeLoaded(msg)
	}
	m.resident = trimToBudget(msgs, m.tokenBudget)
	m.loaded = true
	return nil
}

// trimToBudget keeps the longest contiguous suffix whose summed estimated
// cost stays within budget. Greedy by recency: it never swaps a cheaper older
// message back in once the walk stops.
func trimToBudget(msgs []contractx.Message, budget int) []contractx.Message {
	total := 0
	start := len(msgs)
	for i := len(msgs) - 1; i >= 0; i-- {
		cost := EstimateTokens(msgs[i].Content)
		if total+cost > budget {
			break
		}
		total += cost
		start = i
	}
	return msgs[start:]
}
