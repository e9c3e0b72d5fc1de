package postgres

import (
	"time"

	"github.com/uptrace/bun"
)

type chatMessage struct {
	bun.BaseModel `bun:"table:chat_messages"`

	ID             string         `bun:"id,pk"`
	ConversationID string         `bun:"conversation_id,notnull"`
	Role           string         `bun:"role,notnull"`
	Content        string         `bun:"content,notnull"`
	Metadata       map[string]any `bun:"metadata,type:jsonb"`
	CreatedAt      time.Time      `bun:"created_at,notnull"`
}

type chatSearchRecord struct {
	bun.BaseModel `bun:"table:chat_search_records"`

	ID             string         `bun:"id,pk"`
	ConversationID string         `bun:"conversation_id,notnull"`
	MessageID      string         `bun:"message_id"`
	Query          string         `bun:"query,notnull"`
	Results        string         `bun:"results,type:jsonb"`
	Metadata       map[string]any `bun:"metadata,type:jsonb"`
	RelevanceScore float64        `bun:"relevance_score,notnull"`
	CreatedAt      time.Time      `bun:"created_at,notnull"`
}

type customerRow struct {
	bun.BaseModel `bun:"table:customers"`

	ID    string `bun:"id,pk"`
	Name  string `bun:"name,notnull"`
	Email string `bun:"email"`
	Phone string `bun:"phone"`
}

type productRow struct {
	bun.BaseModel `bun:"table:products"`

	ID          string `bun:"id,pk"`
	Title       string `bun:"title,notnull"`
	Content     string `bun:"content"`
	Description string `bun:"description"`
}

type contentItemRow struct {
	bun.BaseModel `bun:"table:content_items"`

	ID          string `bun:"id,pk"`
	Title       string `bun:"title,notnull"`
	Content     string `bun:"content"`
	Description string `bun:"description"`
}

type orderRow struct {
	bun.BaseModel `bun:"table:orders"`

	ID           string `bun:"id,pk"`
	OrderNumber  string `bun:"order_number,notnull"`
	CustomerName string `bun:"customer_name"`
	Status       string `bun:"status"`
}
