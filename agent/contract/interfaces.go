package contract

import "context"

// Tool is a callable, schema-described action an agent may invoke. Invoke
// authorizes and validates before execution; failures are contained in the
// returned ToolResult so one bad call never aborts the turn.
type Tool interface {
	Name() string
	Description() string
	Properties() []ToolProperty
	RequiredPermissions() []string
	Invoke(ctx context.Context, args map[string]any) ToolResult
}

// Agent composes a set of tools, exposes its behavior prompt, and handles one
// conversational turn. Instances are built per request and discarded after it.
type Agent interface {
	Domain() Domain
	Instructions() string
	Tools() []Tool
	Handle(ctx context.Context, conversationID, text string) (string, error)
}

// AIProvider is the opaque inference capability. Implementations are selected
// by provider name and model at agent construction time.
type AIProvider interface {
	SendToChat(ctx context.Context, messages []Message, opts ChatOptions) (ChatReply, error)
}

// ChatStore is the durable, append-only message log keyed by conversation id.
type ChatStore interface {
	AppendMessage(ctx context.Context, msg Message) error
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)
	ReplaceMessages(ctx context.Context, conversationID string, msgs []Message) error
	DeleteMessages(ctx context.Context, conversationID string) error
}

// SearchRecordStore persists past searches and serves them back as
// chat_history candidates. FindRecords matches query text case-insensitively
// against the stored query and serialized results, newest first.
type SearchRecordStore interface {
	SaveRecord(ctx context.Context, rec SearchRecord) error
	FindRecords(ctx context.Context, query string, limit int) ([]SearchRecord, error)
}

// EntityRepository is the keyword-filterable view over one external
// collection (customers, products, content items, orders). Matching is an OR
// across keywords over the collection's searchable text fields.
type EntityRepository interface {
	SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]Entity, error)
}
