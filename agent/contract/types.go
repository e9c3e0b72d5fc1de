package contract

import (
	"strings"
	"time"
)

// Domain identifies the category of user intent an agent specializes in.
type Domain string

const (
	DomainContent  Domain = "content"
	DomainCustomer Domain = "customer"
	DomainShop     Domain = "shop"
	DomainMedia    Domain = "media"
	DomainGeneral  Domain = "general"
)

// ParseDomain normalises a raw classification value into a known domain.
// Unknown values fall back to the general agent, which can re-route.
func ParseDomain(v string) Domain {
	switch Domain(strings.ToLower(strings.TrimSpace(v))) {
	case DomainContent:
		return DomainContent
	case DomainCustomer:
		return DomainCustomer
	case DomainShop:
		return DomainShop
	case DomainMedia:
		return DomainMedia
	default:
		return DomainGeneral
	}
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Metadata keys recording tool-call / tool-result provenance on messages.
const (
	MetaToolCalls  = "tool_calls"
	MetaToolCallID = "tool_call_id"
	MetaToolName   = "tool_name"
	MetaToolCount  = "tool_count"
)

// Message is one entry in a conversation's append-only log. Content is never
// empty by the time a message reaches the store; insertion order is the only
// meaningful order.
type Message struct {
	ID             string         `json:"id"`
	ConversationID string         `json:"conversation_id"`
	Role           Role           `json:"role"`
	Content        string         `json:"content"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ToolCall is a provider-requested tool invocation inside one turn.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ChatReply is what a provider returns for one inference request: either a
// plain reply, or a set of tool calls the agent must execute before re-prompting.
type ChatReply struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ChatOptions parameterize a single provider request.
type ChatOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
	Tools       []ToolSchema
}

// ToolSchema is the provider-facing description of a callable tool.
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Properties  []ToolProperty `json:"properties,omitempty"`
}

// ToolProperty declares one typed parameter of a tool's invocation schema.
type ToolProperty struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// ToolResult is the contained outcome of a tool invocation. A failed call
// carries Error and never aborts the agent loop.
type ToolResult struct {
	Tool    string `json:"tool"`
	Content string `json:"content,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failed reports whether the invocation produced a contained error.
func (r ToolResult) Failed() bool {
	return r.Error != ""
}

// Search result type tags.
const (
	ResultTypeCustomer    = "customer"
	ResultTypeProduct     = "product"
	ResultTypeContent     = "content"
	ResultTypeOrder       = "order"
	ResultTypeChatHistory = "chat_history"
	ResultTypeAll         = "all"
)

// SearchResult is one ranked candidate produced by the retrieval engine.
// Transient: constructed fresh per query, persisted only via SearchRecord.
type SearchResult struct {
	Type      string         `json:"type"`
	Source    string         `json:"source"`
	Title     string         `json:"title"`
	Excerpt   string         `json:"excerpt"`
	Relevance float64        `json:"relevance"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// SearchRecord is a persisted past search, reusable as a chat_history
// candidate in future queries.
type SearchRecord struct {
	ID             string         `json:"id"`
	ConversationID string         `json:"conversation_id"`
	MessageID      string         `json:"message_id,omitempty"`
	Query          string         `json:"query"`
	Results        []SearchResult `json:"results"`
	Relevance      float64        `json:"relevance_score"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// RoutingDecision is the classification object produced upstream and consumed
// by the dispatcher to pick a domain.
type RoutingDecision struct {
	AgentType  string         `json:"agent_type"`
	Confidence float64        `json:"confidence"`
	Reasoning  string         `json:"reasoning"`
	Context    map[string]any `json:"context,omitempty"`
}

// Entity is the generic shape search uses to reference rows from the four
// external collections without knowing their business fields.
type Entity struct {
	ID     string
	Title  string
	Body   string
	Fields map[string]string
}
