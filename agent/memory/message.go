package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
)

// emptyContentPlaceholder replaces blank content on plain messages so the
// store never holds an empty content column.
const emptyContentPlaceholder = "(no content)"

func newMessage(conversationID string, role contractx.Role, content string, metadata map[string]any) contractx.Message {
	if strings.TrimSpace(content) == "" {
		content = emptyContentPlaceholder
	}
	return contractx.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		Metadata:       metadata,
		CreatedAt:      time.Now().UTC(),
	}
}

func NewUserMessage(conversationID, content string) contractx.Message {
	return newMessage(conversationID, contractx.RoleUser, content, nil)
}

func NewAssistantMessage(conversationID, content string) contractx.Message {
	return newMessage(conversationID, contractx.RoleAssistant, content, nil)
}

func NewSystemMessage(conversationID, content string) contractx.Message {
	return newMessage(conversationID, contractx.RoleSystem, content, nil)
}

// NewToolCallMessage records the assistant requesting one or more tool calls.
// Content is a synthetic summary of the invoked tool names; the structured
// calls ride along in metadata for the remainder of the live turn.
func NewToolCallMessage(conversationID string, calls []contractx.ToolCall) contractx.Message {
	names := make([]string, 0, len(calls))
	raw := make([]map[string]any, 0, len(calls))
	for _, call := range calls {
		names = append(names, call.Name)
		raw = append(raw, map[string]any{
			"id":        call.ID,
			"name":      call.Name,
			"arguments": call.Arguments,
		})
	}
	return newMessage(conversationID, contractx.RoleAssistant,
		"Tool calls: "+strings.Join(names, ", "),
		map[string]any{contractx.MetaToolCalls: raw},
	)
}

// NewToolResultMessage records the outcome of one executed tool call.
func NewToolResultMessage(conversationID string, call contractx.ToolCall, result contractx.ToolResult) contractx.Message {
	content := result.Content
	if result.Failed() {
		content = "Tool error: " + result.Error
	}
	if strings.TrimSpace(content) == "" {
		content = "1 tool(s) executed"
	}
	return newMessage(conversationID, contractx.RoleTool, content, map[string]any{
		contractx.MetaToolCallID: call.ID,
		contractx.MetaToolName:   call.Name,
	})
}

// downgradeLoaded converts a message read back from the durable store into the
// plain form the resident window carries. Tool-call and tool-result messages
// cannot be reconstructed as their typed originals (the live tool references
// do not survive persistence), so they come back as plain assistant/user
// messages with the summarized text. This round trip is deliberately lossy.
func downgradeLoaded(msg contractx.Message) contractx.Message {
	if calls, ok := msg.Metadata[contractx.MetaToolCalls]; ok {
		msg.Role = contractx.RoleAssistant
		if strings.TrimSpace(msg.Content) == "" {
			msg.Content = "Tool calls: " + joinToolCallNames(calls)
		}
		return msg
	}
	if msg.Role == contractx.RoleTool {
		msg.Role = contractx.RoleUser
		if strings.TrimSpace(msg.Content) == "" {
			count := 1
			if n, ok := msg.Metadata[contractx.MetaToolCount].(float64); ok && n > 0 {
				count = int(n)
			}
			msg.Content = fmt.Sprintf("%d tool(s) executed", count)
		}
		return msg
	}
	if strings.TrimSpace(msg.Content) == "" {
		msg.Content = emptyContentPlaceholder
	}
	return msg
}

// joinToolCallNames tolerates both live ([]map[string]any) and JSON-decoded
// ([]any) metadata shapes.
func joinToolCallNames(calls any) string {
	var names []string
	appendName := func(m map[string]any) {
		if name, ok := m["name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	switch typed := calls.(type) {
	case []map[string]any:
		for _, m := range typed {
			appendName(m)
		}
	case []any:
		for _, item := range typed {
			if m, ok := item.(map[string]any); ok {
				appendName(m)
			}
		}
	}
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, ", ")
}
