// Package agents builds the per-domain conversational agents. Every agent is
// constructed fresh per request by the registry and holds no cross-turn state
// beyond the durable store it is handed.
package agents

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
	memoryx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/memory"
	toolx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/tool"
	logx "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/logger"
)

// maxToolIterations bounds the provider/tool loop within one turn.
const maxToolIterations = 5

// toolFactory builds the agent's tools for one turn, bound to the
// conversation and the shared workflow state.
type toolFactory func(conversationID string, state *toolx.State) []contractx.Tool

type baseAgent struct {
	domain       contractx.Domain
	instructions string
	provider     contractx.AIProvider
	model        string
	chat         contractx.ChatStore
	tokenBudget  int
	buildTools   toolFactory
}

var _ contractx.Agent = (*baseAgent)(nil)

func (a *baseAgent) Domain() contractx.Domain {
	return a.domain
}

func (a *baseAgent) Instructions() string {
	return a.instructions
}

func (a *baseAgent) Tools() []contractx.Tool {
	return a.buildTools("", toolx.NewState())
}

// Handle runs one conversational turn: append the user message, then
// alternate provider calls and sequential tool executions until the provider
// returns a plain reply, the workflow state turns terminal, or the iteration
// cap is hit. All intermediate messages are persisted through the memory
// manager as they happen.
func (a *baseAgent) Handle(ctx context.Context, conversationID, text string) (string, error) {
	mgr := memoryx.NewManager(a.chat, conversationID, a.tokenBudget)
	if err := mgr.Add(ctx, memoryx.NewUserMessage(conversationID, text)); err != nil {
		return "", err
	}

	state := toolx.NewState()
	tools := a.buildTools(conversationID, state)
	byName := make(map[string]contractx.Tool, len(tools))
	for _, t := range tools {
		byName[t.Name()] = t
	}
	schemas := toolSchemas(tools)

	for iteration := 0; iteration < maxToolIterations; iteration++ {
		opts := contractx.ChatOptions{Model: a.model, Tools: schemas}
		if state.Terminal() || iteration == maxToolIterations-1 {
			// Force a plain reply once the workflow is done or the budget runs out.
			opts.Tools = nil
		}

		reply, err := a.complete(ctx, mgr, conversationID, opts)
		if err != nil {
			return "", err
		}

		if len(reply.ToolCalls) == 0 {
			if err := mgr.Add(ctx, memoryx.NewAssistantMessage(conversationID, reply.Content)); err != nil {
				return "", err
			}
			return reply.Content, nil
		}

		if err := mgr.Add(ctx, memoryx.NewToolCallMessage(conversationID, reply.ToolCalls)); err != nil {
			return "", err
		}

		for _, call := range reply.ToolCalls {
			result := a.invokeTool(ctx, byName, call)
			if err := mgr.Add(ctx, memoryx.NewToolResultMessage(conversationID, call, result)); err != nil {
				return "", err
			}
			if state.Terminal() {
				break
			}
		}
	}

	return "", fmt.Errorf("%w: no reply after %d tool iterations", contractx.ErrProvider, maxToolIterations)
}

func (a *baseAgent) complete(ctx context.Context, mgr *memoryx.Manager, conversationID string, opts contractx.ChatOptions) (contractx.ChatReply, error) {
	window, err := mgr.Messages(ctx)
	if err != nil {
		return contractx.ChatReply{}, err
	}

	messages := make([]contractx.Message, 0, len(window)+1)
	messages = append(messages, contractx.Message{
		ConversationID: conversationID,
		Role:           contractx.RoleSystem,
		Content:        a.instructions,
	})
	messages = append(messages, window...)

	return a.provider.SendToChat(ctx, messages, opts)
}

func (a *baseAgent) invokeTool(ctx context.Context, byName map[string]contractx.Tool, call contractx.ToolCall) contractx.ToolResult {
	t, ok := byName[call.Name]
	if !ok {
		logx.Warn().Str("tool", call.Name).Str("domain", string(a.domain)).Msg("provider requested unknown tool")
		return contractx.ToolResult{
			Tool:  call.Name,
			Error: fmt.Sprintf("tool %q is not available for the %s agent", call.Name, a.domain),
		}
	}
	return t.Invoke(ctx, call.Arguments)
}

func toolSchemas(tools []contractx.Tool) []contractx.ToolSchema {
	schemas := make([]contractx.ToolSchema, 0, len(tools))
	for _, t := range tools {
		schemas = append(schemas, contractx.ToolSchema{
			Name:        t.Name(),
			Description: t.Description(),
			Properties:  t.Properties(),
		})
	}
	return schemas
}
