// Package provider resolves a provider name to an OpenAI-compatible chat
// backend and adapts it to the AIProvider capability the agents consume.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
)

// Catalog holds one configured endpoint per provider name.
type Catalog struct {
	cfg       Config
	endpoints map[string]endpoint
}

type endpoint struct {
	baseURL string
	apiKey  string
}

func NewCatalog(cfg Config) *Catalog {
	return &Catalog{
		cfg: cfg,
		endpoints: map[string]endpoint{
			NameOpenAI:    {baseURL: strings.TrimRight(cfg.OpenAIBaseURL, "/"), apiKey: cfg.OpenAIAPIKey},
			NameAnthropic: {baseURL: anthropicBaseURL, apiKey: cfg.AnthropicAPIKey},
			NameGemini:    {baseURL: geminiBaseURL, apiKey: cfg.GeminiAPIKey},
			NameDeepseek:  {baseURL: deepseekBaseURL, apiKey: cfg.DeepseekAPIKey},
			NameMistral:   {baseURL: mistralBaseURL, apiKey: cfg.MistralAPIKey},
			NameOllama:    {baseURL: strings.TrimRight(cfg.OllamaBaseURL, "/"), apiKey: "ollama"},
		},
	}
}

// DefaultName returns the configured default provider name.
func (c *Catalog) DefaultName() string {
	return c.cfg.Default
}

// DefaultModel returns the configured default model name.
func (c *Catalog) DefaultModel() string {
	return c.cfg.Model
}

// Provider resolves a backend by name. An unrecognized name is a construction
// failure, never a silent fallback.
func (c *Catalog) Provider(name string) (contractx.AIProvider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = c.cfg.Default
	}

	ep, ok := c.endpoints[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", contractx.ErrUnsupportedProvider, name)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(ep.apiKey)),
		option.WithRequestTimeout(c.cfg.Timeout),
	}
	if ep.baseURL != "" {
		opts = append(opts, option.WithBaseURL(ep.baseURL))
	}

	client := openaisdk.NewClient(opts...)
	return &chatBackend{
		client:      &client,
		temperature: c.cfg.Temperature,
		maxTokens:   c.cfg.MaxCompletionToken,
	}, nil
}

// chatBackend adapts one openai-go client to the AIProvider capability.
type chatBackend struct {
	client      *openaisdk.Client
	temperature float32
	maxTokens   int
}

var _ contractx.AIProvider = (*chatBackend)(nil)

func (b *chatBackend) SendToChat(ctx context.Context, messages []contractx.Message, opts contractx.ChatOptions) (contractx.ChatReply, error) {
	params := openaisdk.ChatCompletionNewParams{
		Model:    openaisdk.ChatModel(opts.Model),
		Messages: toParamMessages(messages),
	}

	temperature := opts.Temperature
	if temperature == 0 {
		temperature = b.temperature
	}
	params.Temperature = openaisdk.Float(float64(temperature))

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = b.maxTokens
	}
	if maxTokens > 0 {
		params.MaxTokens = openaisdk.Int(int64(maxTokens))
	}

	if len(opts.Tools) > 0 {
		params.Tools = toToolParams(opts.Tools)
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return contractx.ChatReply{}, fmt.Errorf("%w: %v", contractx.ErrProvider, err)
	}
	if len(resp.Choices) == 0 {
		return contractx.ChatReply{}, fmt.Errorf("%w: empty completion", contractx.ErrProvider)
	}

	choice := resp.Choices[0].Message
	reply := contractx.ChatReply{Content: choice.Content}
	for _, call := range choice.ToolCalls {
		args := map[string]any{}
		if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return contractx.ChatReply{}, fmt.Errorf("%w: invalid tool arguments for %s: %v", contractx.ErrProvider, call.Function.Name, err)
			}
		}
		reply.ToolCalls = append(reply.ToolCalls, contractx.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: args,
		})
	}
	return reply, nil
}

func toParamMessages(messages []contractx.Message) []openaisdk.ChatCompletionMessageParamUnion {
	params := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case contractx.RoleSystem:
			params = append(params, openaisdk.SystemMessage(msg.Content))
		case contractx.RoleUser:
			params = append(params, openaisdk.UserMessage(msg.Content))
		case contractx.RoleTool:
			callID, _ := msg.Metadata[contractx.MetaToolCallID].(string)
			params = append(params, openaisdk.ToolMessage(msg.Content, callID))
		case contractx.RoleAssistant:
			if calls := toolCallParams(msg.Metadata); len(calls) > 0 {
				params = append(params, openaisdk.ChatCompletionMessageParamUnion{
					OfAssistant: &openaisdk.ChatCompletionAssistantMessageParam{
						ToolCalls: calls,
					},
				})
				continue
			}
			params = append(params, openaisdk.AssistantMessage(msg.Content))
		}
	}
	return params
}

func toolCallParams(metadata map[string]any) []openaisdk.ChatCompletionMessageToolCallParam {
	raw, ok := metadata[contractx.MetaToolCalls].([]map[string]any)
	if !ok {
		return nil
	}
	params := make([]openaisdk.ChatCompletionMessageToolCallParam, 0, len(raw))
	for _, call := range raw {
		id, _ := call["id"].(string)
		name, _ := call["name"].(string)
		arguments := "{}"
		if args, ok := call["arguments"].(map[string]any); ok && len(args) > 0 {
			if encoded, err := json.Marshal(args); err == nil {
				arguments = string(encoded)
			}
		}
		params = append(params, openaisdk.ChatCompletionMessageToolCallParam{
			ID: id,
			Function: openaisdk.ChatCompletionMessageToolCallFunctionParam{
				Name:      name,
				Arguments: arguments,
			},
		})
	}
	return params
}

func toToolParams(schemas []contractx.ToolSchema) []openaisdk.ChatCompletionToolParam {
	params := make([]openaisdk.ChatCompletionToolParam, 0, len(schemas))
	for _, schema := range schemas {
		properties := map[string]any{}
		required := []string{}
		for _, prop := range schema.Properties {
			properties[prop.Name] = map[string]any{
				"type":        prop.Type,
				"description": prop.Description,
			}
			if prop.Required {
				required = append(required, prop.Name)
			}
		}
		params = append(params, openaisdk.ChatCompletionToolParam{
			Function: openaisdk.FunctionDefinitionParam{
				Name:        schema.Name,
				Description: openaisdk.String(schema.Description),
				Parameters: openaisdk.FunctionParameters{
					"type":       "object",
					"properties": properties,
					"required":   required,
				},
			},
		})
	}
	return params
}
