// Package routing classifies an inbound message into an agent domain using a
// provider-backed structured decision, with a TTL cache for repeated queries.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
)

const classifierPrompt = `You are the routing layer of a commerce assistant.

Available agents:
- content: articles, pages, blog posts, publishing
- shop: products, pricing, stock, orders, checkout
- customer: customer accounts, contact details, order history lookups
- media: images, video, galleries, attachments
- general: greetings, unclear intent, anything that fits nowhere else

User message: %s

Respond with ONLY a JSON object:
{
  "agent_type": "content|shop|customer|media|general",
  "confidence": 0.0-1.0,
  "reasoning": "brief explanation"
}`

// Classifier produces routing decisions for the dispatcher.
type Classifier struct {
	provider contractx.AIProvider
	model    string
	cache    *Cache
}

func NewClassifier(provider contractx.AIProvider, model string, cache *Cache) *Classifier {
	return &Classifier{provider: provider, model: model, cache: cache}
}

// Classify returns the decision for a message, consulting the cache first.
func (c *Classifier) Classify(ctx context.Context, text string) (contractx.RoutingDecision, error) {
	if c.cache != nil {
		if decision, ok := c.cache.Get(text); ok {
			return decision, nil
		}
	}

	reply, err := c.provider.SendToChat(ctx, []contractx.Message{
		{Role: contractx.RoleUser, Content: fmt.Sprintf(classifierPrompt, text)},
	}, contractx.ChatOptions{Model: c.model})
	if err != nil {
		return contractx.RoutingDecision{}, fmt.Errorf("classify message: %w", err)
	}

	decision, err := ParseDecision(reply.Content)
	if err != nil {
		return contractx.RoutingDecision{}, err
	}

	if c.cache != nil {
		c.cache.Set(text, decision)
	}
	return decision, nil
}

// ParseDecision extracts the structured decision from raw model output,
// tolerating markdown code fences and surrounding prose. Unknown agent types
// normalize to general.
func ParseDecision(raw string) (contractx.RoutingDecision, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```json") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimSuffix(raw, "```")
		raw = strings.TrimSpace(raw)
	} else if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSuffix(raw, "```")
		raw = strings.TrimSpace(raw)
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return contractx.RoutingDecision{}, fmt.Errorf("%w: no JSON object in routing response", contractx.ErrValidation)
	}

	var decision contractx.RoutingDecision
	if err := json.Unmarshal([]byte(raw[start:end+1]), &decision); err != nil {
		return contractx.RoutingDecision{}, fmt.Errorf("%w: decode routing decision: %v", contractx.ErrValidation, err)
	}

	decision.AgentType = string(contractx.ParseDomain(decision.AgentType))
	if decision.Confidence < 0 {
		decision.Confidence = 0
	}
	if decision.Confidence > 1 {
		decision.Confidence = 1
	}
	return decision, nil
}
