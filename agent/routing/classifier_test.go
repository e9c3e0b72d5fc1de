package routing

import (
	"context"
	"errors"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
)

type scriptedProvider struct {
	reply contractx.ChatReply
	err   error
	calls int
}

func (s *scriptedProvider) SendToChat(ctx context.Context, messages []contractx.Message, opts contractx.ChatOptions) (contractx.ChatReply, error) {
	s.calls++
	return s.reply, s.err
}

func TestParseDecisionPlainJSON(t *testing.T) {
	t.Parallel()

	decision, err := ParseDecision(`{"agent_type": "shop", "confidence": 0.92, "reasoning": "asks about price"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.AgentType != "shop" {
		t.Fatalf("agent_type = %q", decision.AgentType)
	}
	if decision.Confidence != 0.92 {
		t.Fatalf("confidence = %v", decision.Confidence)
	}
}

func TestParseDecisionStripsMarkdownFence(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"agent_type\": \"customer\", \"confidence\": 0.8, \"reasoning\": \"account lookup\"}\n```"
	decision, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.AgentType != "customer" {
		t.Fatalf("agent_type = %q", decision.AgentType)
	}
}

func TestParseDecisionExtractsObjectFromProse(t *testing.T) {
	t.Parallel()

	raw := `Here is my routing decision: {"agent_type": "media", "confidence": 0.7, "reasoning": "asks for images"} I hope that helps.`
	decision, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.AgentType != "media" {
		t.Fatalf("agent_type = %q", decision.AgentType)
	}
}

func TestParseDecisionUnknownTypeNormalizesToGeneral(t *testing.T) {
	t.Parallel()

	decision, err := ParseDecision(`{"agent_type": "billing", "confidence": 0.9, "reasoning": "x"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.AgentType != string(contractx.DomainGeneral) {
		t.Fatalf("unknown agent type must fall back to general, got %q", decision.AgentType)
	}
}

func TestParseDecisionClampsConfidence(t *testing.T) {
	t.Parallel()

	decision, err := ParseDecision(`{"agent_type": "shop", "confidence": 1.7, "reasoning": "x"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Confidence != 1 {
		t.Fatalf("confidence must clamp to 1, got %v", decision.Confidence)
	}

	decision, err = ParseDecision(`{"agent_type": "shop", "confidence": -0.2, "reasoning": "x"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Confidence != 0 {
		t.Fatalf("confidence must clamp to 0, got %v", decision.Confidence)
	}
}

func TestParseDecisionNoObject(t *testing.T) {
	t.Parallel()

	_, err := ParseDecision("I cannot decide.")
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestParseDecisionMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := ParseDecision(`{"agent_type": "shop", "confidence":}`)
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestClassifyUsesCacheOnRepeat(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{reply: contractx.ChatReply{
		Content: `{"agent_type": "shop", "confidence": 0.9, "reasoning": "price question"}`,
	}}
	classifier := NewClassifier(provider, "gpt-4o-mini", NewCache(time.Minute))

	first, err := classifier.Classify(context.Background(), "How much is the widget?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := classifier.Classify(context.Background(), "  how much is the WIDGET?  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("normalized repeat query must hit the cache, provider called %d times", provider.calls)
	}
	if first.AgentType != second.AgentType {
		t.Fatalf("cache returned a different decision: %q vs %q", first.AgentType, second.AgentType)
	}
}

func TestClassifySurfacesProviderError(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{err: errors.New("upstream timeout")}
	classifier := NewClassifier(provider, "gpt-4o-mini", nil)

	if _, err := classifier.Classify(context.Background(), "hello"); err == nil {
		t.Fatal("expected the provider error to surface")
	}
}

func TestCacheExpiry(t *testing.T) {
	t.Parallel()

	cache := NewCache(10 * time.Millisecond)
	cache.Set("query", contractx.RoutingDecision{AgentType: "shop", Confidence: 0.9})

	if _, ok := cache.Get("query"); !ok {
		t.Fatal("fresh entry must be served")
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := cache.Get("query"); ok {
		t.Fatal("expired entry must not be served")
	}
}
