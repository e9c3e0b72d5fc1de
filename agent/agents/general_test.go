package agents

import (
	"context"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
	registryx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/registry"
	routingx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/routing"
)

type fakeCatalog struct {
	backend contractx.AIProvider
}

func (f *fakeCatalog) Provider(name string) (contractx.AIProvider, error) {
	return f.backend, nil
}

func (f *fakeCatalog) DefaultName() string  { return "openai" }
func (f *fakeCatalog) DefaultModel() string { return "gpt-4o-mini" }

type cannedAgent struct {
	domain contractx.Domain
	answer string
	called bool
}

func (a *cannedAgent) Domain() contractx.Domain { return a.domain }
func (a *cannedAgent) Instructions() string     { return "" }
func (a *cannedAgent) Tools() []contractx.Tool  { return nil }
func (a *cannedAgent) Handle(ctx context.Context, conversationID, text string) (string, error) {
	a.called = true
	return a.answer, nil
}

func newGeneralForTest(t *testing.T, provider contractx.AIProvider, specialists ...*cannedAgent) contractx.Agent {
	t.Helper()

	r := registryx.New(registryx.Dependencies{
		Providers:   &fakeCatalog{backend: provider},
		Chat:        newMemChatStore(),
		TokenBudget: 10000,
	})
	for _, s := range specialists {
		s := s
		r.Register(s.domain, func(deps registryx.Dependencies, providerName, modelName string) (contractx.Agent, error) {
			return s, nil
		})
	}
	r.Register(contractx.DomainGeneral, generalConstructor(routingx.NewCache(time.Minute)))

	agent, err := r.Resolve(contractx.DomainGeneral)
	if err != nil {
		t.Fatalf("resolve general agent: %v", err)
	}
	return agent
}

func TestGeneralDelegatesOnConfidentClassification(t *testing.T) {
	t.Parallel()

	provider := &seqProvider{replies: []contractx.ChatReply{
		{Content: `{"agent_type": "shop", "confidence": 0.9, "reasoning": "order status question"}`},
	}}
	shop := &cannedAgent{domain: contractx.DomainShop, answer: "Your order shipped yesterday."}
	agent := newGeneralForTest(t, provider, shop)

	reply, err := agent.Handle(context.Background(), "c1", "Where is my order #123?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !shop.called {
		t.Fatal("a confident classification must delegate to the specialist")
	}
	if reply != "Your order shipped yesterday." {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestGeneralAnswersLocallyOnLowConfidence(t *testing.T) {
	t.Parallel()

	provider := &seqProvider{replies: []contractx.ChatReply{
		{Content: `{"agent_type": "shop", "confidence": 0.3, "reasoning": "vague"}`},
		{Content: "Could you tell me more?"},
	}}
	shop := &cannedAgent{domain: contractx.DomainShop, answer: "should not happen"}
	agent := newGeneralForTest(t, provider, shop)

	reply, err := agent.Handle(context.Background(), "c1", "hmm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shop.called {
		t.Fatal("low confidence must not delegate")
	}
	if reply != "Could you tell me more?" {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestGeneralAnswersLocallyOnGeneralClassification(t *testing.T) {
	t.Parallel()

	provider := &seqProvider{replies: []contractx.ChatReply{
		{Content: `{"agent_type": "general", "confidence": 0.95, "reasoning": "greeting"}`},
		{Content: "Hello! How can I help?"},
	}}
	agent := newGeneralForTest(t, provider)

	reply, err := agent.Handle(context.Background(), "c1", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Hello! How can I help?" {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestGeneralFallsBackWhenClassificationFails(t *testing.T) {
	t.Parallel()

	provider := &seqProvider{replies: []contractx.ChatReply{
		{Content: "I refuse to answer in JSON."},
		{Content: "Let me handle that directly."},
	}}
	agent := newGeneralForTest(t, provider)

	reply, err := agent.Handle(context.Background(), "c1", "help me")
	if err != nil {
		t.Fatalf("a broken classification must not fail the turn: %v", err)
	}
	if reply != "Let me handle that directly." {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestGeneralFallsBackWhenSpecialistMissing(t *testing.T) {
	t.Parallel()

	provider := &seqProvider{replies: []contractx.ChatReply{
		{Content: `{"agent_type": "shop", "confidence": 0.9, "reasoning": "product question"}`},
		{Content: "I can still try to help with that."},
	}}
	// No shop specialist registered.
	agent := newGeneralForTest(t, provider)

	reply, err := agent.Handle(context.Background(), "c1", "Do you sell widgets?")
	if err != nil {
		t.Fatalf("a missing specialist must not fail the turn: %v", err)
	}
	if reply != "I can still try to help with that." {
		t.Fatalf("unexpected reply %q", reply)
	}
}
