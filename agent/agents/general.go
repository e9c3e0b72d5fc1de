package agents

import (
	"context"
	"errors"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
	promptx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/prompt"
	registryx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/registry"
	routingx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/routing"
	toolx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/tool"
	logx "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/logger"
)

// delegationThreshold is the minimum classifier confidence before the general
// agent hands a message to a specialist.
const delegationThreshold = 0.5

// generalAgent classifies each message and either delegates to a specialist
// through the registry back-reference or answers itself with the retrieval
// search tool.
type generalAgent struct {
	base       *baseAgent
	registry   *registryx.Registry
	classifier *routingx.Classifier
}

var _ contractx.Agent = (*generalAgent)(nil)

func generalConstructor(cache *routingx.Cache) registryx.Constructor {
	return func(deps registryx.Dependencies, providerName, modelName string) (contractx.Agent, error) {
		return NewGeneralAgent(deps, providerName, modelName, cache)
	}
}

func NewGeneralAgent(deps registryx.Dependencies, providerName, modelName string, cache *routingx.Cache) (contractx.Agent, error) {
	prompts := promptx.LoadPromptSet()
	base, err := newBase(deps, providerName, modelName, contractx.DomainGeneral, prompts.General,
		func(conversationID string, state *toolx.State) []contractx.Tool {
			return []contractx.Tool{
				toolx.NewSearchTool(deps.Engine, conversationID, toolx.WithState(state), toolx.WithPermissions("search:read")),
			}
		})
	if err != nil {
		return nil, err
	}

	return &generalAgent{
		base:       base,
		registry:   deps.Registry,
		classifier: routingx.NewClassifier(base.provider, modelName, cache),
	}, nil
}

func (a *generalAgent) Domain() contractx.Domain {
	return contractx.DomainGeneral
}

func (a *generalAgent) Instructions() string {
	return a.base.Instructions()
}

func (a *generalAgent) Tools() []contractx.Tool {
	return a.base.Tools()
}

// Handle classifies the message and performs two-level dispatch: general
// agent, then specialist via the registry. Classification or resolution
// failures fall back to answering locally rather than failing the turn.
func (a *generalAgent) Handle(ctx context.Context, conversationID, text string) (string, error) {
	decision, err := a.classifier.Classify(ctx, text)
	if err != nil {
		logx.Warn().Err(err).Msg("routing classification failed, answering as general agent")
		return a.base.Handle(ctx, conversationID, text)
	}

	domain := contractx.ParseDomain(decision.AgentType)
	if domain == contractx.DomainGeneral || decision.Confidence < delegationThreshold {
		return a.base.Handle(ctx, conversationID, text)
	}

	specialist, err := a.registry.Resolve(domain)
	if err != nil {
		if errors.Is(err, contractx.ErrUnknownDomain) {
			logx.Warn().Str("domain", string(domain)).Msg("classified domain is not registered, answering as general agent")
			return a.base.Handle(ctx, conversationID, text)
		}
		return "", err
	}

	logx.Debug().
		Str("domain", string(domain)).
		Float64("confidence", decision.Confidence).
		Str("reasoning", decision.Reasoning).
		Msg("delegating to specialist agent")
	return specialist.Handle(ctx, conversationID, text)
}
