// Package registry maps a domain identifier to an agent constructor and
// builds fully-dependency-injected agent instances per request.
package registry

import (
	"fmt"
	"sync"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
	searchx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/search"
)

// ProviderCatalog resolves a provider name to a backend and exposes the
// configured defaults used when Resolve gets no explicit override.
type ProviderCatalog interface {
	Provider(name string) (contractx.AIProvider, error)
	DefaultName() string
	DefaultModel() string
}

// Repositories groups the four keyword-filterable entity collections.
type Repositories struct {
	Customers contractx.EntityRepository
	Products  contractx.EntityRepository
	Content   contractx.EntityRepository
	Orders    contractx.EntityRepository
}

// Dependencies is everything a constructor may need. Registry is a
// back-reference to the resolving registry itself, letting the general agent
// delegate to more specific domains.
type Dependencies struct {
	Providers   ProviderCatalog
	Chat        contractx.ChatStore
	Engine      *searchx.Engine
	Repos       Repositories
	TokenBudget int
	Registry    *Registry
}

// Constructor builds one agent instance with the given provider and model
// names already resolved.
type Constructor func(deps Dependencies, providerName, modelName string) (contractx.Agent, error)

// ResolveOption overrides the configured provider/model defaults for one
// resolution.
type ResolveOption func(*resolveOptions)

type resolveOptions struct {
	provider string
	model    string
}

func WithProvider(name string) ResolveOption {
	return func(o *resolveOptions) {
		o.provider = name
	}
}

func WithModel(name string) ResolveOption {
	return func(o *resolveOptions) {
		o.model = name
	}
}

// Registry dispatches domains to constructors. Every resolution is an
// independent lookup + construction; concurrent resolutions are safe.
type Registry struct {
	mu           sync.RWMutex
	constructors map[contractx.Domain]Constructor
	deps         Dependencies
}

func New(deps Dependencies) *Registry {
	r := &Registry{
		constructors: make(map[contractx.Domain]Constructor),
		deps:         deps,
	}
	r.deps.Registry = r
	return r
}

// Register adds or overwrites the constructor for a domain.
func (r *Registry) Register(domain contractx.Domain, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[domain] = ctor
}

// Resolve builds the agent for a domain. An unregistered domain surfaces
// ErrUnknownDomain so callers can substitute a fallback instead of silently
// misrouting.
func (r *Registry) Resolve(domain contractx.Domain, opts ...ResolveOption) (contractx.Agent, error) {
	r.mu.RLock()
	ctor, ok := r.constructors[domain]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", contractx.ErrUnknownDomain, domain)
	}

	resolved := resolveOptions{
		provider: r.deps.Providers.DefaultName(),
		model:    r.deps.Providers.DefaultModel(),
	}
	for _, opt := range opts {
		opt(&resolved)
	}

	agent, err := ctor(r.deps, resolved.provider, resolved.model)
	if err != nil {
		return nil, fmt.Errorf("construct agent for domain %s: %w", domain, err)
	}
	return agent, nil
}

// Domains lists the currently registered domains.
func (r *Registry) Domains() []contractx.Domain {
	r.mu.RLock()
	defer r.mu.RUnlock()

	domains := make([]contractx.Domain, 0, len(r.constructors))
	for domain := range r.constructors {
		domains = append(domains, domain)
	}
	return domains
}
