package agents

import (
	"fmt"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
	promptx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/prompt"
	registryx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/registry"
	routingx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/routing"
	toolx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/tool"
)

// Install registers every domain constructor on the registry. The routing
// cache is shared across general-agent instances.
func Install(r *registryx.Registry, routingCache *routingx.Cache) {
	r.Register(contractx.DomainContent, NewContentAgent)
	r.Register(contractx.DomainCustomer, NewCustomerAgent)
	r.Register(contractx.DomainShop, NewShopAgent)
	r.Register(contractx.DomainMedia, NewMediaAgent)
	r.Register(contractx.DomainGeneral, generalConstructor(routingCache))
}

func newBase(deps registryx.Dependencies, providerName, modelName string, domain contractx.Domain, instructions string, buildTools toolFactory) (*baseAgent, error) {
	backend, err := deps.Providers.Provider(providerName)
	if err != nil {
		return nil, err
	}
	return &baseAgent{
		domain:       domain,
		instructions: instructions,
		provider:     backend,
		model:        modelName,
		chat:         deps.Chat,
		tokenBudget:  deps.TokenBudget,
		buildTools:   buildTools,
	}, nil
}

// NewContentAgent handles articles, pages, and blog posts.
func NewContentAgent(deps registryx.Dependencies, providerName, modelName string) (contractx.Agent, error) {
	prompts := promptx.LoadPromptSet()
	return newBase(deps, providerName, modelName, contractx.DomainContent, prompts.Content,
		func(conversationID string, state *toolx.State) []contractx.Tool {
			return []contractx.Tool{
				toolx.NewFilteredQueryTool(
					"content.lookup",
					"Find articles, pages, and blog posts by keywords.",
					"content items",
					deps.Repos.Content,
					nil,
					toolx.WithState(state),
					toolx.WithPermissions("content:read"),
				),
				toolx.NewSearchTool(deps.Engine, conversationID, toolx.WithState(state), toolx.WithPermissions("search:read")),
			}
		})
}

// NewCustomerAgent handles customer records and their order history.
func NewCustomerAgent(deps registryx.Dependencies, providerName, modelName string) (contractx.Agent, error) {
	prompts := promptx.LoadPromptSet()
	return newBase(deps, providerName, modelName, contractx.DomainCustomer, prompts.Customer,
		func(conversationID string, state *toolx.State) []contractx.Tool {
			return []contractx.Tool{
				toolx.NewFilteredQueryTool(
					"customer.lookup",
					"Find customer records by name, email, or phone.",
					"customers",
					deps.Repos.Customers,
					formatCustomer,
					toolx.WithState(state),
					toolx.WithPermissions("customer:read"),
				),
				toolx.NewFilteredQueryTool(
					"order.lookup",
					"Find orders by customer name, order number, or status.",
					"orders",
					deps.Repos.Orders,
					nil,
					toolx.WithState(state),
					toolx.WithPermissions("order:read"),
				),
				toolx.NewSearchTool(deps.Engine, conversationID, toolx.WithState(state), toolx.WithPermissions("search:read")),
			}
		})
}

// NewShopAgent handles products, pricing, stock, and orders.
func NewShopAgent(deps registryx.Dependencies, providerName, modelName string) (contractx.Agent, error) {
	prompts := promptx.LoadPromptSet()
	return newBase(deps, providerName, modelName, contractx.DomainShop, prompts.Shop,
		func(conversationID string, state *toolx.State) []contractx.Tool {
			return []contractx.Tool{
				toolx.NewFilteredQueryTool(
					"product.search",
					"Find products by title, description, or category keywords.",
					"products",
					deps.Repos.Products,
					nil,
					toolx.WithState(state),
					toolx.WithPermissions("product:read"),
				),
				toolx.NewFilteredQueryTool(
					"order.lookup",
					"Find orders by customer name, order number, or status.",
					"orders",
					deps.Repos.Orders,
					nil,
					toolx.WithState(state),
					toolx.WithPermissions("order:read"),
				),
				toolx.NewSearchTool(deps.Engine, conversationID, toolx.WithState(state), toolx.WithPermissions("search:read")),
			}
		})
}

// NewMediaAgent handles media items, which live in the content collection.
func NewMediaAgent(deps registryx.Dependencies, providerName, modelName string) (contractx.Agent, error) {
	prompts := promptx.LoadPromptSet()
	return newBase(deps, providerName, modelName, contractx.DomainMedia, prompts.Media,
		func(conversationID string, state *toolx.State) []contractx.Tool {
			return []contractx.Tool{
				toolx.NewFilteredQueryTool(
					"media.lookup",
					"Find images, galleries, and other media referenced from content.",
					"media items",
					deps.Repos.Content,
					nil,
					toolx.WithState(state),
					toolx.WithPermissions("media:read"),
				),
				toolx.NewSearchTool(deps.Engine, conversationID, toolx.WithState(state), toolx.WithPermissions("search:read")),
			}
		})
}

func formatCustomer(entity contractx.Entity) string {
	email := entity.Fields["email"]
	if email == "" {
		return fmt.Sprintf("- %s (id=%s)", entity.Title, entity.ID)
	}
	return fmt.Sprintf("- %s <%s> (id=%s)", entity.Title, email, entity.ID)
}
