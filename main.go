package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	agentsx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/agents"
	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
	memoryx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/memory"
	registryx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/registry"
	routingx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/routing"
	searchx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/search"
	configx "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/config"
	logx "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/logger"
	_ "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/logger/autoload"
	pgx "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/postgres"
	providerx "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/provider"
	redisx "github.com/tanpawarit/Chative-Commerce-Assistant/pkg/redis"
	pgstore "github.com/tanpawarit/Chative-Commerce-Assistant/store/postgres"
	redisstore "github.com/tanpawarit/Chative-Commerce-Assistant/store/redis"
)

type AppConfig struct {
	ChatBackend     string        `envconfig:"CHAT_BACKEND" split_words:"true" default:"postgres"`
	ConversationTTL time.Duration `envconfig:"CONVERSATION_TTL" split_words:"true" default:"168h"`
	RoutingCacheTTL time.Duration `envconfig:"ROUTING_CACHE_TTL" split_words:"true" default:"5m"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")
	providerCfg := configx.MustNew[providerx.Config]("PROVIDER")
	memoryCfg := configx.MustNew[memoryx.Config]("MEMORY")
	pgCfg := configx.MustNew[pgx.Config]("POSTGRES")

	db := pgCfg.MustNew()
	defer db.Close()

	pg := pgstore.New(db)
	if err := pg.Migrate(ctx); err != nil {
		logx.Fatal().Err(err).Msg("migrate schema")
	}

	var chat contractx.ChatStore = pg
	if strings.EqualFold(appCfg.ChatBackend, "redis") {
		redisCfg := configx.MustNew[redisx.Config]("REDIS")
		rdb := redisCfg.MustNew()
		defer rdb.Close()
		chat = redisstore.NewChatStore(rdb, appCfg.ConversationTTL)
	}

	engine := searchx.NewEngine(pg, searchx.DefaultCollections(
		pg.Customers(), pg.Products(), pg.ContentItems(), pg.Orders(),
	)...)

	reg := registryx.New(registryx.Dependencies{
		Providers: providerx.NewCatalog(*providerCfg),
		Chat:      chat,
		Engine:    engine,
		Repos: registryx.Repositories{
			Customers: pg.Customers(),
			Products:  pg.Products(),
			Content:   pg.ContentItems(),
			Orders:    pg.Orders(),
		},
		TokenBudget: memoryCfg.TokenBudget,
	})
	agentsx.Install(reg, routingx.NewCache(appCfg.RoutingCacheTTL))

	conversationID := uuid.NewString()
	logx.Info().Str("conversation_id", conversationID).Msg("assistant ready")
	fmt.Println("Type a message (ctrl-d to quit):")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		agent, err := reg.Resolve(contractx.DomainGeneral)
		if err != nil {
			logx.Fatal().Err(err).Msg("resolve general agent")
		}

		reply, err := agent.Handle(ctx, conversationID, text)
		if err != nil {
			logx.Error().Err(err).Msg("turn failed")
			fmt.Println("Sorry, something went wrong handling that message.")
			continue
		}
		fmt.Println(reply)
	}
}
