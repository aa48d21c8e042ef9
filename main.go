package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	analyzerx "github.com/questline/questline-agent/agent/analyzer"
	catalogx "github.com/questline/questline-agent/agent/catalog"
	contractx "github.com/questline/questline-agent/agent/contract"
	conversationx "github.com/questline/questline-agent/agent/conversation"
	dispatchx "github.com/questline/questline-agent/agent/dispatch"
	executorx "github.com/questline/questline-agent/agent/executor"
	llmx "github.com/questline/questline-agent/agent/llm"
	pipelinex "github.com/questline/questline-agent/agent/pipeline"
	promptx "github.com/questline/questline-agent/agent/prompt"
	domainx "github.com/questline/questline-agent/domain"
	configx "github.com/questline/questline-agent/pkg/config"
	logx "github.com/questline/questline-agent/pkg/logger"
	openrouterx "github.com/questline/questline-agent/pkg/openrouter"
	redisx "github.com/questline/questline-agent/pkg/redis"
	webhookx "github.com/questline/questline-agent/pkg/webhook"
)

type AppConfig struct {
	ConversationStore string `envconfig:"CONVERSATION_STORE" default:"memory"`
	MaxToolRounds     int    `envconfig:"AGENT_MAX_TOOL_ROUNDS" default:"3"`
	Actor             string `envconfig:"AGENT_ACTOR" default:"cli-operator"`
	WebhookURL        string `envconfig:"WEBHOOK_URL"`
	WebhookToken      string `envconfig:"WEBHOOK_TOKEN"`
}

func main() {
	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	appCfg := configx.MustNew[AppConfig]("")
	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		logx.Fatal().Err(err).Msg("invalid model configuration")
	}

	ctx := context.Background()

	// A provider that rejects our credentials can never serve a turn, so
	// fail here rather than on the first message.
	probeClient := openrouterx.NewClient(llmCfg.OpenRouterFor(llmx.RoleAnalyzer))
	if err := openrouterx.Probe(ctx, probeClient); err != nil {
		logx.Fatal().Err(err).Msg("model provider probe failed")
	}

	cat, err := catalogx.Default()
	if err != nil {
		logx.Fatal().Err(err).Msg("build tool catalog")
	}

	registry := domainx.NewInMemoryRegistry()
	dispatcher, err := dispatchx.New(cat, dispatchx.NewGamificationHandlers(registry))
	if err != nil {
		logx.Fatal().Err(err).Msg("build dispatcher")
	}

	prompts := promptx.LoadPromptSet()

	analyzerModelCfg := llmCfg.OpenRouterFor(llmx.RoleAnalyzer)
	analyzerModel, err := analyzerModelCfg.New(ctx)
	if err != nil {
		logx.Fatal().Err(err).Msg("create analyzer model")
	}
	executorModelCfg := llmCfg.OpenRouterFor(llmx.RoleExecutor)
	executorModel, err := executorModelCfg.New(ctx)
	if err != nil {
		logx.Fatal().Err(err).Msg("create executor model")
	}

	analyzerSvc, err := analyzerx.New(ctx, analyzerModel, prompts.Analyzer)
	if err != nil {
		logx.Fatal().Err(err).Msg("create analyzer")
	}
	executorSvc, err := executorx.New(executorModel, cat, dispatcher, prompts.Executor, appCfg.MaxToolRounds)
	if err != nil {
		logx.Fatal().Err(err).Msg("create executor")
	}

	store := newConversationStore(ctx, appCfg.ConversationStore)
	publisher := newTurnPublisher(appCfg)

	svc, err := pipelinex.New(store, analyzerSvc, executorSvc, publisher, cat.Summary())
	if err != nil {
		logx.Fatal().Err(err).Msg("create pipeline")
	}

	runREPL(ctx, svc, appCfg.Actor)
}

func newConversationStore(ctx context.Context, kind string) contractx.ConversationStore {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "memory":
		return conversationx.NewInMemoryStore()
	case "postgres":
		pgCfg := configx.MustNew[conversationx.PostgresConfig]("POSTGRES")
		store := conversationx.NewPostgresStore(conversationx.NewPostgresDB(*pgCfg))
		if err := store.EnsureSchema(ctx); err != nil {
			logx.Fatal().Err(err).Msg("ensure conversation schema")
		}
		return store
	case "redis":
		redisCfg := configx.MustNew[redisx.Config]("REDIS")
		return conversationx.NewRedisStore(redisCfg.MustNew(), 30*24*time.Hour)
	default:
		logx.Fatal().Str("store", kind).Msg("unknown conversation store")
		return nil
	}
}

func newTurnPublisher(cfg *AppConfig) contractx.TurnPublisher {
	if strings.TrimSpace(cfg.WebhookURL) == "" {
		return nil
	}
	return webhookx.MustNew(webhookx.Config{
		URL:   cfg.WebhookURL,
		Token: cfg.WebhookToken,
	})
}

func runREPL(ctx context.Context, svc *pipelinex.Service, actor string) {
	conversationID := uuid.NewString()
	fmt.Printf("conversation %s ready. Type a message, or /quit to exit.\n", conversationID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "/quit" || text == "/exit" {
			break
		}

		out, err := svc.Answer(ctx, pipelinex.AnswerInput{
			ConversationID: conversationID,
			Actor:          actor,
			Text:           text,
		})
		if err != nil {
			logx.Error().Err(err).Msg("turn failed")
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(out.Reply)
	}
}
