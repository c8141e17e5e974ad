package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/providers/embedding"
	"github.com/I-am-Milind/backend-ai/internal/providers/llm"
	"github.com/I-am-Milind/backend-ai/internal/providers/search"
	"github.com/I-am-Milind/backend-ai/internal/resolver"
	"github.com/I-am-Milind/backend-ai/internal/service/agent"
	"github.com/I-am-Milind/backend-ai/internal/service/command"
	"github.com/I-am-Milind/backend-ai/internal/service/memory"
	"github.com/I-am-Milind/backend-ai/internal/service/persona"
	"github.com/I-am-Milind/backend-ai/internal/service/refresher"
	"github.com/I-am-Milind/backend-ai/internal/service/responder"
	"github.com/I-am-Milind/backend-ai/internal/service/session"
	"github.com/I-am-Milind/backend-ai/internal/service/state"
	"github.com/I-am-Milind/backend-ai/internal/storage/sqlite"
	"github.com/I-am-Milind/backend-ai/internal/transport/api"
	"github.com/I-am-Milind/backend-ai/internal/transport/cli"
	"github.com/I-am-Milind/backend-ai/internal/transport/telegram"
	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/I-am-Milind/backend-ai/pkg/srv"
	"github.com/joho/godotenv"
)

// app is the wired object graph shared by every subcommand.
type app struct {
	appCfg      *config.AppConfig
	llmCfg      *config.LLMConfig
	resolverCfg *config.ResolverConfig
	httpCfg     *config.HTTPConfig

	db        *sql.DB
	facts     *sqlite.FactRepo
	semantic  *memory.Semantic
	search    *search.Aggregator
	probe     *search.Probe
	llm       *llm.DynamicProvider
	sessions  session.Store
	personas  *persona.FileStore
	extractor *persona.Extractor
	agent     *agent.Agent
	state     *state.GlobalState
	router    *command.Router
}

func newApp(ctx context.Context) (_ *app, err error) {
	if err := initEnv(ctx, config.GetEnvPath()); err != nil {
		return nil, fmt.Errorf("init env: %w", err)
	}

	// 1. Configuration
	a := &app{
		appCfg:      config.NewAppConfig(ctx),
		llmCfg:      config.NewLLMConfig(ctx),
		resolverCfg: config.NewResolverConfig(ctx),
		httpCfg:     config.NewHTTPConfig(ctx),
	}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()
	searchCfg := config.NewSearchConfig(ctx)
	sessionCfg := config.NewSessionConfig(ctx)
	embeddingCfg := config.NewEmbeddingConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, a.appCfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.db = db
	a.facts = sqlite.NewFactRepo(db, a.resolverCfg.FreshnessDays)

	// 3. Semantic memory
	embedder, err := embedding.NewEmbedder(embeddingCfg)
	if err != nil {
		return nil, fmt.Errorf("init embedder: %w", err)
	}
	a.semantic = memory.NewSemantic(sqlite.NewSemanticRepo(db), embedder, a.resolverCfg.SemanticThreshold)

	// 4. Live lookup
	a.search = search.NewSearcher(searchCfg)
	a.probe = search.NewProbe(searchCfg.ProbeAddr, searchCfg.ProbeTimeout)

	pipeline, err := resolver.Build(a.resolverCfg.Strategies, resolver.Deps{
		Semantic: a.semantic,
		Facts:    a.facts,
		Search:   a.search,
		Probe:    a.probe,
	})
	if err != nil {
		return nil, fmt.Errorf("build resolver: %w", err)
	}

	// 5. Generation
	a.llm, err = llm.NewDynamicProvider(ctx, a.llmCfg)
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}

	a.sessions, err = session.NewStore(ctx, sessionCfg)
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}

	a.personas, err = persona.NewFileStore(a.appCfg.GetPersonaPath())
	if err != nil {
		return nil, fmt.Errorf("load personas: %w", err)
	}

	a.extractor = persona.NewExtractor(
		a.llm,
		a.personas,
		a.sessions,
		a.semantic,
		persona.NewTesseract(a.appCfg.TesseractPath),
		persona.NewUploads(a.appCfg.GetUploadsPath(), a.httpCfg.MaxUploadBytes),
	)

	gen := responder.NewResponder(a.llm, a.sessions, a.personas)
	a.agent = agent.NewAgent(pipeline, gen)

	// 6. Commands
	a.state = state.NewGlobalState(a.llm, a.personas, a.sessions)
	a.router = command.New(command.NewCommands(a.llmCfg, a.state, a.personas, a.sessions, a.facts))

	return a, nil
}

// Close releases whatever newApp opened; it is safe on a partially built app.
func (a *app) Close() error {
	var firstErr error
	if a.sessions != nil {
		if err := a.sessions.Close(); err != nil {
			firstErr = err
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// services lists everything the start command runs, in start order.
func (a *app) services(ctx context.Context) ([]srv.Service, error) {
	services := []srv.Service{srv.NewCleanup(a.Close)}

	services = append(services, refresher.NewRefresher(
		a.facts,
		a.search,
		a.probe,
		a.semantic,
		a.resolverCfg.RefreshInterval,
		a.resolverCfg.RefreshBatch,
	))

	transports, err := a.transports(ctx)
	if err != nil {
		return nil, err
	}
	if len(transports) == 0 {
		return nil, fmt.Errorf("no transport enabled: set COMPANION_ENABLE_HTTP, COMPANION_ENABLE_TELEGRAM or COMPANION_ENABLE_CLI")
	}
	return append(services, transports...), nil
}

func (a *app) transports(ctx context.Context) ([]srv.Service, error) {
	var services []srv.Service

	if a.appCfg.EnableHTTP {
		handlers := api.NewAPI(a.agent, a.personas, a.extractor, a.state, api.Health{
			Mode:     healthMode(a.llmCfg.GetProvider()),
			Provider: a.llmCfg.GetProvider(),
		})
		services = append(services, api.NewServer(ctx, a.httpCfg, handlers))
	}

	if a.appCfg.EnableTelegram {
		bot, err := telegram.NewBot(ctx, config.NewTelegramConfig(ctx), a.agent, a.router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if a.appCfg.EnableCLI {
		rl, err := cli.NewReadLine(a.agent, a.router, a.appCfg)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
}

func healthMode(provider string) string {
	if provider == "ollama" {
		return "local"
	}
	return "cloud"
}

func initEnv(ctx context.Context, envFile string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
