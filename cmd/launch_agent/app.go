package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/launch-orchestrator/internal/config"
	"github.com/jonathan/launch-orchestrator/internal/db"
	"github.com/jonathan/launch-orchestrator/internal/evaluation"
	"github.com/jonathan/launch-orchestrator/internal/fetch"
	"github.com/jonathan/launch-orchestrator/internal/generation"
	"github.com/jonathan/launch-orchestrator/internal/keys"
	"github.com/jonathan/launch-orchestrator/internal/llm"
	"github.com/jonathan/launch-orchestrator/internal/observability"
	"github.com/jonathan/launch-orchestrator/internal/pipeline"
	"github.com/jonathan/launch-orchestrator/internal/pipeline/steps"
	"github.com/jonathan/launch-orchestrator/internal/search"
)

const browserTimeout = 45 * time.Second

// app holds the wired components shared by the commands
type app struct {
	cfg          config.Config
	env          config.Env
	logger       *zap.SugaredLogger
	store        db.Store
	registry     *steps.Registry
	orchestrator *pipeline.Orchestrator
	runner       *pipeline.Runner
	llm          llm.Client
}

// loadConfig merges the optional config file with flags and the environment
func loadConfig(env config.Env) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config: %w", err)
		}
		cfg = *loaded
	}

	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if verbose {
		cfg.Verbose = true
	}
	cfg = cfg.MergeWithDefaults(config.Config{
		DatabaseURL: env.DatabaseURL,
		Evaluation:  config.Evaluation{URL: env.ScorecardURL},
	})
	return cfg, nil
}

// openStore connects to PostgreSQL, or falls back to memory when allowed
func openStore(ctx context.Context, cfg config.Config, allowMemory bool, logger *zap.SugaredLogger) (db.Store, error) {
	if cfg.DatabaseURL == "" {
		if !allowMemory {
			return nil, errors.New("DATABASE_URL environment variable or --db-url flag is required")
		}
		logger.Warn("no database configured, records are kept in memory only")
		return db.NewMemoryStore(), nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return database, nil
}

// newApp wires storage, key rotation, providers, and the pipeline
func newApp(ctx context.Context, allowMemory bool) (*app, error) {
	env := config.LoadEnv()
	cfg, err := loadConfig(env)
	if err != nil {
		return nil, err
	}

	logger, err := observability.NewLogger(cfg.Verbose)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg, allowMemory, logger)
	if err != nil {
		return nil, err
	}

	rotator := keys.NewRotator(store, logger.Named("keys"))
	client := llm.NewRotatingClient(rotator, env.GeminiPool(), llm.GeminiFactory(cfg.LLMConfig()))
	if len(env.GeminiKeys) == 0 {
		logger.Warn("no GEMINI_API_KEYS configured, generation will fail")
	}

	var searcher generation.Searcher
	if env.SearchEnabled() {
		searcher = search.NewGoogleSearcher(rotator, env.SearchKeys, env.SearchEngineID)
	} else {
		logger.Debug("web search disabled, research tasks use the model only")
	}

	var render fetch.Renderer
	if cfg.UseBrowser {
		render = fetch.ChromeRenderer(browserTimeout)
	}
	scraper := fetch.NewScraper(fetch.ScraperConfig{Render: render}, logger.Named("fetch"))

	generator := generation.NewGenerator(client, searcher, scraper, logger.Named("generation"))
	generator.MaxConcurrency = cfg.MaxConcurrency
	generator.ResultsPerQuery = cfg.ResultsPerQuery
	generator.ScrapeLimit = cfg.ScrapeLimit

	var evaluator evaluation.Evaluator = evaluation.Noop{}
	if cfg.Evaluation.URL != "" {
		evaluator = evaluation.NewScorecardClient(cfg.Evaluation.URL, env.ScorecardAPIKey)
	}
	notifier := evaluation.BestEffort(evaluator, logger.Named("evaluation"), cfg.EvaluationTimeout())

	registry := steps.Default()
	orchestrator := pipeline.NewOrchestrator(store, registry, generator, notifier, logger.Named("pipeline"))

	return &app{
		cfg:          cfg,
		env:          env,
		logger:       logger,
		store:        store,
		registry:     registry,
		orchestrator: orchestrator,
		runner:       pipeline.NewRunner(orchestrator, registry, logger.Named("runner")),
		llm:          client,
	}, nil
}

// Close releases provider clients and the store
func (a *app) Close() {
	if err := a.llm.Close(); err != nil {
		a.logger.Debugw("failed to close model client", "error", err)
	}
	a.store.Close()
	_ = a.logger.Sync()
}
