package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/sqlbridge/engine/pkg/config"
	"github.com/sqlbridge/engine/pkg/database"
	"github.com/sqlbridge/engine/pkg/handlers"
	"github.com/sqlbridge/engine/pkg/llm"
	"github.com/sqlbridge/engine/pkg/logging"
	"github.com/sqlbridge/engine/pkg/prompts"
	"github.com/sqlbridge/engine/pkg/retry"
	"github.com/sqlbridge/engine/pkg/schema"
	"github.com/sqlbridge/engine/pkg/translate"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// An unsanitizable allow-list is a deployment misconfiguration; refuse
	// to start rather than fail per request.
	if err := schema.ValidateTableNames(cfg.Schema.Tables); err != nil {
		logger.Fatal("Invalid table allow-list", zap.Error(err))
	}

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database",
			zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	completer, err := llm.NewCompleter(&cfg.Model, logger)
	if err != nil {
		logger.Fatal("Failed to create completion client", zap.Error(err))
	}

	rulePack, err := loadRulePack(cfg.Schema.RulesPath)
	if err != nil {
		logger.Fatal("Failed to load prompt rule pack", zap.Error(err))
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = cfg.Model.MaxRetries

	introspector := schema.NewIntrospector(db.Pool, logger)
	svc := translate.NewService(completer, prompts.NewBuilder(rulePack), retryCfg, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewTranslateHandler(svc, introspector, cfg.Schema.Tables, logger).RegisterRoutes(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting sqlbridge",
		zap.String("addr", addr),
		zap.String("version", cfg.Version),
		zap.String("provider", cfg.Model.Provider),
		zap.Strings("tables", cfg.Schema.Tables))

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadRulePack(path string) (*prompts.RulePack, error) {
	if path == "" {
		return prompts.DefaultRulePack(), nil
	}
	return prompts.LoadRulePack(path)
}
