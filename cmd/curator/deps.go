package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ersonp/feedback-curator/internal/application/handlers"
	"github.com/ersonp/feedback-curator/internal/domain/ports"
	"github.com/ersonp/feedback-curator/internal/domain/services"
	"github.com/ersonp/feedback-curator/internal/infrastructure/auditlog/sqlite"
	"github.com/ersonp/feedback-curator/internal/infrastructure/blobstore/gcs"
	"github.com/ersonp/feedback-curator/internal/infrastructure/config"
	"github.com/ersonp/feedback-curator/internal/infrastructure/generator/gemini"
	"github.com/ersonp/feedback-curator/internal/infrastructure/generator/openai"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Audit   ports.AuditLog
	Raw     *handlers.ReviewHandler
	Curated *handlers.ReviewHandler
	Approve *handlers.ApproveHandler
	Export  *handlers.ExportHandler
}

// internalDeps holds all dependencies including low-level components.
// Used internally by helper functions.
type internalDeps struct {
	Deps
	repo     *services.EntryRepository
	curation *services.CurationService
}

// withDeps loads config and builds dependencies, then calls the provided
// function. It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level
// components.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := gcs.NewStore(ctx)
	if err != nil {
		return fmt.Errorf("creating blob store: %w", err)
	}
	defer store.Close()

	audit, err := sqlite.NewRepository(config.AuditPath(cwd))
	if err != nil {
		return fmt.Errorf("creating audit log: %w", err)
	}
	defer audit.Close()

	if err := audit.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring audit schema: %w", err)
	}

	repo := services.NewEntryRepository(store, logger, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	curation := services.NewCurationService(store, logger)

	raw := handlers.NewReviewHandler(repo, logger, cfg.Raw.Bucket, cfg.Raw.Prefix)
	curated := handlers.NewReviewHandler(repo, logger, cfg.Curated.Bucket, cfg.Curated.Prefix)

	deps := &internalDeps{
		Deps: Deps{
			Config:  cfg,
			Logger:  logger,
			Audit:   audit,
			Raw:     raw,
			Curated: curated,
			Approve: handlers.NewApproveHandler(raw, curation, repo, audit, logger, cfg.Curated.Bucket, cfg.Curated.Prefix),
			Export:  handlers.NewExportHandler(curated, audit, logger),
		},
		repo:     repo,
		curation: curation,
	}

	return fn(deps)
}

// withGenerateHandler builds the configured draft provider on top of the
// shared dependencies. Provider construction is deferred to here so that
// review-only commands never need model credentials.
func withGenerateHandler(ctx context.Context, fn func(*handlers.GenerateHandler) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		if err := d.Config.ValidateForGeneration(); err != nil {
			return err
		}

		generator, err := newGenerator(ctx, d.Config)
		if err != nil {
			return fmt.Errorf("creating draft generator: %w", err)
		}

		handler := handlers.NewGenerateHandler(generator, d.curation, d.repo, d.Audit, d.Logger, d.Config.Curated.Bucket, d.Config.Curated.Prefix)
		return fn(handler)
	})
}

func newGenerator(ctx context.Context, cfg *config.Config) (ports.DraftGenerator, error) {
	switch cfg.Model.Provider {
	case "", "gemini":
		return gemini.NewClient(ctx, cfg.Model)
	case "openai":
		return openai.NewClient(cfg.Model)
	default:
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Model.Provider)
	}
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
