// Package app builds the object graph shared by the API server and routerctl.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"intent-router/config"
	"intent-router/internal/answer"
	"intent-router/internal/catalog"
	catalogSQLite "intent-router/internal/catalog/repository/sqlite"
	catalogUC "intent-router/internal/catalog/usecase"
	"intent-router/internal/chat"
	chatUC "intent-router/internal/chat/usecase"
	"intent-router/internal/encoder"
	"intent-router/internal/faq"
	faqQdrant "intent-router/internal/faq/repository/qdrant"
	faqUC "intent-router/internal/faq/usecase"
	"intent-router/internal/intent"
	"intent-router/internal/intent/repository"
	"intent-router/internal/intent/repository/memory"
	intentSQLite "intent-router/internal/intent/repository/sqlite"
	intentUC "intent-router/internal/intent/usecase"
	"intent-router/internal/registry"
	"intent-router/pkg/llmprovider"
	"intent-router/pkg/log"
	"intent-router/pkg/metrics"
	"intent-router/pkg/qdrant"
)

// Route names served by the built-in answerers.
const (
	RouteFAQ = "faq"
	RouteSQL = "sql"
)

// App is the wired service. FAQ and Catalog are nil when not configured;
// they are answerers only when an LLM provider is available.
type App struct {
	Config  *config.Config
	Logger  log.Logger
	Metrics *metrics.Metrics
	Encoder encoder.Encoder
	Router  intent.UseCase
	LLM     llmprovider.Generator
	FAQ     faq.UseCase
	Catalog catalog.UseCase
	Chat    chat.UseCase

	closers []func() error
}

// New wires the router and its collaborators. The router is not initialized;
// call Router.Init.
func New(ctx context.Context, cfg *config.Config, l log.Logger, m *metrics.Metrics) (*App, error) {
	a := &App{Config: cfg, Logger: l, Metrics: m}

	enc, err := encoder.New(ctx, encoder.Config{
		Provider:   cfg.Encoder.Provider,
		Model:      cfg.Encoder.Model,
		Dimensions: cfg.Encoder.Dimensions,
		BatchSize:  cfg.Encoder.BatchSize,
		APIKey:     cfg.Encoder.APIKey,
		BaseURL:    cfg.Encoder.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("encoder.New: %w", err)
	}
	a.Encoder = enc
	l.Infof(ctx, "app.New: encoder %s", enc.Identity())

	routes, err := registry.LoadFile(cfg.Router.RoutesFile)
	if err != nil {
		return nil, fmt.Errorf("registry.LoadFile: %w", err)
	}

	repo, err := a.newIndexStore(ctx)
	if err != nil {
		return nil, err
	}

	router, err := intentUC.New(l, intent.Config{
		Routes:          routes,
		Threshold:       cfg.Router.Threshold,
		SyncMode:        cfg.Router.SyncMode,
		ClassifyTimeout: cfg.Router.ClassifyTimeout,
		QueryCacheSize:  cfg.Router.QueryCacheSize,
		QueryCacheTTL:   cfg.Router.QueryCacheTTL,
	}, enc, repo, m)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("intent usecase: %w", err)
	}
	a.Router = router

	if err := a.newAnswerers(ctx); err != nil {
		a.Close()
		return nil, err
	}
	a.Chat = chatUC.New(l, router, a.handlers(), m)

	return a, nil
}

func (a *App) newIndexStore(ctx context.Context) (repository.Repository, error) {
	if a.Config.Store.Path == "" {
		a.Logger.Warnf(ctx, "app.New: store.path not set, reference index is kept in memory")
		return memory.New(), nil
	}
	repo, err := intentSQLite.New(ctx, a.Logger, a.Config.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("reference index store: %w", err)
	}
	a.closers = append(a.closers, repo.Close)
	return repo, nil
}

func (a *App) newAnswerers(ctx context.Context) error {
	cfg, l := a.Config, a.Logger

	if len(cfg.LLM.Providers) > 0 {
		manager, err := llmprovider.NewFromConfig(ctx, l, &cfg.LLM)
		if err != nil {
			l.Warnf(ctx, "app.New: LLM providers unavailable, answerers disabled: %v", err)
		} else {
			a.LLM = manager
			l.Infof(ctx, "app.New: LLM providers %v", manager.Providers())
		}
	}

	if cfg.Qdrant.URL != "" {
		client := qdrant.NewClient(cfg.Qdrant.URL)
		if cfg.Qdrant.APIKey != "" {
			client.WithAPIKey(cfg.Qdrant.APIKey)
		}
		repo := faqQdrant.New(l, client, cfg.Qdrant.CollectionName)
		a.FAQ = faqUC.New(l, faq.Config{TopK: cfg.FAQ.TopK, MinScore: cfg.FAQ.MinScore}, a.Encoder, repo, a.LLM)
	} else {
		l.Warnf(ctx, "app.New: qdrant.url not set, FAQ answerer disabled")
	}

	if cfg.Catalog.DBPath != "" {
		repo, err := catalogSQLite.New(ctx, l, cfg.Catalog.DBPath)
		if err != nil {
			return fmt.Errorf("catalog store: %w", err)
		}
		a.closers = append(a.closers, repo.Close)
		a.Catalog = catalogUC.New(l, repo, a.LLM)

		if cfg.Catalog.CSVPath != "" {
			n, err := a.importCatalog(ctx, cfg.Catalog.CSVPath)
			if err != nil {
				return fmt.Errorf("catalog import: %w", err)
			}
			l.Infof(ctx, "app.New: imported %d products from %s", n, cfg.Catalog.CSVPath)
		}
	} else {
		l.Warnf(ctx, "app.New: catalog.db_path not set, SQL answerer disabled")
	}

	return nil
}

func (a *App) importCatalog(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return a.Catalog.Import(ctx, f)
}

// handlers maps route names to answerers. Answerers need an LLM.
func (a *App) handlers() map[string]answer.Answerer {
	handlers := make(map[string]answer.Answerer)
	if a.LLM == nil {
		return handlers
	}
	if a.FAQ != nil {
		handlers[RouteFAQ] = a.FAQ
	}
	if a.Catalog != nil {
		handlers[RouteSQL] = a.Catalog
	}
	return handlers
}

// Close releases the stores in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
