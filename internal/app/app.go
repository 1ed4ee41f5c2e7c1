// Package app wires the adapters, connectors and services together.
// Routers and planners are built per run so that settings changes take
// effect without a restart.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/deckroute/internal/adapters/driven/auth"
	"github.com/custodia-labs/deckroute/internal/adapters/driven/config/file"
	"github.com/custodia-labs/deckroute/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/deckroute/internal/connectors/analytics"
	"github.com/custodia-labs/deckroute/internal/connectors/catalog"
	"github.com/custodia-labs/deckroute/internal/connectors/httpx"
	"github.com/custodia-labs/deckroute/internal/connectors/illustrator"
	"github.com/custodia-labs/deckroute/internal/connectors/textservice"
	"github.com/custodia-labs/deckroute/internal/core/domain"
	"github.com/custodia-labs/deckroute/internal/core/ports/driven"
	"github.com/custodia-labs/deckroute/internal/core/ports/driving"
	"github.com/custodia-labs/deckroute/internal/core/services"
	"github.com/custodia-labs/deckroute/internal/logger"
)

// Ensure App implements the interface.
var _ driving.CatalogBrowser = (*App)(nil)

// Config locates the configuration and data directories. Empty values
// use ~/.deckroute and ~/.deckroute/data.
type Config struct {
	ConfigDir string
	DataDir   string
}

// App holds the long-lived stores and services.
type App struct {
	Settings *services.SettingsService
	Runs     *services.RunService

	store *sqlite.Store
}

// New opens the config file and the SQLite store.
func New(cfg Config) (*App, error) {
	configStore, err := file.NewConfigStore(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("config: %s, data: %s", configStore.Path(), store.Path())

	return &App{
		Settings: services.NewSettingsService(configStore),
		Runs:     services.NewRunService(store.RunStore()),
		store:    store,
	}, nil
}

// Close releases the SQLite store.
func (a *App) Close() error {
	return a.store.Close()
}

// NewRouter builds a router from the current settings and opts.
func (a *App) NewRouter(opts driving.RouteOptions) (driving.PresentationRouter, error) {
	settings, err := a.settings(opts)
	if err != nil {
		return nil, err
	}
	clients, factory, err := a.build(settings)
	if err != nil {
		return nil, err
	}
	return services.NewServiceRouter(clients, factory, services.RouterOptions{
		Timeout:            settings.Services.Timeout,
		InterSlideDelay:    settings.Routing.InterSlideDelay,
		SkipHeroGeneration: settings.Routing.SkipHeroGeneration,
		Prepare:            prepareOptions(opts),
	}), nil
}

// NewPlanner builds a planner from the current settings and opts.
func (a *App) NewPlanner(opts driving.RouteOptions) (driving.Planner, error) {
	settings, err := a.settings(opts)
	if err != nil {
		return nil, err
	}
	httpOpts, err := a.httpOptions(settings)
	if err != nil {
		return nil, err
	}
	factory, err := a.sessionFactory(settings, httpOpts)
	if err != nil {
		return nil, err
	}
	return services.NewPlanService(factory, prepareOptions(opts)), nil
}

// Catalog loads the variant catalog from the configured service,
// falling back to the cached snapshot.
func (a *App) Catalog(ctx context.Context) (*domain.CatalogSnapshot, string, error) {
	settings, err := a.Settings.Get()
	if err != nil {
		return nil, services.CatalogNone, err
	}
	httpOpts, err := a.httpOptions(settings)
	if err != nil {
		return nil, services.CatalogNone, err
	}
	src, err := catalogSource(settings, httpOpts)
	if err != nil {
		return nil, services.CatalogNone, err
	}
	return services.NewCatalogService(src, a.store.CatalogCache()).Catalog(ctx)
}

func (a *App) settings(opts driving.RouteOptions) (*domain.AppSettings, error) {
	settings, err := a.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if opts.SkipHero {
		settings.Routing.SkipHeroGeneration = true
	}
	if opts.Seed != 0 {
		settings.Routing.Seed = opts.Seed
	}
	return settings, nil
}

func (a *App) build(settings *domain.AppSettings) (services.Clients, services.SessionFactory, error) {
	httpOpts, err := a.httpOptions(settings)
	if err != nil {
		return services.Clients{}, nil, err
	}

	var clients services.Clients
	text, err := optional(textservice.New(settings.Services.TextServiceURL, httpOpts...))
	if err != nil {
		return clients, nil, fmt.Errorf("text service: %w", err)
	}
	if text != nil {
		clients.Content = text
		clients.Hero = text
	}
	pyramid, err := optional(illustrator.New(settings.Services.IllustratorURL, httpOpts...))
	if err != nil {
		return clients, nil, fmt.Errorf("illustrator service: %w", err)
	}
	if pyramid != nil {
		clients.Pyramid = pyramid
	}
	charts, err := optional(analytics.New(settings.Services.AnalyticsURL, httpOpts...))
	if err != nil {
		return clients, nil, fmt.Errorf("analytics service: %w", err)
	}
	if charts != nil {
		clients.Analytics = charts
	}

	factory, err := a.sessionFactory(settings, httpOpts)
	if err != nil {
		return clients, nil, err
	}
	return clients, factory, nil
}

func (a *App) sessionFactory(settings *domain.AppSettings, httpOpts []httpx.Option) (services.SessionFactory, error) {
	src, err := catalogSource(settings, httpOpts)
	if err != nil {
		return nil, err
	}
	return services.NewSessionFactory(services.SessionConfig{
		CatalogSource: src,
		CatalogCache:  a.store.CatalogCache(),
		Diversity:     settings.Diversity,
		Seed:          settings.Routing.Seed,
	}), nil
}

func (a *App) httpOptions(settings *domain.AppSettings) ([]httpx.Option, error) {
	tokens, err := auth.NewTokenProvider(settings.Auth)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	return []httpx.Option{
		httpx.WithTokenProvider(tokens),
		httpx.WithMaxRetries(settings.Services.MaxRetries),
	}, nil
}

func catalogSource(settings *domain.AppSettings, httpOpts []httpx.Option) (driven.VariantCatalogSource, error) {
	src, err := optional(catalog.New(settings.Services.CatalogBaseURL(), httpOpts...))
	if err != nil {
		return nil, fmt.Errorf("variant catalog: %w", err)
	}
	if src == nil {
		return nil, nil
	}
	return src, nil
}

// optional turns ErrServiceNotConfigured into a nil client.
func optional[T any](client *T, err error) (*T, error) {
	if errors.Is(err, domain.ErrServiceNotConfigured) {
		return nil, nil
	}
	return client, err
}

func prepareOptions(opts driving.RouteOptions) services.PrepareOptions {
	return services.PrepareOptions{
		DeriveTitles: opts.DeriveTitles,
		Reclassify:   opts.Reclassify,
	}
}
