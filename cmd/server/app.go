package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/kb-gateway/internal/config"
	"github.com/phrazzld/kb-gateway/internal/platform/metrics"
	"github.com/phrazzld/kb-gateway/internal/platform/okapi"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
	"github.com/phrazzld/kb-gateway/internal/service"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Adapters
	api       rmapi.API
	resolver  okapi.Resolver
	collector *metrics.Collector

	// Services
	providerService      service.ProviderService
	packageService       service.PackageService
	resourceService      service.ResourceService
	titleService         service.TitleService
	customLabelService   service.CustomLabelService
	rootProxyService     service.RootProxyService
	configurationService service.ConfigurationService
	statusService        service.StatusService
}

// newApplication wires the service layer on top of the given adapters. The
// RM API client is stateless; credentials travel with every call.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	api rmapi.API,
	resolver okapi.Resolver,
	collector *metrics.Collector,
) *application {
	app := &application{
		config:    cfg,
		logger:    logger,
		api:       api,
		resolver:  resolver,
		collector: collector,
	}

	app.providerService = service.NewProviderService(api, logger)
	app.packageService = service.NewPackageService(api, logger)
	app.resourceService = service.NewResourceService(api, logger)
	app.titleService = service.NewTitleService(api, logger)
	app.customLabelService = service.NewCustomLabelService(api, logger)
	app.rootProxyService = service.NewRootProxyService(api, logger)
	app.configurationService = service.NewConfigurationService(resolver, api, cfg.RMAPI.BaseURL, logger)
	app.statusService = service.NewStatusService(resolver, api, logger)

	logger.Info("application initialized")
	return app
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
