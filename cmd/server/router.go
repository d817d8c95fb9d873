package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/kb-gateway/internal/api"
	apiMiddleware "github.com/phrazzld/kb-gateway/internal/api/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.Metrics(app.collector))

	providerHandler := api.NewProviderHandler(app.providerService, app.logger)
	packageHandler := api.NewPackageHandler(app.packageService, app.logger)
	resourceHandler := api.NewResourceHandler(app.resourceService, app.logger)
	titleHandler := api.NewTitleHandler(app.titleService, app.logger)
	customLabelHandler := api.NewCustomLabelHandler(app.customLabelService, app.logger)
	rootProxyHandler := api.NewRootProxyHandler(app.rootProxyService, app.logger)
	configurationHandler := api.NewConfigurationHandler(app.configurationService, app.statusService, app.logger)
	proxyHandler := api.NewProxyHandler(app.api, app.logger)

	r.Route("/eholdings", func(r chi.Router) {
		r.Use(apiMiddleware.Tenant)

		// Credentials management works without stored credentials
		r.Get("/configuration", configurationHandler.Get)
		r.Put("/configuration", configurationHandler.Update)
		r.Get("/status", configurationHandler.Status)

		r.Group(func(r chi.Router) {
			r.Use(configurationHandler.RequireCredentials)

			r.Get("/providers", providerHandler.List)
			r.Get("/providers/{id}", providerHandler.Get)
			r.Put("/providers/{id}", providerHandler.Update)
			r.Get("/providers/{id}/packages", providerHandler.ListPackages)

			r.Get("/packages", packageHandler.List)
			r.Get("/packages/{id}", packageHandler.Get)
			r.Put("/packages/{id}", packageHandler.Update)
			r.Delete("/packages/{id}", packageHandler.Delete)
			r.Get("/packages/{id}/resources", packageHandler.ListResources)

			r.Post("/resources", resourceHandler.Create)
			r.Get("/resources/{id}", resourceHandler.Get)
			r.Put("/resources/{id}", resourceHandler.Update)
			r.Delete("/resources/{id}", resourceHandler.Delete)

			r.Get("/titles", titleHandler.List)
			r.Post("/titles", titleHandler.Create)
			r.Get("/titles/{id}", titleHandler.Get)

			r.Get("/custom-labels", customLabelHandler.List)
			r.Put("/custom-labels", customLabelHandler.ReplaceAll)
			r.Get("/custom-labels/{id}", customLabelHandler.Get)
			r.Put("/custom-labels/{id}", customLabelHandler.Update)
			r.Delete("/custom-labels/{id}", customLabelHandler.Delete)

			r.Get("/root-proxies", rootProxyHandler.Get)
			r.Put("/root-proxies/{id}", rootProxyHandler.Update)
			r.Get("/proxy-types", rootProxyHandler.ListProxyTypes)

			r.HandleFunc("/*", proxyHandler.Forward)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	if app.config.Metrics.Enabled {
		r.Method(http.MethodGet, "/metrics", app.collector.Handler())
	}

	return otelhttp.NewHandler(r, "kb-gateway")
}
