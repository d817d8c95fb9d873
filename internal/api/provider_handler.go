package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/kb-gateway/internal/api/shared"
	"github.com/phrazzld/kb-gateway/internal/query"
	"github.com/phrazzld/kb-gateway/internal/service"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// ProviderHandler handles /providers requests.
type ProviderHandler struct {
	providers service.ProviderService
	logger    *slog.Logger
}

// NewProviderHandler creates a ProviderHandler.
func NewProviderHandler(providers service.ProviderService, logger *slog.Logger) *ProviderHandler {
	if providers == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("providers cannot be nil for ProviderHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProviderHandler")
	}
	return &ProviderHandler{
		providers: providers,
		logger:    logger.With(slog.String("component", "provider_handler")),
	}
}

// List handles GET /providers.
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	params, err := query.MapProviders(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	doc, err := h.providers.List(r.Context(), creds, params)
	respond(w, r, http.StatusOK, doc, err)
}

// Get handles GET /providers/{id}.
func (h *ProviderHandler) Get(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	doc, err := h.providers.Get(r.Context(), creds, pathID(r), query.ParseInclude(r.URL.Query()))
	respond(w, r, http.StatusOK, doc, err)
}

// Update handles PUT /providers/{id}.
func (h *ProviderHandler) Update(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}

	var patch validation.ProviderPatch
	if err := shared.DecodeAttributes(w, r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	handlerLogger(r, h.logger).Debug("updating provider", slog.String("provider_id", pathID(r)))
	doc, err := h.providers.Update(r.Context(), creds, pathID(r), patch)
	respond(w, r, http.StatusOK, doc, err)
}

// ListPackages handles GET /providers/{id}/packages.
func (h *ProviderHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	params, err := query.MapPackages(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	doc, err := h.providers.ListPackages(r.Context(), creds, pathID(r), params)
	respond(w, r, http.StatusOK, doc, err)
}
