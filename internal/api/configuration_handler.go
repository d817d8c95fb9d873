package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/kb-gateway/internal/api/shared"
	"github.com/phrazzld/kb-gateway/internal/platform/okapi"
	"github.com/phrazzld/kb-gateway/internal/service"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// ConfigurationHandler handles /configuration and /status requests and loads
// tenant credentials for every other route.
type ConfigurationHandler struct {
	configuration service.ConfigurationService
	status        service.StatusService
	logger        *slog.Logger
}

// NewConfigurationHandler creates a ConfigurationHandler.
func NewConfigurationHandler(
	configuration service.ConfigurationService,
	status service.StatusService,
	logger *slog.Logger,
) *ConfigurationHandler {
	if configuration == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("configuration cannot be nil for ConfigurationHandler")
	}
	if status == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("status cannot be nil for ConfigurationHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ConfigurationHandler")
	}
	return &ConfigurationHandler{
		configuration: configuration,
		status:        status,
		logger:        logger.With(slog.String("component", "configuration_handler")),
	}
}

// RequireCredentials loads the tenant's RM API credentials into the request
// context. Tenants without stored credentials get 401.
func (h *ConfigurationHandler) RequireCredentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenant, ok := requireTenant(w, r)
		if !ok {
			return
		}

		creds, err := h.configuration.Credentials(r.Context(), tenant)
		if err != nil {
			HandleAPIError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithCredentials(r.Context(), creds)))
	})
}

// Get handles GET /configuration.
func (h *ConfigurationHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenant, ok := requireTenant(w, r)
	if !ok {
		return
	}
	doc, err := h.configuration.Get(r.Context(), tenant)
	respond(w, r, http.StatusOK, doc, err)
}

// Update handles PUT /configuration.
func (h *ConfigurationHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenant, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var patch validation.ConfigurationPatch
	if err := shared.DecodeAttributes(w, r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	handlerLogger(r, h.logger).Info("updating configuration",
		slog.String("customer_id", patch.CustomerID))
	doc, err := h.configuration.Update(r.Context(), tenant, patch)
	respond(w, r, http.StatusOK, doc, err)
}

// Status handles GET /status.
func (h *ConfigurationHandler) Status(w http.ResponseWriter, r *http.Request) {
	tenant, ok := requireTenant(w, r)
	if !ok {
		return
	}
	doc, err := h.status.Status(r.Context(), tenant)
	respond(w, r, http.StatusOK, doc, err)
}

// requireTenant returns the platform context stored by the tenant middleware.
func requireTenant(w http.ResponseWriter, r *http.Request) (okapi.Tenant, bool) {
	tenant, ok := shared.GetTenant(r.Context())
	if !ok {
		shared.RespondWithText(w, http.StatusBadRequest, "Missing tenant context")
		return okapi.Tenant{}, false
	}
	return tenant, true
}
