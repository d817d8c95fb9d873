package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/kb-gateway/internal/api/shared"
	"github.com/phrazzld/kb-gateway/internal/service"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// RootProxyHandler handles /root-proxies and /proxy-types requests.
type RootProxyHandler struct {
	proxies service.RootProxyService
	logger  *slog.Logger
}

// NewRootProxyHandler creates a RootProxyHandler.
func NewRootProxyHandler(proxies service.RootProxyService, logger *slog.Logger) *RootProxyHandler {
	if proxies == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("proxies cannot be nil for RootProxyHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RootProxyHandler")
	}
	return &RootProxyHandler{
		proxies: proxies,
		logger:  logger.With(slog.String("component", "root_proxy_handler")),
	}
}

// Get handles GET /root-proxies.
func (h *RootProxyHandler) Get(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	doc, err := h.proxies.Get(r.Context(), creds)
	respond(w, r, http.StatusOK, doc, err)
}

// Update handles PUT /root-proxies/{id}.
func (h *RootProxyHandler) Update(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}

	var patch validation.RootProxyPatch
	if err := shared.DecodeAttributes(w, r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	doc, err := h.proxies.Update(r.Context(), creds, pathID(r), patch)
	respond(w, r, http.StatusOK, doc, err)
}

// ListProxyTypes handles GET /proxy-types.
func (h *RootProxyHandler) ListProxyTypes(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	doc, err := h.proxies.ListProxyTypes(r.Context(), creds)
	respond(w, r, http.StatusOK, doc, err)
}
