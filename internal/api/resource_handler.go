package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/kb-gateway/internal/api/shared"
	"github.com/phrazzld/kb-gateway/internal/query"
	"github.com/phrazzld/kb-gateway/internal/service"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// ResourceHandler handles /resources requests.
type ResourceHandler struct {
	resources service.ResourceService
	logger    *slog.Logger
}

// NewResourceHandler creates a ResourceHandler.
func NewResourceHandler(resources service.ResourceService, logger *slog.Logger) *ResourceHandler {
	if resources == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("resources cannot be nil for ResourceHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ResourceHandler")
	}
	return &ResourceHandler{
		resources: resources,
		logger:    logger.With(slog.String("component", "resource_handler")),
	}
}

// Get handles GET /resources/{id}.
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	doc, err := h.resources.Get(r.Context(), creds, pathID(r), query.ParseInclude(r.URL.Query()))
	respond(w, r, http.StatusOK, doc, err)
}

// Create handles POST /resources.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}

	var req validation.ResourceCreate
	if err := shared.DecodeAttributes(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	handlerLogger(r, h.logger).Debug("creating resource",
		slog.String("package_id", req.PackageID),
		slog.String("title_id", req.TitleID))
	doc, err := h.resources.Create(r.Context(), creds, req)
	respond(w, r, http.StatusOK, doc, err)
}

// Update handles PUT /resources/{id}.
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}

	var patch validation.ResourcePatch
	if err := shared.DecodeAttributes(w, r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	doc, err := h.resources.Update(r.Context(), creds, pathID(r), patch)
	respond(w, r, http.StatusOK, doc, err)
}

// Delete handles DELETE /resources/{id}.
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	err := h.resources.Delete(r.Context(), creds, pathID(r))
	respondDeleted(w, r, handlerLogger(r, h.logger), err)
}
