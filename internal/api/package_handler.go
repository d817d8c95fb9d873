package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/kb-gateway/internal/api/shared"
	"github.com/phrazzld/kb-gateway/internal/query"
	"github.com/phrazzld/kb-gateway/internal/service"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// PackageHandler handles /packages requests.
type PackageHandler struct {
	packages service.PackageService
	logger   *slog.Logger
}

// NewPackageHandler creates a PackageHandler.
func NewPackageHandler(packages service.PackageService, logger *slog.Logger) *PackageHandler {
	if packages == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("packages cannot be nil for PackageHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PackageHandler")
	}
	return &PackageHandler{
		packages: packages,
		logger:   logger.With(slog.String("component", "package_handler")),
	}
}

// List handles GET /packages.
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	params, err := query.MapPackages(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	doc, err := h.packages.List(r.Context(), creds, params)
	respond(w, r, http.StatusOK, doc, err)
}

// Get handles GET /packages/{id}.
func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	doc, err := h.packages.Get(r.Context(), creds, pathID(r), query.ParseInclude(r.URL.Query()))
	respond(w, r, http.StatusOK, doc, err)
}

// Update handles PUT /packages/{id}.
func (h *PackageHandler) Update(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}

	var patch validation.PackagePatch
	if err := shared.DecodeAttributes(w, r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	handlerLogger(r, h.logger).Debug("updating package", slog.String("package_id", pathID(r)))
	doc, err := h.packages.Update(r.Context(), creds, pathID(r), patch)
	respond(w, r, http.StatusOK, doc, err)
}

// Delete handles DELETE /packages/{id}.
func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	err := h.packages.Delete(r.Context(), creds, pathID(r))
	respondDeleted(w, r, handlerLogger(r, h.logger), err)
}

// ListResources handles GET /packages/{id}/resources.
func (h *PackageHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	params, err := query.MapResources(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	doc, err := h.packages.ListResources(r.Context(), creds, pathID(r), params)
	respond(w, r, http.StatusOK, doc, err)
}
