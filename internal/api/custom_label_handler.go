package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/kb-gateway/internal/api/shared"
	"github.com/phrazzld/kb-gateway/internal/service"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// CustomLabelHandler handles /custom-labels requests.
type CustomLabelHandler struct {
	labels service.CustomLabelService
	logger *slog.Logger
}

// NewCustomLabelHandler creates a CustomLabelHandler.
func NewCustomLabelHandler(labels service.CustomLabelService, logger *slog.Logger) *CustomLabelHandler {
	if labels == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("labels cannot be nil for CustomLabelHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CustomLabelHandler")
	}
	return &CustomLabelHandler{
		labels: labels,
		logger: logger.With(slog.String("component", "custom_label_handler")),
	}
}

// List handles GET /custom-labels.
func (h *CustomLabelHandler) List(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	doc, err := h.labels.List(r.Context(), creds)
	respond(w, r, http.StatusOK, doc, err)
}

// Get handles GET /custom-labels/{id}.
func (h *CustomLabelHandler) Get(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	doc, err := h.labels.Get(r.Context(), creds, pathID(r))
	respond(w, r, http.StatusOK, doc, err)
}

// Update handles PUT /custom-labels/{id}.
func (h *CustomLabelHandler) Update(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}

	var patch validation.CustomLabelPatch
	if err := shared.DecodeAttributes(w, r, &patch); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	doc, err := h.labels.Update(r.Context(), creds, pathID(r), patch)
	respond(w, r, http.StatusOK, doc, err)
}

// Delete handles DELETE /custom-labels/{id}.
func (h *CustomLabelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	err := h.labels.Delete(r.Context(), creds, pathID(r))
	respondDeleted(w, r, handlerLogger(r, h.logger), err)
}

// ReplaceAll handles PUT /custom-labels, which carries the full label set.
func (h *CustomLabelHandler) ReplaceAll(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}

	doc, err := shared.DecodeCollection(w, r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	labels := make([]validation.CustomLabelPatch, 0, len(doc.Data))
	for i, data := range doc.Data {
		var patch validation.CustomLabelPatch
		if err := data.DecodeAttributes(&patch); err != nil {
			HandleAPIError(w, r, fmt.Errorf("label %d: %w", i, err))
			return
		}
		labels = append(labels, patch)
	}

	handlerLogger(r, h.logger).Debug("replacing custom labels", slog.Int("count", len(labels)))
	result, err := h.labels.ReplaceAll(r.Context(), creds, labels)
	respond(w, r, http.StatusOK, result, err)
}
