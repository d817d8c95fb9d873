package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/kb-gateway/internal/api/shared"
	"github.com/phrazzld/kb-gateway/internal/jsonapi"
	"github.com/phrazzld/kb-gateway/internal/query"
	"github.com/phrazzld/kb-gateway/internal/service"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// TitleHandler handles /titles requests.
type TitleHandler struct {
	titles service.TitleService
	logger *slog.Logger
}

// NewTitleHandler creates a TitleHandler.
func NewTitleHandler(titles service.TitleService, logger *slog.Logger) *TitleHandler {
	if titles == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("titles cannot be nil for TitleHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TitleHandler")
	}
	return &TitleHandler{
		titles: titles,
		logger: logger.With(slog.String("component", "title_handler")),
	}
}

// List handles GET /titles.
func (h *TitleHandler) List(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	params, err := query.MapTitles(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	doc, err := h.titles.List(r.Context(), creds, params)
	respond(w, r, http.StatusOK, doc, err)
}

// Get handles GET /titles/{id}.
func (h *TitleHandler) Get(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}
	doc, err := h.titles.Get(r.Context(), creds, pathID(r), query.ParseInclude(r.URL.Query()))
	respond(w, r, http.StatusOK, doc, err)
}

// Create handles POST /titles. The target package arrives as the single
// included resource; anything else leaves the package id empty and fails
// validation.
func (h *TitleHandler) Create(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}

	doc, err := shared.DecodeDocument(w, r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req validation.TitleCreate
	if err := doc.Data.DecodeAttributes(&req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	packageID, err := includedPackageID(doc)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	req.PackageID = packageID

	handlerLogger(r, h.logger).Debug("creating title", slog.String("package_id", packageID))
	created, err := h.titles.Create(r.Context(), creds, req)
	respond(w, r, http.StatusOK, created, err)
}

func includedPackageID(doc *jsonapi.RequestDocument) (string, error) {
	if len(doc.Included) != 1 {
		return "", nil
	}
	var included struct {
		PackageID string `json:"packageId"`
	}
	if err := doc.Included[0].DecodeAttributes(&included); err != nil {
		return "", err
	}
	return included.PackageID, nil
}
