package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/kb-gateway/internal/api/shared"
	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/jsonapi"
	"github.com/phrazzld/kb-gateway/internal/platform/logger"
)

// requireCredentials returns the credentials loaded by RequireCredentials.
// It writes a 401 when they are absent, which means the route was mounted
// outside the credentials group.
func requireCredentials(w http.ResponseWriter, r *http.Request) (domain.TenantConfig, bool) {
	creds, ok := shared.GetCredentials(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrConfigurationMissing)
		return domain.TenantConfig{}, false
	}
	return creds, true
}

// pathID returns the {id} path parameter.
func pathID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// respond writes doc, or the error response for err.
func respond(w http.ResponseWriter, r *http.Request, status int, doc *jsonapi.Document, err error) {
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, status, doc)
}

// respondDeleted writes 204, or the error response for err.
func respondDeleted(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	log.Debug("entity deleted", slog.String("id", pathID(r)))
	shared.RespondNoContent(w)
}

// handlerLogger returns the request logger, falling back to the handler's.
func handlerLogger(r *http.Request, fallback *slog.Logger) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), fallback)
}
