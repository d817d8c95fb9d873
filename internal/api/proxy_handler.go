package api

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
)

// hopHeaders are not copied from the RM API response.
var hopHeaders = map[string]bool{
	"Connection":        true,
	"Content-Length":    true,
	"Keep-Alive":        true,
	"Transfer-Encoding": true,
	"Upgrade":           true,
}

// ProxyHandler forwards unmapped /eholdings paths to the RM API unchanged.
type ProxyHandler struct {
	api    rmapi.API
	logger *slog.Logger
}

// NewProxyHandler creates a ProxyHandler.
func NewProxyHandler(api rmapi.API, logger *slog.Logger) *ProxyHandler {
	if api == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("rmapi.API cannot be nil for ProxyHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProxyHandler")
	}
	return &ProxyHandler{
		api:    api,
		logger: logger.With(slog.String("component", "proxy_handler")),
	}
}

// Forward handles /eholdings/*. The upstream status, headers and body are
// streamed back as received.
func (h *ProxyHandler) Forward(w http.ResponseWriter, r *http.Request) {
	creds, ok := requireCredentials(w, r)
	if !ok {
		return
	}

	path := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	log := handlerLogger(r, h.logger)
	log.Debug("forwarding request",
		slog.String("method", r.Method),
		slog.String("path", path))

	var body io.Reader
	if r.Body != nil && r.ContentLength != 0 {
		body = r.Body
	}

	resp, err := h.api.Forward(r.Context(), creds, r.Method, path, r.URL.RawQuery, body)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Debug("failed to close forwarded response body", slog.String("error", closeErr.Error()))
		}
	}()

	for name, values := range resp.Header {
		if hopHeaders[http.CanonicalHeaderKey(name)] {
			continue
		}
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Warn("failed to stream forwarded response",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}
}
