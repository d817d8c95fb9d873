package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/kb-gateway/internal/api/shared"
	"github.com/phrazzld/kb-gateway/internal/platform/logger"
	"github.com/phrazzld/kb-gateway/internal/platform/okapi"
)

// requiredHeaders are checked in this order; the first missing one is
// reported.
var requiredHeaders = []string{okapi.HeaderURL, okapi.HeaderTenant, okapi.HeaderToken}

// Tenant rejects requests without the okapi tenant headers and stores the
// tenant context for the handlers. The rejection is plain text because the
// request never reached the JSON:API surface.
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, h := range requiredHeaders {
			if strings.TrimSpace(r.Header.Get(h)) == "" {
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Debug("missing tenant header", slog.String("header", h))
				shared.RespondWithText(w, http.StatusBadRequest, "Missing header "+h)
				return
			}
		}

		tenant := okapi.Tenant{
			URL:   r.Header.Get(okapi.HeaderURL),
			ID:    r.Header.Get(okapi.HeaderTenant),
			Token: r.Header.Get(okapi.HeaderToken),
		}

		log := logger.FromContextOrDefault(r.Context(), slog.Default()).
			With(slog.String("tenant", tenant.ID))
		if userID := tokenUserID(tenant.Token); userID != "" {
			log = log.With(slog.String("user_id", userID))
		}

		ctx := shared.WithTenant(r.Context(), tenant)
		ctx = logger.WithLogger(ctx, log)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenUserID reads the user id claim of the platform token for log
// correlation. The platform gateway has already verified the token, so the
// signature is not checked here and the value is never used for access
// decisions.
func tokenUserID(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	if id, ok := claims["user_id"].(string); ok && id != "" {
		return id
	}
	if sub, err := claims.GetSubject(); err == nil {
		return sub
	}
	return ""
}
