package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/kb-gateway/internal/api/shared"
	"github.com/phrazzld/kb-gateway/internal/platform/logger"
	"github.com/phrazzld/kb-gateway/internal/platform/okapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTenant(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "diku_admin", "user_id": "a1b2"})

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "all headers present",
			headers:    map[string]string{okapi.HeaderURL: "http://okapi", okapi.HeaderTenant: "diku", okapi.HeaderToken: token},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing url",
			headers:    map[string]string{okapi.HeaderTenant: "diku", okapi.HeaderToken: token},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Missing header X-Okapi-Url",
		},
		{
			name:       "missing tenant",
			headers:    map[string]string{okapi.HeaderURL: "http://okapi", okapi.HeaderToken: token},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Missing header X-Okapi-Tenant",
		},
		{
			name:       "missing token",
			headers:    map[string]string{okapi.HeaderURL: "http://okapi", okapi.HeaderTenant: "diku"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Missing header X-Okapi-Token",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got okapi.Tenant
			handler := Tenant(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = shared.GetTenant(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/eholdings/packages", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, rec.Body.String())
				assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
				return
			}
			assert.Equal(t, "diku", got.ID)
			assert.Equal(t, "http://okapi", got.URL)
		})
	}
}

func TestTokenUserID(t *testing.T) {
	assert.Equal(t, "a1b2", tokenUserID(signedToken(t, jwt.MapClaims{"sub": "admin", "user_id": "a1b2"})))
	assert.Equal(t, "admin", tokenUserID(signedToken(t, jwt.MapClaims{"sub": "admin"})))
	assert.Empty(t, tokenUserID("not-a-jwt"))
}

func TestTraceMiddleware(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	var traceID string
	handler := NewTraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/eholdings/status", nil))

	require.Len(t, traceID, 32)
	entries, err := buf.GetLogEntries()
	require.NoError(t, err)

	var sawHandler, sawCompleted bool
	for _, e := range entries {
		assert.Equal(t, traceID, e["trace_id"])
		switch e["msg"] {
		case "inside handler":
			sawHandler = true
		case "request completed":
			sawCompleted = true
			assert.EqualValues(t, http.StatusTeapot, e["status_code"])
		}
	}
	assert.True(t, sawHandler)
	assert.True(t, sawCompleted)

	assert.Panics(t, func() { NewTraceMiddleware(nil) })
}

type recordingObserver struct {
	method, route string
	status        int
}

func (o *recordingObserver) ObserveRequest(method, route string, status int) {
	o.method, o.route, o.status = method, route, status
}

func TestMetrics(t *testing.T) {
	observer := &recordingObserver{}
	r := chi.NewRouter()
	r.Use(Metrics(observer))
	r.Get("/eholdings/packages/{id}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/eholdings/packages/19-2981", nil))

	assert.Equal(t, http.MethodGet, observer.method)
	assert.Equal(t, "/eholdings/packages/{id}", observer.route)
	assert.Equal(t, http.StatusOK, observer.status)
}
