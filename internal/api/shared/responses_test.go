package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/kb-gateway/internal/jsonapi"
	"github.com/phrazzld/kb-gateway/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/eholdings/packages/1-2", nil)

	RespondWithJSON(rec, req, http.StatusOK, jsonapi.Single(jsonapi.Resource{ID: "1-2", Type: "packages"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, jsonapi.MediaType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`{"data":{"id":"1-2","type":"packages","attributes":null},"jsonapi":{"version":"1.0"}}`,
		rec.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		err       error
		wantLevel string
	}{
		{name: "client error logs at debug", status: http.StatusUnprocessableEntity, err: errors.New("bad"), wantLevel: "DEBUG"},
		{name: "server error logs at error", status: http.StatusInternalServerError, err: errors.New("boom"), wantLevel: "ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, buf := logger.GetTestLogger(t)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/eholdings/resources/1-2-3", nil)
			req = req.WithContext(logger.WithLogger(SetTraceID(req.Context()), log))

			RespondWithErrorAndLog(rec, req, tc.status, []jsonapi.Error{{Title: "Invalid name"}, {Title: "Invalid url"}}, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var body jsonapi.ErrorDocument
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Len(t, body.Errors, 2)
			assert.Equal(t, "Invalid name", body.Errors[0].Title)
			assert.Equal(t, "Invalid url", body.Errors[1].Title)

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.NotEmpty(t, entries)
			last := entries[len(entries)-1]
			assert.Equal(t, tc.wantLevel, last["level"])
			assert.Equal(t, GetTraceID(req.Context()), last["trace_id"])
		})
	}
}

func TestRespondWithText(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithText(rec, http.StatusBadRequest, "X-Okapi-Tenant header is required")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "X-Okapi-Tenant header is required", rec.Body.String())
}
