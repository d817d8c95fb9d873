package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveUpstream(t *testing.T) {
	c := NewCollector()

	c.ObserveUpstream("get_package", 200, 20*time.Millisecond)
	c.ObserveUpstream("get_package", 200, 10*time.Millisecond)
	c.ObserveUpstream("get_package", 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.UpstreamCalls.WithLabelValues("get_package", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.UpstreamCalls.WithLabelValues("get_package", "error")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.ObserveRequest(http.MethodGet, "/eholdings/packages/{packageId}", 200)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "kb_gateway_http_requests_total")
}
