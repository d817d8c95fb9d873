package okapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfigService struct {
	entries  []configEntry
	status   int
	requests []*http.Request
	bodies   [][]byte
}

func (f *fakeConfigService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.requests = append(f.requests, r)
	f.bodies = append(f.bodies, body)

	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte("no token"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(configEntries{Configs: f.entries, TotalRecords: len(f.entries)})
	case http.MethodPost:
		w.WriteHeader(http.StatusCreated)
	case http.MethodPut:
		w.WriteHeader(http.StatusNoContent)
	}
}

func newTestResolver(t *testing.T, fake *fakeConfigService) (*Client, Tenant) {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := NewClient(5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return client, Tenant{URL: server.URL, ID: "diku", Token: "tok"}
}

func TestLoad(t *testing.T) {
	fake := &fakeConfigService{entries: []configEntry{{
		ID:    "e1",
		Value: "customer-id=apidvgvmt&api-key=abc",
	}}}
	client, tenant := newTestResolver(t, fake)

	cfg, err := client.Load(context.Background(), tenant)
	require.NoError(t, err)
	assert.Equal(t, domain.TenantConfig{CustomerID: "apidvgvmt", APIKey: "abc"}, cfg)

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, "/configurations/entries", req.URL.Path)
	assert.Equal(t, credentialsQuery, req.URL.Query().Get("query"))
	assert.Equal(t, "diku", req.Header.Get(HeaderTenant))
	assert.Equal(t, "tok", req.Header.Get(HeaderToken))
}

func TestLoadMissingOrIncomplete(t *testing.T) {
	tests := []struct {
		name    string
		entries []configEntry
	}{
		{name: "no entry"},
		{name: "missing api key", entries: []configEntry{{ID: "e1", Value: "customer-id=abc"}}},
		{name: "undecodable", entries: []configEntry{{ID: "e1", Value: "%zz"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, tenant := newTestResolver(t, &fakeConfigService{entries: tt.entries})
			_, err := client.Load(context.Background(), tenant)
			assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
		})
	}
}

func TestLoadServiceError(t *testing.T) {
	client, tenant := newTestResolver(t, &fakeConfigService{status: http.StatusUnauthorized})

	_, err := client.Load(context.Background(), tenant)
	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusUnauthorized, svcErr.Status)
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	fake := &fakeConfigService{}
	client, tenant := newTestResolver(t, fake)
	cfg := domain.TenantConfig{CustomerID: "cust", APIKey: "key"}

	require.NoError(t, client.Save(context.Background(), tenant, cfg))
	require.Len(t, fake.requests, 2)
	assert.Equal(t, http.MethodPost, fake.requests[1].Method)
	assert.Equal(t, "/configurations/entries", fake.requests[1].URL.Path)

	var posted configEntry
	require.NoError(t, json.Unmarshal(fake.bodies[1], &posted))
	assert.Equal(t, "EKB", posted.Module)
	assert.Equal(t, "api-key=key&customer-id=cust", posted.Value)

	fake.entries = []configEntry{{ID: "abc-123", Value: posted.Value}}
	require.NoError(t, client.Save(context.Background(), tenant, cfg))
	require.Len(t, fake.requests, 4)
	assert.Equal(t, http.MethodPut, fake.requests[3].Method)
	assert.Equal(t, "/configurations/entries/abc-123", fake.requests[3].URL.Path)
}
