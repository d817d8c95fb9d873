package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/jsonapi"
	"github.com/stretchr/testify/require"
)

var testCreds = domain.TenantConfig{CustomerID: "cust", APIKey: "key"}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// single extracts the primary resource of a single-resource document.
func single(t *testing.T, doc *jsonapi.Document) jsonapi.Resource {
	t.Helper()
	require.NotNil(t, doc)
	res, ok := doc.Data.(jsonapi.Resource)
	require.True(t, ok, "document data is %T", doc.Data)
	return res
}

// many extracts the primary resources of a collection document.
func many(t *testing.T, doc *jsonapi.Document) []jsonapi.Resource {
	t.Helper()
	require.NotNil(t, doc)
	res, ok := doc.Data.([]jsonapi.Resource)
	require.True(t, ok, "document data is %T", doc.Data)
	return res
}

var ctx = context.Background()
