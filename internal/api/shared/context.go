package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/platform/okapi"
)

// ContextKey is the type of the keys this package stores in a context.
type ContextKey string

// Context keys for request-scoped values.
const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TenantKey is the key for the okapi tenant context
	TenantKey ContextKey = "tenant"

	// CredentialsKey is the key for the tenant's RM API credentials
	CredentialsKey ContextKey = "credentials"
)

// SetTraceID adds a new trace ID to the context. Trace IDs are random UUIDs
// without dashes.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, NewTraceID())
}

// NewTraceID returns a 32-character hex trace ID.
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithTenant stores the okapi tenant context.
func WithTenant(ctx context.Context, tenant okapi.Tenant) context.Context {
	return context.WithValue(ctx, TenantKey, tenant)
}

// GetTenant returns the okapi tenant context, if present.
func GetTenant(ctx context.Context) (okapi.Tenant, bool) {
	tenant, ok := ctx.Value(TenantKey).(okapi.Tenant)
	return tenant, ok
}

// WithCredentials stores the tenant's RM API credentials.
func WithCredentials(ctx context.Context, creds domain.TenantConfig) context.Context {
	return context.WithValue(ctx, CredentialsKey, creds)
}

// GetCredentials returns the tenant's RM API credentials, if loaded.
func GetCredentials(ctx context.Context) (domain.TenantConfig, bool) {
	creds, ok := ctx.Value(CredentialsKey).(domain.TenantConfig)
	return creds, ok && creds.Valid()
}
