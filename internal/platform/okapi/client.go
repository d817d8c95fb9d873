package okapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/redact"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Headers that carry the tenant context.
const (
	HeaderURL    = "X-Okapi-Url"
	HeaderTenant = "X-Okapi-Tenant"
	HeaderToken  = "X-Okapi-Token"
)

const (
	entriesPath  = "/configurations/entries"
	configModule = "EKB"
	configName   = "api_access"
	configCode   = "kb.ebsco.credentials"
)

// credentialsQuery is the CQL query selecting the credentials entry.
var credentialsQuery = fmt.Sprintf("(module==%s AND configName==%s AND code==%s)", configModule, configName, configCode)

// Tenant is the context supplied by the platform on every inbound request.
type Tenant struct {
	URL   string
	ID    string
	Token string
}

// ServiceError is a non-2xx response from the configuration service.
type ServiceError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("configuration service responded %d: %s", e.Status, e.Body)
}

// Resolver loads and stores tenant credentials.
type Resolver interface {
	Load(ctx context.Context, tenant Tenant) (domain.TenantConfig, error)
	Save(ctx context.Context, tenant Tenant, cfg domain.TenantConfig) error
}

type configEntry struct {
	ID         string `json:"id,omitempty"`
	Module     string `json:"module"`
	ConfigName string `json:"configName"`
	Code       string `json:"code"`
	Enabled    bool   `json:"enabled"`
	Value      string `json:"value"`
}

type configEntries struct {
	Configs      []configEntry `json:"configs"`
	TotalRecords int           `json:"totalRecords"`
}

var _ Resolver = (*Client)(nil)

// Client is the HTTP Resolver. The configuration service base URL comes from
// each request's tenant context, not from static configuration.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for okapi.Client")
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.With(slog.String("component", "okapi_config_client")),
	}
}

// Load returns the tenant's credentials, or domain.ErrConfigurationMissing
// when no complete entry exists.
func (c *Client) Load(ctx context.Context, tenant Tenant) (domain.TenantConfig, error) {
	entry, err := c.find(ctx, tenant)
	if err != nil {
		return domain.TenantConfig{}, err
	}
	if entry == nil {
		return domain.TenantConfig{}, domain.ErrConfigurationMissing
	}

	cfg, err := domain.DecodeTenantConfig(entry.Value)
	if err != nil {
		c.logger.WarnContext(ctx, "stored credentials are not decodable",
			slog.String("tenant", tenant.ID),
			slog.String("error", redact.Error(err)))
		return domain.TenantConfig{}, domain.ErrConfigurationMissing
	}
	if !cfg.Valid() {
		return domain.TenantConfig{}, domain.ErrConfigurationMissing
	}
	return cfg, nil
}

// Save replaces the tenant's credentials entry, creating it when absent.
func (c *Client) Save(ctx context.Context, tenant Tenant, cfg domain.TenantConfig) error {
	existing, err := c.find(ctx, tenant)
	if err != nil {
		return err
	}

	entry := configEntry{
		Module:     configModule,
		ConfigName: configName,
		Code:       configCode,
		Enabled:    true,
		Value:      domain.EncodeTenantConfig(cfg),
	}

	method, path := http.MethodPost, entriesPath
	if existing != nil {
		entry.ID = existing.ID
		method, path = http.MethodPut, entriesPath+"/"+url.PathEscape(existing.ID)
	}

	if err := c.do(ctx, tenant, method, path, nil, entry, nil); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	c.logger.InfoContext(ctx, "tenant credentials saved",
		slog.String("tenant", tenant.ID),
		slog.Bool("created", existing == nil))
	return nil
}

func (c *Client) find(ctx context.Context, tenant Tenant) (*configEntry, error) {
	query := url.Values{}
	query.Set("query", credentialsQuery)

	var entries configEntries
	if err := c.do(ctx, tenant, http.MethodGet, entriesPath, query, nil, &entries); err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	if len(entries.Configs) == 0 {
		return nil, nil
	}
	return &entries.Configs[0], nil
}

func (c *Client) do(
	ctx context.Context,
	tenant Tenant,
	method, path string,
	query url.Values,
	body any,
	out any,
) error {
	target := strings.TrimRight(tenant.URL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set(HeaderTenant, tenant.ID)
	req.Header.Set(HeaderToken, tenant.Token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServiceError{Status: resp.StatusCode, Body: redact.String(strings.TrimSpace(string(payload)))}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Join(errors.New("malformed configuration service response"), err)
	}
	return nil
}
