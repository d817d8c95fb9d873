package rmapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/redact"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	headerAPIKey    = "x-api-key"
	mediaTypeJSON   = "application/json"
	maxResponseSize = 4 << 20
)

// Observer receives one observation per upstream call.
type Observer interface {
	ObserveUpstream(operation string, status int, elapsed time.Duration)
}

// API is the set of vendor operations the gateway uses.
type API interface {
	GetRoot(ctx context.Context, creds domain.TenantConfig) (*Root, error)
	UpdateRoot(ctx context.Context, creds domain.TenantConfig, body RootPut) error
	ListProxyTypes(ctx context.Context, creds domain.TenantConfig) ([]ProxyType, error)

	ListVendors(ctx context.Context, creds domain.TenantConfig, query url.Values) (*VendorList, error)
	GetVendor(ctx context.Context, creds domain.TenantConfig, vendorID int64) (*Vendor, error)
	UpdateVendor(ctx context.Context, creds domain.TenantConfig, vendorID int64, body VendorPut) error

	ListPackages(ctx context.Context, creds domain.TenantConfig, vendorID int64, query url.Values) (*PackageList, error)
	GetPackage(ctx context.Context, creds domain.TenantConfig, vendorID, packageID int64) (*Package, error)
	UpdatePackage(ctx context.Context, creds domain.TenantConfig, vendorID, packageID int64, body PackagePut) error

	ListTitles(ctx context.Context, creds domain.TenantConfig, query url.Values) (*TitleList, error)
	ListPackageTitles(ctx context.Context, creds domain.TenantConfig, vendorID, packageID int64, query url.Values) (*TitleList, error)
	GetTitle(ctx context.Context, creds domain.TenantConfig, titleID int64) (*Title, error)
	CreateTitle(ctx context.Context, creds domain.TenantConfig, vendorID, packageID int64, body TitlePost) (*TitleCreated, error)

	GetResource(ctx context.Context, creds domain.TenantConfig, vendorID, packageID, titleID int64) (*Title, error)
	UpdateResource(ctx context.Context, creds domain.TenantConfig, vendorID, packageID, titleID int64, body ResourcePut) error
	DeleteResource(ctx context.Context, creds domain.TenantConfig, vendorID, packageID, titleID int64) error

	Forward(ctx context.Context, creds domain.TenantConfig, method, path, rawQuery string, body io.Reader) (*http.Response, error)
	Probe(ctx context.Context, creds domain.TenantConfig) error
}

var _ API = (*Client)(nil)

// Client talks to the RM API over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	observer   Observer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. The transport is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithObserver registers a metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a Client for the given base URL, e.g.
// https://sandbox.ebsco.io. Requests are traced with otelhttp.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for rmapi.Client")
	}

	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid rm api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid rm api base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.With(slog.String("component", "rmapi_client")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// accountPath returns the tenant-scoped path prefix.
func accountPath(creds domain.TenantConfig) string {
	return "/rm/rmaccounts/" + url.PathEscape(creds.CustomerID)
}

func (c *Client) resolveURL(creds domain.TenantConfig, path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + accountPath(creds) + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do executes one request and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(
	ctx context.Context,
	creds domain.TenantConfig,
	operation, method, path string,
	query url.Values,
	body any,
	out any,
) error {
	if !creds.Valid() {
		return ErrMissingCredentials
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", operation, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(creds, path, query), reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	c.applyHeaders(req, creds)

	resp, err := c.send(operation, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstream := classifyStatusError(resp.StatusCode, payload)
		c.logger.DebugContext(ctx, "rm api rejected request",
			slog.String("operation", operation),
			slog.Int("status", resp.StatusCode),
			slog.String("body", redact.String(string(payload))))
		return upstream
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}

func (c *Client) applyHeaders(req *http.Request, creds domain.TenantConfig) {
	req.Header.Set(headerAPIKey, creds.APIKey)
	req.Header.Set("Accept", mediaTypeJSON)
	req.Header.Set("Content-Type", mediaTypeJSON)
}

// send performs the round trip and records timing. Transport failures are
// returned as is; they map to 5xx at the API boundary.
func (c *Client) send(operation string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if c.observer != nil {
		c.observer.ObserveUpstream(operation, status, elapsed)
	}

	c.logger.DebugContext(req.Context(), "rm api call",
		slog.String("operation", operation),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("elapsed", elapsed))

	if err != nil {
		return nil, fmt.Errorf("rm api %s request failed: %w", operation, err)
	}
	return resp, nil
}

// GetRoot fetches the account-level settings (root proxy and custom labels).
func (c *Client) GetRoot(ctx context.Context, creds domain.TenantConfig) (*Root, error) {
	var root Root
	if err := c.do(ctx, creds, "get_root", http.MethodGet, "", nil, nil, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

// UpdateRoot replaces the account-level settings.
func (c *Client) UpdateRoot(ctx context.Context, creds domain.TenantConfig, body RootPut) error {
	return c.do(ctx, creds, "update_root", http.MethodPut, "", nil, body, nil)
}

// ListProxyTypes fetches the proxy list.
func (c *Client) ListProxyTypes(ctx context.Context, creds domain.TenantConfig) ([]ProxyType, error) {
	var types []ProxyType
	if err := c.do(ctx, creds, "list_proxy_types", http.MethodGet, "proxies", nil, nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// ListVendors searches vendors.
func (c *Client) ListVendors(ctx context.Context, creds domain.TenantConfig, query url.Values) (*VendorList, error) {
	var list VendorList
	if err := c.do(ctx, creds, "list_vendors", http.MethodGet, "vendors", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetVendor fetches one vendor.
func (c *Client) GetVendor(ctx context.Context, creds domain.TenantConfig, vendorID int64) (*Vendor, error) {
	var vendor Vendor
	if err := c.do(ctx, creds, "get_vendor", http.MethodGet, vendorPath(vendorID), nil, nil, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

// UpdateVendor writes the vendor token and proxy.
func (c *Client) UpdateVendor(ctx context.Context, creds domain.TenantConfig, vendorID int64, body VendorPut) error {
	return c.do(ctx, creds, "update_vendor", http.MethodPut, vendorPath(vendorID), nil, body, nil)
}

// ListPackages searches packages. A zero vendorID searches across vendors.
func (c *Client) ListPackages(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID int64,
	query url.Values,
) (*PackageList, error) {
	path := "packages"
	if vendorID != 0 {
		path = vendorPath(vendorID) + "/packages"
	}

	var list PackageList
	if err := c.do(ctx, creds, "list_packages", http.MethodGet, path, query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPackage fetches one package.
func (c *Client) GetPackage(ctx context.Context, creds domain.TenantConfig, vendorID, packageID int64) (*Package, error) {
	var pkg Package
	if err := c.do(ctx, creds, "get_package", http.MethodGet, packagePath(vendorID, packageID), nil, nil, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// UpdatePackage writes the full package representation.
func (c *Client) UpdatePackage(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID, packageID int64,
	body PackagePut,
) error {
	return c.do(ctx, creds, "update_package", http.MethodPut, packagePath(vendorID, packageID), nil, body, nil)
}

// ListTitles searches titles across packages.
func (c *Client) ListTitles(ctx context.Context, creds domain.TenantConfig, query url.Values) (*TitleList, error) {
	var list TitleList
	if err := c.do(ctx, creds, "list_titles", http.MethodGet, "titles", query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListPackageTitles searches the titles of one package.
func (c *Client) ListPackageTitles(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID, packageID int64,
	query url.Values,
) (*TitleList, error) {
	var list TitleList
	path := packagePath(vendorID, packageID) + "/titles"
	if err := c.do(ctx, creds, "list_package_titles", http.MethodGet, path, query, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetTitle fetches a title with all of its package memberships.
func (c *Client) GetTitle(ctx context.Context, creds domain.TenantConfig, titleID int64) (*Title, error) {
	var title Title
	path := "titles/" + strconv.FormatInt(titleID, 10)
	if err := c.do(ctx, creds, "get_title", http.MethodGet, path, nil, nil, &title); err != nil {
		return nil, err
	}
	return &title, nil
}

// CreateTitle creates a custom title inside a custom package.
func (c *Client) CreateTitle(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID, packageID int64,
	body TitlePost,
) (*TitleCreated, error) {
	var created TitleCreated
	path := packagePath(vendorID, packageID) + "/titles"
	if err := c.do(ctx, creds, "create_title", http.MethodPost, path, nil, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetResource fetches a title restricted to one package membership.
func (c *Client) GetResource(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID, packageID, titleID int64,
) (*Title, error) {
	var title Title
	path := resourcePath(vendorID, packageID, titleID)
	if err := c.do(ctx, creds, "get_resource", http.MethodGet, path, nil, nil, &title); err != nil {
		return nil, err
	}
	return &title, nil
}

// UpdateResource writes the full resource representation.
func (c *Client) UpdateResource(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID, packageID, titleID int64,
	body ResourcePut,
) error {
	path := resourcePath(vendorID, packageID, titleID)
	return c.do(ctx, creds, "update_resource", http.MethodPut, path, nil, body, nil)
}

// DeleteResource removes a custom resource.
func (c *Client) DeleteResource(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID, packageID, titleID int64,
) error {
	path := resourcePath(vendorID, packageID, titleID)
	return c.do(ctx, creds, "delete_resource", http.MethodDelete, path, nil, nil, nil)
}

// Probe performs the cheapest authenticated read to check credentials.
func (c *Client) Probe(ctx context.Context, creds domain.TenantConfig) error {
	query := url.Values{}
	query.Set("search", "")
	query.Set("offset", "1")
	query.Set("count", "1")
	query.Set("orderby", "vendorname")
	return c.do(ctx, creds, "probe", http.MethodGet, "vendors", query, nil, nil)
}

// Forward sends an arbitrary request below the tenant's account path and
// returns the raw response. The caller must close the body. Non-2xx responses
// are returned, not classified.
func (c *Client) Forward(
	ctx context.Context,
	creds domain.TenantConfig,
	method, path, rawQuery string,
	body io.Reader,
) (*http.Response, error) {
	if !creds.Valid() {
		return nil, ErrMissingCredentials
	}

	target := c.resolveURL(creds, path, nil)
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create forward request: %w", err)
	}
	c.applyHeaders(req, creds)

	return c.send("forward", req)
}

func vendorPath(vendorID int64) string {
	return "vendors/" + strconv.FormatInt(vendorID, 10)
}

func packagePath(vendorID, packageID int64) string {
	return vendorPath(vendorID) + "/packages/" + strconv.FormatInt(packageID, 10)
}

func resourcePath(vendorID, packageID, titleID int64) string {
	return packagePath(vendorID, packageID) + "/titles/" + strconv.FormatInt(titleID, 10)
}
