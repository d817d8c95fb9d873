package mocks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
)

// MockRMAPI implements rmapi.API for testing.
type MockRMAPI struct {
	GetRootFn        func(ctx context.Context, creds domain.TenantConfig) (*rmapi.Root, error)
	UpdateRootFn     func(ctx context.Context, creds domain.TenantConfig, body rmapi.RootPut) error
	ListProxyTypesFn func(ctx context.Context, creds domain.TenantConfig) ([]rmapi.ProxyType, error)

	ListVendorsFn  func(ctx context.Context, creds domain.TenantConfig, query url.Values) (*rmapi.VendorList, error)
	GetVendorFn    func(ctx context.Context, creds domain.TenantConfig, vendorID int64) (*rmapi.Vendor, error)
	UpdateVendorFn func(ctx context.Context, creds domain.TenantConfig, vendorID int64, body rmapi.VendorPut) error

	ListPackagesFn  func(ctx context.Context, creds domain.TenantConfig, vendorID int64, query url.Values) (*rmapi.PackageList, error)
	GetPackageFn    func(ctx context.Context, creds domain.TenantConfig, vendorID, packageID int64) (*rmapi.Package, error)
	UpdatePackageFn func(ctx context.Context, creds domain.TenantConfig, vendorID, packageID int64, body rmapi.PackagePut) error

	ListTitlesFn        func(ctx context.Context, creds domain.TenantConfig, query url.Values) (*rmapi.TitleList, error)
	ListPackageTitlesFn func(ctx context.Context, creds domain.TenantConfig, vendorID, packageID int64, query url.Values) (*rmapi.TitleList, error)
	GetTitleFn          func(ctx context.Context, creds domain.TenantConfig, titleID int64) (*rmapi.Title, error)
	CreateTitleFn       func(ctx context.Context, creds domain.TenantConfig, vendorID, packageID int64, body rmapi.TitlePost) (*rmapi.TitleCreated, error)

	GetResourceFn    func(ctx context.Context, creds domain.TenantConfig, vendorID, packageID, titleID int64) (*rmapi.Title, error)
	UpdateResourceFn func(ctx context.Context, creds domain.TenantConfig, vendorID, packageID, titleID int64, body rmapi.ResourcePut) error
	DeleteResourceFn func(ctx context.Context, creds domain.TenantConfig, vendorID, packageID, titleID int64) error

	ForwardFn func(ctx context.Context, creds domain.TenantConfig, method, path, rawQuery string, body io.Reader) (*http.Response, error)
	ProbeFn   func(ctx context.Context, creds domain.TenantConfig) error

	// DefaultError is returned by every method without a function.
	DefaultError error

	mu    sync.Mutex
	calls []string
}

var _ rmapi.API = (*MockRMAPI)(nil)

func (m *MockRMAPI) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

func (m *MockRMAPI) unexpected(method string) error {
	if m.DefaultError != nil {
		return m.DefaultError
	}
	return fmt.Errorf("unexpected call to MockRMAPI.%s", method)
}

// Calls returns the recorded method names in call order.
func (m *MockRMAPI) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how many times method was called.
func (m *MockRMAPI) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == method {
			n++
		}
	}
	return n
}

// GetRoot implements rmapi.API.
func (m *MockRMAPI) GetRoot(ctx context.Context, creds domain.TenantConfig) (*rmapi.Root, error) {
	m.record("GetRoot")
	if m.GetRootFn != nil {
		return m.GetRootFn(ctx, creds)
	}
	return nil, m.unexpected("GetRoot")
}

// UpdateRoot implements rmapi.API.
func (m *MockRMAPI) UpdateRoot(ctx context.Context, creds domain.TenantConfig, body rmapi.RootPut) error {
	m.record("UpdateRoot")
	if m.UpdateRootFn != nil {
		return m.UpdateRootFn(ctx, creds, body)
	}
	return m.unexpected("UpdateRoot")
}

// ListProxyTypes implements rmapi.API.
func (m *MockRMAPI) ListProxyTypes(ctx context.Context, creds domain.TenantConfig) ([]rmapi.ProxyType, error) {
	m.record("ListProxyTypes")
	if m.ListProxyTypesFn != nil {
		return m.ListProxyTypesFn(ctx, creds)
	}
	return nil, m.unexpected("ListProxyTypes")
}

// ListVendors implements rmapi.API.
func (m *MockRMAPI) ListVendors(ctx context.Context, creds domain.TenantConfig, query url.Values) (*rmapi.VendorList, error) {
	m.record("ListVendors")
	if m.ListVendorsFn != nil {
		return m.ListVendorsFn(ctx, creds, query)
	}
	return nil, m.unexpected("ListVendors")
}

// GetVendor implements rmapi.API.
func (m *MockRMAPI) GetVendor(ctx context.Context, creds domain.TenantConfig, vendorID int64) (*rmapi.Vendor, error) {
	m.record("GetVendor")
	if m.GetVendorFn != nil {
		return m.GetVendorFn(ctx, creds, vendorID)
	}
	return nil, m.unexpected("GetVendor")
}

// UpdateVendor implements rmapi.API.
func (m *MockRMAPI) UpdateVendor(ctx context.Context, creds domain.TenantConfig, vendorID int64, body rmapi.VendorPut) error {
	m.record("UpdateVendor")
	if m.UpdateVendorFn != nil {
		return m.UpdateVendorFn(ctx, creds, vendorID, body)
	}
	return m.unexpected("UpdateVendor")
}

// ListPackages implements rmapi.API.
func (m *MockRMAPI) ListPackages(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID int64,
	query url.Values,
) (*rmapi.PackageList, error) {
	m.record("ListPackages")
	if m.ListPackagesFn != nil {
		return m.ListPackagesFn(ctx, creds, vendorID, query)
	}
	return nil, m.unexpected("ListPackages")
}

// GetPackage implements rmapi.API.
func (m *MockRMAPI) GetPackage(ctx context.Context, creds domain.TenantConfig, vendorID, packageID int64) (*rmapi.Package, error) {
	m.record("GetPackage")
	if m.GetPackageFn != nil {
		return m.GetPackageFn(ctx, creds, vendorID, packageID)
	}
	return nil, m.unexpected("GetPackage")
}

// UpdatePackage implements rmapi.API.
func (m *MockRMAPI) UpdatePackage(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID, packageID int64,
	body rmapi.PackagePut,
) error {
	m.record("UpdatePackage")
	if m.UpdatePackageFn != nil {
		return m.UpdatePackageFn(ctx, creds, vendorID, packageID, body)
	}
	return m.unexpected("UpdatePackage")
}

// ListTitles implements rmapi.API.
func (m *MockRMAPI) ListTitles(ctx context.Context, creds domain.TenantConfig, query url.Values) (*rmapi.TitleList, error) {
	m.record("ListTitles")
	if m.ListTitlesFn != nil {
		return m.ListTitlesFn(ctx, creds, query)
	}
	return nil, m.unexpected("ListTitles")
}

// ListPackageTitles implements rmapi.API.
func (m *MockRMAPI) ListPackageTitles(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID, packageID int64,
	query url.Values,
) (*rmapi.TitleList, error) {
	m.record("ListPackageTitles")
	if m.ListPackageTitlesFn != nil {
		return m.ListPackageTitlesFn(ctx, creds, vendorID, packageID, query)
	}
	return nil, m.unexpected("ListPackageTitles")
}

// GetTitle implements rmapi.API.
func (m *MockRMAPI) GetTitle(ctx context.Context, creds domain.TenantConfig, titleID int64) (*rmapi.Title, error) {
	m.record("GetTitle")
	if m.GetTitleFn != nil {
		return m.GetTitleFn(ctx, creds, titleID)
	}
	return nil, m.unexpected("GetTitle")
}

// CreateTitle implements rmapi.API.
func (m *MockRMAPI) CreateTitle(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID, packageID int64,
	body rmapi.TitlePost,
) (*rmapi.TitleCreated, error) {
	m.record("CreateTitle")
	if m.CreateTitleFn != nil {
		return m.CreateTitleFn(ctx, creds, vendorID, packageID, body)
	}
	return nil, m.unexpected("CreateTitle")
}

// GetResource implements rmapi.API.
func (m *MockRMAPI) GetResource(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID, packageID, titleID int64,
) (*rmapi.Title, error) {
	m.record("GetResource")
	if m.GetResourceFn != nil {
		return m.GetResourceFn(ctx, creds, vendorID, packageID, titleID)
	}
	return nil, m.unexpected("GetResource")
}

// UpdateResource implements rmapi.API.
func (m *MockRMAPI) UpdateResource(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID, packageID, titleID int64,
	body rmapi.ResourcePut,
) error {
	m.record("UpdateResource")
	if m.UpdateResourceFn != nil {
		return m.UpdateResourceFn(ctx, creds, vendorID, packageID, titleID, body)
	}
	return m.unexpected("UpdateResource")
}

// DeleteResource implements rmapi.API.
func (m *MockRMAPI) DeleteResource(
	ctx context.Context,
	creds domain.TenantConfig,
	vendorID, packageID, titleID int64,
) error {
	m.record("DeleteResource")
	if m.DeleteResourceFn != nil {
		return m.DeleteResourceFn(ctx, creds, vendorID, packageID, titleID)
	}
	return m.unexpected("DeleteResource")
}

// Forward implements rmapi.API.
func (m *MockRMAPI) Forward(
	ctx context.Context,
	creds domain.TenantConfig,
	method, path, rawQuery string,
	body io.Reader,
) (*http.Response, error) {
	m.record("Forward")
	if m.ForwardFn != nil {
		return m.ForwardFn(ctx, creds, method, path, rawQuery, body)
	}
	return nil, m.unexpected("Forward")
}

// Probe implements rmapi.API.
func (m *MockRMAPI) Probe(ctx context.Context, creds domain.TenantConfig) error {
	m.record("Probe")
	if m.ProbeFn != nil {
		return m.ProbeFn(ctx, creds)
	}
	return m.unexpected("Probe")
}
