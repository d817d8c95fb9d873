package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/platform/okapi"
)

// MockResolver implements okapi.Resolver for testing. Without LoadFn it
// serves Config, or domain.ErrConfigurationMissing when Config is invalid.
// Without SaveFn it stores into Config.
type MockResolver struct {
	LoadFn func(ctx context.Context, tenant okapi.Tenant) (domain.TenantConfig, error)
	SaveFn func(ctx context.Context, tenant okapi.Tenant, cfg domain.TenantConfig) error

	mu     sync.Mutex
	Config domain.TenantConfig
	Saves  int
}

var _ okapi.Resolver = (*MockResolver)(nil)

// Load implements okapi.Resolver.
func (m *MockResolver) Load(ctx context.Context, tenant okapi.Tenant) (domain.TenantConfig, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx, tenant)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Config.Valid() {
		return domain.TenantConfig{}, domain.ErrConfigurationMissing
	}
	return m.Config, nil
}

// Save implements okapi.Resolver.
func (m *MockResolver) Save(ctx context.Context, tenant okapi.Tenant, cfg domain.TenantConfig) error {
	m.mu.Lock()
	m.Saves++
	m.mu.Unlock()
	if m.SaveFn != nil {
		return m.SaveFn(ctx, tenant, cfg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Config = cfg
	return nil
}
