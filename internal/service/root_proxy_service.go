package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/jsonapi"
	"github.com/phrazzld/kb-gateway/internal/platform/logger"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
	"github.com/phrazzld/kb-gateway/internal/translate"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// RootProxyService provides the account's root proxy and the proxy types it
// can be set to.
type RootProxyService interface {
	// Get returns the current root proxy.
	Get(ctx context.Context, creds domain.TenantConfig) (*jsonapi.Document, error)

	// Update switches the root proxy to another proxy type.
	Update(ctx context.Context, creds domain.TenantConfig, id string, patch validation.RootProxyPatch) (*jsonapi.Document, error)

	// ListProxyTypes returns the proxy types available to the tenant.
	ListProxyTypes(ctx context.Context, creds domain.TenantConfig) (*jsonapi.Document, error)
}

type rootProxyServiceImpl struct {
	api    rmapi.API
	logger *slog.Logger
}

// NewRootProxyService creates a RootProxyService.
func NewRootProxyService(api rmapi.API, logger *slog.Logger) RootProxyService {
	if api == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("rmapi.API cannot be nil for RootProxyService")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RootProxyService")
	}
	return &rootProxyServiceImpl{
		api:    api,
		logger: logger.With(slog.String("component", "root_proxy_service")),
	}
}

func (s *rootProxyServiceImpl) Get(ctx context.Context, creds domain.TenantConfig) (*jsonapi.Document, error) {
	root, err := s.api.GetRoot(ctx, creds)
	if err != nil {
		return nil, NewServiceError("root_proxy", "get", err)
	}
	doc := jsonapi.Single(translate.RootProxy(*root))
	return &doc, nil
}

func (s *rootProxyServiceImpl) Update(
	ctx context.Context,
	creds domain.TenantConfig,
	id string,
	patch validation.RootProxyPatch,
) (*jsonapi.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id != translate.RootProxyID {
		return nil, domain.NewRequestError(domain.ErrInvalidID, "id", "root proxy id must be "+translate.RootProxyID)
	}

	types, err := s.api.ListProxyTypes(ctx, creds)
	if err != nil {
		return nil, NewServiceError("root_proxy", "update", err)
	}
	ids := make([]string, 0, len(types))
	for _, pt := range types {
		ids = append(ids, pt.ID)
	}

	if errs := validation.ValidateRootProxy(patch, ids); len(errs) > 0 {
		return nil, errs
	}

	root, err := s.api.GetRoot(ctx, creds)
	if err != nil {
		return nil, NewServiceError("root_proxy", "update", err)
	}

	if err := s.api.UpdateRoot(ctx, creds, translate.RootProxyPut(*root, *patch.ProxyTypeID)); err != nil {
		return nil, NewServiceError("root_proxy", "update", err)
	}

	updated, err := s.api.GetRoot(ctx, creds)
	if err != nil {
		return nil, NewServiceError("root_proxy", "update", err)
	}

	log.Info("root proxy updated",
		slog.String("previous_proxy", root.Proxy.ID),
		slog.String("proxy", updated.Proxy.ID))
	doc := jsonapi.Single(translate.RootProxy(*updated))
	return &doc, nil
}

func (s *rootProxyServiceImpl) ListProxyTypes(ctx context.Context, creds domain.TenantConfig) (*jsonapi.Document, error) {
	types, err := s.api.ListProxyTypes(ctx, creds)
	if err != nil {
		return nil, NewServiceError("root_proxy", "list_proxy_types", err)
	}
	doc := jsonapi.Collection(translate.ProxyTypes(types), len(types))
	return &doc, nil
}
