package service

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/jsonapi"
	"github.com/phrazzld/kb-gateway/internal/platform/logger"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
	"github.com/phrazzld/kb-gateway/internal/query"
	"github.com/phrazzld/kb-gateway/internal/translate"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// ProviderService provides provider (RM vendor) operations.
type ProviderService interface {
	// List searches providers.
	List(ctx context.Context, creds domain.TenantConfig, params query.Params) (*jsonapi.Document, error)

	// Get fetches one provider, optionally including its packages.
	Get(ctx context.Context, creds domain.TenantConfig, id string, include []string) (*jsonapi.Document, error)

	// Update writes the provider token and proxy.
	Update(ctx context.Context, creds domain.TenantConfig, id string, patch validation.ProviderPatch) (*jsonapi.Document, error)

	// ListPackages searches the packages of one provider.
	ListPackages(ctx context.Context, creds domain.TenantConfig, id string, params query.Params) (*jsonapi.Document, error)
}

type providerServiceImpl struct {
	api    rmapi.API
	logger *slog.Logger
}

// NewProviderService creates a ProviderService.
func NewProviderService(api rmapi.API, logger *slog.Logger) ProviderService {
	if api == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("rmapi.API cannot be nil for ProviderService")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProviderService")
	}
	return &providerServiceImpl{
		api:    api,
		logger: logger.With(slog.String("component", "provider_service")),
	}
}

func (s *providerServiceImpl) List(
	ctx context.Context,
	creds domain.TenantConfig,
	params query.Params,
) (*jsonapi.Document, error) {
	list, err := s.api.ListVendors(ctx, creds, params.Values)
	if err != nil {
		return nil, NewServiceError("provider", "list", err)
	}
	doc := jsonapi.Collection(translate.Providers(list.Vendors), list.TotalResults)
	return &doc, nil
}

func (s *providerServiceImpl) Get(
	ctx context.Context,
	creds domain.TenantConfig,
	id string,
	include []string,
) (*jsonapi.Document, error) {
	providerID, err := domain.DecodeID(id, 1)
	if err != nil {
		return nil, invalidID(err)
	}

	vendor, err := s.api.GetVendor(ctx, creds, providerID.VendorID)
	if err != nil {
		return nil, NewServiceError("provider", "get", err)
	}

	loaded, err := loadIncludes(ctx, include, map[string]includeLoader{
		"packages": func(ctx context.Context) ([]jsonapi.Resource, error) {
			params, err := query.MapPackages(url.Values{})
			if err != nil {
				return nil, err
			}
			list, err := s.api.ListPackages(ctx, creds, providerID.VendorID, params.Values)
			if err != nil {
				return nil, err
			}
			return translate.Packages(list.PackagesList), nil
		},
	})
	if err != nil {
		return nil, NewServiceError("provider", "get", err)
	}

	res := translate.Provider(*vendor)
	included := attachIncludes(&res, include, loaded)
	doc := jsonapi.Single(res, included...)
	return &doc, nil
}

func (s *providerServiceImpl) Update(
	ctx context.Context,
	creds domain.TenantConfig,
	id string,
	patch validation.ProviderPatch,
) (*jsonapi.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	providerID, err := domain.DecodeID(id, 1)
	if err != nil {
		return nil, invalidID(err)
	}
	if errs := validation.ValidateProviderPatch(patch); len(errs) > 0 {
		return nil, errs
	}

	current, err := s.api.GetVendor(ctx, creds, providerID.VendorID)
	if err != nil {
		return nil, NewServiceError("provider", "update", err)
	}

	if err := s.api.UpdateVendor(ctx, creds, providerID.VendorID, translate.ProviderPut(*current, patch)); err != nil {
		log.Warn("provider update rejected upstream",
			slog.String("provider_id", id),
			slog.String("error", err.Error()))
		return nil, NewServiceError("provider", "update", err)
	}

	updated, err := s.api.GetVendor(ctx, creds, providerID.VendorID)
	if err != nil {
		return nil, NewServiceError("provider", "update", err)
	}

	log.Info("provider updated", slog.String("provider_id", id))
	doc := jsonapi.Single(translate.Provider(*updated))
	return &doc, nil
}

func (s *providerServiceImpl) ListPackages(
	ctx context.Context,
	creds domain.TenantConfig,
	id string,
	params query.Params,
) (*jsonapi.Document, error) {
	providerID, err := domain.DecodeID(id, 1)
	if err != nil {
		return nil, invalidID(err)
	}

	list, err := s.api.ListPackages(ctx, creds, providerID.VendorID, params.Values)
	if err != nil {
		return nil, NewServiceError("provider", "list_packages", err)
	}
	doc := jsonapi.Collection(translate.Packages(list.PackagesList), list.TotalResults)
	return &doc, nil
}
