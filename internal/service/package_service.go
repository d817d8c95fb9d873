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

// PackageService provides package operations.
type PackageService interface {
	// List searches packages across providers.
	List(ctx context.Context, creds domain.TenantConfig, params query.Params) (*jsonapi.Document, error)

	// Get fetches one package, optionally including its provider and resources.
	Get(ctx context.Context, creds domain.TenantConfig, id string, include []string) (*jsonapi.Document, error)

	// Update merges a patch onto the package.
	Update(ctx context.Context, creds domain.TenantConfig, id string, patch validation.PackagePatch) (*jsonapi.Document, error)

	// Delete deselects a custom package. Managed packages cannot be deleted.
	Delete(ctx context.Context, creds domain.TenantConfig, id string) error

	// ListResources searches the titles of one package.
	ListResources(ctx context.Context, creds domain.TenantConfig, id string, params query.Params) (*jsonapi.Document, error)
}

type packageServiceImpl struct {
	api    rmapi.API
	logger *slog.Logger
}

// NewPackageService creates a PackageService.
func NewPackageService(api rmapi.API, logger *slog.Logger) PackageService {
	if api == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("rmapi.API cannot be nil for PackageService")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PackageService")
	}
	return &packageServiceImpl{
		api:    api,
		logger: logger.With(slog.String("component", "package_service")),
	}
}

func (s *packageServiceImpl) List(
	ctx context.Context,
	creds domain.TenantConfig,
	params query.Params,
) (*jsonapi.Document, error) {
	list, err := s.api.ListPackages(ctx, creds, 0, params.Values)
	if err != nil {
		return nil, NewServiceError("package", "list", err)
	}
	doc := jsonapi.Collection(translate.Packages(list.PackagesList), list.TotalResults)
	return &doc, nil
}

func (s *packageServiceImpl) Get(
	ctx context.Context,
	creds domain.TenantConfig,
	id string,
	include []string,
) (*jsonapi.Document, error) {
	pkgID, err := domain.DecodeID(id, 2)
	if err != nil {
		return nil, invalidID(err)
	}

	pkg, err := s.api.GetPackage(ctx, creds, pkgID.VendorID, pkgID.PackageID)
	if err != nil {
		return nil, NewServiceError("package", "get", err)
	}

	loaded, err := loadIncludes(ctx, include, map[string]includeLoader{
		"provider": func(ctx context.Context) ([]jsonapi.Resource, error) {
			vendor, err := s.api.GetVendor(ctx, creds, pkgID.VendorID)
			if err != nil {
				return nil, err
			}
			return []jsonapi.Resource{translate.Provider(*vendor)}, nil
		},
		"resources": func(ctx context.Context) ([]jsonapi.Resource, error) {
			params, err := query.MapResources(url.Values{})
			if err != nil {
				return nil, err
			}
			list, err := s.api.ListPackageTitles(ctx, creds, pkgID.VendorID, pkgID.PackageID, params.Values)
			if err != nil {
				return nil, err
			}
			return translate.Resources(list.Titles), nil
		},
	})
	if err != nil {
		return nil, NewServiceError("package", "get", err)
	}

	res := translate.Package(*pkg, translate.ItemView)
	included := attachIncludes(&res, include, loaded)
	doc := jsonapi.Single(res, included...)
	return &doc, nil
}

func (s *packageServiceImpl) Update(
	ctx context.Context,
	creds domain.TenantConfig,
	id string,
	patch validation.PackagePatch,
) (*jsonapi.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pkgID, err := domain.DecodeID(id, 2)
	if err != nil {
		return nil, invalidID(err)
	}

	current, err := s.api.GetPackage(ctx, creds, pkgID.VendorID, pkgID.PackageID)
	if err != nil {
		return nil, NewServiceError("package", "update", err)
	}

	if errs := validation.ValidatePackagePatch(patch, validation.PackageContext{IsCustom: current.IsCustom}); len(errs) > 0 {
		log.Debug("package update failed validation",
			slog.String("package_id", id),
			slog.Any("fields", errs.Fields()))
		return nil, errs
	}

	put := translate.PackagePut(*current, patch)
	if err := s.api.UpdatePackage(ctx, creds, pkgID.VendorID, pkgID.PackageID, put); err != nil {
		return nil, NewServiceError("package", "update", err)
	}

	updated, err := s.api.GetPackage(ctx, creds, pkgID.VendorID, pkgID.PackageID)
	if err != nil {
		return nil, NewServiceError("package", "update", err)
	}

	log.Info("package updated",
		slog.String("package_id", id),
		slog.Bool("is_selected", updated.IsSelected))
	doc := jsonapi.Single(translate.Package(*updated, translate.ItemView))
	return &doc, nil
}

func (s *packageServiceImpl) Delete(ctx context.Context, creds domain.TenantConfig, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pkgID, err := domain.DecodeID(id, 2)
	if err != nil {
		return invalidID(err)
	}

	current, err := s.api.GetPackage(ctx, creds, pkgID.VendorID, pkgID.PackageID)
	if err != nil {
		return NewServiceError("package", "delete", err)
	}
	if !current.IsCustom {
		return domain.NewRequestError(domain.ErrNotDeletable, "", "Package cannot be deleted")
	}

	put := translate.DeselectPackagePut(*current)
	if err := s.api.UpdatePackage(ctx, creds, pkgID.VendorID, pkgID.PackageID, put); err != nil {
		return NewServiceError("package", "delete", err)
	}

	log.Info("custom package deleted", slog.String("package_id", id))
	return nil
}

func (s *packageServiceImpl) ListResources(
	ctx context.Context,
	creds domain.TenantConfig,
	id string,
	params query.Params,
) (*jsonapi.Document, error) {
	pkgID, err := domain.DecodeID(id, 2)
	if err != nil {
		return nil, invalidID(err)
	}

	list, err := s.api.ListPackageTitles(ctx, creds, pkgID.VendorID, pkgID.PackageID, params.Values)
	if err != nil {
		return nil, NewServiceError("package", "list_resources", err)
	}
	doc := jsonapi.Collection(translate.Resources(list.Titles), list.TotalResults)
	return &doc, nil
}
