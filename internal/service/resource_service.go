package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/jsonapi"
	"github.com/phrazzld/kb-gateway/internal/platform/logger"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
	"github.com/phrazzld/kb-gateway/internal/translate"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// ResourceService provides operations on titles as members of packages.
type ResourceService interface {
	// Get fetches one resource, optionally including its package, provider
	// and title.
	Get(ctx context.Context, creds domain.TenantConfig, id string, include []string) (*jsonapi.Document, error)

	// Create adds an existing title to a custom package.
	Create(ctx context.Context, creds domain.TenantConfig, req validation.ResourceCreate) (*jsonapi.Document, error)

	// Update merges a patch onto the resource.
	Update(ctx context.Context, creds domain.TenantConfig, id string, patch validation.ResourcePatch) (*jsonapi.Document, error)

	// Delete removes a custom resource or deselects a managed one.
	Delete(ctx context.Context, creds domain.TenantConfig, id string) error
}

type resourceServiceImpl struct {
	api    rmapi.API
	logger *slog.Logger
}

// NewResourceService creates a ResourceService.
func NewResourceService(api rmapi.API, logger *slog.Logger) ResourceService {
	if api == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("rmapi.API cannot be nil for ResourceService")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ResourceService")
	}
	return &resourceServiceImpl{
		api:    api,
		logger: logger.With(slog.String("component", "resource_service")),
	}
}

// fetch reads a resource and its membership. A title that comes back without
// the requested membership is treated as missing.
func (s *resourceServiceImpl) fetch(
	ctx context.Context,
	creds domain.TenantConfig,
	id domain.CompositeID,
) (*rmapi.Title, *rmapi.CustomerResource, error) {
	title, err := s.api.GetResource(ctx, creds, id.VendorID, id.PackageID, id.TitleID)
	if err != nil {
		return nil, nil, err
	}
	cr, ok := title.Membership(id.VendorID, id.PackageID)
	if !ok {
		return nil, nil, fmt.Errorf("resource %s: %w", id, domain.ErrNotFound)
	}
	return title, cr, nil
}

func (s *resourceServiceImpl) Get(
	ctx context.Context,
	creds domain.TenantConfig,
	id string,
	include []string,
) (*jsonapi.Document, error) {
	resID, err := domain.DecodeID(id, 3)
	if err != nil {
		return nil, invalidID(err)
	}

	title, cr, err := s.fetch(ctx, creds, resID)
	if err != nil {
		return nil, NewServiceError("resource", "get", err)
	}

	loaded, err := loadIncludes(ctx, include, map[string]includeLoader{
		"package": func(ctx context.Context) ([]jsonapi.Resource, error) {
			pkg, err := s.api.GetPackage(ctx, creds, resID.VendorID, resID.PackageID)
			if err != nil {
				return nil, err
			}
			return []jsonapi.Resource{translate.Package(*pkg, translate.ItemView)}, nil
		},
		"provider": func(ctx context.Context) ([]jsonapi.Resource, error) {
			vendor, err := s.api.GetVendor(ctx, creds, resID.VendorID)
			if err != nil {
				return nil, err
			}
			return []jsonapi.Resource{translate.Provider(*vendor)}, nil
		},
		"title": func(context.Context) ([]jsonapi.Resource, error) {
			return []jsonapi.Resource{translate.Title(*title)}, nil
		},
	})
	if err != nil {
		return nil, NewServiceError("resource", "get", err)
	}

	res := translate.Resource(*title, *cr, translate.ItemView)
	included := attachIncludes(&res, include, loaded)
	doc := jsonapi.Single(res, included...)
	return &doc, nil
}

func (s *resourceServiceImpl) Create(
	ctx context.Context,
	creds domain.TenantConfig,
	req validation.ResourceCreate,
) (*jsonapi.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pkgID, titleID, errs := validation.ValidateResourceCreate(req)
	if len(errs) > 0 {
		return nil, errs
	}

	pkg, err := s.api.GetPackage(ctx, creds, pkgID.VendorID, pkgID.PackageID)
	if err != nil {
		return nil, NewServiceError("resource", "create", err)
	}
	if !pkg.IsCustom {
		errs.Add("packageId", "must be a custom package")
		return nil, errs
	}

	title, err := s.api.GetTitle(ctx, creds, titleID)
	if err != nil {
		return nil, NewServiceError("resource", "create", err)
	}

	resID := translate.CreatedResourceID(*pkg, *title)
	put := translate.SelectResourcePut(*title, req.URL)
	if err := s.api.UpdateResource(ctx, creds, resID.VendorID, resID.PackageID, resID.TitleID, put); err != nil {
		return nil, NewServiceError("resource", "create", err)
	}

	created, cr, err := s.fetch(ctx, creds, resID)
	if err != nil {
		return nil, NewServiceError("resource", "create", err)
	}

	log.Info("resource created", slog.String("resource_id", resID.String()))
	doc := jsonapi.Single(translate.Resource(*created, *cr, translate.ItemView))
	return &doc, nil
}

func (s *resourceServiceImpl) Update(
	ctx context.Context,
	creds domain.TenantConfig,
	id string,
	patch validation.ResourcePatch,
) (*jsonapi.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	resID, err := domain.DecodeID(id, 3)
	if err != nil {
		return nil, invalidID(err)
	}

	title, cr, err := s.fetch(ctx, creds, resID)
	if err != nil {
		return nil, NewServiceError("resource", "update", err)
	}

	errs := validation.ValidateResourcePatch(patch, validation.ResourceContext{IsTitleCustom: title.IsTitleCustom})
	if len(errs) > 0 {
		log.Debug("resource update failed validation",
			slog.String("resource_id", id),
			slog.Any("fields", errs.Fields()))
		return nil, errs
	}

	put := translate.ResourcePut(*title, *cr, patch)
	if err := s.api.UpdateResource(ctx, creds, resID.VendorID, resID.PackageID, resID.TitleID, put); err != nil {
		return nil, NewServiceError("resource", "update", err)
	}

	updated, updatedCR, err := s.fetch(ctx, creds, resID)
	if err != nil {
		return nil, NewServiceError("resource", "update", err)
	}

	log.Info("resource updated",
		slog.String("resource_id", id),
		slog.Bool("is_selected", updatedCR.IsSelected))
	doc := jsonapi.Single(translate.Resource(*updated, *updatedCR, translate.ItemView))
	return &doc, nil
}

func (s *resourceServiceImpl) Delete(ctx context.Context, creds domain.TenantConfig, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	resID, err := domain.DecodeID(id, 3)
	if err != nil {
		return invalidID(err)
	}

	title, cr, err := s.fetch(ctx, creds, resID)
	if err != nil {
		return NewServiceError("resource", "delete", err)
	}

	if title.IsTitleCustom || cr.IsPackageCustom {
		if err := s.api.DeleteResource(ctx, creds, resID.VendorID, resID.PackageID, resID.TitleID); err != nil {
			return NewServiceError("resource", "delete", err)
		}
		log.Info("custom resource deleted", slog.String("resource_id", id))
		return nil
	}

	put := translate.DeselectResourcePut(*title, *cr)
	if err := s.api.UpdateResource(ctx, creds, resID.VendorID, resID.PackageID, resID.TitleID, put); err != nil {
		return NewServiceError("resource", "delete", err)
	}
	log.Info("managed resource deselected", slog.String("resource_id", id))
	return nil
}
