package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/jsonapi"
	"github.com/phrazzld/kb-gateway/internal/platform/logger"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
	"github.com/phrazzld/kb-gateway/internal/query"
	"github.com/phrazzld/kb-gateway/internal/translate"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// TitleService provides title operations.
type TitleService interface {
	// List searches titles across packages.
	List(ctx context.Context, creds domain.TenantConfig, params query.Params) (*jsonapi.Document, error)

	// Get fetches one title, optionally including its resources.
	Get(ctx context.Context, creds domain.TenantConfig, id string, include []string) (*jsonapi.Document, error)

	// Create creates a custom title inside a custom package.
	Create(ctx context.Context, creds domain.TenantConfig, req validation.TitleCreate) (*jsonapi.Document, error)
}

type titleServiceImpl struct {
	api    rmapi.API
	logger *slog.Logger
}

// NewTitleService creates a TitleService.
func NewTitleService(api rmapi.API, logger *slog.Logger) TitleService {
	if api == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("rmapi.API cannot be nil for TitleService")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TitleService")
	}
	return &titleServiceImpl{
		api:    api,
		logger: logger.With(slog.String("component", "title_service")),
	}
}

func (s *titleServiceImpl) List(
	ctx context.Context,
	creds domain.TenantConfig,
	params query.Params,
) (*jsonapi.Document, error) {
	list, err := s.api.ListTitles(ctx, creds, params.Values)
	if err != nil {
		return nil, NewServiceError("title", "list", err)
	}
	doc := jsonapi.Collection(translate.Titles(list.Titles), list.TotalResults)
	return &doc, nil
}

func (s *titleServiceImpl) Get(
	ctx context.Context,
	creds domain.TenantConfig,
	id string,
	include []string,
) (*jsonapi.Document, error) {
	titleID, err := domain.DecodeTitleID(id)
	if err != nil {
		return nil, invalidID(err)
	}

	title, err := s.api.GetTitle(ctx, creds, titleID)
	if err != nil {
		return nil, NewServiceError("title", "get", err)
	}

	// The memberships arrive with the title, so no extra call is needed.
	loaded, err := loadIncludes(ctx, include, map[string]includeLoader{
		"resources": func(context.Context) ([]jsonapi.Resource, error) {
			return translate.Resources([]rmapi.Title{*title}), nil
		},
	})
	if err != nil {
		return nil, NewServiceError("title", "get", err)
	}

	res := translate.Title(*title)
	included := attachIncludes(&res, include, loaded)
	doc := jsonapi.Single(res, included...)
	return &doc, nil
}

func (s *titleServiceImpl) Create(
	ctx context.Context,
	creds domain.TenantConfig,
	req validation.TitleCreate,
) (*jsonapi.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pkgID, errs := validation.ValidateTitleCreate(req)
	if len(errs) > 0 {
		return nil, errs
	}

	pkg, err := s.api.GetPackage(ctx, creds, pkgID.VendorID, pkgID.PackageID)
	if err != nil {
		return nil, NewServiceError("title", "create", err)
	}
	if !pkg.IsCustom {
		errs.Add("packageId", "must be a custom package")
		return nil, errs
	}

	created, err := s.api.CreateTitle(ctx, creds, pkgID.VendorID, pkgID.PackageID, translate.TitlePost(req))
	if err != nil {
		return nil, NewServiceError("title", "create", err)
	}

	title, err := s.api.GetTitle(ctx, creds, created.TitleID)
	if err != nil {
		return nil, NewServiceError("title", "create", err)
	}

	log.Info("custom title created",
		slog.Int64("title_id", created.TitleID),
		slog.String("package_id", pkgID.String()))
	doc := jsonapi.Single(translate.Title(*title))
	return &doc, nil
}
