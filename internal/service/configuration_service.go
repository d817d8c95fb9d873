package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/jsonapi"
	"github.com/phrazzld/kb-gateway/internal/platform/logger"
	"github.com/phrazzld/kb-gateway/internal/platform/okapi"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
	"github.com/phrazzld/kb-gateway/internal/redact"
	"github.com/phrazzld/kb-gateway/internal/translate"
	"github.com/phrazzld/kb-gateway/internal/validation"
)

// ConfigurationService manages the tenant's RM API credentials.
type ConfigurationService interface {
	// Credentials loads the credentials every other operation runs with.
	Credentials(ctx context.Context, tenant okapi.Tenant) (domain.TenantConfig, error)

	// Get returns the stored credentials with the api key masked.
	Get(ctx context.Context, tenant okapi.Tenant) (*jsonapi.Document, error)

	// Update checks new credentials against the RM API and stores them.
	Update(ctx context.Context, tenant okapi.Tenant, patch validation.ConfigurationPatch) (*jsonapi.Document, error)
}

// StatusService reports whether the tenant's stored credentials work.
type StatusService interface {
	Status(ctx context.Context, tenant okapi.Tenant) (*jsonapi.Document, error)
}

type configurationServiceImpl struct {
	resolver okapi.Resolver
	api      rmapi.API
	baseURL  string
	logger   *slog.Logger
}

// NewConfigurationService creates a ConfigurationService. baseURL is the RM
// API address reported back to clients.
func NewConfigurationService(
	resolver okapi.Resolver,
	api rmapi.API,
	baseURL string,
	logger *slog.Logger,
) ConfigurationService {
	if resolver == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("okapi.Resolver cannot be nil for ConfigurationService")
	}
	if api == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("rmapi.API cannot be nil for ConfigurationService")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ConfigurationService")
	}
	return &configurationServiceImpl{
		resolver: resolver,
		api:      api,
		baseURL:  baseURL,
		logger:   logger.With(slog.String("component", "configuration_service")),
	}
}

func (s *configurationServiceImpl) Credentials(ctx context.Context, tenant okapi.Tenant) (domain.TenantConfig, error) {
	cfg, err := s.resolver.Load(ctx, tenant)
	if err != nil {
		return domain.TenantConfig{}, err
	}
	return cfg, nil
}

func (s *configurationServiceImpl) Get(ctx context.Context, tenant okapi.Tenant) (*jsonapi.Document, error) {
	cfg, err := s.resolver.Load(ctx, tenant)
	if err != nil {
		return nil, err
	}
	doc := jsonapi.Single(translate.Configuration(cfg, s.baseURL))
	return &doc, nil
}

func (s *configurationServiceImpl) Update(
	ctx context.Context,
	tenant okapi.Tenant,
	patch validation.ConfigurationPatch,
) (*jsonapi.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if errs := validation.ValidateConfiguration(patch); len(errs) > 0 {
		return nil, errs
	}

	cfg := domain.TenantConfig{
		CustomerID: strings.TrimSpace(patch.CustomerID),
		APIKey:     strings.TrimSpace(patch.APIKey),
	}

	if err := s.api.Probe(ctx, cfg); err != nil {
		if rmapi.IsUpstreamStatus(err, http.StatusUnauthorized) || rmapi.IsUpstreamStatus(err, http.StatusForbidden) {
			log.Info("rejected credentials not saved", slog.String("tenant", tenant.ID))
			return nil, domain.ValidationErrors{{
				Field:   "apiKey",
				Message: "Invalid KB API credentials",
				Detail:  domain.ErrInvalidCredentials.Error(),
			}}
		}
		return nil, NewServiceError("configuration", "update", err)
	}

	if err := s.resolver.Save(ctx, tenant, cfg); err != nil {
		return nil, err
	}

	log.Info("tenant credentials updated", slog.String("tenant", tenant.ID))
	doc := jsonapi.Single(translate.Configuration(cfg, s.baseURL))
	return &doc, nil
}

type statusServiceImpl struct {
	resolver okapi.Resolver
	api      rmapi.API
	logger   *slog.Logger
}

// NewStatusService creates a StatusService.
func NewStatusService(resolver okapi.Resolver, api rmapi.API, logger *slog.Logger) StatusService {
	if resolver == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("okapi.Resolver cannot be nil for StatusService")
	}
	if api == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("rmapi.API cannot be nil for StatusService")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StatusService")
	}
	return &statusServiceImpl{
		resolver: resolver,
		api:      api,
		logger:   logger.With(slog.String("component", "status_service")),
	}
}

// Status never fails because of the RM API: missing or rejected credentials
// both report an invalid configuration. Configuration service failures are
// returned.
func (s *statusServiceImpl) Status(ctx context.Context, tenant okapi.Tenant) (*jsonapi.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	valid := false
	cfg, err := s.resolver.Load(ctx, tenant)
	switch {
	case errors.Is(err, domain.ErrConfigurationMissing):
	case err != nil:
		return nil, err
	default:
		if err := s.api.Probe(ctx, cfg); err != nil {
			log.Debug("credential probe failed",
				slog.String("tenant", tenant.ID),
				slog.String("error", redact.Error(err)))
		} else {
			valid = true
		}
	}

	doc := jsonapi.Single(translate.Status(valid))
	return &doc, nil
}
