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

// CustomLabelService provides operations on the five custom label slots,
// which live in the account's root document.
type CustomLabelService interface {
	// List returns the labels that are not deleted.
	List(ctx context.Context, creds domain.TenantConfig) (*jsonapi.Document, error)

	// Get returns one label. A deleted label is not found.
	Get(ctx context.Context, creds domain.TenantConfig, id string) (*jsonapi.Document, error)

	// Update rewrites one existing label.
	Update(ctx context.Context, creds domain.TenantConfig, id string, patch validation.CustomLabelPatch) (*jsonapi.Document, error)

	// Delete empties one label slot.
	Delete(ctx context.Context, creds domain.TenantConfig, id string) error

	// ReplaceAll replaces the whole label set. This is the only way to
	// create a label.
	ReplaceAll(ctx context.Context, creds domain.TenantConfig, labels []validation.CustomLabelPatch) (*jsonapi.Document, error)
}

type customLabelServiceImpl struct {
	api    rmapi.API
	logger *slog.Logger
}

// NewCustomLabelService creates a CustomLabelService.
func NewCustomLabelService(api rmapi.API, logger *slog.Logger) CustomLabelService {
	if api == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("rmapi.API cannot be nil for CustomLabelService")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CustomLabelService")
	}
	return &customLabelServiceImpl{
		api:    api,
		logger: logger.With(slog.String("component", "custom_label_service")),
	}
}

// findLabel returns slot id of the root document. A missing slot is
// reported as an empty label.
func findLabel(root *rmapi.Root, id int) rmapi.CustomLabel {
	for _, l := range root.Labels {
		if l.ID == id {
			return l
		}
	}
	return rmapi.CustomLabel{ID: id}
}

func (s *customLabelServiceImpl) List(ctx context.Context, creds domain.TenantConfig) (*jsonapi.Document, error) {
	root, err := s.api.GetRoot(ctx, creds)
	if err != nil {
		return nil, NewServiceError("custom_label", "list", err)
	}
	labels := translate.CustomLabels(root.Labels)
	doc := jsonapi.Collection(labels, len(labels))
	return &doc, nil
}

func (s *customLabelServiceImpl) Get(ctx context.Context, creds domain.TenantConfig, id string) (*jsonapi.Document, error) {
	labelID, errs := validation.ParseLabelID(id)
	if len(errs) > 0 {
		return nil, errs
	}

	root, err := s.api.GetRoot(ctx, creds)
	if err != nil {
		return nil, NewServiceError("custom_label", "get", err)
	}

	label := findLabel(root, labelID)
	if label.DisplayLabel == "" {
		return nil, fmt.Errorf("custom label %d: %w", labelID, domain.ErrNotFound)
	}
	doc := jsonapi.Single(translate.CustomLabel(label))
	return &doc, nil
}

func (s *customLabelServiceImpl) Update(
	ctx context.Context,
	creds domain.TenantConfig,
	id string,
	patch validation.CustomLabelPatch,
) (*jsonapi.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	labelID, errs := validation.ParseLabelID(id)
	if len(errs) > 0 {
		return nil, errs
	}

	root, err := s.api.GetRoot(ctx, creds)
	if err != nil {
		return nil, NewServiceError("custom_label", "update", err)
	}

	current := findLabel(root, labelID)
	if err := validation.ValidateCustomLabel(labelID, &patch, current.DisplayLabel); err != nil {
		return nil, err
	}

	if err := s.api.UpdateRoot(ctx, creds, translate.CustomLabelPut(*root, labelID, &patch)); err != nil {
		return nil, NewServiceError("custom_label", "update", err)
	}

	updated, err := s.api.GetRoot(ctx, creds)
	if err != nil {
		return nil, NewServiceError("custom_label", "update", err)
	}

	log.Info("custom label updated", slog.Int("label_id", labelID))
	doc := jsonapi.Single(translate.CustomLabel(findLabel(updated, labelID)))
	return &doc, nil
}

func (s *customLabelServiceImpl) Delete(ctx context.Context, creds domain.TenantConfig, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	labelID, errs := validation.ParseLabelID(id)
	if len(errs) > 0 {
		return errs
	}

	root, err := s.api.GetRoot(ctx, creds)
	if err != nil {
		return NewServiceError("custom_label", "delete", err)
	}

	current := findLabel(root, labelID)
	if err := validation.ValidateCustomLabel(labelID, nil, current.DisplayLabel); err != nil {
		return err
	}

	if err := s.api.UpdateRoot(ctx, creds, translate.CustomLabelPut(*root, labelID, nil)); err != nil {
		return NewServiceError("custom_label", "delete", err)
	}

	log.Info("custom label deleted", slog.Int("label_id", labelID))
	return nil
}

func (s *customLabelServiceImpl) ReplaceAll(
	ctx context.Context,
	creds domain.TenantConfig,
	labels []validation.CustomLabelPatch,
) (*jsonapi.Document, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if errs := validation.ValidateCustomLabelSet(labels); len(errs) > 0 {
		return nil, errs
	}

	root, err := s.api.GetRoot(ctx, creds)
	if err != nil {
		return nil, NewServiceError("custom_label", "replace", err)
	}

	if err := s.api.UpdateRoot(ctx, creds, translate.CustomLabelsPut(*root, labels)); err != nil {
		return nil, NewServiceError("custom_label", "replace", err)
	}

	updated, err := s.api.GetRoot(ctx, creds)
	if err != nil {
		return nil, NewServiceError("custom_label", "replace", err)
	}

	rendered := translate.CustomLabels(updated.Labels)
	log.Info("custom labels replaced", slog.Int("label_count", len(rendered)))
	doc := jsonapi.Collection(rendered, len(rendered))
	return &doc, nil
}
