package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/takibiapp/takibi-server/internal/domain"
	domainerrors "github.com/takibiapp/takibi-server/internal/errors"
	"github.com/takibiapp/takibi-server/internal/id"
	"github.com/takibiapp/takibi-server/internal/store"
	"github.com/takibiapp/takibi-server/internal/validation"
)

// TemplateService orchestrates checklist template operations.
type TemplateService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewTemplateService creates a new template service.
func NewTemplateService(store *store.Store, logger *slog.Logger) *TemplateService {
	return &TemplateService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// ListTemplates returns all templates.
func (s *TemplateService) ListTemplates(ctx context.Context) ([]*domain.Template, error) {
	var templates []*domain.Template
	for t, err := range s.store.Templates.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list templates: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// GetTemplate returns a single template.
func (s *TemplateService) GetTemplate(ctx context.Context, templateID string) (*domain.Template, error) {
	t, err := s.store.Templates.Get(ctx, templateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("template %s not found", templateID)
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return t, nil
}

// TemplateItemRequest is one item line in a template request.
type TemplateItemRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	CategoryID string `json:"category_id"`
	Note       string `json:"note" validate:"max=500"`
}

// CreateTemplateRequest contains fields for creating a template.
type CreateTemplateRequest struct {
	Name        string                `json:"name" validate:"required,min=1,max=100"`
	Description string                `json:"description" validate:"max=500"`
	Items       []TemplateItemRequest `json:"items" validate:"dive"`
}

// CreateTemplate creates a new template.
func (s *TemplateService) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*domain.Template, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	templateID, err := id.Generate("template")
	if err != nil {
		return nil, err
	}

	items := make([]domain.TemplateItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.TemplateItem{
			Name:       it.Name,
			CategoryID: it.CategoryID,
			Note:       it.Note,
		})
	}

	t := &domain.Template{
		Record:      domain.Record{ID: templateID},
		Name:        req.Name,
		Description: req.Description,
		Items:       items,
	}
	t.InitTimestamps()

	if err := s.store.Templates.Create(ctx, templateID, t); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("template named %q already exists", req.Name)
		}
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	s.logger.Info("template created", "id", templateID, "name", req.Name, "items", len(items))
	return t, nil
}

// UpdateTemplateRequest contains fields for updating a template.
type UpdateTemplateRequest struct {
	Name        *string               `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string               `json:"description" validate:"omitempty,max=500"`
	Items       []TemplateItemRequest `json:"items" validate:"omitempty,dive"`
}

// UpdateTemplate updates a template. System templates accept item and
// description edits but keep their name.
func (s *TemplateService) UpdateTemplate(ctx context.Context, templateID string, req UpdateTemplateRequest) (*domain.Template, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	t, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if t.IsSystem {
			return nil, domainerrors.Validation("system templates cannot be renamed")
		}
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Items != nil {
		items := make([]domain.TemplateItem, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, domain.TemplateItem{
				Name:       it.Name,
				CategoryID: it.CategoryID,
				Note:       it.Note,
			})
		}
		t.Items = items
	}
	t.Touch()

	if err := s.store.Templates.Update(ctx, templateID, t); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("template named %q already exists", t.Name)
		}
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return t, nil
}

// DeleteTemplate deletes a template. System templates can't be deleted.
func (s *TemplateService) DeleteTemplate(ctx context.Context, templateID string) error {
	t, err := s.GetTemplate(ctx, templateID)
	if err != nil {
		return err
	}
	if t.IsSystem {
		return domainerrors.Validation("system templates cannot be deleted")
	}

	if err := s.store.Templates.Delete(ctx, templateID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	s.logger.Info("template deleted", "id", templateID, "name", t.Name)
	return nil
}
