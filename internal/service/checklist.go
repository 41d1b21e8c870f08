// Package service holds the business logic between the HTTP handlers and
// the store, library, search index, and suggestion client.
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

// ChecklistService orchestrates packing checklist operations.
type ChecklistService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewChecklistService creates a new checklist service.
func NewChecklistService(store *store.Store, logger *slog.Logger) *ChecklistService {
	return &ChecklistService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// ListChecklists returns all checklists.
func (s *ChecklistService) ListChecklists(ctx context.Context) ([]*domain.Checklist, error) {
	var lists []*domain.Checklist
	for c, err := range s.store.Checklists.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list checklists: %w", err)
		}
		lists = append(lists, c)
	}
	return lists, nil
}

// GetChecklist returns a single checklist.
func (s *ChecklistService) GetChecklist(ctx context.Context, checklistID string) (*domain.Checklist, error) {
	c, err := s.store.Checklists.Get(ctx, checklistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("checklist %s not found", checklistID)
		}
		return nil, fmt.Errorf("failed to get checklist: %w", err)
	}
	return c, nil
}

// CreateChecklistRequest contains fields for creating a checklist.
// When TemplateID is set the template's items are copied in, all unchecked.
type CreateChecklistRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	Note       string `json:"note" validate:"max=500"`
	TemplateID string `json:"template_id"`
}

// CreateChecklist creates a new checklist, optionally from a template.
func (s *ChecklistService) CreateChecklist(ctx context.Context, req CreateChecklistRequest) (*domain.Checklist, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var items []domain.ChecklistItem
	if req.TemplateID != "" {
		tpl, err := s.store.Templates.Get(ctx, req.TemplateID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, domainerrors.NotFoundf("template %s not found", req.TemplateID)
			}
			return nil, fmt.Errorf("failed to get template: %w", err)
		}
		items = make([]domain.ChecklistItem, 0, len(tpl.Items))
		for _, ti := range tpl.Items {
			itemID, err := id.Generate("item")
			if err != nil {
				return nil, err
			}
			items = append(items, domain.ChecklistItem{
				ID:         itemID,
				Name:       ti.Name,
				CategoryID: ti.CategoryID,
				Note:       ti.Note,
			})
		}
	}

	checklistID, err := id.Generate("checklist")
	if err != nil {
		return nil, err
	}

	c := &domain.Checklist{
		Record: domain.Record{ID: checklistID},
		Name:   req.Name,
		Note:   req.Note,
		Items:  items,
	}
	c.InitTimestamps()

	if err := s.store.Checklists.Create(ctx, checklistID, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("checklist named %q already exists", req.Name)
		}
		return nil, fmt.Errorf("failed to create checklist: %w", err)
	}

	s.logger.Info("checklist created",
		"id", checklistID,
		"name", req.Name,
		"template", req.TemplateID,
		"items", len(items),
	)
	return c, nil
}

// UpdateChecklistRequest contains fields for updating a checklist.
type UpdateChecklistRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
	Note *string `json:"note" validate:"omitempty,max=500"`
}

// UpdateChecklist updates a checklist's metadata.
func (s *ChecklistService) UpdateChecklist(ctx context.Context, checklistID string, req UpdateChecklistRequest) (*domain.Checklist, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	c, err := s.GetChecklist(ctx, checklistID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Note != nil {
		c.Note = *req.Note
	}
	c.Touch()

	if err := s.store.Checklists.Update(ctx, checklistID, c); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("checklist named %q already exists", c.Name)
		}
		return nil, fmt.Errorf("failed to update checklist: %w", err)
	}

	return c, nil
}

// DeleteChecklist deletes a checklist.
func (s *ChecklistService) DeleteChecklist(ctx context.Context, checklistID string) error {
	if err := s.store.Checklists.Delete(ctx, checklistID); err != nil {
		return fmt.Errorf("failed to delete checklist: %w", err)
	}
	s.logger.Info("checklist deleted", "id", checklistID)
	return nil
}

// AddItemRequest contains fields for adding a single item to a checklist.
type AddItemRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100"`
	CategoryID string `json:"category_id"`
	Note       string `json:"note" validate:"max=500"`
}

// AddItem appends one item to a checklist.
func (s *ChecklistService) AddItem(ctx context.Context, checklistID string, req AddItemRequest) (*domain.Checklist, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.CategoryID != "" {
		if _, err := s.store.Categories.Get(ctx, req.CategoryID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, domainerrors.NotFoundf("category %s not found", req.CategoryID)
			}
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
	}

	drafts := []domain.ChecklistItemDraft{{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Note:       req.Note,
	}}

	c, err := s.store.AppendChecklistItems(ctx, checklistID, drafts)
	if err != nil {
		return nil, s.mapItemError(err, checklistID, "")
	}
	return c, nil
}

// SetItemChecked marks an item checked or unchecked.
func (s *ChecklistService) SetItemChecked(ctx context.Context, checklistID, itemID string, checked bool) (*domain.Checklist, error) {
	c, err := s.store.SetChecklistItemChecked(ctx, checklistID, itemID, checked)
	if err != nil {
		return nil, s.mapItemError(err, checklistID, itemID)
	}
	return c, nil
}

// RemoveItem removes an item from a checklist.
func (s *ChecklistService) RemoveItem(ctx context.Context, checklistID, itemID string) (*domain.Checklist, error) {
	c, err := s.store.RemoveChecklistItem(ctx, checklistID, itemID)
	if err != nil {
		return nil, s.mapItemError(err, checklistID, itemID)
	}
	return c, nil
}

// mapItemError converts store errors from item operations to domain errors.
func (s *ChecklistService) mapItemError(err error, checklistID, itemID string) error {
	switch {
	case errors.Is(err, store.ErrItemNotFound):
		return domainerrors.NotFoundf("item %s not found on checklist %s", itemID, checklistID)
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFoundf("checklist %s not found", checklistID)
	default:
		return fmt.Errorf("checklist item operation failed: %w", err)
	}
}
