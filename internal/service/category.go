package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/takibiapp/takibi-server/internal/domain"
	domainerrors "github.com/takibiapp/takibi-server/internal/errors"
	"github.com/takibiapp/takibi-server/internal/id"
	"github.com/takibiapp/takibi-server/internal/store"
	"github.com/takibiapp/takibi-server/internal/validation"
)

// CategoryService orchestrates item category operations.
type CategoryService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewCategoryService creates a new category service.
func NewCategoryService(store *store.Store, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// ListCategories returns all categories ordered by sort order, then name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	for c, err := range s.store.Categories.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		categories = append(categories, c)
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].SortOrder != categories[j].SortOrder {
			return categories[i].SortOrder < categories[j].SortOrder
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// GetCategory returns a single category.
func (s *CategoryService) GetCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	c, err := s.store.Categories.Get(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("category %s not found", categoryID)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// CreateCategoryRequest contains fields for creating a category.
type CreateCategoryRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=50"`
	Icon      string `json:"icon" validate:"max=10"`
	SortOrder int    `json:"sort_order"`
}

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	categoryID, err := id.Generate("category")
	if err != nil {
		return nil, err
	}

	c := &domain.Category{
		Record:    domain.Record{ID: categoryID},
		Name:      req.Name,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	}
	c.InitTimestamps()

	if err := s.store.Categories.Create(ctx, categoryID, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created", "id", categoryID, "name", req.Name)
	return c, nil
}

// UpdateCategoryRequest contains fields for updating a category.
type UpdateCategoryRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=50"`
	Icon      *string `json:"icon" validate:"omitempty,max=10"`
	SortOrder *int    `json:"sort_order"`
}

// UpdateCategory updates a category. System categories accept icon and sort
// order edits but keep their name.
func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID string, req UpdateCategoryRequest) (*domain.Category, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	c, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if c.IsSystem {
			return nil, domainerrors.Validation("system categories cannot be renamed")
		}
		c.Name = *req.Name
	}
	if req.Icon != nil {
		c.Icon = *req.Icon
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}
	c.Touch()

	if err := s.store.Categories.Update(ctx, categoryID, c); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return c, nil
}

// DeleteCategory deletes a category. System categories can't be deleted.
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	c, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if c.IsSystem {
		return domainerrors.Validation("system categories cannot be deleted")
	}

	if err := s.store.Categories.Delete(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.logger.Info("category deleted", "id", categoryID, "name", c.Name)
	return nil
}
