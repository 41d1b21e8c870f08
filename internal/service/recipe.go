package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/takibiapp/takibi-server/internal/domain"
	domainerrors "github.com/takibiapp/takibi-server/internal/errors"
	"github.com/takibiapp/takibi-server/internal/id"
	"github.com/takibiapp/takibi-server/internal/recipe"
	"github.com/takibiapp/takibi-server/internal/search"
	"github.com/takibiapp/takibi-server/internal/store"
)

// RecipeService serves recipes from the bundled library and the user's saved
// recipes, and runs the derived views: serving-scaled ingredients, shopping
// lists, and full-text search.
type RecipeService struct {
	library *recipe.Library
	store   *store.Store
	index   *search.RecipeIndex
	logger  *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(library *recipe.Library, store *store.Store, index *search.RecipeIndex, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		library: library,
		store:   store,
		index:   index,
		logger:  logger,
	}
}

// ListRecipes returns library recipes followed by saved recipes.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	recipes := s.library.All()

	for saved, err := range s.store.SavedRecipes.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list saved recipes: %w", err)
		}
		r := saved.Recipe
		r.ID = saved.ID
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// GetRecipe returns one recipe by ID, checking the library first and the
// saved recipes second.
func (s *RecipeService) GetRecipe(ctx context.Context, recipeID string) (*domain.Recipe, error) {
	if r, err := s.library.Get(recipeID); err == nil {
		return r, nil
	}

	saved, err := s.store.SavedRecipes.Get(ctx, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("recipe %s not found", recipeID)
		}
		return nil, fmt.Errorf("failed to get saved recipe: %w", err)
	}

	r := saved.Recipe
	r.ID = saved.ID
	return &r, nil
}

// ScaledRecipe returns a recipe with its ingredient amounts scaled to the
// target serving count. Recipes without a serving count are returned as-is:
// there is no base to scale from.
func (s *RecipeService) ScaledRecipe(ctx context.Context, recipeID string, targetServings int) (*domain.Recipe, error) {
	if targetServings <= 0 {
		return nil, domainerrors.Validationf("target servings must be positive, got %d", targetServings)
	}

	r, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !r.HasServings() {
		return r, nil
	}

	scaled, err := recipe.ScaleIngredients(r.Ingredients, r.Servings, targetServings)
	if err != nil {
		return nil, err
	}

	out := *r
	out.Ingredients = scaled
	out.Servings = targetServings
	return &out, nil
}

// Search runs a full-text query over the indexed recipes.
func (s *RecipeService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// IndexDocumentCount reports how many recipes the search index holds.
func (s *RecipeService) IndexDocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// BuildShoppingList flattens the named recipes into shopping items, scaling
// each recipe to the target serving count where possible.
func (s *RecipeService) BuildShoppingList(ctx context.Context, recipeIDs []string, targetServings int) ([]domain.ShoppingItem, error) {
	if len(recipeIDs) == 0 {
		return nil, domainerrors.Validation("at least one recipe is required")
	}

	recipes := make([]domain.Recipe, 0, len(recipeIDs))
	for _, recipeID := range recipeIDs {
		r, err := s.GetRecipe(ctx, recipeID)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *r)
	}

	return recipe.BuildShoppingList(recipes, targetServings), nil
}

// ShoppingListToChecklist builds a shopping list from the named recipes and
// appends it to an existing checklist under the food category.
func (s *RecipeService) ShoppingListToChecklist(ctx context.Context, checklistID string, recipeIDs []string, targetServings int, includeRecipeName bool) (*domain.Checklist, error) {
	items, err := s.BuildShoppingList(ctx, recipeIDs, targetServings)
	if err != nil {
		return nil, err
	}

	drafts := recipe.ToChecklistItems(items, recipe.DefaultCategoryID, includeRecipeName)

	c, err := s.store.AppendChecklistItems(ctx, checklistID, drafts)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("checklist %s not found", checklistID)
		}
		return nil, fmt.Errorf("failed to append shopping items: %w", err)
	}

	s.logger.Info("shopping list appended to checklist",
		"checklist", checklistID,
		"recipes", len(recipeIDs),
		"items", len(drafts),
	)
	return c, nil
}

// SaveRecipe persists a validated recipe (typically an AI suggestion the
// user wants to keep) and indexes it for search.
func (s *RecipeService) SaveRecipe(ctx context.Context, r domain.Recipe) (*domain.SavedRecipe, error) {
	recipeID, err := id.Generate("recipe")
	if err != nil {
		return nil, err
	}
	r.ID = recipeID

	saved := &domain.SavedRecipe{
		Record: domain.Record{ID: recipeID},
		Recipe: r,
	}
	saved.InitTimestamps()

	if err := s.store.SavedRecipes.Create(ctx, recipeID, saved); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("recipe named %q is already saved", r.Name)
		}
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	if err := s.index.IndexRecipe(search.RecipeToDocument(search.DocSourceSaved, recipeID, &r)); err != nil {
		s.logger.Warn("failed to index saved recipe", "id", recipeID, "error", err)
	}

	s.logger.Info("recipe saved", "id", recipeID, "name", r.Name)
	return saved, nil
}

// DeleteSavedRecipe removes a saved recipe and its search document.
// Library recipes can't be deleted.
func (s *RecipeService) DeleteSavedRecipe(ctx context.Context, recipeID string) error {
	if _, err := s.library.Get(recipeID); err == nil {
		return domainerrors.Validation("library recipes cannot be deleted")
	}

	if _, err := s.store.SavedRecipes.Get(ctx, recipeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFoundf("recipe %s not found", recipeID)
		}
		return fmt.Errorf("failed to get saved recipe: %w", err)
	}

	if err := s.store.SavedRecipes.Delete(ctx, recipeID); err != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", err)
	}
	if err := s.index.DeleteRecipe(recipeID); err != nil {
		s.logger.Warn("failed to remove recipe from index", "id", recipeID, "error", err)
	}

	s.logger.Info("saved recipe deleted", "id", recipeID)
	return nil
}

// ReloadLibrary reloads the recipe library from disk and reindexes
// everything. Called by the file watcher when data files change.
func (s *RecipeService) ReloadLibrary(ctx context.Context) error {
	if err := s.library.Load(); err != nil {
		return fmt.Errorf("failed to reload library: %w", err)
	}
	return s.ReindexAll(ctx)
}

// ReindexAll rebuilds the search index from the library and saved recipes.
func (s *RecipeService) ReindexAll(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("failed to rebuild index: %w", err)
	}

	var docs []*search.RecipeDocument
	for _, r := range s.library.All() {
		docs = append(docs, search.RecipeToDocument(search.DocSourceLibrary, r.ID, &r))
	}
	for saved, err := range s.store.SavedRecipes.List(ctx) {
		if err != nil {
			return fmt.Errorf("failed to list saved recipes: %w", err)
		}
		docs = append(docs, search.RecipeToDocument(search.DocSourceSaved, saved.ID, &saved.Recipe))
	}

	if err := s.index.IndexRecipes(docs); err != nil {
		return fmt.Errorf("failed to index recipes: %w", err)
	}

	s.logger.Info("recipes indexed", "count", len(docs))
	return nil
}
