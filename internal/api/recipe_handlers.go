package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/takibiapp/takibi-server/internal/domain"
	"github.com/takibiapp/takibi-server/internal/search"
)

func (s *Server) registerRecipeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes",
		Summary:     "List recipes",
		Description: "Returns library recipes followed by saved recipes",
		Tags:        []string{"Recipes"},
	}, s.handleListRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchRecipes",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/search",
		Summary:     "Search recipes",
		Description: "Full-text recipe search with filters and facets",
		Tags:        []string{"Recipes"},
	}, s.handleSearchRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecipe",
		Method:      http.MethodGet,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Get recipe",
		Description: "Returns a recipe, optionally scaled to a serving count",
		Tags:        []string{"Recipes"},
	}, s.handleGetRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveRecipe",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes",
		Summary:     "Save recipe",
		Description: "Persists a recipe and indexes it for search",
		Tags:        []string{"Recipes"},
	}, s.handleSaveRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteRecipe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/recipes/{id}",
		Summary:     "Delete saved recipe",
		Description: "Deletes a saved recipe. Library recipes can't be deleted",
		Tags:        []string{"Recipes"},
	}, s.handleDeleteRecipe)

	huma.Register(s.api, huma.Operation{
		OperationID: "buildShoppingList",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes/shopping-list",
		Summary:     "Build shopping list",
		Description: "Flattens recipes into shopping items, scaled to a serving count",
		Tags:        []string{"Recipes"},
	}, s.handleBuildShoppingList)

	huma.Register(s.api, huma.Operation{
		OperationID: "shoppingListToChecklist",
		Method:      http.MethodPost,
		Path:        "/api/v1/recipes/shopping-list/checklist",
		Summary:     "Append shopping list to checklist",
		Description: "Builds a shopping list and appends it to a checklist as unchecked items",
		Tags:        []string{"Recipes"},
	}, s.handleShoppingListToChecklist)
}

// === DTOs ===

// ListRecipesResponse contains all known recipes.
type ListRecipesResponse struct {
	Recipes []domain.Recipe `json:"recipes" doc:"Library recipes followed by saved recipes"`
}

// ListRecipesOutput wraps the list recipes response for Huma.
type ListRecipesOutput struct {
	Body ListRecipesResponse
}

// SearchRecipesInput contains search query parameters.
type SearchRecipesInput struct {
	Query      string `query:"q" doc:"Search terms"`
	Meal       string `query:"meal" doc:"Filter by meal slot"`
	Difficulty string `query:"difficulty" doc:"Filter by difficulty"`
	Cost       string `query:"cost" doc:"Filter by cost level"`
	Season     string `query:"season" doc:"Filter by season"`
	Limit      int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Page size"`
	Offset     int    `query:"offset" minimum:"0" doc:"Page offset"`
}

// SearchRecipesOutput wraps the search result for Huma.
type SearchRecipesOutput struct {
	Body search.SearchResult
}

// GetRecipeInput contains parameters for getting a recipe.
type GetRecipeInput struct {
	ID       string `path:"id" doc:"Recipe ID"`
	Servings int    `query:"servings" minimum:"0" doc:"Scale ingredient amounts to this serving count"`
}

// RecipeOutput wraps a recipe response for Huma.
type RecipeOutput struct {
	Body domain.Recipe
}

// SaveRecipeInput wraps the save recipe request for Huma.
type SaveRecipeInput struct {
	Body domain.Recipe
}

// RecipeIDInput contains the recipe path parameter.
type RecipeIDInput struct {
	ID string `path:"id" doc:"Recipe ID"`
}

// ShoppingListRequest is the request body for building a shopping list.
type ShoppingListRequest struct {
	RecipeIDs []string `json:"recipe_ids" minItems:"1" doc:"Recipes to flatten"`
	Servings  int      `json:"servings,omitempty" doc:"Scale each recipe to this serving count (0 keeps original amounts)"`
}

// ShoppingListInput wraps the shopping list request for Huma.
type ShoppingListInput struct {
	Body ShoppingListRequest
}

// ShoppingListResponse contains the flattened shopping items.
type ShoppingListResponse struct {
	Items []domain.ShoppingItem `json:"items" doc:"Shopping items in recipe order"`
}

// ShoppingListOutput wraps the shopping list response for Huma.
type ShoppingListOutput struct {
	Body ShoppingListResponse
}

// ShoppingListToChecklistRequest is the request body for appending a
// shopping list to a checklist.
type ShoppingListToChecklistRequest struct {
	ChecklistID       string   `json:"checklist_id" doc:"Target checklist"`
	RecipeIDs         []string `json:"recipe_ids" minItems:"1" doc:"Recipes to flatten"`
	Servings          int      `json:"servings,omitempty" doc:"Scale each recipe to this serving count (0 keeps original amounts)"`
	IncludeRecipeName *bool    `json:"include_recipe_name,omitempty" doc:"Add the recipe name as an item note (default true)"`
}

// ShoppingListToChecklistInput wraps the request for Huma.
type ShoppingListToChecklistInput struct {
	Body ShoppingListToChecklistRequest
}

// === Handlers ===

func (s *Server) handleListRecipes(ctx context.Context, _ *struct{}) (*ListRecipesOutput, error) {
	recipes, err := s.services.Recipe.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}

	return &ListRecipesOutput{Body: ListRecipesResponse{Recipes: recipes}}, nil
}

func (s *Server) handleSearchRecipes(ctx context.Context, input *SearchRecipesInput) (*SearchRecipesOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.Difficulty = input.Difficulty
	params.Cost = input.Cost
	params.Season = input.Season
	if input.Meal != "" {
		params.Meals = []string{input.Meal}
	}
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Offset = input.Offset

	result, err := s.services.Recipe.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchRecipesOutput{Body: *result}, nil
}

func (s *Server) handleGetRecipe(ctx context.Context, input *GetRecipeInput) (*RecipeOutput, error) {
	var (
		r   *domain.Recipe
		err error
	)
	if input.Servings > 0 {
		r, err = s.services.Recipe.ScaledRecipe(ctx, input.ID, input.Servings)
	} else {
		r, err = s.services.Recipe.GetRecipe(ctx, input.ID)
	}
	if err != nil {
		return nil, err
	}

	return &RecipeOutput{Body: *r}, nil
}

func (s *Server) handleSaveRecipe(ctx context.Context, input *SaveRecipeInput) (*RecipeOutput, error) {
	saved, err := s.services.Recipe.SaveRecipe(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	r := saved.Recipe
	r.ID = saved.ID
	return &RecipeOutput{Body: r}, nil
}

func (s *Server) handleDeleteRecipe(ctx context.Context, input *RecipeIDInput) (*MessageOutput, error) {
	if err := s.services.Recipe.DeleteSavedRecipe(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Recipe deleted"}}, nil
}

func (s *Server) handleBuildShoppingList(ctx context.Context, input *ShoppingListInput) (*ShoppingListOutput, error) {
	items, err := s.services.Recipe.BuildShoppingList(ctx, input.Body.RecipeIDs, input.Body.Servings)
	if err != nil {
		return nil, err
	}

	return &ShoppingListOutput{Body: ShoppingListResponse{Items: items}}, nil
}

func (s *Server) handleShoppingListToChecklist(ctx context.Context, input *ShoppingListToChecklistInput) (*ChecklistOutput, error) {
	includeRecipeName := true
	if input.Body.IncludeRecipeName != nil {
		includeRecipeName = *input.Body.IncludeRecipeName
	}

	c, err := s.services.Recipe.ShoppingListToChecklist(
		ctx,
		input.Body.ChecklistID,
		input.Body.RecipeIDs,
		input.Body.Servings,
		includeRecipeName,
	)
	if err != nil {
		return nil, err
	}

	return &ChecklistOutput{Body: checklistToResponse(c)}, nil
}
