package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/takibiapp/takibi-server/internal/domain"
	"github.com/takibiapp/takibi-server/internal/service"
)

func (s *Server) registerSuggestionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "suggestRecipes",
		Method:      http.MethodPost,
		Path:        "/api/v1/suggestions",
		Summary:     "Suggest recipes",
		Description: "Asks the AI for camp recipes matching the given constraints",
		Tags:        []string{"Suggestions"},
	}, s.handleSuggestRecipes)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveSuggestion",
		Method:      http.MethodPost,
		Path:        "/api/v1/suggestions/save",
		Summary:     "Save suggested recipe",
		Description: "Re-validates a suggested recipe and persists it",
		Tags:        []string{"Suggestions"},
	}, s.handleSaveSuggestion)
}

// === DTOs ===

// SuggestRecipesRequest contains constraints for a suggestion round.
type SuggestRecipesRequest struct {
	Meal        string   `json:"meal,omitempty" doc:"Meal slot (breakfast, lunch, dinner, snack, dessert)"`
	PartySize   int      `json:"party_size,omitempty" doc:"Number of people"`
	Season      string   `json:"season,omitempty" doc:"Season hint for the model"`
	Equipment   []string `json:"equipment,omitempty" doc:"Available cooking equipment"`
	HeatSources []string `json:"heat_sources,omitempty" doc:"Available heat sources"`
	Vegetarian  bool     `json:"vegetarian,omitempty" doc:"Only vegetarian dishes"`
	Count       int      `json:"count,omitempty" doc:"Number of suggestions (1-5)"`
}

// SuggestRecipesInput wraps the suggestion request for Huma.
type SuggestRecipesInput struct {
	Body SuggestRecipesRequest
}

// SuggestRecipesResponse contains suggested recipes.
type SuggestRecipesResponse struct {
	Recipes []domain.Recipe `json:"recipes" doc:"Suggested recipes that passed schema validation"`
}

// SuggestRecipesOutput wraps the suggestion response for Huma.
type SuggestRecipesOutput struct {
	Body SuggestRecipesResponse
}

// SaveSuggestionInput wraps the save suggestion request for Huma.
type SaveSuggestionInput struct {
	Body domain.Recipe
}

// === Handlers ===

func (s *Server) handleSuggestRecipes(ctx context.Context, input *SuggestRecipesInput) (*SuggestRecipesOutput, error) {
	recipes, err := s.services.Suggestion.Suggest(ctx, service.SuggestRequest{
		Meal:        input.Body.Meal,
		PartySize:   input.Body.PartySize,
		Season:      input.Body.Season,
		Equipment:   input.Body.Equipment,
		HeatSources: input.Body.HeatSources,
		Vegetarian:  input.Body.Vegetarian,
		Count:       input.Body.Count,
	})
	if err != nil {
		return nil, err
	}

	return &SuggestRecipesOutput{Body: SuggestRecipesResponse{Recipes: recipes}}, nil
}

func (s *Server) handleSaveSuggestion(ctx context.Context, input *SaveSuggestionInput) (*RecipeOutput, error) {
	saved, err := s.services.Suggestion.SaveSuggestion(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	r := saved.Recipe
	r.ID = saved.ID
	return &RecipeOutput{Body: r}, nil
}
