package service

import (
	"context"
	"encoding/json/jsontext"
	"encoding/json/v2"
	"log/slog"

	"github.com/takibiapp/takibi-server/internal/domain"
	domainerrors "github.com/takibiapp/takibi-server/internal/errors"
	"github.com/takibiapp/takibi-server/internal/recipe"
	"github.com/takibiapp/takibi-server/internal/suggest"
	"github.com/takibiapp/takibi-server/internal/validation"
)

// Suggester produces recipe suggestions. Satisfied by *suggest.Client.
type Suggester interface {
	Suggest(ctx context.Context, req suggest.Request) ([]domain.Recipe, error)
}

// SuggestionService runs the AI suggestion flow. The client is nil when no
// API key is configured, in which case every request fails fast.
type SuggestionService struct {
	client          Suggester
	recipes         *RecipeService
	logger          *slog.Logger
	validator       *validation.Validator
	recipeValidator *recipe.Validator
}

// NewSuggestionService creates a new suggestion service.
func NewSuggestionService(client Suggester, recipes *RecipeService, recipeValidator *recipe.Validator, logger *slog.Logger) *SuggestionService {
	return &SuggestionService{
		client:          client,
		recipes:         recipes,
		logger:          logger,
		validator:       validation.New(),
		recipeValidator: recipeValidator,
	}
}

// Enabled reports whether suggestions are configured.
func (s *SuggestionService) Enabled() bool {
	return s.client != nil
}

// SuggestRequest contains constraints for a suggestion round.
type SuggestRequest struct {
	Meal        string   `json:"meal" validate:"omitempty,oneof=breakfast lunch dinner snack dessert"`
	PartySize   int      `json:"party_size" validate:"omitempty,gt=0"`
	Season      string   `json:"season" validate:"max=20"`
	Equipment   []string `json:"equipment"`
	HeatSources []string `json:"heat_sources"`
	Vegetarian  bool     `json:"vegetarian"`
	Count       int      `json:"count" validate:"omitempty,gte=1,lte=5"`
}

// Suggest asks the model for recipes matching the request. Dishes already in
// the library or saved are excluded so the user gets something new.
func (s *SuggestionService) Suggest(ctx context.Context, req SuggestRequest) ([]domain.Recipe, error) {
	if s.client == nil {
		return nil, domainerrors.Unavailable("AI suggestions are not configured")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.recipes.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	exclude := make([]string, 0, len(existing))
	for _, r := range existing {
		exclude = append(exclude, r.Name)
	}

	return s.client.Suggest(ctx, suggest.Request{
		Meal:         domain.MealType(req.Meal),
		PartySize:    req.PartySize,
		Season:       req.Season,
		Equipment:    req.Equipment,
		HeatSources:  req.HeatSources,
		Vegetarian:   req.Vegetarian,
		Count:        req.Count,
		ExcludeNames: exclude,
	})
}

// SaveSuggestion persists one suggested recipe. The client echoes the recipe
// back over HTTP, so it is untrusted input again and goes through the schema
// validator before it is stored.
func (s *SuggestionService) SaveSuggestion(ctx context.Context, r domain.Recipe) (*domain.SavedRecipe, error) {
	raw, err := json.Marshal(&r)
	if err != nil {
		return nil, domainerrors.Validation("recipe could not be encoded").WithCause(err)
	}

	validated := s.recipeValidator.ValidateOne(jsontext.Value(raw))
	if validated == nil {
		return nil, domainerrors.Validation("recipe failed schema validation")
	}

	return s.recipes.SaveRecipe(ctx, *validated)
}
