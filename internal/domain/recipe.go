package domain

// MealType identifies which meal slot a recipe is intended for.
type MealType string

// Meal slots. The set is closed; validation is case-sensitive.
const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
	MealDessert   MealType = "dessert"
)

// Difficulty grades how hard a recipe is to pull off at a campsite.
type Difficulty string

// Difficulty levels.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// CostLevel is a rough ingredient-cost bucket.
type CostLevel string

// Cost buckets.
const (
	CostLow  CostLevel = "low"
	CostMid  CostLevel = "mid"
	CostHigh CostLevel = "high"
)

// Recipe describes one camp dish: ingredients, steps, required gear, and
// descriptive metadata. Recipes arrive from untrusted sources (bundled JSON
// data files or the AI suggestion flow) and must pass the schema validator
// before they are used anywhere else.
//
// Ingredient lines are free text in one of two surface forms:
// "<name> <amount>" or "<name>（<amount>）". The amount segment may embed a
// <number><unit> token that the quantity scaler understands.
type Recipe struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name" validate:"required"`
	Meal        MealType `json:"meal" validate:"required,oneof=breakfast lunch dinner snack dessert"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Equipment   []string `json:"equipment"`
	// EquipmentCapabilities and HeatSources are capability identifiers matched
	// against the user's gear (e.g. "pot", "skillet" / "fire", "burner").
	EquipmentCapabilities []string `json:"equipmentCapabilities"`
	HeatSources           []string `json:"heatSources"`
	Steps                 []string `json:"steps"`
	CookTime              string   `json:"cookTime"`
	Tip                   string   `json:"tip"`

	// Optional attributes.
	Servings     int        `json:"servings,omitempty" validate:"omitempty,gt=0"`
	Difficulty   Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=easy normal hard"`
	Seasons      []string   `json:"seasons,omitempty"`
	Calories     string     `json:"calories,omitempty"`
	ActiveTime   string     `json:"activeTime,omitempty"`
	CleanupLevel int        `json:"cleanupLevel,omitempty" validate:"omitempty,oneof=1 2 3"`
	PrepAhead    bool       `json:"prepAhead,omitempty"`
	Cost         CostLevel  `json:"cost,omitempty" validate:"omitempty,oneof=low mid high"`
	Vegetarian   bool       `json:"vegetarian,omitempty"`
	// Reason is the AI-provided justification for a suggested recipe.
	Reason      string   `json:"reason,omitempty"`
	KidFriendly bool     `json:"kidFriendly,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// HasServings reports whether the recipe declares a serving count,
// which is a precondition for serving-based scaling.
func (r *Recipe) HasServings() bool {
	return r.Servings > 0
}

// SavedRecipe is a recipe the user chose to keep, typically from the AI
// suggestion flow. It wraps the validated Recipe with store identity.
type SavedRecipe struct {
	Record
	Recipe Recipe `json:"recipe"`
}
