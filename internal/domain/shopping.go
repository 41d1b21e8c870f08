package domain

// SourceRecipe tags shopping items derived from recipe ingredients.
const SourceRecipe = "recipe"

// ShoppingItem is one (name, amount, owning-recipe) entry produced when
// flattening recipes into a shopping list. Items are transient: they are
// built fresh on every request and never persisted by this subsystem.
type ShoppingItem struct {
	Name string `json:"name"`
	// Amount is the free-text quantity segment ("1個", "1/2丁").
	// Empty means the ingredient line carried no amount.
	Amount     string `json:"amount,omitempty"`
	RecipeName string `json:"recipe_name"`
	Source     string `json:"source"`
}

// ChecklistItemDraft is the shape handed to the checklist store when shopping
// items are converted into checklist lines. The store assigns identity;
// this subsystem never does.
type ChecklistItemDraft struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	Checked    bool   `json:"checked"`
	Note       string `json:"note"`
}
