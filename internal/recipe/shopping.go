package recipe

import (
	"strings"
	"unicode"

	"github.com/takibiapp/takibi-server/internal/domain"
)

// DefaultCategoryID is the checklist category shopping items land in when
// the caller doesn't pick one.
const DefaultCategoryID = "food"

// fallbackNote labels checklist items when the owning recipe name is omitted.
const fallbackNote = "キャンプ料理用"

// BuildShoppingList flattens recipes into shopping entries, one per
// ingredient line, in recipe order then ingredient order. Entries are never
// merged across recipes: the list is meant to show which dish needs what,
// not a minimal consolidated basket.
//
// When targetServings is positive and a recipe declares its own serving
// count, the recipe's ingredients are rescaled first; otherwise they are
// used verbatim.
func BuildShoppingList(recipes []domain.Recipe, targetServings int) []domain.ShoppingItem {
	items := make([]domain.ShoppingItem, 0)
	for _, r := range recipes {
		ingredients := r.Ingredients
		if targetServings > 0 && r.HasServings() {
			if scaled, err := ScaleIngredients(r.Ingredients, r.Servings, targetServings); err == nil {
				ingredients = scaled
			}
		}
		for _, line := range ingredients {
			name, amount := SplitIngredient(line)
			items = append(items, domain.ShoppingItem{
				Name:       name,
				Amount:     amount,
				RecipeName: r.Name,
				Source:     domain.SourceRecipe,
			})
		}
	}
	return items
}

// SplitIngredient separates an ingredient line into its name and optional
// amount. The name is the leading run up to the first whitespace or opening
// parenthesis (half- or full-width); the remainder, with any closing
// parenthesis stripped and whitespace trimmed, is the amount. An empty
// remainder means the line carried no amount.
func SplitIngredient(line string) (name, amount string) {
	trimmed := strings.TrimSpace(line)
	idx := strings.IndexFunc(trimmed, isAmountDelimiter)
	if idx < 0 {
		return trimmed, ""
	}

	name = trimmed[:idx]
	amount = strings.TrimLeftFunc(trimmed[idx:], isAmountDelimiter)
	amount = strings.TrimRightFunc(amount, func(r rune) bool {
		return unicode.IsSpace(r) || r == ')' || r == '）'
	})
	return name, amount
}

func isAmountDelimiter(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == '（'
}

// ToChecklistItems projects shopping entries into checklist item drafts for
// the checklist store. The amount is appended to the name in full-width
// parentheses when present. The note names the owning recipe unless the
// caller asked for the generic label. Drafts always start unchecked.
func ToChecklistItems(items []domain.ShoppingItem, categoryID string, includeRecipeName bool) []domain.ChecklistItemDraft {
	drafts := make([]domain.ChecklistItemDraft, 0, len(items))
	for _, item := range items {
		name := item.Name
		if item.Amount != "" {
			name = item.Name + "（" + item.Amount + "）"
		}
		note := fallbackNote
		if includeRecipeName && item.RecipeName != "" {
			note = item.RecipeName + "用"
		}
		drafts = append(drafts, domain.ChecklistItemDraft{
			Name:       name,
			CategoryID: categoryID,
			Checked:    false,
			Note:       note,
		})
	}
	return drafts
}
