package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takibiapp/takibi-server/internal/domain"
)

func TestSplitIngredient(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantName   string
		wantAmount string
	}{
		{"space separated", "玉ねぎ 1個", "玉ねぎ", "1個"},
		{"full-width parens", "豆腐（1/2丁）", "豆腐", "1/2丁"},
		{"half-width parens", "豆腐(1/2丁)", "豆腐", "1/2丁"},
		{"no amount", "レタス", "レタス", ""},
		{"free text amount", "塩こしょう 適量", "塩こしょう", "適量"},
		{"surrounding whitespace", "  にんじん 2本  ", "にんじん", "2本"},
		{"amount with trailing space", "水 400ml ", "水", "400ml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, amount := SplitIngredient(tt.line)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantAmount, amount)
		})
	}
}

func TestBuildShoppingList(t *testing.T) {
	recipes := []domain.Recipe{
		{
			Name:        "カレー",
			Servings:    2,
			Ingredients: []string{"玉ねぎ 1個", "レタス"},
		},
		{
			Name:        "サラダ",
			Ingredients: []string{"トマト 2個"},
		},
	}

	items := BuildShoppingList(recipes, 0)
	require.Len(t, items, 3)

	// Recipe order first, then ingredient order within each recipe.
	assert.Equal(t, "玉ねぎ", items[0].Name)
	assert.Equal(t, "1個", items[0].Amount)
	assert.Equal(t, "カレー", items[0].RecipeName)
	assert.Equal(t, domain.SourceRecipe, items[0].Source)

	assert.Equal(t, "レタス", items[1].Name)
	assert.Empty(t, items[1].Amount)

	assert.Equal(t, "トマト", items[2].Name)
	assert.Equal(t, "サラダ", items[2].RecipeName)
}

func TestBuildShoppingListScales(t *testing.T) {
	recipes := []domain.Recipe{
		{
			Name:        "カレー",
			Servings:    2,
			Ingredients: []string{"玉ねぎ 1個"},
		},
		{
			// No declared servings: ingredients are used verbatim.
			Name:        "サラダ",
			Ingredients: []string{"トマト 2個"},
		},
	}

	items := BuildShoppingList(recipes, 4)
	require.Len(t, items, 2)

	assert.Equal(t, "2個", items[0].Amount)
	assert.Equal(t, "2個", items[1].Amount)
}

func TestBuildShoppingListNoMerge(t *testing.T) {
	recipes := []domain.Recipe{
		{Name: "カレー", Ingredients: []string{"玉ねぎ 1個"}},
		{Name: "スープ", Ingredients: []string{"玉ねぎ 2個"}},
	}

	items := BuildShoppingList(recipes, 0)
	require.Len(t, items, 2)
	assert.Equal(t, "カレー", items[0].RecipeName)
	assert.Equal(t, "スープ", items[1].RecipeName)
}

func TestBuildShoppingListEmpty(t *testing.T) {
	items := BuildShoppingList(nil, 4)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestToChecklistItems(t *testing.T) {
	items := []domain.ShoppingItem{
		{Name: "玉ねぎ", Amount: "1個", RecipeName: "カレー", Source: domain.SourceRecipe},
		{Name: "レタス", RecipeName: "サラダ", Source: domain.SourceRecipe},
	}

	drafts := ToChecklistItems(items, DefaultCategoryID, true)
	require.Len(t, drafts, 2)

	assert.Equal(t, "玉ねぎ（1個）", drafts[0].Name)
	assert.Equal(t, "food", drafts[0].CategoryID)
	assert.Equal(t, "カレー用", drafts[0].Note)
	assert.False(t, drafts[0].Checked)

	assert.Equal(t, "レタス", drafts[1].Name)
	assert.Equal(t, "サラダ用", drafts[1].Note)
}

func TestToChecklistItemsGenericNote(t *testing.T) {
	items := []domain.ShoppingItem{
		{Name: "玉ねぎ", Amount: "1個", RecipeName: "カレー", Source: domain.SourceRecipe},
	}

	drafts := ToChecklistItems(items, "shopping", false)
	require.Len(t, drafts, 1)
	assert.Equal(t, "キャンプ料理用", drafts[0].Note)
	assert.Equal(t, "shopping", drafts[0].CategoryID)
}

func TestToChecklistItemsMissingRecipeName(t *testing.T) {
	items := []domain.ShoppingItem{
		{Name: "玉ねぎ", Amount: "1個", Source: domain.SourceRecipe},
	}

	drafts := ToChecklistItems(items, DefaultCategoryID, true)
	require.Len(t, drafts, 1)
	assert.Equal(t, "キャンプ料理用", drafts[0].Note)
}
