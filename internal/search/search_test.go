package search

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takibiapp/takibi-server/internal/domain"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) (*RecipeIndex, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "search-test-*")
	require.NoError(t, err)

	index, err := NewRecipeIndex(Options{
		DataPath: tmpDir,
		Logger:   nil,
	})
	require.NoError(t, err)

	cleanup := func() {
		_ = index.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return index, cleanup
}

func TestNewRecipeIndex(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIndexRecipe(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &RecipeDocument{
		ID:     "lib-001",
		Source: DocSourceLibrary,
		Name:   "焚き火カレー",
		Meal:   "dinner",
	}

	require.NoError(t, index.IndexRecipe(doc))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestIndexRecipes_Batch(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*RecipeDocument{
		{ID: "lib-001", Source: DocSourceLibrary, Name: "焚き火カレー", Meal: "dinner"},
		{ID: "lib-002", Source: DocSourceLibrary, Name: "ホットサンド", Meal: "breakfast"},
		{ID: "lib-003", Source: DocSourceLibrary, Name: "豚汁", Meal: "dinner"},
	}

	require.NoError(t, index.IndexRecipes(docs))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestDeleteRecipe(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	require.NoError(t, index.IndexRecipe(&RecipeDocument{
		ID: "lib-001", Source: DocSourceLibrary, Name: "豚汁", Meal: "dinner",
	}))
	require.NoError(t, index.DeleteRecipe("lib-001"))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func seedRecipes(t *testing.T, index *RecipeIndex) {
	t.Helper()

	require.NoError(t, index.IndexRecipes([]*RecipeDocument{
		{
			ID: "lib-001", Source: DocSourceLibrary,
			Name:        "焚き火カレー",
			Description: "定番のキャンプカレー",
			Ingredients: "玉ねぎ 1個 カレールー 2人分",
			Meal:        "dinner", Difficulty: "easy", Cost: "low",
			Seasons: []string{"spring", "summer", "autumn"}, Servings: 2, CleanupLevel: 2,
		},
		{
			ID: "lib-002", Source: DocSourceLibrary,
			Name:        "ホットサンド",
			Description: "朝の定番",
			Ingredients: "食パン 2枚 チーズ 1枚",
			Meal:        "breakfast", Difficulty: "easy", Cost: "low",
			Servings: 1, CleanupLevel: 1,
		},
		{
			ID: "saved-001", Source: DocSourceSaved,
			Name:        "ダッチオーブンローストチキン",
			Description: "特別な日のごちそう",
			Ingredients: "丸鶏 1羽 じゃがいも 3個",
			Meal:        "dinner", Difficulty: "hard", Cost: "high",
			Servings: 4, CleanupLevel: 3,
		},
	}))
}

func TestSearch_ByName(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedRecipes(t, index)

	params := DefaultSearchParams()
	params.Query = "カレー"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "lib-001", result.Hits[0].ID)
}

func TestSearch_ByIngredient(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedRecipes(t, index)

	params := DefaultSearchParams()
	params.Query = "じゃがいも"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "saved-001", result.Hits[0].ID)
}

func TestSearch_MealFilter(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedRecipes(t, index)

	params := DefaultSearchParams()
	params.Meals = []string{"breakfast"}

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "lib-002", result.Hits[0].ID)
}

func TestSearch_DifficultyAndCost(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedRecipes(t, index)

	params := DefaultSearchParams()
	params.Difficulty = "hard"
	params.Cost = "high"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "saved-001", result.Hits[0].ID)
}

func TestSearch_SeasonFilter(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedRecipes(t, index)

	params := DefaultSearchParams()
	params.Season = "summer"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "lib-001", result.Hits[0].ID)
}

func TestSearch_SourceFilter(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedRecipes(t, index)

	params := DefaultSearchParams()
	params.Sources = []string{string(DocSourceSaved)}

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "saved-001", result.Hits[0].ID)
}

func TestSearch_MaxCleanup(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedRecipes(t, index)

	params := DefaultSearchParams()
	params.MaxCleanup = 2

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
}

func TestSearch_MatchAll(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedRecipes(t, index)

	result, err := index.Search(context.Background(), DefaultSearchParams())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), result.Total)
}

func TestSearch_Facets(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedRecipes(t, index)

	result, err := index.Search(context.Background(), DefaultSearchParams())
	require.NoError(t, err)

	require.NotEmpty(t, result.Facets.Meals)
	total := 0
	for _, f := range result.Facets.Meals {
		total += f.Count
	}
	assert.Equal(t, 3, total)
}

func TestRecipeToDocument(t *testing.T) {
	r := &domain.Recipe{
		Name:         "豚汁",
		Description:  "冷えた体に",
		Ingredients:  []string{"豚肉 200g", "味噌 大さじ2"},
		Meal:         domain.MealDinner,
		Difficulty:   domain.DifficultyEasy,
		Cost:         domain.CostLow,
		Servings:     4,
		CleanupLevel: 2,
		Seasons:      []string{"winter"},
	}

	doc := RecipeToDocument(DocSourceLibrary, "lib-007", r)
	assert.Equal(t, "lib-007", doc.ID)
	assert.Equal(t, DocSourceLibrary, doc.Source)
	assert.Equal(t, "豚汁", doc.Name)
	assert.Equal(t, "豚肉 200g 味噌 大さじ2", doc.Ingredients)
	assert.Equal(t, "dinner", doc.Meal)
	assert.Equal(t, 4, doc.Servings)
}

func TestRebuild(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()
	seedRecipes(t, index)

	require.NoError(t, index.Rebuild())

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
