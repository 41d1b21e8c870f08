package service

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takibiapp/takibi-server/internal/recipe"
	"github.com/takibiapp/takibi-server/internal/search"
	"github.com/takibiapp/takibi-server/internal/store"
)

const validRecipeJSON = `{
	"name": "焚き火カレー",
	"meal": "dinner",
	"description": "焚き火でじっくり煮込む定番カレー",
	"ingredients": ["玉ねぎ 2個", "じゃがいも 3個", "米 2合", "カレールー 1箱"],
	"equipment": ["ダッチオーブン"],
	"equipmentCapabilities": ["pot"],
	"heatSources": ["fire"],
	"steps": ["野菜を切る", "炒める", "煮込む"],
	"cookTime": "60分",
	"tip": "ルーは火から下ろして溶かす",
	"servings": 2,
	"difficulty": "easy",
	"cost": "low"
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestStore creates a store backed by a temp directory.
func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "takibi-service-test-*")
	require.NoError(t, err)

	s, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()            //nolint:errcheck // Test cleanup
		_ = os.RemoveAll(tmpDir) //nolint:errcheck // Test cleanup
	})
	return s
}

// setupTestLibrary writes a one-file library to a temp dir and loads it.
func setupTestLibrary(t *testing.T, recipesJSON string) *recipe.Library {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "recipes.json"), []byte(recipesJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, recipe.IndexFileName),
		[]byte(`{"files": ["recipes.json"]}`), 0o644))

	logger := testLogger()
	lib := recipe.NewLibrary(dir, recipe.NewValidator(logger), logger)
	require.NoError(t, lib.Load())
	return lib
}

// setupTestIndex creates a search index in a temp dir.
func setupTestIndex(t *testing.T) *search.RecipeIndex {
	t.Helper()

	idx, err := search.NewRecipeIndex(search.Options{
		DataPath: t.TempDir(),
		Logger:   testLogger(),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = idx.Close() //nolint:errcheck // Test cleanup
	})
	return idx
}

// setupTestRecipeService wires a recipe service with one library recipe.
func setupTestRecipeService(t *testing.T) *RecipeService {
	t.Helper()

	lib := setupTestLibrary(t, `[`+validRecipeJSON+`]`)
	return NewRecipeService(lib, setupTestStore(t), setupTestIndex(t), testLogger())
}
