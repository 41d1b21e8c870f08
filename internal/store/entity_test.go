package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takibiapp/takibi-server/internal/store"
)

type TestEntity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func setupTestStore(t *testing.T) (*store.Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "store-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath, nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

func TestEntity_CreateAndGet(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:")

	testData := &TestEntity{ID: "1", Name: "薪ストーブ"}

	err := entity.Create(context.Background(), "1", testData)
	require.NoError(t, err)

	retrieved, err := entity.Get(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, testData.ID, retrieved.ID)
	require.Equal(t, testData.Name, retrieved.Name)
}

func TestEntity_Create_AlreadyExists(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:")
	testData := &TestEntity{ID: "1", Name: "薪ストーブ"}

	require.NoError(t, entity.Create(context.Background(), "1", testData))

	err := entity.Create(context.Background(), "1", testData)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_Get_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:")

	retrieved, err := entity.Get(context.Background(), "nonexistent")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.Nil(t, retrieved)
}

func TestEntity_Update(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:")

	require.NoError(t, entity.Create(context.Background(), "1", &TestEntity{ID: "1", Name: "旧名"}))
	require.NoError(t, entity.Update(context.Background(), "1", &TestEntity{ID: "1", Name: "新名"}))

	retrieved, err := entity.Get(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, "新名", retrieved.Name)
}

func TestEntity_Update_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:")

	err := entity.Update(context.Background(), "missing", &TestEntity{ID: "missing"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_Delete_Idempotent(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:")

	require.NoError(t, entity.Create(context.Background(), "1", &TestEntity{ID: "1", Name: "x"}))
	require.NoError(t, entity.Delete(context.Background(), "1"))

	_, err := entity.Get(context.Background(), "1")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again is not an error.
	require.NoError(t, entity.Delete(context.Background(), "1"))
}

func TestEntity_List(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:")

	require.NoError(t, entity.Create(context.Background(), "1", &TestEntity{ID: "1", Name: "a"}))
	require.NoError(t, entity.Create(context.Background(), "2", &TestEntity{ID: "2", Name: "b"}))

	names := map[string]bool{}
	for e, err := range entity.List(context.Background()) {
		require.NoError(t, err)
		names[e.Name] = true
	}
	require.Len(t, names, 2)
	require.True(t, names["a"])
	require.True(t, names["b"])
}

func TestEntity_Index(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:").
		WithIndex("name", func(e *TestEntity) []string {
			return []string{e.Name}
		})

	require.NoError(t, entity.Create(context.Background(), "1", &TestEntity{ID: "1", Name: "焚き火台"}))

	retrieved, err := entity.GetByIndex(context.Background(), "name", "焚き火台")
	require.NoError(t, err)
	require.Equal(t, "1", retrieved.ID)

	// Index values are unique.
	err = entity.Create(context.Background(), "2", &TestEntity{ID: "2", Name: "焚き火台"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_Index_UpdateKeepsOwnValue(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	entity := store.NewEntity[TestEntity](s, "test:").
		WithIndex("name", func(e *TestEntity) []string {
			return []string{e.Name}
		})

	require.NoError(t, entity.Create(context.Background(), "1", &TestEntity{ID: "1", Name: "焚き火台"}))

	// Updating a record with its own unchanged index value must not conflict.
	require.NoError(t, entity.Update(context.Background(), "1", &TestEntity{ID: "1", Name: "焚き火台"}))

	// Renaming moves the index entry.
	require.NoError(t, entity.Update(context.Background(), "1", &TestEntity{ID: "1", Name: "コンロ"}))

	_, err := entity.GetByIndex(context.Background(), "name", "焚き火台")
	require.ErrorIs(t, err, store.ErrNotFound)

	retrieved, err := entity.GetByIndex(context.Background(), "name", "コンロ")
	require.NoError(t, err)
	require.Equal(t, "1", retrieved.ID)
}
