package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takibiapp/takibi-server/internal/domain"
	"github.com/takibiapp/takibi-server/internal/store"
)

func createTestChecklist(t *testing.T, s *store.Store, name string) *domain.Checklist {
	t.Helper()

	checklist := &domain.Checklist{Name: name}
	checklist.ID = "checklist-" + name
	checklist.InitTimestamps()
	require.NoError(t, s.Checklists.Create(context.Background(), checklist.ID, checklist))
	return checklist
}

func TestAppendChecklistItems(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	checklist := createTestChecklist(t, s, "夏キャンプ")

	drafts := []domain.ChecklistItemDraft{
		{Name: "玉ねぎ（1個）", CategoryID: "food", Note: "カレー用"},
		{Name: "レタス", CategoryID: "food", Note: "サラダ用"},
	}

	updated, err := s.AppendChecklistItems(context.Background(), checklist.ID, drafts)
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)

	assert.Equal(t, "玉ねぎ（1個）", updated.Items[0].Name)
	assert.Equal(t, "food", updated.Items[0].CategoryID)
	assert.Equal(t, "カレー用", updated.Items[0].Note)
	assert.False(t, updated.Items[0].Checked)
	assert.NotEmpty(t, updated.Items[0].ID)
	assert.NotEqual(t, updated.Items[0].ID, updated.Items[1].ID)

	// Changes are persisted.
	stored, err := s.Checklists.Get(context.Background(), checklist.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
}

func TestAppendChecklistItems_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.AppendChecklistItems(context.Background(), "missing", []domain.ChecklistItemDraft{
		{Name: "x", CategoryID: "food"},
	})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetChecklistItemChecked(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	checklist := createTestChecklist(t, s, "秋キャンプ")
	updated, err := s.AppendChecklistItems(context.Background(), checklist.ID, []domain.ChecklistItemDraft{
		{Name: "テント", CategoryID: "sleeping"},
	})
	require.NoError(t, err)
	itemID := updated.Items[0].ID

	updated, err = s.SetChecklistItemChecked(context.Background(), checklist.ID, itemID, true)
	require.NoError(t, err)
	assert.True(t, updated.Items[0].Checked)

	updated, err = s.SetChecklistItemChecked(context.Background(), checklist.ID, itemID, false)
	require.NoError(t, err)
	assert.False(t, updated.Items[0].Checked)

	_, err = s.SetChecklistItemChecked(context.Background(), checklist.ID, "missing-item", true)
	require.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestRemoveChecklistItem(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	checklist := createTestChecklist(t, s, "冬キャンプ")
	updated, err := s.AppendChecklistItems(context.Background(), checklist.ID, []domain.ChecklistItemDraft{
		{Name: "テント", CategoryID: "sleeping"},
		{Name: "薪", CategoryID: "fire"},
	})
	require.NoError(t, err)

	updated, err = s.RemoveChecklistItem(context.Background(), checklist.ID, updated.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "薪", updated.Items[0].Name)

	_, err = s.RemoveChecklistItem(context.Background(), checklist.ID, "missing-item")
	require.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestChecklistNameIndex(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	createTestChecklist(t, s, "GWキャンプ")

	found, err := s.Checklists.GetByIndex(context.Background(), "name", "GWキャンプ")
	require.NoError(t, err)
	assert.Equal(t, "checklist-GWキャンプ", found.ID)
}
