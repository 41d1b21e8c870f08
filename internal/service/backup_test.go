package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/takibiapp/takibi-server/internal/errors"
	"github.com/takibiapp/takibi-server/internal/store"
)

func seedBackupFixtures(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.InitializeInstance(ctx, "Backup Test Server", "0.1.0")
	require.NoError(t, err)
	require.NoError(t, s.SeedDefaults(ctx))

	checklists := NewChecklistService(s, testLogger())
	_, err = checklists.CreateChecklist(ctx, CreateChecklistRequest{Name: "秋キャンプ"})
	require.NoError(t, err)
}

func TestBackupService_Export(t *testing.T) {
	s := setupTestStore(t)
	seedBackupFixtures(t, s)

	svc := NewBackupService(s, testLogger())

	b, err := svc.Export(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, b.Manifest.ID)
	assert.Equal(t, BackupFormatVersion, b.Manifest.Version)
	assert.Equal(t, "server-001", b.Manifest.ServerID)
	assert.Equal(t, "Backup Test Server", b.Manifest.ServerName)
	assert.False(t, b.Manifest.CreatedAt.IsZero())

	assert.Equal(t, 1, b.Manifest.Counts.Checklists)
	assert.Equal(t, 1, b.Manifest.Counts.Templates)
	assert.Equal(t, 7, b.Manifest.Counts.Categories)
	assert.Equal(t, 0, b.Manifest.Counts.SavedRecipes)

	assert.Len(t, b.Checklists, 1)
	assert.Len(t, b.Categories, 7)
}

func TestBackupService_ImportIntoFreshStore(t *testing.T) {
	src := setupTestStore(t)
	seedBackupFixtures(t, src)

	b, err := NewBackupService(src, testLogger()).Export(context.Background())
	require.NoError(t, err)

	dst := setupTestStore(t)
	result, err := NewBackupService(dst, testLogger()).Import(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported.Checklists)
	assert.Equal(t, 1, result.Imported.Templates)
	assert.Equal(t, 7, result.Imported.Categories)
	assert.Zero(t, result.Skipped.Checklists)

	lists, err := NewChecklistService(dst, testLogger()).ListChecklists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "秋キャンプ", lists[0].Name)
}

func TestBackupService_ImportSkipsExisting(t *testing.T) {
	s := setupTestStore(t)
	seedBackupFixtures(t, s)

	svc := NewBackupService(s, testLogger())
	ctx := context.Background()

	b, err := svc.Export(ctx)
	require.NoError(t, err)

	// Importing into the same store skips everything.
	result, err := svc.Import(ctx, b)
	require.NoError(t, err)

	assert.Zero(t, result.Imported.Checklists)
	assert.Equal(t, 1, result.Skipped.Checklists)
	assert.Equal(t, 7, result.Skipped.Categories)
}

func TestBackupService_ImportRejectsUnknownVersion(t *testing.T) {
	s := setupTestStore(t)
	svc := NewBackupService(s, testLogger())

	b := &Backup{Manifest: Manifest{Version: "99.0"}}
	_, err := svc.Import(context.Background(), b)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}
