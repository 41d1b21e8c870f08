package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/takibiapp/takibi-server/internal/domain"
	domainerrors "github.com/takibiapp/takibi-server/internal/errors"
	"github.com/takibiapp/takibi-server/internal/store"
)

// BackupFormatVersion is the backup format version. Increment major on
// breaking changes.
const BackupFormatVersion = "1.0"

// Manifest describes backup contents and metadata.
type Manifest struct {
	ID        string    `json:"id"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	// Server identity
	ServerID      string `json:"server_id"`
	ServerName    string `json:"server_name"`
	TakibiVersion string `json:"takibi_version"`

	// Content summary
	Counts EntityCounts `json:"counts"`
}

// EntityCounts tracks entity counts for validation and progress reporting.
type EntityCounts struct {
	Checklists   int `json:"checklists"`
	Templates    int `json:"templates"`
	Categories   int `json:"categories"`
	SavedRecipes int `json:"saved_recipes"`
}

// Backup is the full export payload. Library recipes are not included:
// they ship with the server as data files.
type Backup struct {
	Manifest     Manifest              `json:"manifest"`
	Checklists   []*domain.Checklist   `json:"checklists"`
	Templates    []*domain.Template    `json:"templates"`
	Categories   []*domain.Category    `json:"categories"`
	SavedRecipes []*domain.SavedRecipe `json:"saved_recipes"`
}

// BackupService exports and imports the user's store contents.
type BackupService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBackupService creates a new backup service.
func NewBackupService(store *store.Store, logger *slog.Logger) *BackupService {
	return &BackupService{
		store:  store,
		logger: logger,
	}
}

// Export collects every user-owned entity into one backup payload.
func (s *BackupService) Export(ctx context.Context) (*Backup, error) {
	b := &Backup{
		Checklists:   []*domain.Checklist{},
		Templates:    []*domain.Template{},
		Categories:   []*domain.Category{},
		SavedRecipes: []*domain.SavedRecipe{},
	}

	for c, err := range s.store.Checklists.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to export checklists: %w", err)
		}
		b.Checklists = append(b.Checklists, c)
	}
	for t, err := range s.store.Templates.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to export templates: %w", err)
		}
		b.Templates = append(b.Templates, t)
	}
	for c, err := range s.store.Categories.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to export categories: %w", err)
		}
		b.Categories = append(b.Categories, c)
	}
	for r, err := range s.store.SavedRecipes.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to export saved recipes: %w", err)
		}
		b.SavedRecipes = append(b.SavedRecipes, r)
	}

	instance, err := s.store.GetInstance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get instance: %w", err)
	}

	b.Manifest = Manifest{
		ID:            uuid.NewString(),
		Version:       BackupFormatVersion,
		CreatedAt:     time.Now(),
		ServerID:      instance.ID,
		ServerName:    instance.Name,
		TakibiVersion: instance.Version,
		Counts: EntityCounts{
			Checklists:   len(b.Checklists),
			Templates:    len(b.Templates),
			Categories:   len(b.Categories),
			SavedRecipes: len(b.SavedRecipes),
		},
	}

	s.logger.Info("backup exported",
		"backup_id", b.Manifest.ID,
		"checklists", b.Manifest.Counts.Checklists,
		"templates", b.Manifest.Counts.Templates,
		"categories", b.Manifest.Counts.Categories,
		"saved_recipes", b.Manifest.Counts.SavedRecipes,
	)
	return b, nil
}

// ImportResult summarizes what an import actually did.
type ImportResult struct {
	Imported EntityCounts `json:"imported"`
	Skipped  EntityCounts `json:"skipped"`
}

// Import merges a backup into the store. Entities whose ID or unique name
// already exists are skipped, never overwritten.
func (s *BackupService) Import(ctx context.Context, b *Backup) (*ImportResult, error) {
	if b.Manifest.Version != BackupFormatVersion {
		return nil, domainerrors.Validationf("unsupported backup version %q", b.Manifest.Version)
	}

	result := &ImportResult{}

	for _, c := range b.Checklists {
		switch err := s.store.Checklists.Create(ctx, c.ID, c); {
		case err == nil:
			result.Imported.Checklists++
		case errors.Is(err, store.ErrAlreadyExists):
			result.Skipped.Checklists++
		default:
			return nil, fmt.Errorf("failed to import checklist %s: %w", c.ID, err)
		}
	}
	for _, t := range b.Templates {
		switch err := s.store.Templates.Create(ctx, t.ID, t); {
		case err == nil:
			result.Imported.Templates++
		case errors.Is(err, store.ErrAlreadyExists):
			result.Skipped.Templates++
		default:
			return nil, fmt.Errorf("failed to import template %s: %w", t.ID, err)
		}
	}
	for _, c := range b.Categories {
		switch err := s.store.Categories.Create(ctx, c.ID, c); {
		case err == nil:
			result.Imported.Categories++
		case errors.Is(err, store.ErrAlreadyExists):
			result.Skipped.Categories++
		default:
			return nil, fmt.Errorf("failed to import category %s: %w", c.ID, err)
		}
	}
	for _, r := range b.SavedRecipes {
		switch err := s.store.SavedRecipes.Create(ctx, r.ID, r); {
		case err == nil:
			result.Imported.SavedRecipes++
		case errors.Is(err, store.ErrAlreadyExists):
			result.Skipped.SavedRecipes++
		default:
			return nil, fmt.Errorf("failed to import saved recipe %s: %w", r.ID, err)
		}
	}

	s.logger.Info("backup imported",
		"backup_id", b.Manifest.ID,
		"imported_checklists", result.Imported.Checklists,
		"imported_templates", result.Imported.Templates,
		"imported_categories", result.Imported.Categories,
		"imported_saved_recipes", result.Imported.SavedRecipes,
	)
	return result, nil
}
