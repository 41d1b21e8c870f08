// Package store persists checklists, templates, categories, and saved
// recipes in a Badger key-value database.
package store

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/takibiapp/takibi-server/internal/domain"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Generic entities
	Checklists   *Entity[domain.Checklist]
	Templates    *Entity[domain.Template]
	Categories   *Entity[domain.Category]
	SavedRecipes *Entity[domain.SavedRecipe]
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.initChecklists()
	store.initTemplates()
	store.initCategories()
	store.initSavedRecipes()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// exists checks if a key exists.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// initChecklists initializes the Checklists entity on the store.
// Checklist names are unique so clients can refer to lists by name.
func (s *Store) initChecklists() {
	s.Checklists = NewEntity[domain.Checklist](s, "checklist:").
		WithIndex("name", func(c *domain.Checklist) []string {
			return []string{c.Name}
		})
}

// initTemplates initializes the Templates entity on the store.
// The name index is whitespace-insensitive so "基本セット " and "基本セット"
// resolve to the same template.
func (s *Store) initTemplates() {
	s.Templates = NewEntity[domain.Template](s, "template:").
		WithIndexTransform("name",
			func(t *domain.Template) []string {
				return []string{strings.TrimSpace(t.Name)}
			},
			strings.TrimSpace,
		)
}

// initCategories initializes the Categories entity on the store.
func (s *Store) initCategories() {
	s.Categories = NewEntity[domain.Category](s, "category:")
}

// initSavedRecipes initializes the SavedRecipes entity on the store.
func (s *Store) initSavedRecipes() {
	s.SavedRecipes = NewEntity[domain.SavedRecipe](s, "recipe:").
		WithIndex("name", func(r *domain.SavedRecipe) []string {
			return []string{r.Recipe.Name}
		})
}
