package recipe

import (
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/takibiapp/takibi-server/internal/domain"
	"github.com/takibiapp/takibi-server/internal/errors"
)

// IndexFileName lists the recipe data files inside the data directory.
const IndexFileName = "index.json"

// libraryIndex is the shape of index.json.
type libraryIndex struct {
	Files []string `json:"files"`
}

// Library holds the validated in-memory recipe set loaded from the data
// directory. Load replaces the whole set atomically, so readers always see
// a consistent snapshot; the file watcher calls Load again when the data
// directory changes.
type Library struct {
	dir       string
	validator *Validator
	logger    *slog.Logger

	mu      sync.RWMutex
	recipes []domain.Recipe
	byID    map[string]int
}

// NewLibrary creates an empty library reading from dir.
func NewLibrary(dir string, validator *Validator, logger *slog.Logger) *Library {
	return &Library{
		dir:       dir,
		validator: validator,
		logger:    logger,
		byID:      make(map[string]int),
	}
}

// Load reads the index file and every listed data file, validates all
// records, and swaps in the accepted set. A missing or unreadable index is
// an error; a broken individual data file is logged and skipped so one bad
// file never empties the library.
func (l *Library) Load() error {
	indexPath := filepath.Join(l.dir, IndexFileName)
	data, err := os.ReadFile(indexPath) //#nosec G304 -- data dir comes from server config
	if err != nil {
		return fmt.Errorf("read recipe index: %w", err)
	}

	var index libraryIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return fmt.Errorf("parse recipe index: %w", err)
	}

	var recipes []domain.Recipe
	for _, name := range index.Files {
		records, err := l.readDataFile(name)
		if err != nil {
			l.logger.Warn("skipping recipe data file", "file", name, "error", err)
			continue
		}
		accepted := l.validator.ValidateMany(records)
		l.logger.Info("loaded recipe data file",
			"file", name,
			"accepted", len(accepted),
			"total", len(records),
		)
		recipes = append(recipes, accepted...)
	}

	byID := make(map[string]int, len(recipes))
	for i := range recipes {
		if recipes[i].ID == "" {
			recipes[i].ID = fmt.Sprintf("lib-%03d", i+1)
		}
		byID[recipes[i].ID] = i
	}

	l.mu.Lock()
	l.recipes = recipes
	l.byID = byID
	l.mu.Unlock()

	l.logger.Info("recipe library loaded", "recipes", len(recipes), "files", len(index.Files))
	return nil
}

// readDataFile reads one data file as an array of raw records.
func (l *Library) readDataFile(name string) ([]jsontext.Value, error) {
	path := filepath.Join(l.dir, name)
	data, err := os.ReadFile(path) //#nosec G304 -- file names come from the index file
	if err != nil {
		return nil, err
	}

	var records []jsontext.Value
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("not a JSON array: %w", err)
	}
	return records, nil
}

// All returns a copy of the current recipe set in load order.
func (l *Library) All() []domain.Recipe {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Recipe, len(l.recipes))
	copy(out, l.recipes)
	return out
}

// Get returns the recipe with the given ID, or a recipe whose name matches
// when no ID matches. Data files may omit IDs, so name lookup keeps older
// clients working.
func (l *Library) Get(id string) (*domain.Recipe, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i, ok := l.byID[id]; ok {
		r := l.recipes[i]
		return &r, nil
	}
	for i := range l.recipes {
		if l.recipes[i].Name == id {
			r := l.recipes[i]
			return &r, nil
		}
	}
	return nil, errors.NotFoundf("recipe %q not found", id)
}

// Len reports how many recipes are currently loaded.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.recipes)
}
