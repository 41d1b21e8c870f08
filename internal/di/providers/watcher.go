package providers

import (
	"context"
	"os"

	"github.com/samber/do/v2"

	"github.com/takibiapp/takibi-server/internal/config"
	"github.com/takibiapp/takibi-server/internal/logger"
	"github.com/takibiapp/takibi-server/internal/service"
	"github.com/takibiapp/takibi-server/internal/watcher"
)

// FileWatcherHandle wraps the recipe directory watcher with shutdown capability.
type FileWatcherHandle struct {
	watcher *watcher.Watcher
	cancel  context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *FileWatcherHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
	}
	if h.watcher != nil {
		return h.watcher.Stop()
	}
	return nil
}

// ProvideFileWatcher provides the recipe directory watcher. Changes on disk
// trigger a library reload and search reindex without a restart.
func ProvideFileWatcher(i do.Injector) (*FileWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	recipeService := do.MustInvoke[*service.RecipeService](i)

	onChange := func() {
		if err := recipeService.ReloadLibrary(context.Background()); err != nil {
			log.Error("Recipe library reload failed", "error", err)
		}
	}

	w, err := watcher.New(log.Logger, onChange, watcher.Options{})
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(cfg.Data.RecipesPath); statErr != nil {
		// No recipe directory yet. Not fatal, just nothing to watch.
		log.Warn("Recipe directory not watchable", "path", cfg.Data.RecipesPath, "error", statErr)
		_ = w.Stop() //nolint:errcheck // Watcher was never started
		return &FileWatcherHandle{}, nil
	}

	if err := w.Watch(cfg.Data.RecipesPath); err != nil {
		_ = w.Stop() //nolint:errcheck // Watcher was never started
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := w.Start(ctx); err != nil {
			log.Error("File watcher stopped unexpectedly", "error", err)
		}
	}()

	return &FileWatcherHandle{watcher: w, cancel: cancel}, nil
}
