package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/takibiapp/takibi-server/internal/config"
	"github.com/takibiapp/takibi-server/internal/logger"
	"github.com/takibiapp/takibi-server/internal/recipe"
	"github.com/takibiapp/takibi-server/internal/search"
	"github.com/takibiapp/takibi-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.RecipeIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewRecipeIndex(search.Options{
		DataPath: cfg.SearchIndexPath(),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{RecipeIndex: index}, nil
}

// TriggerSearchReindexIfNeeded rebuilds the index when it is empty but
// recipes exist. Should be called after all services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	recipeService := do.MustInvoke[*service.RecipeService](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	lib := do.MustInvoke[*recipe.Library](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := indexHandle.DocumentCount()
	if docCount > 0 || lib.Len() == 0 {
		return
	}

	log.Info("Search index is empty but recipes exist, triggering initial reindex",
		"recipe_count", lib.Len(),
	)

	go func() {
		if err := recipeService.ReindexAll(context.Background()); err != nil {
			log.Error("Initial search reindex failed", "error", err)
			return
		}
		count, _ := indexHandle.DocumentCount()
		log.Info("Initial search reindex completed", "documents", count)
	}()
}
