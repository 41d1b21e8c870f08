// Package di provides dependency injection configuration for the Takibi server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/takibiapp/takibi-server/internal/config"
	"github.com/takibiapp/takibi-server/internal/di/providers"
	"github.com/takibiapp/takibi-server/internal/logger"
	"github.com/takibiapp/takibi-server/internal/recipe"
	"github.com/takibiapp/takibi-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Recipe library layer
	do.Provide(injector, providers.ProvideRecipeValidator)
	do.Provide(injector, providers.ProvideRecipeLibrary)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// AI layer
	do.Provide(injector, providers.ProvideSuggestClient)

	// Business services
	do.Provide(injector, providers.ProvideInstanceService)
	do.Provide(injector, providers.ProvideChecklistService)
	do.Provide(injector, providers.ProvideTemplateService)
	do.Provide(injector, providers.ProvideCategoryService)
	do.Provide(injector, providers.ProvideRecipeService)
	do.Provide(injector, providers.ProvideSuggestionService)
	do.Provide(injector, providers.ProvideBackupService)

	// Workers
	do.Provide(injector, providers.ProvideFileWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*recipe.Validator](injector)
	_ = do.MustInvoke[*recipe.Library](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*providers.SuggestClientHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.InstanceService](injector)
	_ = do.MustInvoke[*service.ChecklistService](injector)
	_ = do.MustInvoke[*service.TemplateService](injector)
	_ = do.MustInvoke[*service.CategoryService](injector)
	_ = do.MustInvoke[*service.RecipeService](injector)
	_ = do.MustInvoke[*service.SuggestionService](injector)
	_ = do.MustInvoke[*service.BackupService](injector)

	// Workers
	_ = do.MustInvoke[*providers.FileWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	// Trigger search reindex if needed
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
