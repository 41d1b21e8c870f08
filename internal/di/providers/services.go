package providers

import (
	"github.com/samber/do/v2"

	"github.com/takibiapp/takibi-server/internal/config"
	"github.com/takibiapp/takibi-server/internal/logger"
	"github.com/takibiapp/takibi-server/internal/recipe"
	"github.com/takibiapp/takibi-server/internal/service"
)

// ProvideInstanceService provides the server identity service.
func ProvideInstanceService(i do.Injector) (*service.InstanceService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewInstanceService(storeHandle.Store, log.Logger, cfg, serverVersion), nil
}

// ProvideChecklistService provides the checklist service.
func ProvideChecklistService(i do.Injector) (*service.ChecklistService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewChecklistService(storeHandle.Store, log.Logger), nil
}

// ProvideTemplateService provides the template service.
func ProvideTemplateService(i do.Injector) (*service.TemplateService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewTemplateService(storeHandle.Store, log.Logger), nil
}

// ProvideCategoryService provides the category service.
func ProvideCategoryService(i do.Injector) (*service.CategoryService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewCategoryService(storeHandle.Store, log.Logger), nil
}

// ProvideRecipeService provides the recipe service.
func ProvideRecipeService(i do.Injector) (*service.RecipeService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	lib := do.MustInvoke[*recipe.Library](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	return service.NewRecipeService(lib, storeHandle.Store, indexHandle.RecipeIndex, log.Logger), nil
}

// ProvideSuggestionService provides the AI suggestion service.
func ProvideSuggestionService(i do.Injector) (*service.SuggestionService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	recipeService := do.MustInvoke[*service.RecipeService](i)
	validator := do.MustInvoke[*recipe.Validator](i)
	clientHandle := do.MustInvoke[*SuggestClientHandle](i)

	// A typed nil would read as enabled, so only pass a live client.
	var suggester service.Suggester
	if clientHandle.Client != nil {
		suggester = clientHandle.Client
	}

	return service.NewSuggestionService(suggester, recipeService, validator, log.Logger), nil
}

// ProvideBackupService provides the backup service.
func ProvideBackupService(i do.Injector) (*service.BackupService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewBackupService(storeHandle.Store, log.Logger), nil
}
