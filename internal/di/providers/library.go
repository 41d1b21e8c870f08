package providers

import (
	"github.com/samber/do/v2"

	"github.com/takibiapp/takibi-server/internal/config"
	"github.com/takibiapp/takibi-server/internal/logger"
	"github.com/takibiapp/takibi-server/internal/recipe"
)

// ProvideRecipeValidator provides the recipe schema validator.
func ProvideRecipeValidator(i do.Injector) (*recipe.Validator, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return recipe.NewValidator(log.Logger), nil
}

// ProvideRecipeLibrary provides the bundled recipe library, loaded from disk.
// A missing recipe directory is not fatal: the server still serves
// checklists, and the watcher picks up files that appear later.
func ProvideRecipeLibrary(i do.Injector) (*recipe.Library, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	validator := do.MustInvoke[*recipe.Validator](i)

	lib := recipe.NewLibrary(cfg.Data.RecipesPath, validator, log.Logger)
	if err := lib.Load(); err != nil {
		log.Warn("Recipe library unavailable", "path", cfg.Data.RecipesPath, "error", err)
		return lib, nil
	}

	log.Info("Recipe library loaded", "path", cfg.Data.RecipesPath, "recipes", lib.Len())
	return lib, nil
}
