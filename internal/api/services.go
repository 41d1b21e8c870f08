package api

import (
	"github.com/takibiapp/takibi-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Instance   *service.InstanceService
	Checklist  *service.ChecklistService
	Template   *service.TemplateService
	Category   *service.CategoryService
	Recipe     *service.RecipeService
	Suggestion *service.SuggestionService
	Backup     *service.BackupService
}
