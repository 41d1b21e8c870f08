package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/takibiapp/takibi-server/internal/domain"
	"github.com/takibiapp/takibi-server/internal/service"
)

func (s *Server) registerTemplateRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTemplates",
		Method:      http.MethodGet,
		Path:        "/api/v1/templates",
		Summary:     "List templates",
		Description: "Returns all checklist templates",
		Tags:        []string{"Templates"},
	}, s.handleListTemplates)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTemplate",
		Method:      http.MethodPost,
		Path:        "/api/v1/templates",
		Summary:     "Create template",
		Description: "Creates a new checklist template",
		Tags:        []string{"Templates"},
	}, s.handleCreateTemplate)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTemplate",
		Method:      http.MethodGet,
		Path:        "/api/v1/templates/{id}",
		Summary:     "Get template",
		Description: "Returns a template by ID",
		Tags:        []string{"Templates"},
	}, s.handleGetTemplate)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTemplate",
		Method:      http.MethodPatch,
		Path:        "/api/v1/templates/{id}",
		Summary:     "Update template",
		Description: "Updates a template",
		Tags:        []string{"Templates"},
	}, s.handleUpdateTemplate)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTemplate",
		Method:      http.MethodDelete,
		Path:        "/api/v1/templates/{id}",
		Summary:     "Delete template",
		Description: "Deletes a template",
		Tags:        []string{"Templates"},
	}, s.handleDeleteTemplate)
}

// === DTOs ===

// TemplateItemPayload is one template line in requests and responses.
type TemplateItemPayload struct {
	Name       string `json:"name" validate:"required,min=1,max=100" doc:"Item name"`
	CategoryID string `json:"category_id,omitempty" doc:"Owning category ID"`
	Note       string `json:"note,omitempty" validate:"omitempty,max=500" doc:"Free-form note"`
}

// TemplateResponse contains template data in API responses.
type TemplateResponse struct {
	ID          string                `json:"id" doc:"Template ID"`
	Name        string                `json:"name" doc:"Template name"`
	Description string                `json:"description,omitempty" doc:"Template description"`
	Items       []TemplateItemPayload `json:"items" doc:"Template items"`
	IsSystem    bool                  `json:"is_system" doc:"Whether the template ships with the server"`
	CreatedAt   time.Time             `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time             `json:"updated_at" doc:"Last update time"`
}

// ListTemplatesResponse contains a list of templates.
type ListTemplatesResponse struct {
	Templates []TemplateResponse `json:"templates" doc:"List of templates"`
}

// ListTemplatesOutput wraps the list templates response for Huma.
type ListTemplatesOutput struct {
	Body ListTemplatesResponse
}

// CreateTemplateRequest is the request body for creating a template.
type CreateTemplateRequest struct {
	Name        string                `json:"name" validate:"required,min=1,max=100" doc:"Template name"`
	Description string                `json:"description,omitempty" validate:"omitempty,max=500" doc:"Template description"`
	Items       []TemplateItemPayload `json:"items,omitempty" doc:"Template items"`
}

// CreateTemplateInput wraps the create template request for Huma.
type CreateTemplateInput struct {
	Body CreateTemplateRequest
}

// TemplateOutput wraps the template response for Huma.
type TemplateOutput struct {
	Body TemplateResponse
}

// TemplateIDInput contains the template path parameter.
type TemplateIDInput struct {
	ID string `path:"id" doc:"Template ID"`
}

// UpdateTemplateRequest is the request body for updating a template.
type UpdateTemplateRequest struct {
	Name        *string               `json:"name,omitempty" validate:"omitempty,min=1,max=100" doc:"Template name"`
	Description *string               `json:"description,omitempty" validate:"omitempty,max=500" doc:"Template description"`
	Items       []TemplateItemPayload `json:"items,omitempty" doc:"Replacement item list"`
}

// UpdateTemplateInput wraps the update template request for Huma.
type UpdateTemplateInput struct {
	ID   string `path:"id" doc:"Template ID"`
	Body UpdateTemplateRequest
}

func templateItemRequests(items []TemplateItemPayload) []service.TemplateItemRequest {
	out := make([]service.TemplateItemRequest, len(items))
	for i, item := range items {
		out[i] = service.TemplateItemRequest{
			Name:       item.Name,
			CategoryID: item.CategoryID,
			Note:       item.Note,
		}
	}
	return out
}

func templateToResponse(t *domain.Template) TemplateResponse {
	items := make([]TemplateItemPayload, len(t.Items))
	for i, item := range t.Items {
		items[i] = TemplateItemPayload{
			Name:       item.Name,
			CategoryID: item.CategoryID,
			Note:       item.Note,
		}
	}

	return TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Items:       items,
		IsSystem:    t.IsSystem,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleListTemplates(ctx context.Context, _ *struct{}) (*ListTemplatesOutput, error) {
	templates, err := s.services.Template.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		resp[i] = templateToResponse(t)
	}

	return &ListTemplatesOutput{Body: ListTemplatesResponse{Templates: resp}}, nil
}

func (s *Server) handleCreateTemplate(ctx context.Context, input *CreateTemplateInput) (*TemplateOutput, error) {
	t, err := s.services.Template.CreateTemplate(ctx, service.CreateTemplateRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Items:       templateItemRequests(input.Body.Items),
	})
	if err != nil {
		return nil, err
	}

	return &TemplateOutput{Body: templateToResponse(t)}, nil
}

func (s *Server) handleGetTemplate(ctx context.Context, input *TemplateIDInput) (*TemplateOutput, error) {
	t, err := s.services.Template.GetTemplate(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &TemplateOutput{Body: templateToResponse(t)}, nil
}

func (s *Server) handleUpdateTemplate(ctx context.Context, input *UpdateTemplateInput) (*TemplateOutput, error) {
	req := service.UpdateTemplateRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
	}
	if input.Body.Items != nil {
		req.Items = templateItemRequests(input.Body.Items)
	}

	t, err := s.services.Template.UpdateTemplate(ctx, input.ID, req)
	if err != nil {
		return nil, err
	}

	return &TemplateOutput{Body: templateToResponse(t)}, nil
}

func (s *Server) handleDeleteTemplate(ctx context.Context, input *TemplateIDInput) (*MessageOutput, error) {
	if err := s.services.Template.DeleteTemplate(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Template deleted"}}, nil
}
