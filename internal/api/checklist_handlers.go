package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/takibiapp/takibi-server/internal/domain"
	"github.com/takibiapp/takibi-server/internal/service"
)

func (s *Server) registerChecklistRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listChecklists",
		Method:      http.MethodGet,
		Path:        "/api/v1/checklists",
		Summary:     "List checklists",
		Description: "Returns all checklists",
		Tags:        []string{"Checklists"},
	}, s.handleListChecklists)

	huma.Register(s.api, huma.Operation{
		OperationID: "createChecklist",
		Method:      http.MethodPost,
		Path:        "/api/v1/checklists",
		Summary:     "Create checklist",
		Description: "Creates a new checklist, optionally from a template",
		Tags:        []string{"Checklists"},
	}, s.handleCreateChecklist)

	huma.Register(s.api, huma.Operation{
		OperationID: "getChecklist",
		Method:      http.MethodGet,
		Path:        "/api/v1/checklists/{id}",
		Summary:     "Get checklist",
		Description: "Returns a checklist by ID",
		Tags:        []string{"Checklists"},
	}, s.handleGetChecklist)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateChecklist",
		Method:      http.MethodPatch,
		Path:        "/api/v1/checklists/{id}",
		Summary:     "Update checklist",
		Description: "Updates checklist name or note",
		Tags:        []string{"Checklists"},
	}, s.handleUpdateChecklist)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteChecklist",
		Method:      http.MethodDelete,
		Path:        "/api/v1/checklists/{id}",
		Summary:     "Delete checklist",
		Description: "Deletes a checklist",
		Tags:        []string{"Checklists"},
	}, s.handleDeleteChecklist)

	huma.Register(s.api, huma.Operation{
		OperationID: "addChecklistItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/checklists/{id}/items",
		Summary:     "Add checklist item",
		Description: "Appends one item to a checklist",
		Tags:        []string{"Checklists"},
	}, s.handleAddChecklistItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "setChecklistItemChecked",
		Method:      http.MethodPatch,
		Path:        "/api/v1/checklists/{id}/items/{itemID}",
		Summary:     "Check or uncheck item",
		Description: "Sets the checked state of a checklist item",
		Tags:        []string{"Checklists"},
	}, s.handleSetChecklistItemChecked)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeChecklistItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/checklists/{id}/items/{itemID}",
		Summary:     "Remove checklist item",
		Description: "Removes one item from a checklist",
		Tags:        []string{"Checklists"},
	}, s.handleRemoveChecklistItem)
}

// === DTOs ===

// ChecklistItemResponse contains one checklist line in API responses.
type ChecklistItemResponse struct {
	ID         string `json:"id" doc:"Item ID"`
	Name       string `json:"name" doc:"Item name"`
	CategoryID string `json:"category_id,omitempty" doc:"Owning category ID"`
	Checked    bool   `json:"checked" doc:"Whether the item is packed"`
	Note       string `json:"note,omitempty" doc:"Free-form note"`
}

// ChecklistResponse contains checklist data in API responses.
type ChecklistResponse struct {
	ID           string                  `json:"id" doc:"Checklist ID"`
	Name         string                  `json:"name" doc:"Checklist name"`
	Note         string                  `json:"note,omitempty" doc:"Free-form note"`
	Items        []ChecklistItemResponse `json:"items" doc:"Checklist items"`
	CheckedCount int                     `json:"checked_count" doc:"Number of checked items"`
	TotalCount   int                     `json:"total_count" doc:"Total number of items"`
	CreatedAt    time.Time               `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time               `json:"updated_at" doc:"Last update time"`
}

// ListChecklistsResponse contains a list of checklists.
type ListChecklistsResponse struct {
	Checklists []ChecklistResponse `json:"checklists" doc:"List of checklists"`
}

// ListChecklistsOutput wraps the list checklists response for Huma.
type ListChecklistsOutput struct {
	Body ListChecklistsResponse
}

// CreateChecklistRequest is the request body for creating a checklist.
type CreateChecklistRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100" doc:"Checklist name"`
	Note       string `json:"note,omitempty" validate:"omitempty,max=500" doc:"Free-form note"`
	TemplateID string `json:"template_id,omitempty" doc:"Template to copy items from"`
}

// CreateChecklistInput wraps the create checklist request for Huma.
type CreateChecklistInput struct {
	Body CreateChecklistRequest
}

// ChecklistOutput wraps the checklist response for Huma.
type ChecklistOutput struct {
	Body ChecklistResponse
}

// ChecklistIDInput contains the checklist path parameter.
type ChecklistIDInput struct {
	ID string `path:"id" doc:"Checklist ID"`
}

// UpdateChecklistRequest is the request body for updating a checklist.
type UpdateChecklistRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100" doc:"Checklist name"`
	Note *string `json:"note,omitempty" validate:"omitempty,max=500" doc:"Free-form note"`
}

// UpdateChecklistInput wraps the update checklist request for Huma.
type UpdateChecklistInput struct {
	ID   string `path:"id" doc:"Checklist ID"`
	Body UpdateChecklistRequest
}

// AddChecklistItemRequest is the request body for adding an item.
type AddChecklistItemRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=100" doc:"Item name"`
	CategoryID string `json:"category_id,omitempty" doc:"Owning category ID"`
	Note       string `json:"note,omitempty" validate:"omitempty,max=500" doc:"Free-form note"`
}

// AddChecklistItemInput wraps the add item request for Huma.
type AddChecklistItemInput struct {
	ID   string `path:"id" doc:"Checklist ID"`
	Body AddChecklistItemRequest
}

// SetItemCheckedRequest is the request body for toggling an item.
type SetItemCheckedRequest struct {
	Checked bool `json:"checked" doc:"Desired checked state"`
}

// SetItemCheckedInput wraps the toggle request for Huma.
type SetItemCheckedInput struct {
	ID     string `path:"id" doc:"Checklist ID"`
	ItemID string `path:"itemID" doc:"Item ID"`
	Body   SetItemCheckedRequest
}

// ChecklistItemIDInput contains checklist and item path parameters.
type ChecklistItemIDInput struct {
	ID     string `path:"id" doc:"Checklist ID"`
	ItemID string `path:"itemID" doc:"Item ID"`
}

func checklistToResponse(c *domain.Checklist) ChecklistResponse {
	items := make([]ChecklistItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = ChecklistItemResponse{
			ID:         item.ID,
			Name:       item.Name,
			CategoryID: item.CategoryID,
			Checked:    item.Checked,
			Note:       item.Note,
		}
	}

	checked, total := c.Progress()

	return ChecklistResponse{
		ID:           c.ID,
		Name:         c.Name,
		Note:         c.Note,
		Items:        items,
		CheckedCount: checked,
		TotalCount:   total,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleListChecklists(ctx context.Context, _ *struct{}) (*ListChecklistsOutput, error) {
	checklists, err := s.services.Checklist.ListChecklists(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ChecklistResponse, len(checklists))
	for i, c := range checklists {
		resp[i] = checklistToResponse(c)
	}

	return &ListChecklistsOutput{Body: ListChecklistsResponse{Checklists: resp}}, nil
}

func (s *Server) handleCreateChecklist(ctx context.Context, input *CreateChecklistInput) (*ChecklistOutput, error) {
	c, err := s.services.Checklist.CreateChecklist(ctx, service.CreateChecklistRequest{
		Name:       input.Body.Name,
		Note:       input.Body.Note,
		TemplateID: input.Body.TemplateID,
	})
	if err != nil {
		return nil, err
	}

	return &ChecklistOutput{Body: checklistToResponse(c)}, nil
}

func (s *Server) handleGetChecklist(ctx context.Context, input *ChecklistIDInput) (*ChecklistOutput, error) {
	c, err := s.services.Checklist.GetChecklist(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ChecklistOutput{Body: checklistToResponse(c)}, nil
}

func (s *Server) handleUpdateChecklist(ctx context.Context, input *UpdateChecklistInput) (*ChecklistOutput, error) {
	c, err := s.services.Checklist.UpdateChecklist(ctx, input.ID, service.UpdateChecklistRequest{
		Name: input.Body.Name,
		Note: input.Body.Note,
	})
	if err != nil {
		return nil, err
	}

	return &ChecklistOutput{Body: checklistToResponse(c)}, nil
}

func (s *Server) handleDeleteChecklist(ctx context.Context, input *ChecklistIDInput) (*MessageOutput, error) {
	if err := s.services.Checklist.DeleteChecklist(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Checklist deleted"}}, nil
}

func (s *Server) handleAddChecklistItem(ctx context.Context, input *AddChecklistItemInput) (*ChecklistOutput, error) {
	c, err := s.services.Checklist.AddItem(ctx, input.ID, service.AddItemRequest{
		Name:       input.Body.Name,
		CategoryID: input.Body.CategoryID,
		Note:       input.Body.Note,
	})
	if err != nil {
		return nil, err
	}

	return &ChecklistOutput{Body: checklistToResponse(c)}, nil
}

func (s *Server) handleSetChecklistItemChecked(ctx context.Context, input *SetItemCheckedInput) (*ChecklistOutput, error) {
	c, err := s.services.Checklist.SetItemChecked(ctx, input.ID, input.ItemID, input.Body.Checked)
	if err != nil {
		return nil, err
	}

	return &ChecklistOutput{Body: checklistToResponse(c)}, nil
}

func (s *Server) handleRemoveChecklistItem(ctx context.Context, input *ChecklistItemIDInput) (*ChecklistOutput, error) {
	c, err := s.services.Checklist.RemoveItem(ctx, input.ID, input.ItemID)
	if err != nil {
		return nil, err
	}

	return &ChecklistOutput{Body: checklistToResponse(c)}, nil
}
