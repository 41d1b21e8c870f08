package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/takibiapp/takibi-server/internal/service"
)

func (s *Server) registerInstanceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getInstance",
		Method:      http.MethodGet,
		Path:        "/api/v1/instance",
		Summary:     "Get server instance",
		Description: "Returns server identity as advertised over mDNS",
		Tags:        []string{"Instance"},
	}, s.handleGetInstance)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateInstance",
		Method:      http.MethodPatch,
		Path:        "/api/v1/instance",
		Summary:     "Update server instance",
		Description: "Updates server settings such as the display name",
		Tags:        []string{"Instance"},
	}, s.handleUpdateInstance)
}

// InstanceResponse contains server instance data in API responses.
type InstanceResponse struct {
	ID        string    `json:"id" doc:"Instance ID"`
	Name      string    `json:"name" doc:"Server display name"`
	Version   string    `json:"version" doc:"Server version"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// InstanceOutput wraps the instance response for Huma.
type InstanceOutput struct {
	Body InstanceResponse
}

// UpdateInstanceRequest is the request body for updating instance settings.
type UpdateInstanceRequest struct {
	Name *string `json:"name,omitempty" doc:"Server display name"`
}

// UpdateInstanceInput wraps the update instance request for Huma.
type UpdateInstanceInput struct {
	Body UpdateInstanceRequest
}

func (s *Server) handleGetInstance(ctx context.Context, _ *struct{}) (*InstanceOutput, error) {
	instance, err := s.services.Instance.GetInstance(ctx)
	if err != nil {
		return nil, err
	}

	return &InstanceOutput{
		Body: InstanceResponse{
			ID:        instance.ID,
			Name:      instance.Name,
			Version:   instance.Version,
			CreatedAt: instance.CreatedAt,
			UpdatedAt: instance.UpdatedAt,
		},
	}, nil
}

func (s *Server) handleUpdateInstance(ctx context.Context, input *UpdateInstanceInput) (*InstanceOutput, error) {
	instance, err := s.services.Instance.UpdateInstanceSettings(ctx, &service.InstanceUpdate{
		Name: input.Body.Name,
	})
	if err != nil {
		return nil, err
	}

	return &InstanceOutput{
		Body: InstanceResponse{
			ID:        instance.ID,
			Name:      instance.Name,
			Version:   instance.Version,
			CreatedAt: instance.CreatedAt,
			UpdatedAt: instance.UpdatedAt,
		},
	}, nil
}
