package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/takibiapp/takibi-server/internal/config"
	"github.com/takibiapp/takibi-server/internal/domain"
	domainerrors "github.com/takibiapp/takibi-server/internal/errors"
	"github.com/takibiapp/takibi-server/internal/store"
)

// InstanceService handles the singleton server identity record.
type InstanceService struct {
	store   *store.Store
	logger  *slog.Logger
	config  *config.Config
	version string
}

// NewInstanceService creates a new instance service.
func NewInstanceService(store *store.Store, logger *slog.Logger, config *config.Config, version string) *InstanceService {
	return &InstanceService{
		store:   store,
		logger:  logger,
		config:  config,
		version: version,
	}
}

// GetInstance retrieves the server instance record.
func (s *InstanceService) GetInstance(ctx context.Context) (*domain.Instance, error) {
	instance, err := s.store.GetInstance(ctx)
	if err != nil {
		if errors.Is(err, store.ErrInstanceNotFound) {
			return nil, domainerrors.NotFound("instance record not found").WithCause(err)
		}
		return nil, fmt.Errorf("failed to get instance: %w", err)
	}
	return instance, nil
}

// InitializeInstance ensures a server instance record exists.
// This is the main entry point for instance setup on first run.
func (s *InstanceService) InitializeInstance(ctx context.Context) (*domain.Instance, error) {
	instance, err := s.store.InitializeInstance(ctx, s.config.Server.Name, s.version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize instance: %w", err)
	}
	return instance, nil
}

// InstanceUpdate contains optional fields for updating instance settings.
type InstanceUpdate struct {
	Name *string
}

// UpdateInstanceSettings updates mutable instance fields.
// Only non-nil fields are applied. Returns the updated instance.
func (s *InstanceService) UpdateInstanceSettings(ctx context.Context, update *InstanceUpdate) (*domain.Instance, error) {
	instance, err := s.GetInstance(ctx)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if *update.Name == "" {
			return nil, domainerrors.Validation("server name cannot be empty")
		}
		instance.Name = *update.Name
	}

	if err := s.store.UpdateInstance(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to update instance: %w", err)
	}

	s.logger.Info("instance settings updated",
		"instance_id", instance.ID,
		"name", instance.Name,
	)
	return instance, nil
}
