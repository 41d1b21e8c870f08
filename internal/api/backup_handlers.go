package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/takibiapp/takibi-server/internal/service"
)

func (s *Server) registerBackupRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "exportBackup",
		Method:      http.MethodGet,
		Path:        "/api/v1/backup",
		Summary:     "Export backup",
		Description: "Exports checklists, templates, categories, and saved recipes as one JSON blob",
		Tags:        []string{"Backup"},
	}, s.handleExportBackup)

	huma.Register(s.api, huma.Operation{
		OperationID: "importBackup",
		Method:      http.MethodPost,
		Path:        "/api/v1/backup",
		Summary:     "Import backup",
		Description: "Merges a backup into the store. Existing entities are skipped, never overwritten",
		Tags:        []string{"Backup"},
	}, s.handleImportBackup)
}

// === DTOs ===

// BackupOutput wraps the backup export for Huma.
type BackupOutput struct {
	Body service.Backup
}

// ImportBackupInput wraps the import request for Huma.
type ImportBackupInput struct {
	Body service.Backup
}

// ImportBackupOutput wraps the import result for Huma.
type ImportBackupOutput struct {
	Body service.ImportResult
}

// === Handlers ===

func (s *Server) handleExportBackup(ctx context.Context, _ *struct{}) (*BackupOutput, error) {
	b, err := s.services.Backup.Export(ctx)
	if err != nil {
		return nil, err
	}

	return &BackupOutput{Body: *b}, nil
}

func (s *Server) handleImportBackup(ctx context.Context, input *ImportBackupInput) (*ImportBackupOutput, error) {
	b := input.Body
	result, err := s.services.Backup.Import(ctx, &b)
	if err != nil {
		return nil, err
	}

	return &ImportBackupOutput{Body: *result}, nil
}
