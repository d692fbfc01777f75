package service

import (
	"context"
	"mime/multipart"

	"gameportal-backend/internal/domains/game/model"

	"github.com/google/uuid"
)

// GameServiceInterface defines catalog and admin game operations.
type GameServiceInterface interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.Game, int, error)
	Popular(ctx context.Context, limit int) ([]model.Game, error)
	Newest(ctx context.Context, limit int) ([]model.Game, error)
	GetBySlug(ctx context.Context, slug string) (*model.Game, error)
	Create(ctx context.Context, req model.CreateGameRequest) (*model.Game, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateGameRequest) (*model.Game, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BulkImportServiceInterface defines the CSV bulk import operations.
type BulkImportServiceInterface interface {
	// ImportGames processes a CSV upload and creates games row by row.
	// Request-level failures return a *model.PreconditionError; row-level
	// failures never surface as errors, only in the result report.
	ImportGames(ctx context.Context, file *multipart.FileHeader) (*model.ImportResult, error)

	// TemplateCSV returns the downloadable example file operators model
	// correct input on.
	TemplateCSV() []byte
}
