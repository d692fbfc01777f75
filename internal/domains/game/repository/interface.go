package repository

import (
	"context"

	"gameportal-backend/internal/domains/game/model"

	"github.com/google/uuid"
)

// Repository is the data access contract for games.
type Repository interface {
	// CreateWithTags inserts the game and its tag associations in one
	// transaction.
	CreateWithTags(ctx context.Context, game *model.Game, tagIDs []uuid.UUID) error

	// ExistsBySlug reports whether any game already uses slug.
	// The importer treats a hit as a hard per-row failure, never an upsert.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	GetBySlug(ctx context.Context, slug string) (*model.Game, error)
	List(ctx context.Context, filter model.ListFilter) ([]model.Game, int, error)
	Popular(ctx context.Context, limit int) ([]model.Game, error)
	Newest(ctx context.Context, limit int) ([]model.Game, error)
	Update(ctx context.Context, game *model.Game, tagIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementPlayCount(ctx context.Context, id uuid.UUID) error
}
