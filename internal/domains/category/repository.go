package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for categories.
type Repository interface {
	Create(ctx context.Context, entity *Category) (*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)

	// FindByNameOrSlug resolves a category by exact (case-sensitive) name
	// or by slug. Returns ErrNotFound when neither matches.
	// This is the lookup the bulk importer uses.
	FindByNameOrSlug(ctx context.Context, name, slug string) (*Category, error)

	List(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, entity *Category) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
