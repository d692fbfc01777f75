package tag

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for tags.
type Repository interface {
	Create(ctx context.Context, entity *Tag) (*Tag, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	List(ctx context.Context) ([]Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByNamesOrSlugs returns every tag whose name matches one of names
	// or whose slug matches one of slugs, in one query.
	FindByNamesOrSlugs(ctx context.Context, names, slugs []string) ([]Tag, error)

	// CreateBatchSkipDuplicates inserts the given tags in one statement,
	// silently skipping rows that would violate the slug uniqueness
	// constraint (INSERT ... ON CONFLICT DO NOTHING).
	CreateBatchSkipDuplicates(ctx context.Context, tags []*Tag) error
}
