package category

import (
	"time"

	"gameportal-backend/internal/shared/utils"

	"github.com/google/uuid"
)

// Category is a taxonomy entity for the portal catalog.
// Games reference it by name (plain string column), not by foreign key;
// the entity itself backs the category browse pages and the admin CRUD.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New builds a category with a freshly derived slug.
func New(name string) *Category {
	now := time.Now()
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      utils.GenerateSlug(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
