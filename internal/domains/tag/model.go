package tag

import (
	"time"

	"gameportal-backend/internal/shared/utils"

	"github.com/google/uuid"
)

// Tag labels games (e.g. "hot", "multiplayer"). Many tags per game via the
// game_tags join table.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New builds a tag with a freshly derived slug.
func New(name string) *Tag {
	now := time.Now()
	return &Tag{
		ID:        uuid.New(),
		Name:      name,
		Slug:      utils.GenerateSlug(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
