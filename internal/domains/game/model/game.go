package model

import (
	"errors"
	"time"

	"gameportal-backend/internal/domains/tag"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const (
	// SentinelCategory is the fallback category name used when a game has no
	// resolvable category or category resolution fails.
	SentinelCategory = "uncategorized"

	// DefaultInstructions is stored when a game comes without play instructions.
	DefaultInstructions = "No instructions provided."
)

// Game is an embeddable browser game in the portal catalog.
//
// CategoryName is a plain string column, not a foreign key: every game has
// exactly one category name, defaulting to SentinelCategory. Tags attach
// many-to-many through the game_tags join table.
type Game struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Instructions string    `json:"instructions"`
	Thumbnail    string    `json:"thumbnail"`
	GameURL      string    `json:"game_url"`
	CategoryName string    `json:"category_name"`
	Tags         []tag.Tag `json:"tags,omitempty"`
	PlayCount    int64     `json:"play_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrNotFound      = errors.New("game not found")
	ErrDuplicateSlug = errors.New("game slug already exists")
)

// ========================================
// ADMIN CRUD DTOs
// ========================================

type CreateGameRequest struct {
	Title        string   `json:"title"`
	Slug         string   `json:"slug,omitempty"`
	Description  string   `json:"description"`
	Instructions string   `json:"instructions,omitempty"`
	Thumbnail    string   `json:"thumbnail"`
	GameURL      string   `json:"game_url"`
	CategoryName string   `json:"category_name,omitempty"`
	TagNames     []string `json:"tags,omitempty"`
}

func (r CreateGameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
		),
		validation.Field(&r.Thumbnail,
			validation.Required.Error("thumbnail is required"),
		),
		validation.Field(&r.GameURL,
			validation.Required.Error("game_url is required"),
			is.URL.Error("game_url must be a valid URL"),
		),
	)
}

type UpdateGameRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Instructions string   `json:"instructions,omitempty"`
	Thumbnail    string   `json:"thumbnail"`
	GameURL      string   `json:"game_url"`
	CategoryName string   `json:"category_name,omitempty"`
	TagNames     []string `json:"tags,omitempty"`
}

func (r UpdateGameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Thumbnail, validation.Required),
		validation.Field(&r.GameURL, validation.Required, is.URL),
	)
}

// ListFilter narrows public catalog queries.
type ListFilter struct {
	CategoryName string
	TagSlug      string
	Page         int
	Limit        int
}
