package service

import (
	"context"

	"gameportal-backend/internal/domains/tag"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service is the business logic contract for tags.
type Service interface {
	Create(ctx context.Context, name string) (*tag.Tag, error)
	List(ctx context.Context) ([]tag.Tag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tagService struct {
	repo tag.Repository
}

func NewTagService(repo tag.Repository) Service {
	return &tagService{repo: repo}
}

func (s *tagService) Create(ctx context.Context, name string) (*tag.Tag, error) {
	created, err := s.repo.Create(ctx, tag.New(name))
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("tag_id", created.ID.String()).
		Str("slug", created.Slug).
		Msg("Created tag")

	return created, nil
}

func (s *tagService) List(ctx context.Context) ([]tag.Tag, error) {
	return s.repo.List(ctx)
}

func (s *tagService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
