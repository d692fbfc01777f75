package service

import (
	"context"
	"time"

	"gameportal-backend/internal/domains/category"
	"gameportal-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type categoryService struct {
	repo category.Repository
}

func NewCategoryService(repo category.Repository) category.Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req category.CreateCategoryRequest) (*category.Category, error) {
	entity := category.New(req.Name)

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("category_id", created.ID.String()).
		Str("slug", created.Slug).
		Msg("Created category")

	return created, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *categoryService) List(ctx context.Context) ([]category.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req category.UpdateCategoryRequest) (*category.Category, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entity.Name = req.Name
	entity.Slug = utils.GenerateSlug(req.Name)
	entity.UpdatedAt = time.Now()

	return s.repo.Update(ctx, entity)
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
