package service

import (
	"context"
	"fmt"
	"time"

	"gameportal-backend/internal/domains/game/model"
	"gameportal-backend/internal/domains/game/repository"
	"gameportal-backend/internal/domains/tag"
	"gameportal-backend/internal/shared/utils"
	"gameportal-backend/pkg/cache"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// gameListCacheTTL bounds staleness of the public catalog pages.
const gameListCacheTTL = 5 * time.Minute

type gameService struct {
	games repository.Repository
	tags  tag.Repository
	cache cache.Cache
}

func NewGameService(games repository.Repository, tags tag.Repository, cacheClient cache.Cache) GameServiceInterface {
	return &gameService{games: games, tags: tags, cache: cacheClient}
}

type cachedGameList struct {
	Games []model.Game `json:"games"`
	Total int          `json:"total"`
}

func (s *gameService) List(ctx context.Context, filter model.ListFilter) ([]model.Game, int, error) {
	key := fmt.Sprintf("games:list:%s:%s:%d:%d", filter.CategoryName, filter.TagSlug, filter.Page, filter.Limit)

	var cached cachedGameList
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached.Games, cached.Total, nil
	}

	games, total, err := s.games.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if err := s.cache.Set(ctx, key, cachedGameList{Games: games, Total: total}, gameListCacheTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache game list")
	}

	return games, total, nil
}

func (s *gameService) Popular(ctx context.Context, limit int) ([]model.Game, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	key := fmt.Sprintf("games:popular:%d", limit)
	var cached []model.Game
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	games, err := s.games.Popular(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, games, gameListCacheTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache popular games")
	}

	return games, nil
}

func (s *gameService) Newest(ctx context.Context, limit int) ([]model.Game, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	key := fmt.Sprintf("games:new:%d", limit)
	var cached []model.Game
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	games, err := s.games.Newest(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, games, gameListCacheTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache newest games")
	}

	return games, nil
}

func (s *gameService) GetBySlug(ctx context.Context, slug string) (*model.Game, error) {
	return s.games.GetBySlug(ctx, slug)
}

func (s *gameService) Create(ctx context.Context, req model.CreateGameRequest) (*model.Game, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateTitleSlug(req.Title)
	}

	exists, err := s.games.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateSlug
	}

	categoryName := req.CategoryName
	if categoryName == "" {
		categoryName = model.SentinelCategory
	}

	instructions := req.Instructions
	if instructions == "" {
		instructions = model.DefaultInstructions
	}

	tagIDs, err := s.resolveTagIDs(ctx, req.TagNames)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	game := &model.Game{
		ID:           uuid.New(),
		Title:        req.Title,
		Slug:         slug,
		Description:  req.Description,
		Instructions: instructions,
		Thumbnail:    req.Thumbnail,
		GameURL:      req.GameURL,
		CategoryName: categoryName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.games.CreateWithTags(ctx, game, tagIDs); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)

	log.Info().
		Str("game_id", game.ID.String()).
		Str("slug", game.Slug).
		Msg("Created game")

	return s.games.GetBySlug(ctx, game.Slug)
}

func (s *gameService) Update(ctx context.Context, id uuid.UUID, req model.UpdateGameRequest) (*model.Game, error) {
	categoryName := req.CategoryName
	if categoryName == "" {
		categoryName = model.SentinelCategory
	}

	instructions := req.Instructions
	if instructions == "" {
		instructions = model.DefaultInstructions
	}

	tagIDs, err := s.resolveTagIDs(ctx, req.TagNames)
	if err != nil {
		return nil, err
	}

	game := &model.Game{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Instructions: instructions,
		Thumbnail:    req.Thumbnail,
		GameURL:      req.GameURL,
		CategoryName: categoryName,
		UpdatedAt:    time.Now(),
	}

	if err := s.games.Update(ctx, game, tagIDs); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)

	return game, nil
}

func (s *gameService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.games.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListings(ctx)
	return nil
}

// resolveTagIDs finds or creates every named tag. Admin CRUD is strict here,
// unlike the importer's degrade-to-partial behavior.
func (s *gameService) resolveTagIDs(ctx context.Context, names []string) ([]uuid.UUID, error) {
	names = dedupe(names)
	if len(names) == 0 {
		return nil, nil
	}

	slugs := make([]string, len(names))
	for i, name := range names {
		slugs[i] = utils.GenerateSlug(name)
	}

	existing, err := s.tags.FindByNamesOrSlugs(ctx, names, slugs)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(existing)*2)
	for _, t := range existing {
		known[t.Name] = true
		known[t.Slug] = true
	}

	var toCreate []*tag.Tag
	for i, name := range names {
		if !known[name] && !known[slugs[i]] {
			toCreate = append(toCreate, tag.New(name))
		}
	}

	if len(toCreate) > 0 {
		if err := s.tags.CreateBatchSkipDuplicates(ctx, toCreate); err != nil {
			return nil, err
		}
		existing, err = s.tags.FindByNamesOrSlugs(ctx, names, slugs)
		if err != nil {
			return nil, err
		}
	}

	tagIDs := make([]uuid.UUID, 0, len(existing))
	for _, t := range existing {
		tagIDs = append(tagIDs, t.ID)
	}

	return tagIDs, nil
}

func (s *gameService) invalidateListings(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "games:*"); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate game list cache")
	}
}
