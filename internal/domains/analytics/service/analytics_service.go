package service

import (
	"context"
	"time"

	"gameportal-backend/internal/domains/analytics"
	gameRepo "gameportal-backend/internal/domains/game/repository"
	"gameportal-backend/pkg/cache"

	"github.com/rs/zerolog/log"
)

const (
	summaryCacheKey = "analytics:summary"
	summaryCacheTTL = 5 * time.Minute

	summaryDays     = 14
	summaryTopLimit = 10
)

// Service is the business logic contract for play analytics.
type Service interface {
	// RecordPlay logs a play event for the game behind slug and bumps
	// its denormalized play counter.
	RecordPlay(ctx context.Context, slug string) error

	// Summary returns the admin dashboard aggregates, cached briefly so
	// dashboard refreshes do not hammer the event table.
	Summary(ctx context.Context) (*analytics.Summary, error)
}

type analyticsService struct {
	events analytics.Repository
	games  gameRepo.Repository
	cache  cache.Cache
}

func NewAnalyticsService(events analytics.Repository, games gameRepo.Repository, c cache.Cache) Service {
	return &analyticsService{events: events, games: games, cache: c}
}

func (s *analyticsService) RecordPlay(ctx context.Context, slug string) error {
	game, err := s.games.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.games.IncrementPlayCount(ctx, game.ID); err != nil {
		return err
	}

	if err := s.events.Record(ctx, game.ID); err != nil {
		// The counter is already bumped; losing one event row is
		// acceptable, failing the play request is not.
		log.Warn().Err(err).Str("slug", slug).Msg("Failed to record play event")
	}

	return nil
}

func (s *analyticsService) Summary(ctx context.Context) (*analytics.Summary, error) {
	var cached analytics.Summary
	if found, err := s.cache.Get(ctx, summaryCacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	total, err := s.events.TotalPlays(ctx)
	if err != nil {
		return nil, err
	}

	byDay, err := s.events.PlaysByDay(ctx, summaryDays)
	if err != nil {
		return nil, err
	}

	topGames, err := s.events.TopGames(ctx, summaryTopLimit)
	if err != nil {
		return nil, err
	}

	summary := &analytics.Summary{
		TotalPlays: total,
		PlaysByDay: byDay,
		TopGames:   topGames,
	}

	if err := s.cache.Set(ctx, summaryCacheKey, summary, summaryCacheTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache analytics summary")
	}

	return summary, nil
}
