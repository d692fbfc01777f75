package repository

import (
	"context"
	"fmt"

	"gameportal-backend/internal/domains/analytics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) analytics.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Record(ctx context.Context, gameID uuid.UUID) error {
	const query = `INSERT INTO play_events (id, game_id, created_at) VALUES ($1, $2, NOW())`

	if _, err := r.pool.Exec(ctx, query, uuid.New(), gameID); err != nil {
		return fmt.Errorf("failed to record play event: %w", err)
	}
	return nil
}

func (r *postgresRepository) TotalPlays(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM play_events`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count play events: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) PlaysByDay(ctx context.Context, days int) ([]analytics.DailyPlays, error) {
	const query = `
		SELECT date_trunc('day', created_at) AS day, COUNT(*) AS plays
		FROM play_events
		WHERE created_at >= NOW() - ($1 || ' days')::interval
		GROUP BY day
		ORDER BY day`

	rows, err := r.pool.Query(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query plays by day: %w", err)
	}
	defer rows.Close()

	var result []analytics.DailyPlays
	for rows.Next() {
		var d analytics.DailyPlays
		if err := rows.Scan(&d.Day, &d.Plays); err != nil {
			return nil, fmt.Errorf("failed to scan daily plays: %w", err)
		}
		result = append(result, d)
	}

	return result, rows.Err()
}

func (r *postgresRepository) TopGames(ctx context.Context, limit int) ([]analytics.GamePlays, error) {
	const query = `
		SELECT g.id, g.title, g.slug, COUNT(e.id) AS plays
		FROM play_events e
		JOIN games g ON g.id = e.game_id
		GROUP BY g.id, g.title, g.slug
		ORDER BY plays DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top games: %w", err)
	}
	defer rows.Close()

	var result []analytics.GamePlays
	for rows.Next() {
		var g analytics.GamePlays
		if err := rows.Scan(&g.GameID, &g.Title, &g.Slug, &g.Plays); err != nil {
			return nil, fmt.Errorf("failed to scan game plays: %w", err)
		}
		result = append(result, g)
	}

	return result, rows.Err()
}
