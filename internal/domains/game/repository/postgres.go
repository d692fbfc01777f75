package repository

import (
	"context"
	"errors"
	"fmt"

	"gameportal-backend/internal/domains/game/model"
	"gameportal-backend/internal/domains/tag"
	"gameportal-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const gameColumns = `id, title, slug, description, instructions, thumbnail, game_url, category_name, play_count, created_at, updated_at`

func scanGame(row pgx.Row) (*model.Game, error) {
	g := &model.Game{}
	err := row.Scan(
		&g.ID, &g.Title, &g.Slug, &g.Description, &g.Instructions,
		&g.Thumbnail, &g.GameURL, &g.CategoryName, &g.PlayCount,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *postgresRepository) CreateWithTags(ctx context.Context, game *model.Game, tagIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
			INSERT INTO games (` + gameColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

		_, err := tx.Exec(ctx, query,
			game.ID, game.Title, game.Slug, game.Description, game.Instructions,
			game.Thumbnail, game.GameURL, game.CategoryName, game.PlayCount,
			game.CreatedAt, game.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return model.ErrDuplicateSlug
			}
			return fmt.Errorf("failed to insert game: %w", err)
		}

		for _, tagID := range tagIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO game_tags (game_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				game.ID, tagID,
			)
			if err != nil {
				return fmt.Errorf("failed to link tag: %w", err)
			}
		}

		return nil
	})
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM games WHERE slug = $1)`, slug,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Game, error) {
	const query = `SELECT ` + gameColumns + ` FROM games WHERE slug = $1`

	g, err := scanGame(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	tags, err := r.tagsForGame(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.Tags = tags

	return g, nil
}

func (r *postgresRepository) tagsForGame(ctx context.Context, gameID uuid.UUID) ([]tag.Tag, error) {
	const query = `
		SELECT t.id, t.name, t.slug, t.created_at, t.updated_at
		FROM tags t
		JOIN game_tags gt ON gt.tag_id = t.id
		WHERE gt.game_id = $1
		ORDER BY t.name`

	rows, err := r.pool.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game tags: %w", err)
	}
	defer rows.Close()

	var tags []tag.Tag
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Game, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}

	if filter.CategoryName != "" {
		args = append(args, filter.CategoryName)
		where += fmt.Sprintf(" AND g.category_name = $%d", len(args))
	}
	if filter.TagSlug != "" {
		args = append(args, filter.TagSlug)
		where += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM game_tags gt
			JOIN tags t ON t.id = gt.tag_id
			WHERE gt.game_id = g.id AND t.slug = $%d)`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM games g`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count games: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	args = append(args, limit, (page-1)*limit)
	query := `SELECT ` + prefixedGameColumns() + ` FROM games g` + where +
		fmt.Sprintf(` ORDER BY g.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	games, err := r.queryGames(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return games, total, nil
}

func (r *postgresRepository) Popular(ctx context.Context, limit int) ([]model.Game, error) {
	query := `SELECT ` + prefixedGameColumns() + ` FROM games g ORDER BY g.play_count DESC, g.created_at DESC LIMIT $1`
	return r.queryGames(ctx, query, limit)
}

func (r *postgresRepository) Newest(ctx context.Context, limit int) ([]model.Game, error) {
	query := `SELECT ` + prefixedGameColumns() + ` FROM games g ORDER BY g.created_at DESC LIMIT $1`
	return r.queryGames(ctx, query, limit)
}

func prefixedGameColumns() string {
	return `g.id, g.title, g.slug, g.description, g.instructions, g.thumbnail, g.game_url, g.category_name, g.play_count, g.created_at, g.updated_at`
}

func (r *postgresRepository) queryGames(ctx context.Context, query string, args ...interface{}) ([]model.Game, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		var g model.Game
		err := rows.Scan(
			&g.ID, &g.Title, &g.Slug, &g.Description, &g.Instructions,
			&g.Thumbnail, &g.GameURL, &g.CategoryName, &g.PlayCount,
			&g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *postgresRepository) Update(ctx context.Context, game *model.Game, tagIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
			UPDATE games
			SET title = $2, description = $3, instructions = $4, thumbnail = $5,
			    game_url = $6, category_name = $7, updated_at = $8
			WHERE id = $1`

		cmdTag, err := tx.Exec(ctx, query,
			game.ID, game.Title, game.Description, game.Instructions,
			game.Thumbnail, game.GameURL, game.CategoryName, game.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update game: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return model.ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM game_tags WHERE game_id = $1`, game.ID); err != nil {
			return fmt.Errorf("failed to clear game tags: %w", err)
		}
		for _, tagID := range tagIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO game_tags (game_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				game.ID, tagID,
			)
			if err != nil {
				return fmt.Errorf("failed to link tag: %w", err)
			}
		}

		return nil
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *postgresRepository) IncrementPlayCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE games SET play_count = play_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment play count: %w", err)
	}
	return nil
}
