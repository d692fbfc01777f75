package repository

import (
	"context"
	"errors"
	"fmt"

	"gameportal-backend/internal/domains/tag"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) tag.Repository {
	return &postgresRepository{pool: pool}
}

const tagColumns = `id, name, slug, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, entity *tag.Tag) (*tag.Tag, error) {
	const query = `
		INSERT INTO tags (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + tagColumns

	created := &tag.Tag{}
	err := r.pool.QueryRow(ctx, query,
		entity.ID, entity.Name, entity.Slug, entity.CreatedAt, entity.UpdatedAt,
	).Scan(&created.ID, &created.Name, &created.Slug, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, tag.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	const query = `SELECT ` + tagColumns + ` FROM tags WHERE id = $1`

	t := &tag.Tag{}
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tag.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return t, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]tag.Tag, error) {
	const query = `SELECT ` + tagColumns + ` FROM tags ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return tag.ErrNotFound
	}
	return nil
}

func (r *postgresRepository) FindByNamesOrSlugs(ctx context.Context, names, slugs []string) ([]tag.Tag, error) {
	if len(names) == 0 && len(slugs) == 0 {
		return nil, nil
	}

	const query = `
		SELECT ` + tagColumns + `
		FROM tags
		WHERE name = ANY($1) OR slug = ANY($2)`

	rows, err := r.pool.Query(ctx, query, names, slugs)
	if err != nil {
		return nil, fmt.Errorf("failed to find tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// CreateBatchSkipDuplicates relies on ON CONFLICT DO NOTHING so concurrent
// imports racing on the same tag name cannot fail the batch.
func (r *postgresRepository) CreateBatchSkipDuplicates(ctx context.Context, tags []*tag.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	const query = `
		INSERT INTO tags (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO NOTHING`

	for _, t := range tags {
		batch.Queue(query, t.ID, t.Name, t.Slug, t.CreatedAt, t.UpdatedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range tags {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to batch insert tags: %w", err)
		}
	}

	return nil
}

func scanTags(rows pgx.Rows) ([]tag.Tag, error) {
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
