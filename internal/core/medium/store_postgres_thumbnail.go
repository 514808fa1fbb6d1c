// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package medium

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yomira/mediacore/internal/platform/apperr"
	"github.com/yomira/mediacore/internal/platform/database/schema"
	"github.com/yomira/mediacore/internal/platform/dberr"
)

// ThumbnailPostgresRepository implements [ThumbnailRepository] over pgx.
type ThumbnailPostgresRepository struct {
	pool *pgxpool.Pool
}

// NewThumbnailPostgresRepository constructs a PostgreSQL backed Thumbnail Store.
func NewThumbnailPostgresRepository(pool *pgxpool.Pool) *ThumbnailPostgresRepository {
	return &ThumbnailPostgresRepository{pool: pool}
}

// Create inserts the dimension row for a thumbnail whose bytes the
// caller has already written to the object repository under id.
func (repository *ThumbnailPostgresRepository) Create(ctx context.Context, id string, size Size) (*Thumbnail, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
	`, schema.MediumThumbnail.Table, schema.MediumThumbnail.ID, schema.MediumThumbnail.Width, schema.MediumThumbnail.Height, schema.MediumThumbnail.CreatedAt, schema.MediumThumbnail.UpdatedAt)

	if _, err := repository.pool.Exec(ctx, query, id, size.Width, size.Height); err != nil {
		return nil, dberr.Wrap(err, "create thumbnail")
	}
	return repository.FetchByID(ctx, id)
}

func (repository *ThumbnailPostgresRepository) FetchByID(ctx context.Context, id string) (*Thumbnail, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1
	`, schema.MediumThumbnail.ID, schema.MediumThumbnail.Width, schema.MediumThumbnail.Height, schema.MediumThumbnail.CreatedAt, schema.MediumThumbnail.UpdatedAt,
		schema.MediumThumbnail.Table, schema.MediumThumbnail.ID)

	thumbnail := &Thumbnail{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&thumbnail.ID, &thumbnail.Size.Width, &thumbnail.Size.Height, &thumbnail.CreatedAt, &thumbnail.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.ThumbnailNotFound(id)
		}
		return nil, dberr.Wrap(err, "fetch thumbnail")
	}
	return thumbnail, nil
}

func (repository *ThumbnailPostgresRepository) DeleteByID(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.MediumThumbnail.Table, schema.MediumThumbnail.ID)
	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete thumbnail")
	}
	if result.RowsAffected() == 0 {
		return apperr.ThumbnailNotFound(id)
	}
	return nil
}
