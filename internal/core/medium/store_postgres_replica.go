// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package medium

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yomira/mediacore/internal/platform/apperr"
	"github.com/yomira/mediacore/internal/platform/database/schema"
	"github.com/yomira/mediacore/internal/platform/dberr"
	"github.com/yomira/mediacore/pkg/uuid"
)

// ReplicaPostgresRepository implements [ReplicaRepository] over pgx.
type ReplicaPostgresRepository struct {
	pool *pgxpool.Pool
}

// NewReplicaPostgresRepository constructs a PostgreSQL backed Replica Store.
func NewReplicaPostgresRepository(pool *pgxpool.Pool) *ReplicaPostgresRepository {
	return &ReplicaPostgresRepository{pool: pool}
}

func (repository *ReplicaPostgresRepository) Create(ctx context.Context, mediumID string, displayOrder int) (*Replica, error) {
	id := uuid.New()
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, '', $4, NOW(), NOW())
	`,
		schema.MediumReplica.Table, schema.MediumReplica.ID, schema.MediumReplica.MediumID, schema.MediumReplica.DisplayOrder,
		schema.MediumReplica.Status, schema.MediumReplica.CreatedAt, schema.MediumReplica.UpdatedAt)

	if _, err := repository.pool.Exec(ctx, query, id, mediumID, displayOrder, ReplicaStatusProcessing); err != nil {
		return nil, dberr.Wrap(err, "create replica")
	}
	return repository.FetchByID(ctx, id)
}

const replicaSelect = `SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s,
	t.%s, t.%s, t.%s, t.%s, t.%s
	FROM %s r
	LEFT JOIN %s t ON t.%s = r.%s`

func (repository *ReplicaPostgresRepository) selectQuery(where string) string {
	base := fmt.Sprintf(replicaSelect,
		"r."+schema.MediumReplica.ID, "r."+schema.MediumReplica.MediumID, "r."+schema.MediumReplica.DisplayOrder, "r."+schema.MediumReplica.OriginalURL,
		"r."+schema.MediumReplica.MimeType, "r."+schema.MediumReplica.Width, "r."+schema.MediumReplica.Height, "r."+schema.MediumReplica.Status,
		"r."+schema.MediumReplica.CreatedAt, "r."+schema.MediumReplica.UpdatedAt,
		schema.MediumThumbnail.ID, schema.MediumThumbnail.Width, schema.MediumThumbnail.Height, schema.MediumThumbnail.CreatedAt, schema.MediumThumbnail.UpdatedAt,
		schema.MediumReplica.Table,
		schema.MediumThumbnail.Table, schema.MediumThumbnail.ID, schema.MediumReplica.ThumbnailID,
	)
	return base + " " + where
}

func scanReplica(row interface {
	Scan(dest ...any) error
}) (*Replica, error) {
	replica := &Replica{}
	var mimeType *string
	var width, height *int
	var thumbnailID *string
	var thumbWidth, thumbHeight *int
	var thumbCreatedAt, thumbUpdatedAt *time.Time

	err := row.Scan(
		&replica.ID, &replica.MediumID, &replica.DisplayOrder, &replica.OriginalURL,
		&mimeType, &width, &height, &replica.Status, &replica.CreatedAt, &replica.UpdatedAt,
		&thumbnailID, &thumbWidth, &thumbHeight, &thumbCreatedAt, &thumbUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "scan replica")
	}

	replica.MimeType = mimeType
	if width != nil && height != nil {
		replica.Size = &Size{Width: *width, Height: *height}
	}
	if thumbnailID != nil {
		replica.Thumbnail = &Thumbnail{
			ID:        *thumbnailID,
			Size:      Size{Width: *thumbWidth, Height: *thumbHeight},
			CreatedAt: *thumbCreatedAt,
			UpdatedAt: *thumbUpdatedAt,
		}
	}
	return replica, nil
}

func (repository *ReplicaPostgresRepository) FetchByID(ctx context.Context, id string) (*Replica, error) {
	query := repository.selectQuery(fmt.Sprintf("WHERE r.%s = $1", schema.MediumReplica.ID))
	replica, err := scanReplica(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if replica == nil {
		return nil, apperr.ReplicaNotFound(id)
	}
	return replica, nil
}

func (repository *ReplicaPostgresRepository) FetchByIDs(ctx context.Context, ids []string) ([]Replica, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := repository.selectQuery(fmt.Sprintf("WHERE r.%s = ANY($1)", schema.MediumReplica.ID))
	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch replicas")
	}
	defer rows.Close()

	byID := make(map[string]Replica)
	for rows.Next() {
		replica, err := scanReplica(rows)
		if err != nil {
			return nil, err
		}
		byID[replica.ID] = *replica
	}

	result := make([]Replica, 0, len(ids))
	for _, id := range ids {
		if replica, ok := byID[id]; ok {
			result = append(result, replica)
		}
	}
	return result, nil
}

func (repository *ReplicaPostgresRepository) FetchByOriginalURL(ctx context.Context, originalURL string) (*Replica, error) {
	query := repository.selectQuery(fmt.Sprintf("WHERE r.%s = $1", schema.MediumReplica.OriginalURL))
	return scanReplica(repository.pool.QueryRow(ctx, query, originalURL))
}

func (repository *ReplicaPostgresRepository) UpdateByID(ctx context.Context, id string, update ReplicaUpdate) (*Replica, error) {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", schema.MediumReplica.Table, schema.MediumReplica.UpdatedAt))
	var args []any
	argID := 1

	if thumbnail, ok := update.Thumbnail.Get(); ok {
		if thumbnail == nil {
			builder.WriteString(fmt.Sprintf(", %s = NULL", schema.MediumReplica.ThumbnailID))
		} else {
			builder.WriteString(fmt.Sprintf(", %s = $%d", schema.MediumReplica.ThumbnailID, argID))
			args = append(args, thumbnail.ID)
			argID++
		}
	}
	if originalURL, ok := update.OriginalURL.Get(); ok {
		builder.WriteString(fmt.Sprintf(", %s = $%d", schema.MediumReplica.OriginalURL, argID))
		args = append(args, originalURL)
		argID++
	}
	if originalImage, ok := update.OriginalImage.Get(); ok {
		if originalImage == nil {
			builder.WriteString(fmt.Sprintf(", %s = NULL, %s = NULL, %s = NULL", schema.MediumReplica.MimeType, schema.MediumReplica.Width, schema.MediumReplica.Height))
		} else {
			builder.WriteString(fmt.Sprintf(", %s = $%d, %s = $%d, %s = $%d",
				schema.MediumReplica.MimeType, argID, schema.MediumReplica.Width, argID+1, schema.MediumReplica.Height, argID+2))
			args = append(args, originalImage.MimeType, originalImage.Size.Width, originalImage.Size.Height)
			argID += 3
		}
	}
	if status, ok := update.Status.Get(); ok {
		builder.WriteString(fmt.Sprintf(", %s = $%d", schema.MediumReplica.Status, argID))
		args = append(args, status)
		argID++
	}

	builder.WriteString(fmt.Sprintf(" WHERE %s = $%d", schema.MediumReplica.ID, argID))
	args = append(args, id)

	result, err := repository.pool.Exec(ctx, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "update replica")
	}
	if result.RowsAffected() == 0 {
		return nil, apperr.ReplicaNotFound(id)
	}

	return repository.FetchByID(ctx, id)
}

func (repository *ReplicaPostgresRepository) DeleteByID(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.MediumReplica.Table, schema.MediumReplica.ID)
	result, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete replica")
	}
	if result.RowsAffected() == 0 {
		return apperr.ReplicaNotFound(id)
	}
	return nil
}
