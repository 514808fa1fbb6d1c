// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yomira/mediacore/internal/platform/database/schema"
	"github.com/yomira/mediacore/internal/platform/dberr"
	"github.com/yomira/mediacore/pkg/uuid"
)

// SourcePostgresRepository implements [SourceRepository]. Reads always
// join the owning external service, since a bare Source without its
// service's Kind cannot be rendered into a URL.
type SourcePostgresRepository struct {
	db *pgxpool.Pool
}

// NewSourcePostgresRepository constructs a new repository.
func NewSourcePostgresRepository(db *pgxpool.Pool) *SourcePostgresRepository {
	return &SourcePostgresRepository{db: db}
}

const sourceSelectJoin = `SELECT s.%s, s.%s, s.%s, s.%s, s.%s, es.%s, es.%s, es.%s, es.%s, es.%s, es.%s, es.%s, es.%s
FROM %s s JOIN %s es ON es.%s = s.%s`

func (repository *SourcePostgresRepository) GetByID(ctx context.Context, id string) (*Source, error) {
	query := fmt.Sprintf(sourceSelectJoin+" WHERE s.%s = $1",
		schema.SourceSource.ID, schema.SourceSource.ExternalServiceID, schema.SourceSource.ExternalMetadata,
		schema.SourceSource.CreatedAt, schema.SourceSource.UpdatedAt,
		schema.SourceExternalService.ID, schema.SourceExternalService.Slug, schema.SourceExternalService.Kind,
		schema.SourceExternalService.Name, schema.SourceExternalService.BaseURL, schema.SourceExternalService.URLPattern,
		schema.SourceExternalService.CreatedAt, schema.SourceExternalService.UpdatedAt,
		schema.SourceSource.Table, schema.SourceExternalService.Table,
		schema.SourceExternalService.ID, schema.SourceSource.ExternalServiceID,
		schema.SourceSource.ID,
	)
	row := repository.db.QueryRow(ctx, query, id)
	source, err := scanSource(row)
	if err != nil {
		return nil, dberr.Wrap(err, "get_source")
	}
	return source, nil
}

func (repository *SourcePostgresRepository) ListByExternalServiceID(ctx context.Context, externalServiceID string) ([]*Source, error) {
	query := fmt.Sprintf(sourceSelectJoin+" WHERE s.%s = $1 ORDER BY s.%s",
		schema.SourceSource.ID, schema.SourceSource.ExternalServiceID, schema.SourceSource.ExternalMetadata,
		schema.SourceSource.CreatedAt, schema.SourceSource.UpdatedAt,
		schema.SourceExternalService.ID, schema.SourceExternalService.Slug, schema.SourceExternalService.Kind,
		schema.SourceExternalService.Name, schema.SourceExternalService.BaseURL, schema.SourceExternalService.URLPattern,
		schema.SourceExternalService.CreatedAt, schema.SourceExternalService.UpdatedAt,
		schema.SourceSource.Table, schema.SourceExternalService.Table,
		schema.SourceExternalService.ID, schema.SourceSource.ExternalServiceID,
		schema.SourceSource.ExternalServiceID,
		schema.SourceSource.CreatedAt,
	)
	rows, err := repository.db.Query(ctx, query, externalServiceID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sources")
	}
	defer rows.Close()

	var sources []*Source
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "list_sources")
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}

func (repository *SourcePostgresRepository) Create(ctx context.Context, entity *Source) error {
	entity.ID = uuid.New()
	now := time.Now().UTC()
	entity.CreatedAt, entity.UpdatedAt = now, now

	raw, err := MarshalExternalMetadata(entity.ExternalMetadata)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)",
		schema.SourceSource.Table,
		strings.Join(schema.SourceSource.Columns(), ", "),
	)
	_, err = repository.db.Exec(ctx, query, entity.ID, entity.ExternalServiceID, raw, entity.CreatedAt, entity.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_source")
	}
	return nil
}

func (repository *SourcePostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.SourceSource.Table, schema.SourceSource.ID)
	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_source")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func scanSource(row scannable) (*Source, error) {
	var (
		source  Source
		service ExternalService
		raw     []byte
	)
	err := row.Scan(
		&source.ID, &source.ExternalServiceID, &raw, &source.CreatedAt, &source.UpdatedAt,
		&service.ID, &service.Slug, &service.Kind, &service.Name,
		&service.BaseURL, &service.URLPattern, &service.CreatedAt, &service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	metadata, err := UnmarshalExternalMetadata(raw)
	if err != nil {
		return nil, err
	}
	source.ExternalMetadata = metadata
	source.ExternalService = service
	return &source, nil
}
