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

// ExternalServicePostgresRepository implements [ExternalServiceRepository].
type ExternalServicePostgresRepository struct {
	db *pgxpool.Pool
}

// NewExternalServicePostgresRepository constructs a new repository.
func NewExternalServicePostgresRepository(db *pgxpool.Pool) *ExternalServicePostgresRepository {
	return &ExternalServicePostgresRepository{db: db}
}

func (repository *ExternalServicePostgresRepository) ListAll(ctx context.Context) ([]*ExternalService, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s",
		strings.Join(schema.SourceExternalService.Columns(), ", "),
		schema.SourceExternalService.Table,
		schema.SourceExternalService.Slug,
	)
	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_external_services")
	}
	defer rows.Close()

	var services []*ExternalService
	for rows.Next() {
		service, err := scanExternalService(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "list_external_services")
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

func (repository *ExternalServicePostgresRepository) GetByID(ctx context.Context, id string) (*ExternalService, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.SourceExternalService.Columns(), ", "),
		schema.SourceExternalService.Table,
		schema.SourceExternalService.ID,
	)
	row := repository.db.QueryRow(ctx, query, id)
	service, err := scanExternalService(row)
	if err != nil {
		return nil, dberr.Wrap(err, "get_external_service")
	}
	return service, nil
}

func (repository *ExternalServicePostgresRepository) GetBySlug(ctx context.Context, slug string) (*ExternalService, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.SourceExternalService.Columns(), ", "),
		schema.SourceExternalService.Table,
		schema.SourceExternalService.Slug,
	)
	row := repository.db.QueryRow(ctx, query, slug)
	service, err := scanExternalService(row)
	if err != nil {
		return nil, dberr.Wrap(err, "get_external_service")
	}
	return service, nil
}

func (repository *ExternalServicePostgresRepository) Create(ctx context.Context, service *ExternalService) error {
	service.ID = uuid.New()
	now := time.Now().UTC()
	service.CreatedAt, service.UpdatedAt = now, now

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		schema.SourceExternalService.Table,
		strings.Join(schema.SourceExternalService.Columns(), ", "),
	)
	_, err := repository.db.Exec(ctx, query,
		service.ID, service.Slug, service.Kind, service.Name,
		service.BaseURL, service.URLPattern, service.CreatedAt, service.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_external_service")
	}
	return nil
}

func (repository *ExternalServicePostgresRepository) Update(ctx context.Context, service *ExternalService) error {
	service.UpdatedAt = time.Now().UTC()
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $1",
		schema.SourceExternalService.Table,
		schema.SourceExternalService.Name, schema.SourceExternalService.BaseURL,
		schema.SourceExternalService.URLPattern, schema.SourceExternalService.UpdatedAt,
		schema.SourceExternalService.Kind, schema.SourceExternalService.ID,
	)
	cmd, err := repository.db.Exec(ctx, query,
		service.ID, service.Name, service.BaseURL, service.URLPattern, service.UpdatedAt, service.Kind,
	)
	if err != nil {
		return dberr.Wrap(err, "update_external_service")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *ExternalServicePostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.SourceExternalService.Table, schema.SourceExternalService.ID)
	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_external_service")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanExternalService(row scannable) (*ExternalService, error) {
	var service ExternalService
	err := row.Scan(
		&service.ID, &service.Slug, &service.Kind, &service.Name,
		&service.BaseURL, &service.URLPattern, &service.CreatedAt, &service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}
