// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tagtype

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yomira/mediacore/internal/platform/database/schema"
	"github.com/yomira/mediacore/internal/platform/dberr"
	"github.com/yomira/mediacore/pkg/uuid"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListAll(ctx context.Context) ([]*TagType, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s ASC",
		strings.Join(schema.TagTypeTagType.Columns(), ", "),
		schema.TagTypeTagType.Table,
		schema.TagTypeTagType.Slug,
	)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tag_types")
	}
	defer rows.Close()

	var result []*TagType
	for rows.Next() {
		t := &TagType{}
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.Kana); err != nil {
			return nil, dberr.Wrap(err, "scan_tag_type")
		}
		result = append(result, t)
	}
	return result, nil
}

func (repository *PostgresRepository) GetByID(ctx context.Context, id string) (*TagType, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.TagTypeTagType.Columns(), ", "),
		schema.TagTypeTagType.Table,
		schema.TagTypeTagType.ID,
	)

	t := &TagType{}
	err := repository.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Slug, &t.Name, &t.Kana)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tag_type")
	}
	return t, nil
}

func (repository *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*TagType, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.TagTypeTagType.Columns(), ", "),
		schema.TagTypeTagType.Table,
		schema.TagTypeTagType.Slug,
	)

	t := &TagType{}
	err := repository.db.QueryRow(ctx, query, slug).Scan(&t.ID, &t.Slug, &t.Name, &t.Kana)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tag_type_by_slug")
	}
	return t, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, t *TagType) error {
	t.ID = uuid.New()

	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)",
		schema.TagTypeTagType.Table,
		schema.TagTypeTagType.ID, schema.TagTypeTagType.Slug, schema.TagTypeTagType.Name, schema.TagTypeTagType.Kana,
	)

	_, err := repository.db.Exec(ctx, query, t.ID, t.Slug, t.Name, t.Kana)
	if err != nil {
		return dberr.Wrap(err, "create_tag_type")
	}
	return nil
}

func (repository *PostgresRepository) Update(ctx context.Context, t *TagType) error {
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1",
		schema.TagTypeTagType.Table,
		schema.TagTypeTagType.Name, schema.TagTypeTagType.Kana, schema.TagTypeTagType.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, t.ID, t.Name, t.Kana)
	if err != nil {
		return dberr.Wrap(err, "update_tag_type")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.TagTypeTagType.Table, schema.TagTypeTagType.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_tag_type")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
