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

	"github.com/yomira/mediacore/internal/core/source"
	"github.com/yomira/mediacore/internal/core/tag"
	"github.com/yomira/mediacore/internal/core/tagtype"
	"github.com/yomira/mediacore/internal/platform/apperr"
	"github.com/yomira/mediacore/internal/platform/database/schema"
	"github.com/yomira/mediacore/internal/platform/dberr"
	"github.com/yomira/mediacore/pkg/keyset"
	"github.com/yomira/mediacore/pkg/uuid"
)

// MediaPostgresRepository implements [MediaRepository] over pgx. It
// composes the tag, tagtype, and source repositories to hydrate a
// medium's associations, following the teacher's "aggregate pattern
// where sub-resources are managed through the main repository
// instance" (store_postgres_comic.go).
type MediaPostgresRepository struct {
	pool     *pgxpool.Pool
	tags     tag.Repository
	tagTypes tagtype.Repository
	sources  source.SourceRepository
}

// NewMediaPostgresRepository constructs a PostgreSQL backed Media Store.
func NewMediaPostgresRepository(pool *pgxpool.Pool, tags tag.Repository, tagTypes tagtype.Repository, sources source.SourceRepository) *MediaPostgresRepository {
	return &MediaPostgresRepository{pool: pool, tags: tags, tagTypes: tagTypes, sources: sources}
}

func (repository *MediaPostgresRepository) Create(ctx context.Context, sourceIDs []string, tags []TagAttachment, depth tag.Depth) (*Medium, error) {
	id := uuid.New()
	now := time.Now().UTC()

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "begin create medium")
	}
	defer transaction.Rollback(ctx)

	insert := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.MediumMedium.Table, schema.MediumMedium.ID, schema.MediumMedium.CreatedAt, schema.MediumMedium.UpdatedAt)
	if _, err := transaction.Exec(ctx, insert, id, now, now); err != nil {
		return nil, dberr.Wrap(err, "create medium")
	}

	if err := repository.replaceSourceJunctionTx(ctx, transaction, id, sourceIDs); err != nil {
		return nil, err
	}
	if err := repository.replaceTagJunctionTx(ctx, transaction, id, tags); err != nil {
		return nil, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "commit create medium")
	}

	hydrated, err := repository.FetchByIDs(ctx, []string{id}, depth, true, true)
	if err != nil {
		return nil, err
	}
	if len(hydrated) == 0 {
		return nil, apperr.MediumNotFound(id)
	}
	return &hydrated[0], nil
}

func (repository *MediaPostgresRepository) FetchByIDs(ctx context.Context, ids []string, depth tag.Depth, includeReplicas, includeSources bool) ([]Medium, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	core, err := repository.fetchCoreRows(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]Medium, 0, len(ids))
	for _, id := range ids {
		medium, ok := core[id]
		if !ok {
			continue
		}
		result = append(result, *medium)
	}
	if err := repository.hydrateAssociations(ctx, result, depth, includeReplicas, includeSources); err != nil {
		return nil, err
	}
	return result, nil
}

func (repository *MediaPostgresRepository) Fetch(ctx context.Context, depth tag.Depth, includeReplicas, includeSources bool, call keyset.StoreCall) ([]Medium, error) {
	ids, err := repository.fetchPagedIDs(ctx, call, "", nil)
	if err != nil {
		return nil, err
	}
	return repository.FetchByIDs(ctx, ids, depth, includeReplicas, includeSources)
}

func (repository *MediaPostgresRepository) FetchBySourceIDs(ctx context.Context, sourceIDs []string, depth tag.Depth, includeReplicas, includeSources bool, call keyset.StoreCall) ([]Medium, error) {
	clause := fmt.Sprintf("m.%s IN (SELECT %s FROM %s WHERE %s = ANY($1))",
		schema.MediumMedium.ID, schema.MediumMediumSource.MediumID, schema.MediumMediumSource.Table, schema.MediumMediumSource.SourceID)
	ids, err := repository.fetchPagedIDs(ctx, call, clause, []any{sourceIDs})
	if err != nil {
		return nil, err
	}
	return repository.FetchByIDs(ctx, ids, depth, includeReplicas, includeSources)
}

func (repository *MediaPostgresRepository) FetchByTagIDs(ctx context.Context, attachments []TagAttachment, depth tag.Depth, includeReplicas, includeSources bool, call keyset.StoreCall) ([]Medium, error) {
	if len(attachments) == 0 {
		return nil, nil
	}

	var orClauses []string
	var args []any
	argID := 1
	for _, attachment := range attachments {
		orClauses = append(orClauses, fmt.Sprintf("(%s = $%d AND %s = $%d)", schema.MediumMediumTag.TagID, argID, schema.MediumMediumTag.TagTypeID, argID+1))
		args = append(args, attachment.TagID, attachment.TagTypeID)
		argID += 2
	}
	clause := fmt.Sprintf("m.%s IN (SELECT %s FROM %s WHERE %s)",
		schema.MediumMedium.ID, schema.MediumMediumTag.MediumID, schema.MediumMediumTag.Table, strings.Join(orClauses, " OR "))

	ids, err := repository.fetchPagedIDs(ctx, call, clause, args)
	if err != nil {
		return nil, err
	}
	return repository.FetchByIDs(ctx, ids, depth, includeReplicas, includeSources)
}

// fetchPagedIDs runs the keyset-paginated core-id query. whereClause, when
// non-empty, is a fully rendered additional filter (referencing the core
// table's alias "m") whose placeholders are numbered starting at $1;
// whereArgs binds them. Cursor and limit placeholders are numbered to
// continue directly after whereArgs.
func (repository *MediaPostgresRepository) fetchPagedIDs(ctx context.Context, call keyset.StoreCall, whereClause string, whereArgs []any) ([]string, error) {
	var builder strings.Builder
	args := append([]any{}, whereArgs...)
	argID := len(whereArgs) + 1

	builder.WriteString(fmt.Sprintf("SELECT m.%s FROM %s m WHERE TRUE", schema.MediumMedium.ID, schema.MediumMedium.Table))
	if whereClause != "" {
		builder.WriteString(" AND " + whereClause)
	}

	if call.Cursor != nil {
		operator := ">"
		if call.Direction == keyset.DirectionBackward {
			operator = "<"
		}
		builder.WriteString(fmt.Sprintf(" AND (m.%s, m.%s) %s ($%d, $%d)", schema.MediumMedium.CreatedAt, schema.MediumMedium.ID, operator, argID, argID+1))
		args = append(args, call.Cursor.CreatedAt, call.Cursor.ID)
		argID += 2
	}

	orderDirection := "ASC"
	if call.Order == keyset.OrderDesc {
		orderDirection = "DESC"
	}
	builder.WriteString(fmt.Sprintf(" ORDER BY m.%s %s, m.%s %s", schema.MediumMedium.CreatedAt, orderDirection, schema.MediumMedium.ID, orderDirection))
	builder.WriteString(fmt.Sprintf(" LIMIT $%d", argID))
	args = append(args, call.Limit)

	rows, err := repository.pool.Query(ctx, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch medium ids")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan medium id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (repository *MediaPostgresRepository) Update(ctx context.Context, id string, addSourceIDs, removeSourceIDs []string, addTags, removeTags []TagAttachment, replicaOrder []string, createdAt *time.Time, depth tag.Depth, includeReplicas, includeSources bool) (*Medium, error) {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "begin update medium")
	}
	defer transaction.Rollback(ctx)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW()", schema.MediumMedium.Table, schema.MediumMedium.UpdatedAt))
	args := []any{}
	argID := 1
	if createdAt != nil {
		builder.WriteString(fmt.Sprintf(", %s = $%d", schema.MediumMedium.CreatedAt, argID))
		args = append(args, *createdAt)
		argID++
	}
	builder.WriteString(fmt.Sprintf(" WHERE %s = $%d", schema.MediumMedium.ID, argID))
	args = append(args, id)

	result, err := transaction.Exec(ctx, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "update medium")
	}
	if result.RowsAffected() == 0 {
		return nil, apperr.MediumNotFound(id)
	}

	if len(removeSourceIDs) > 0 {
		if err := repository.removeSourcesTx(ctx, transaction, id, removeSourceIDs); err != nil {
			return nil, err
		}
	}
	if len(addSourceIDs) > 0 {
		if err := repository.appendSourcesTx(ctx, transaction, id, addSourceIDs); err != nil {
			return nil, err
		}
	}
	if len(removeTags) > 0 {
		if err := repository.removeTagsTx(ctx, transaction, id, removeTags); err != nil {
			return nil, err
		}
	}
	if len(addTags) > 0 {
		if err := repository.appendTagsTx(ctx, transaction, id, addTags); err != nil {
			return nil, err
		}
	}
	if len(replicaOrder) > 0 {
		if err := repository.reorderReplicasTx(ctx, transaction, id, replicaOrder); err != nil {
			return nil, err
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "commit update medium")
	}

	hydrated, err := repository.FetchByIDs(ctx, []string{id}, depth, includeReplicas, includeSources)
	if err != nil {
		return nil, err
	}
	if len(hydrated) == 0 {
		return nil, apperr.MediumNotFound(id)
	}
	return &hydrated[0], nil
}

func (repository *MediaPostgresRepository) Delete(ctx context.Context, id string) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin delete medium")
	}
	defer transaction.Rollback(ctx)

	deleteReplicas := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.MediumReplica.Table, schema.MediumReplica.MediumID)
	if _, err := transaction.Exec(ctx, deleteReplicas, id); err != nil {
		return dberr.Wrap(err, "delete medium replicas")
	}

	deleteTags := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.MediumMediumTag.Table, schema.MediumMediumTag.MediumID)
	if _, err := transaction.Exec(ctx, deleteTags, id); err != nil {
		return dberr.Wrap(err, "delete medium tags")
	}

	deleteSources := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.MediumMediumSource.Table, schema.MediumMediumSource.MediumID)
	if _, err := transaction.Exec(ctx, deleteSources, id); err != nil {
		return dberr.Wrap(err, "delete medium sources")
	}

	deleteMedium := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.MediumMedium.Table, schema.MediumMedium.ID)
	result, err := transaction.Exec(ctx, deleteMedium, id)
	if err != nil {
		return dberr.Wrap(err, "delete medium")
	}
	if result.RowsAffected() == 0 {
		return apperr.MediumNotFound(id)
	}

	return dberr.Wrap(transaction.Commit(ctx), "commit delete medium")
}

// # Internal helpers

func (repository *MediaPostgresRepository) fetchCoreRows(ctx context.Context, ids []string) (map[string]*Medium, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s = ANY($1)",
		schema.MediumMedium.ID, schema.MediumMedium.CreatedAt, schema.MediumMedium.UpdatedAt,
		schema.MediumMedium.Table, schema.MediumMedium.ID)

	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch media")
	}
	defer rows.Close()

	result := make(map[string]*Medium)
	for rows.Next() {
		medium := &Medium{}
		if err := rows.Scan(&medium.ID, &medium.CreatedAt, &medium.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan medium")
		}
		result[medium.ID] = medium
	}
	return result, nil
}

func (repository *MediaPostgresRepository) hydrateAssociations(ctx context.Context, media []Medium, depth tag.Depth, includeReplicas, includeSources bool) error {
	if len(media) == 0 {
		return nil
	}

	ids := make([]string, len(media))
	for index, medium := range media {
		ids[index] = medium.ID
	}

	if includeSources {
		sourceIDsByMedium, err := repository.fetchSourceJunctions(ctx, ids)
		if err != nil {
			return err
		}
		sourceCache := map[string]*source.Source{}
		for index := range media {
			for _, sourceID := range sourceIDsByMedium[media[index].ID] {
				entity, ok := sourceCache[sourceID]
				if !ok {
					fetched, err := repository.sources.GetByID(ctx, sourceID)
					if err != nil {
						return err
					}
					sourceCache[sourceID] = fetched
					entity = fetched
				}
				media[index].Sources = append(media[index].Sources, *entity)
			}
		}
	}

	tagAttachmentsByMedium, err := repository.fetchTagJunctions(ctx, ids)
	if err != nil {
		return err
	}

	var allTagIDs []string
	tagTypeCache := map[string]*tagtype.TagType{}
	for _, attachments := range tagAttachmentsByMedium {
		for _, attachment := range attachments {
			allTagIDs = append(allTagIDs, attachment.TagID)
		}
	}
	tagByID := map[string]tag.Tag{}
	if len(allTagIDs) > 0 {
		hydratedTags, err := repository.tags.FetchByIDs(ctx, dedupe(allTagIDs), depth)
		if err != nil {
			return err
		}
		for _, hydratedTag := range hydratedTags {
			tagByID[hydratedTag.ID] = hydratedTag
		}
	}

	for index := range media {
		groups := make([]TagGroup, 0)
		groupIndex := make(map[string]int)
		for _, attachment := range tagAttachmentsByMedium[media[index].ID] {
			hydratedTag, ok := tagByID[attachment.TagID]
			if !ok {
				continue
			}
			position, seen := groupIndex[attachment.TagTypeID]
			if !seen {
				tagTypeEntity, ok := tagTypeCache[attachment.TagTypeID]
				if !ok {
					fetched, err := repository.tagTypes.GetByID(ctx, attachment.TagTypeID)
					if err != nil {
						return err
					}
					tagTypeCache[attachment.TagTypeID] = fetched
					tagTypeEntity = fetched
				}
				groups = append(groups, TagGroup{TagType: *tagTypeEntity})
				position = len(groups) - 1
				groupIndex[attachment.TagTypeID] = position
			}
			groups[position].Tags = append(groups[position].Tags, hydratedTag)
		}
		media[index].Tags = groups
	}

	if includeReplicas {
		replicasByMedium, err := repository.fetchReplicas(ctx, ids)
		if err != nil {
			return err
		}
		for index := range media {
			media[index].Replicas = replicasByMedium[media[index].ID]
		}
	}

	return nil
}

func (repository *MediaPostgresRepository) fetchSourceJunctions(ctx context.Context, mediumIDs []string) (map[string][]string, error) {
	query := fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s, %s",
		schema.MediumMediumSource.MediumID, schema.MediumMediumSource.SourceID, schema.MediumMediumSource.Table,
		schema.MediumMediumSource.MediumID, schema.MediumMediumSource.MediumID, schema.MediumMediumSource.SortOrder)

	rows, err := repository.pool.Query(ctx, query, mediumIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch medium sources")
	}
	defer rows.Close()

	result := make(map[string][]string)
	for rows.Next() {
		var mediumID, sourceID string
		if err := rows.Scan(&mediumID, &sourceID); err != nil {
			return nil, dberr.Wrap(err, "scan medium source")
		}
		result[mediumID] = append(result[mediumID], sourceID)
	}
	return result, nil
}

func (repository *MediaPostgresRepository) fetchTagJunctions(ctx context.Context, mediumIDs []string) (map[string][]TagAttachment, error) {
	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s, %s",
		schema.MediumMediumTag.MediumID, schema.MediumMediumTag.TagID, schema.MediumMediumTag.TagTypeID,
		schema.MediumMediumTag.Table, schema.MediumMediumTag.MediumID, schema.MediumMediumTag.MediumID, schema.MediumMediumTag.SortOrder)

	rows, err := repository.pool.Query(ctx, query, mediumIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch medium tags")
	}
	defer rows.Close()

	result := make(map[string][]TagAttachment)
	for rows.Next() {
		var mediumID string
		var attachment TagAttachment
		if err := rows.Scan(&mediumID, &attachment.TagID, &attachment.TagTypeID); err != nil {
			return nil, dberr.Wrap(err, "scan medium tag")
		}
		result[mediumID] = append(result[mediumID], attachment)
	}
	return result, nil
}

func (repository *MediaPostgresRepository) fetchReplicas(ctx context.Context, mediumIDs []string) (map[string][]Replica, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
			t.%s, t.%s, t.%s, t.%s, t.%s
		FROM %s r
		LEFT JOIN %s t ON t.%s = r.%s
		WHERE r.%s = ANY($1)
		ORDER BY r.%s, r.%s
	`,
		schema.MediumReplica.ID, schema.MediumReplica.MediumID, schema.MediumReplica.DisplayOrder, schema.MediumReplica.OriginalURL,
		schema.MediumReplica.MimeType, schema.MediumReplica.Width, schema.MediumReplica.Height, schema.MediumReplica.Status,
		schema.MediumReplica.CreatedAt, schema.MediumReplica.UpdatedAt,
		schema.MediumThumbnail.ID, schema.MediumThumbnail.Width, schema.MediumThumbnail.Height, schema.MediumThumbnail.CreatedAt, schema.MediumThumbnail.UpdatedAt,
		schema.MediumReplica.Table,
		schema.MediumThumbnail.Table, schema.MediumThumbnail.ID, schema.MediumReplica.ThumbnailID,
		schema.MediumReplica.MediumID,
		schema.MediumReplica.MediumID, schema.MediumReplica.DisplayOrder,
	)

	rows, err := repository.pool.Query(ctx, query, mediumIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch medium replicas")
	}
	defer rows.Close()

	result := make(map[string][]Replica)
	for rows.Next() {
		var replica Replica
		var thumbnailID, mimeType *string
		var thumbWidth, thumbHeight, width, height *int
		var thumbCreatedAt, thumbUpdatedAt *time.Time

		if err := rows.Scan(
			&replica.ID, &replica.MediumID, &replica.DisplayOrder, &replica.OriginalURL,
			&mimeType, &width, &height, &replica.Status, &replica.CreatedAt, &replica.UpdatedAt,
			&thumbnailID, &thumbWidth, &thumbHeight, &thumbCreatedAt, &thumbUpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan medium replica")
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

		result[replica.MediumID] = append(result[replica.MediumID], replica)
	}
	return result, nil
}

func (repository *MediaPostgresRepository) replaceSourceJunctionTx(ctx context.Context, transaction pgx.Tx, mediumID string, sourceIDs []string) error {
	return repository.appendSourcesTx(ctx, transaction, mediumID, sourceIDs)
}

func (repository *MediaPostgresRepository) appendSourcesTx(ctx context.Context, transaction pgx.Tx, mediumID string, sourceIDs []string) error {
	if len(sourceIDs) == 0 {
		return nil
	}
	nextOrder, err := repository.nextSortOrderTx(ctx, transaction, schema.MediumMediumSource.Table, schema.MediumMediumSource.MediumID, schema.MediumMediumSource.SortOrder, mediumID)
	if err != nil {
		return err
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)",
		schema.MediumMediumSource.Table, schema.MediumMediumSource.MediumID, schema.MediumMediumSource.SourceID, schema.MediumMediumSource.SortOrder)
	batch := &pgx.Batch{}
	for index, sourceID := range sourceIDs {
		batch.Queue(insert, mediumID, sourceID, nextOrder+index)
	}
	response := transaction.SendBatch(ctx, batch)
	if err := response.Close(); err != nil {
		return dberr.Wrap(err, "attach medium sources")
	}
	return nil
}

func (repository *MediaPostgresRepository) removeSourcesTx(ctx context.Context, transaction pgx.Tx, mediumID string, sourceIDs []string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = ANY($2)",
		schema.MediumMediumSource.Table, schema.MediumMediumSource.MediumID, schema.MediumMediumSource.SourceID)
	_, err := transaction.Exec(ctx, query, mediumID, sourceIDs)
	return dberr.Wrap(err, "detach medium sources")
}

func (repository *MediaPostgresRepository) replaceTagJunctionTx(ctx context.Context, transaction pgx.Tx, mediumID string, attachments []TagAttachment) error {
	return repository.appendTagsTx(ctx, transaction, mediumID, attachments)
}

func (repository *MediaPostgresRepository) appendTagsTx(ctx context.Context, transaction pgx.Tx, mediumID string, attachments []TagAttachment) error {
	if len(attachments) == 0 {
		return nil
	}
	nextOrder, err := repository.nextSortOrderTx(ctx, transaction, schema.MediumMediumTag.Table, schema.MediumMediumTag.MediumID, schema.MediumMediumTag.SortOrder, mediumID)
	if err != nil {
		return err
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)",
		schema.MediumMediumTag.Table, schema.MediumMediumTag.MediumID, schema.MediumMediumTag.TagID, schema.MediumMediumTag.TagTypeID, schema.MediumMediumTag.SortOrder)
	batch := &pgx.Batch{}
	for index, attachment := range attachments {
		batch.Queue(insert, mediumID, attachment.TagID, attachment.TagTypeID, nextOrder+index)
	}
	response := transaction.SendBatch(ctx, batch)
	if err := response.Close(); err != nil {
		return dberr.Wrap(err, "attach medium tags")
	}
	return nil
}

func (repository *MediaPostgresRepository) removeTagsTx(ctx context.Context, transaction pgx.Tx, mediumID string, attachments []TagAttachment) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3",
		schema.MediumMediumTag.Table, schema.MediumMediumTag.MediumID, schema.MediumMediumTag.TagID, schema.MediumMediumTag.TagTypeID)
	batch := &pgx.Batch{}
	for _, attachment := range attachments {
		batch.Queue(query, mediumID, attachment.TagID, attachment.TagTypeID)
	}
	response := transaction.SendBatch(ctx, batch)
	return dberr.Wrap(response.Close(), "detach medium tags")
}

func (repository *MediaPostgresRepository) reorderReplicasTx(ctx context.Context, transaction pgx.Tx, mediumID string, replicaOrder []string) error {
	update := fmt.Sprintf("UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2 AND %s = $3",
		schema.MediumReplica.Table, schema.MediumReplica.DisplayOrder, schema.MediumReplica.UpdatedAt, schema.MediumReplica.ID, schema.MediumReplica.MediumID)
	batch := &pgx.Batch{}
	for index, replicaID := range replicaOrder {
		batch.Queue(update, index+1, replicaID, mediumID)
	}
	response := transaction.SendBatch(ctx, batch)
	return dberr.Wrap(response.Close(), "reorder medium replicas")
}

func (repository *MediaPostgresRepository) nextSortOrderTx(ctx context.Context, transaction pgx.Tx, table, idColumn, sortColumn, mediumID string) (int, error) {
	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s WHERE %s = $1", sortColumn, table, idColumn)
	var max int
	if err := transaction.QueryRow(ctx, query, mediumID).Scan(&max); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 1, nil
		}
		return 0, dberr.Wrap(err, "read next sort order")
	}
	return max + 1, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
