// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tag, PostgreSQL implementation.

Description: the closure table (tag.tag_closure) stores one row per ordered
(ancestor, descendant) pair, including self-rows at distance 0. Re-parenting
a node is a detach-then-reattach executed as two bulk INSERT/DELETE
statements rather than a table scan, so attach/detach stay O(subtree size)
regardless of forest depth. All multi-statement mutations run inside a
single transaction with `SELECT ... FOR UPDATE` on the affected rows to
serialize concurrent re-parenting of the same subtree.
*/
package tag

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yomira/mediacore/internal/platform/apperr"
	"github.com/yomira/mediacore/internal/platform/database/schema"
	"github.com/yomira/mediacore/internal/platform/dberr"
	"github.com/yomira/mediacore/pkg/uuid"
)

// PostgresRepository is the pgx-backed [Repository] implementation.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed tag store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Create

func (repository *PostgresRepository) Create(ctx context.Context, name, kana string, aliases []string, parentID string, depth Depth) (*Tag, error) {
	if parentID == "" {
		parentID = RootID
	}

	id := uuid.New()
	now := time.Now().UTC()

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	insertTag := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, schema.TagTag.Table, schema.TagTag.ID, schema.TagTag.Name, schema.TagTag.Kana,
		schema.TagTag.Aliases, schema.TagTag.CreatedAt, schema.TagTag.UpdatedAt)

	if _, err := transaction.Exec(ctx, insertTag, id, name, kana, aliases, now, now); err != nil {
		return nil, dberr.Wrap(err, "create_tag")
	}

	insertSelf := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $1, 0)`,
		schema.TagTagClosure.Table, schema.TagTagClosure.AncestorID, schema.TagTagClosure.DescendantID)
	if _, err := transaction.Exec(ctx, insertSelf, id); err != nil {
		return nil, fmt.Errorf("postgres: failed to insert self closure row: %w", err)
	}

	if err := repository.attachLocked(ctx, transaction, id, parentID); err != nil {
		return nil, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}

	tags, err := repository.FetchByIDs(ctx, []string{id}, depth)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, apperr.TagNotFound(id)
	}
	return &tags[0], nil
}

// # Attach / Detach

func (repository *PostgresRepository) AttachByID(ctx context.Context, id, newParentID string, depth Depth) (*Tag, error) {
	if id == RootID {
		return nil, apperr.RootTagAttached()
	}
	if newParentID == "" {
		newParentID = RootID
	}

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	if err := repository.lockRow(ctx, transaction, id); err != nil {
		return nil, err
	}
	if err := repository.attachLocked(ctx, transaction, id, newParentID); err != nil {
		return nil, err
	}
	if err := repository.touchUpdatedAt(ctx, transaction, id); err != nil {
		return nil, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit attach transaction: %w", err)
	}

	return repository.fetchOne(ctx, id, depth)
}

func (repository *PostgresRepository) DetachByID(ctx context.Context, id string, depth Depth) (*Tag, error) {
	if id == RootID {
		return nil, apperr.RootTagDetached()
	}
	return repository.AttachByID(ctx, id, RootID, depth)
}

// attachLocked re-parents id under newParentID. The caller must already hold
// the row lock on id (via lockRow) when reattaching an existing node; Create
// calls it immediately after inserting the new row within the same
// transaction, where no external lock is needed since no other transaction
// can see the uncommitted row yet.
func (repository *PostgresRepository) attachLocked(ctx context.Context, transaction pgx.Tx, id, newParentID string) error {
	if id == newParentID {
		return apperr.TagAttachingToItself(id)
	}

	isAncestorQuery := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 LIMIT 1`,
		schema.TagTagClosure.Table, schema.TagTagClosure.AncestorID, schema.TagTagClosure.DescendantID)
	var probe int
	err := transaction.QueryRow(ctx, isAncestorQuery, id, newParentID).Scan(&probe)
	if err == nil {
		return apperr.TagAttachingToDescendant(id, newParentID)
	}
	if err != pgx.ErrNoRows {
		return fmt.Errorf("postgres: failed to check ancestry: %w", err)
	}

	// Detach: remove every path from a (non-self) ancestor of id to id or
	// one of its descendants.
	detachQuery := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s IN (SELECT %s FROM %s WHERE %s = $1)
		  AND %s IN (SELECT %s FROM %s WHERE %s = $1 AND %s <> %s)
	`,
		schema.TagTagClosure.Table,
		schema.TagTagClosure.DescendantID, schema.TagTagClosure.DescendantID, schema.TagTagClosure.Table, schema.TagTagClosure.AncestorID,
		schema.TagTagClosure.AncestorID, schema.TagTagClosure.AncestorID, schema.TagTagClosure.Table, schema.TagTagClosure.DescendantID,
		schema.TagTagClosure.AncestorID, schema.TagTagClosure.DescendantID,
	)
	if _, err := transaction.Exec(ctx, detachQuery, id); err != nil {
		return fmt.Errorf("postgres: failed to detach subtree: %w", err)
	}

	// Reattach, step 1: connect every ancestor of the new parent to id at +1 distance.
	attachStep1 := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		SELECT %s, $1, %s + 1 FROM %s WHERE %s = $2
	`,
		schema.TagTagClosure.Table, schema.TagTagClosure.AncestorID, schema.TagTagClosure.DescendantID, schema.TagTagClosure.Distance,
		schema.TagTagClosure.AncestorID, schema.TagTagClosure.Distance, schema.TagTagClosure.Table, schema.TagTagClosure.DescendantID,
	)
	if _, err := transaction.Exec(ctx, attachStep1, id, newParentID); err != nil {
		return fmt.Errorf("postgres: failed to attach new ancestors: %w", err)
	}

	// Reattach, step 2: cross-product of new ancestors against existing descendants.
	attachStep2 := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		SELECT A.%s, D.%s, A.%s + D.%s
		FROM %s A
		JOIN %s D ON A.%s = D.%s
		WHERE A.%s = $1 AND D.%s = $1 AND A.%s <> $1 AND D.%s <> $1
	`,
		schema.TagTagClosure.Table, schema.TagTagClosure.AncestorID, schema.TagTagClosure.DescendantID, schema.TagTagClosure.Distance,
		schema.TagTagClosure.AncestorID, schema.TagTagClosure.DescendantID, schema.TagTagClosure.Distance, schema.TagTagClosure.Distance,
		schema.TagTagClosure.Table, schema.TagTagClosure.Table,
		schema.TagTagClosure.DescendantID, schema.TagTagClosure.AncestorID,
		schema.TagTagClosure.DescendantID, schema.TagTagClosure.AncestorID,
		schema.TagTagClosure.AncestorID, schema.TagTagClosure.DescendantID,
	)
	if _, err := transaction.Exec(ctx, attachStep2, id); err != nil {
		return fmt.Errorf("postgres: failed to attach descendant cross-product: %w", err)
	}

	return nil
}

// # Update

func (repository *PostgresRepository) UpdateByID(ctx context.Context, id string, name, kana *string, addAliases, removeAliases []string, depth Depth) (*Tag, error) {
	if id == RootID {
		return nil, apperr.RootTagUpdated()
	}

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	if err := repository.lockRow(ctx, transaction, id); err != nil {
		return nil, err
	}

	currentQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.TagTag.Aliases, schema.TagTag.Table, schema.TagTag.ID)
	var current []string
	if err := transaction.QueryRow(ctx, currentQuery, id).Scan(&current); err != nil {
		return nil, dberr.Wrap(err, "update_tag_fetch_aliases")
	}
	next := applyAliasDelta(current, addAliases, removeAliases)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("UPDATE %s SET %s = NOW(), %s = $1",
		schema.TagTag.Table, schema.TagTag.UpdatedAt, schema.TagTag.Aliases))
	args := []any{next}
	argID := 2

	if name != nil {
		builder.WriteString(fmt.Sprintf(", %s = $%d", schema.TagTag.Name, argID))
		args = append(args, *name)
		argID++
	}
	if kana != nil {
		builder.WriteString(fmt.Sprintf(", %s = $%d", schema.TagTag.Kana, argID))
		args = append(args, *kana)
		argID++
	}

	builder.WriteString(fmt.Sprintf(" WHERE %s = $%d", schema.TagTag.ID, argID))
	args = append(args, id)

	result, err := transaction.Exec(ctx, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "update_tag")
	}
	if result.RowsAffected() == 0 {
		return nil, apperr.TagNotFound(id)
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit update transaction: %w", err)
	}

	return repository.fetchOne(ctx, id, depth)
}

// applyAliasDelta adds before removing, so that add={A} + remove={A} in the
// same call leaves A absent: the set is unchanged when A was not already an
// alias, and A is removed when it was (the testable "alias delta" property).
func applyAliasDelta(current, add, remove []string) []string {
	set := make(map[string]struct{}, len(current)+len(add))
	for _, a := range current {
		set[a] = struct{}{}
	}
	for _, a := range add {
		set[a] = struct{}{}
	}
	for _, r := range remove {
		delete(set, r)
	}

	result := make([]string, 0, len(set))
	for a := range set {
		result = append(result, a)
	}
	sort.Strings(result)
	return result
}

// # Delete

func (repository *PostgresRepository) DeleteByID(ctx context.Context, id string, recursive bool) (DeleteResult, error) {
	if id == RootID {
		return DeleteResult{}, apperr.RootTagDeleted()
	}

	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	lockQuery := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 FOR UPDATE`, schema.TagTag.Table, schema.TagTag.ID)
	var probe int
	if err := transaction.QueryRow(ctx, lockQuery, id).Scan(&probe); err != nil {
		if err == pgx.ErrNoRows {
			return DeleteResult{Found: false}, nil
		}
		return DeleteResult{}, fmt.Errorf("postgres: failed to lock tag row: %w", err)
	}

	subtreeQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.TagTagClosure.DescendantID, schema.TagTagClosure.Table, schema.TagTagClosure.AncestorID)
	rows, err := transaction.Query(ctx, subtreeQuery, id)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("postgres: failed to list subtree: %w", err)
	}
	var ids []string
	for rows.Next() {
		var descendantID string
		if err := rows.Scan(&descendantID); err != nil {
			rows.Close()
			return DeleteResult{}, fmt.Errorf("postgres: failed to scan subtree id: %w", err)
		}
		ids = append(ids, descendantID)
	}
	rows.Close()

	descendantCount := len(ids) - 1 // exclude self
	if descendantCount > 0 && !recursive {
		return DeleteResult{}, apperr.TagChildrenExist(descendantCount)
	}

	deleteClosure := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1) OR %s = ANY($1)`,
		schema.TagTagClosure.Table, schema.TagTagClosure.AncestorID, schema.TagTagClosure.DescendantID)
	if _, err := transaction.Exec(ctx, deleteClosure, ids); err != nil {
		return DeleteResult{}, fmt.Errorf("postgres: failed to delete closure rows: %w", err)
	}

	deleteTags := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`, schema.TagTag.Table, schema.TagTag.ID)
	if _, err := transaction.Exec(ctx, deleteTags, ids); err != nil {
		return DeleteResult{}, fmt.Errorf("postgres: failed to delete tag rows: %w", err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return DeleteResult{}, fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return DeleteResult{Found: true, Count: len(ids)}, nil
}

// # Fetch

func (repository *PostgresRepository) FetchByIDs(ctx context.Context, ids []string, depth Depth) ([]Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	arena, err := repository.buildArena(ctx, ids, depth)
	if err != nil {
		return nil, err
	}

	result := make([]Tag, 0, len(ids))
	for _, id := range ids {
		node, ok := arena[id]
		if !ok || id == RootID {
			continue
		}
		result = append(result, unfold(arena, node, depth))
	}
	return result, nil
}

func (repository *PostgresRepository) fetchOne(ctx context.Context, id string, depth Depth) (*Tag, error) {
	tags, err := repository.FetchByIDs(ctx, []string{id}, depth)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, apperr.TagNotFound(id)
	}
	return &tags[0], nil
}

func (repository *PostgresRepository) FetchByNameOrAliasLike(ctx context.Context, pattern string, depth Depth) ([]Tag, error) {
	escaped := "%" + escapeLike(pattern) + "%"

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s <> $1
		  AND (%s ILIKE $2 ESCAPE '\' OR EXISTS (SELECT 1 FROM unnest(%s) a WHERE a ILIKE $2 ESCAPE '\'))
		ORDER BY %s, %s
	`,
		strings.Join(schema.TagTag.Columns(), ", "), schema.TagTag.Table,
		schema.TagTag.ID,
		schema.TagTag.Name, schema.TagTag.Aliases,
		schema.TagTag.Kana, schema.TagTag.ID,
	)

	rows, err := repository.pool.Query(ctx, query, RootID, escaped)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch_tag_by_name_or_alias_like")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var t Tag
		var aliases []string
		if err := rows.Scan(&t.ID, &t.Name, &t.Kana, &aliases, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		ids = append(ids, t.ID)
	}

	return repository.FetchByIDs(ctx, ids, depth)
}

// escapeLike escapes the LIKE/ILIKE metacharacters %, _ and the escape
// character \ itself, so a caller-supplied substring is matched literally.
func escapeLike(pattern string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(pattern)
}

func (repository *PostgresRepository) FetchAll(ctx context.Context, depth Depth, rootOnly bool, after, before *Cursor, order Order, limit int) ([]Tag, error) {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("SELECT t.%s FROM %s t", strings.Join(prefixed("t", schema.TagTag.Columns()), ", "), schema.TagTag.Table))

	args := []any{}
	argID := 1
	where := []string{fmt.Sprintf("t.%s <> $%d", schema.TagTag.ID, argID)}
	args = append(args, RootID)
	argID++

	if rootOnly {
		builder.WriteString(fmt.Sprintf(`
			JOIN %s c ON c.%s = t.%s AND c.%s = $%d AND c.%s = 1
		`, schema.TagTagClosure.Table, schema.TagTagClosure.DescendantID, schema.TagTag.ID, schema.TagTagClosure.AncestorID, argID, schema.TagTagClosure.Distance))
		args = append(args, RootID)
		argID++
	}

	asc := order == OrderAsc
	if after != nil {
		op := ">"
		if !asc {
			op = "<"
		}
		where = append(where, fmt.Sprintf("(t.%s, t.%s) %s ($%d, $%d)", schema.TagTag.Kana, schema.TagTag.ID, op, argID, argID+1))
		args = append(args, after.Kana, after.ID)
		argID += 2
	}
	if before != nil {
		op := "<"
		if !asc {
			op = ">"
		}
		where = append(where, fmt.Sprintf("(t.%s, t.%s) %s ($%d, $%d)", schema.TagTag.Kana, schema.TagTag.ID, op, argID, argID+1))
		args = append(args, before.Kana, before.ID)
		argID += 2
	}

	builder.WriteString(" WHERE " + strings.Join(where, " AND "))

	direction := "ASC"
	if !asc {
		direction = "DESC"
	}
	builder.WriteString(fmt.Sprintf(" ORDER BY t.%s %s, t.%s %s LIMIT $%d", schema.TagTag.Kana, direction, schema.TagTag.ID, direction, argID))
	args = append(args, limit)

	rows, err := repository.pool.Query(ctx, builder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch_all_tags")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var t Tag
		var aliases []string
		if err := rows.Scan(&t.ID, &t.Name, &t.Kana, &aliases, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		ids = append(ids, t.ID)
	}

	// root_only listings still materialize one extra level of children so
	// UIs can render a level of hierarchy beneath each root item.
	effectiveDepth := depth
	if rootOnly {
		effectiveDepth.Children = depth.Children + 1
	}

	arena, err := repository.buildArena(ctx, ids, effectiveDepth)
	if err != nil {
		return nil, err
	}

	result := make([]Tag, 0, len(ids))
	for _, id := range ids {
		node, ok := arena[id]
		if !ok {
			continue
		}
		result = append(result, unfold(arena, node, effectiveDepth))
	}
	return result, nil
}

func prefixed(prefix string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = prefix + "." + c
	}
	return out
}

// # Locking helpers

func (repository *PostgresRepository) lockRow(ctx context.Context, transaction pgx.Tx, id string) error {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 FOR UPDATE`, schema.TagTag.Table, schema.TagTag.ID)
	var probe int
	if err := transaction.QueryRow(ctx, query, id).Scan(&probe); err != nil {
		if err == pgx.ErrNoRows {
			return apperr.TagNotFound(id)
		}
		return fmt.Errorf("postgres: failed to lock tag row: %w", err)
	}
	return nil
}

func (repository *PostgresRepository) touchUpdatedAt(ctx context.Context, transaction pgx.Tx, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`, schema.TagTag.Table, schema.TagTag.UpdatedAt, schema.TagTag.ID)
	_, err := transaction.Exec(ctx, query, id)
	return err
}

// # Hydration

// buildArena retrieves every closure row needed to hydrate ids to depth in
// up to four queries (self rows, ancestor chain, descendant subtree, and the
// distance-1 edges linking that subtree) and
// assembles them into an id-keyed relation map with weak parent back-edges.
func (repository *PostgresRepository) buildArena(ctx context.Context, ids []string, depth Depth) (map[string]*relation, error) {
	arena := make(map[string]*relation)

	selfQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1)`,
		strings.Join(schema.TagTag.Columns(), ", "), schema.TagTag.Table, schema.TagTag.ID)
	if err := repository.scanInto(ctx, arena, selfQuery, ids); err != nil {
		return nil, err
	}

	if depth.Parent > 0 {
		ancestorQuery := fmt.Sprintf(`
			SELECT c.%s AS for_id, c.%s AS distance, t.%s
			FROM %s c
			JOIN %s t ON t.%s = c.%s
			WHERE c.%s = ANY($1) AND c.%s BETWEEN 1 AND $2 AND t.%s <> $3
		`,
			schema.TagTagClosure.DescendantID, schema.TagTagClosure.Distance, strings.Join(prefixed("t", schema.TagTag.Columns()), ", "),
			schema.TagTagClosure.Table, schema.TagTag.Table, schema.TagTag.ID, schema.TagTagClosure.AncestorID,
			schema.TagTagClosure.DescendantID, schema.TagTagClosure.Distance, schema.TagTag.ID,
		)
		rows, err := repository.pool.Query(ctx, ancestorQuery, ids, depth.Parent, RootID)
		if err != nil {
			return nil, dberr.Wrap(err, "fetch_tag_ancestors")
		}
		type ancestorEdge struct {
			forID    string
			distance int
			t        Tag
		}
		var edges []ancestorEdge
		for rows.Next() {
			var e ancestorEdge
			var aliases []string
			if err := rows.Scan(&e.forID, &e.distance, &e.t.ID, &e.t.Name, &e.t.Kana, &aliases, &e.t.CreatedAt, &e.t.UpdatedAt); err != nil {
				rows.Close()
				return nil, dberr.Wrap(err, "scan_tag_ancestor")
			}
			e.t.Aliases = aliases
			edges = append(edges, e)
			node := arenaNode(arena, e.t.ID)
			node.tag = e.t
		}
		rows.Close()

		// A node's parent is its nearest ancestor (distance 1 from it);
		// since a forest node has exactly one parent, chasing distance-1
		// edges for every id in the ancestor chain links the whole chain.
		byFor := make(map[string][]ancestorEdge)
		for _, e := range edges {
			byFor[e.forID] = append(byFor[e.forID], e)
		}
		for forID, chain := range byFor {
			sort.Slice(chain, func(i, j int) bool { return chain[i].distance < chain[j].distance })
			prev := forID
			for _, e := range chain {
				node := arenaNode(arena, prev)
				node.parentID = e.t.ID
				node.hasParent = true
				prev = e.t.ID
			}
		}
	}

	if depth.Children > 0 {
		descendantQuery := fmt.Sprintf(`
			SELECT c.%s AS for_id, c.%s AS distance, t.%s
			FROM %s c
			JOIN %s t ON t.%s = c.%s
			WHERE c.%s = ANY($1) AND c.%s BETWEEN 1 AND $2 AND c.%s <> c.%s
		`,
			schema.TagTagClosure.AncestorID, schema.TagTagClosure.Distance, strings.Join(prefixed("t", schema.TagTag.Columns()), ", "),
			schema.TagTagClosure.Table, schema.TagTag.Table, schema.TagTag.ID, schema.TagTagClosure.DescendantID,
			schema.TagTagClosure.AncestorID, schema.TagTagClosure.Distance, schema.TagTagClosure.AncestorID, schema.TagTagClosure.DescendantID,
		)
		rows, err := repository.pool.Query(ctx, descendantQuery, ids, depth.Children)
		if err != nil {
			return nil, dberr.Wrap(err, "fetch_tag_descendants")
		}
		var descendantIDs []string
		for rows.Next() {
			var forID string
			var distance int
			var t Tag
			var aliases []string
			if err := rows.Scan(&forID, &distance, &t.ID, &t.Name, &t.Kana, &aliases, &t.CreatedAt, &t.UpdatedAt); err != nil {
				rows.Close()
				return nil, dberr.Wrap(err, "scan_tag_descendant")
			}
			t.Aliases = aliases
			node := arenaNode(arena, t.ID)
			node.tag = t
			descendantIDs = append(descendantIDs, t.ID)
		}
		rows.Close()

		frontier := append(append([]string{}, ids...), descendantIDs...)
		edgeQuery := fmt.Sprintf(`
			SELECT %s, %s FROM %s WHERE %s = 1 AND %s = ANY($1)
		`,
			schema.TagTagClosure.AncestorID, schema.TagTagClosure.DescendantID, schema.TagTagClosure.Table,
			schema.TagTagClosure.Distance, schema.TagTagClosure.DescendantID,
		)
		edgeRows, err := repository.pool.Query(ctx, edgeQuery, frontier)
		if err != nil {
			return nil, dberr.Wrap(err, "fetch_tag_direct_edges")
		}
		type edge struct{ parentID, childID string }
		var edges []edge
		for edgeRows.Next() {
			var e edge
			if err := edgeRows.Scan(&e.parentID, &e.childID); err != nil {
				edgeRows.Close()
				return nil, dberr.Wrap(err, "scan_tag_direct_edge")
			}
			edges = append(edges, e)
		}
		edgeRows.Close()

		for _, e := range edges {
			parent := arenaNode(arena, e.parentID)
			parent.childIDs = append(parent.childIDs, e.childID)
		}
		for _, node := range arena {
			sort.Slice(node.childIDs, func(i, j int) bool {
				a, b := arena[node.childIDs[i]], arena[node.childIDs[j]]
				if a == nil || b == nil {
					return false
				}
				if a.tag.Kana != b.tag.Kana {
					return a.tag.Kana < b.tag.Kana
				}
				return a.tag.ID < b.tag.ID
			})
		}
	}

	return arena, nil
}

func (repository *PostgresRepository) scanInto(ctx context.Context, arena map[string]*relation, query string, ids []string) error {
	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return dberr.Wrap(err, "fetch_tags")
	}
	defer rows.Close()

	for rows.Next() {
		var t Tag
		var aliases []string
		if err := rows.Scan(&t.ID, &t.Name, &t.Kana, &aliases, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return dberr.Wrap(err, "scan_tag")
		}
		t.Aliases = aliases
		node := arenaNode(arena, t.ID)
		node.tag = t
	}
	return nil
}

func arenaNode(arena map[string]*relation, id string) *relation {
	node, ok := arena[id]
	if !ok {
		node = &relation{tag: Tag{ID: id}}
		arena[id] = node
	}
	return node
}

// unfold converts a relation's weak parent/child references into an owned
// [Tag] tree truncated to depth. Cycles are impossible by construction: the
// closure table only ever admits a DAG rooted at the distinguished root,
// and attach rejects self-ancestry before it can introduce one.
func unfold(arena map[string]*relation, node *relation, depth Depth) Tag {
	result := node.tag
	result.Aliases = append([]string(nil), node.tag.Aliases...)

	if depth.Parent > 0 && node.hasParent {
		if parentNode, ok := arena[node.parentID]; ok {
			parentDepth := Depth{Parent: depth.Parent - 1, Children: 0}
			parent := unfold(arena, parentNode, parentDepth)
			result.Parent = &parent
		}
	}

	if depth.Children > 0 && len(node.childIDs) > 0 {
		result.Children = make([]Tag, 0, len(node.childIDs))
		for _, childID := range node.childIDs {
			childNode, ok := arena[childID]
			if !ok {
				continue
			}
			childDepth := Depth{Parent: 0, Children: depth.Children - 1}
			result.Children = append(result.Children, unfold(arena, childNode, childDepth))
		}
	}

	return result
}
