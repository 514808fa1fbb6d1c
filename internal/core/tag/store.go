package tag

import "context"

// Repository is the closure-table Tag Store. Every operation that returns a
// [Tag] accepts a [Depth] bounding how far the ancestor/descendant chains
// are materialized.
type Repository interface {
	// Create inserts a new tag, its self closure row, and attaches it under
	// parentID (or the root if parentID is empty).
	Create(ctx context.Context, name, kana string, aliases []string, parentID string, depth Depth) (*Tag, error)

	// FetchByIDs returns the requested tags hydrated to depth, preserving
	// the order of ids. Missing ids are simply omitted from the result.
	FetchByIDs(ctx context.Context, ids []string, depth Depth) ([]Tag, error)

	// FetchByNameOrAliasLike substring-matches name and individual alias
	// entries. The caller passes the raw, unescaped pattern.
	FetchByNameOrAliasLike(ctx context.Context, pattern string, depth Depth) ([]Tag, error)

	// FetchAll lists tags ordered by (kana, id), keyset-paginated.
	//
	// after/before are mutually exclusive cursors; when rootOnly is true
	// only tags whose direct parent is the root are listed, but each
	// returned tag's own subtree is still materialized to
	// depth.Children+1.
	FetchAll(ctx context.Context, depth Depth, rootOnly bool, after, before *Cursor, order Order, limit int) ([]Tag, error)

	// UpdateByID applies a name/kana rename and an alias delta (adds
	// applied before removes). Fails with apperr.RootTagUpdated for the
	// root id.
	UpdateByID(ctx context.Context, id string, name, kana *string, addAliases, removeAliases []string, depth Depth) (*Tag, error)

	// AttachByID re-parents id under newParentID, re-materializing the
	// closure table in two bulk statements. Fails with
	// apperr.RootTagAttached for the root id.
	AttachByID(ctx context.Context, id, newParentID string, depth Depth) (*Tag, error)

	// DetachByID is equivalent to AttachByID(id, RootID, depth).
	DetachByID(ctx context.Context, id string, depth Depth) (*Tag, error)

	// DeleteByID removes id and, when recursive is true, its entire
	// subtree. Fails with apperr.TagChildrenExist if recursive is false
	// and descendants exist.
	DeleteByID(ctx context.Context, id string, recursive bool) (DeleteResult, error)
}
