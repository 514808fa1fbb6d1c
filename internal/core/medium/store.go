// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package medium

import (
	"context"
	"time"

	"github.com/yomira/mediacore/internal/core/tag"
	"github.com/yomira/mediacore/pkg/keyset"
)

// MediaRepository is the Media Store: the aggregate-level persistence
// boundary for [Medium], its source associations, and its tag-typed
// tag associations. Replica persistence is a separate concern — see
// [ReplicaRepository] — since replicas are written by the ingestion
// pipeline independently of aggregate edits.
type MediaRepository interface {
	// Create inserts a medium, associates sourceIDs and tags, and
	// returns the hydrated aggregate.
	Create(ctx context.Context, sourceIDs []string, tags []TagAttachment, depth tag.Depth) (*Medium, error)

	// FetchByIDs returns the requested media hydrated to depth,
	// preserving input order. Missing ids are omitted.
	FetchByIDs(ctx context.Context, ids []string, depth tag.Depth, includeReplicas, includeSources bool) ([]Medium, error)

	// Fetch is the primary keyset-paginated listing.
	Fetch(ctx context.Context, depth tag.Depth, includeReplicas, includeSources bool, call keyset.StoreCall) ([]Medium, error)

	// FetchBySourceIDs lists media referencing any of sourceIDs.
	FetchBySourceIDs(ctx context.Context, sourceIDs []string, depth tag.Depth, includeReplicas, includeSources bool, call keyset.StoreCall) ([]Medium, error)

	// FetchByTagIDs lists media tagged with any of the exact
	// (tag, tag_type) pairs in attachments.
	FetchByTagIDs(ctx context.Context, attachments []TagAttachment, depth tag.Depth, includeReplicas, includeSources bool, call keyset.StoreCall) ([]Medium, error)

	// Update applies junction deltas and, optionally, a replica
	// reordering and a created_at override (the only store that
	// permits overriding created_at; see DESIGN.md).
	Update(ctx context.Context, id string, addSourceIDs, removeSourceIDs []string, addTags, removeTags []TagAttachment, replicaOrder []string, createdAt *time.Time, depth tag.Depth, includeReplicas, includeSources bool) (*Medium, error)

	// Delete removes a medium and, transactionally, its replicas.
	Delete(ctx context.Context, id string) error
}

// ReplicaUpdate carries a partial edit to a [Replica]. Every field
// left at its zero [Opt] value is left untouched by UpdateByID.
type ReplicaUpdate struct {
	Thumbnail     Opt[*Thumbnail]
	OriginalURL   Opt[string]
	OriginalImage Opt[*OriginalImage]
	Status        Opt[ReplicaStatus]
}

// ReplicaRepository is the Replica Store.
type ReplicaRepository interface {
	// Create inserts a new replica owned by mediumID at displayOrder,
	// in Processing status with no original_url yet assigned.
	Create(ctx context.Context, mediumID string, displayOrder int) (*Replica, error)

	FetchByID(ctx context.Context, id string) (*Replica, error)

	// FetchByIDs preserves the order of ids; missing ids are omitted.
	FetchByIDs(ctx context.Context, ids []string) ([]Replica, error)

	// FetchByOriginalURL is used to diagnose duplicate ingests; returns
	// nil, nil when no replica owns originalURL.
	FetchByOriginalURL(ctx context.Context, originalURL string) (*Replica, error)

	// UpdateByID applies update's double-option deltas.
	UpdateByID(ctx context.Context, id string, update ReplicaUpdate) (*Replica, error)

	DeleteByID(ctx context.Context, id string) error
}

// ThumbnailRepository persists the dimension row accompanying a
// rendered thumbnail; the bytes themselves are written directly to
// the object repository by the service.
type ThumbnailRepository interface {
	Create(ctx context.Context, id string, size Size) (*Thumbnail, error)
	FetchByID(ctx context.Context, id string) (*Thumbnail, error)
	DeleteByID(ctx context.Context, id string) error
}
