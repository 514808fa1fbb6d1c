// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package medium

import (
	"context"
	"time"

	"github.com/yomira/mediacore/internal/core/tag"
	"github.com/yomira/mediacore/internal/platform/validate"
	"github.com/yomira/mediacore/pkg/keyset"
)

// CreateMedium validates and delegates to the Media Store.
func (service *Service) CreateMedium(ctx context.Context, sourceIDs []string, tags []TagAttachment, depth tag.Depth) (*Medium, error) {
	validator := &validate.Validator{}
	for _, sourceID := range sourceIDs {
		validator.UUID("source_ids", sourceID)
	}
	for _, attachment := range tags {
		validator.UUID("tags.tag_id", attachment.TagID)
		validator.UUID("tags.tag_type_id", attachment.TagTypeID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}
	return service.media.Create(ctx, sourceIDs, tags, depth)
}

// FetchMediaByIDs returns the requested media hydrated to depth.
func (service *Service) FetchMediaByIDs(ctx context.Context, ids []string, depth tag.Depth, includeReplicas, includeSources bool) ([]Medium, error) {
	return service.media.FetchByIDs(ctx, ids, depth, includeReplicas, includeSources)
}

// FetchMedia is the primary keyset-paginated listing, composing an
// external [keyset.Request] into a store call and trimming the probe
// row the way [keyset.Paginate] describes.
func (service *Service) FetchMedia(ctx context.Context, request keyset.Request, depth tag.Depth, includeReplicas, includeSources bool) (keyset.Page[Medium], error) {
	call, err := keyset.Compose(request)
	if err != nil {
		return keyset.Page[Medium]{}, err
	}
	items, err := service.media.Fetch(ctx, depth, includeReplicas, includeSources, call)
	if err != nil {
		return keyset.Page[Medium]{}, err
	}
	return keyset.Paginate(call, items), nil
}

// FetchMediaBySourceIDs lists media referencing any of sourceIDs.
func (service *Service) FetchMediaBySourceIDs(ctx context.Context, sourceIDs []string, request keyset.Request, depth tag.Depth, includeReplicas, includeSources bool) (keyset.Page[Medium], error) {
	call, err := keyset.Compose(request)
	if err != nil {
		return keyset.Page[Medium]{}, err
	}
	items, err := service.media.FetchBySourceIDs(ctx, sourceIDs, depth, includeReplicas, includeSources, call)
	if err != nil {
		return keyset.Page[Medium]{}, err
	}
	return keyset.Paginate(call, items), nil
}

// FetchMediaByTagIDs lists media tagged with any of the exact
// (tag, tag_type) pairs in attachments.
func (service *Service) FetchMediaByTagIDs(ctx context.Context, attachments []TagAttachment, request keyset.Request, depth tag.Depth, includeReplicas, includeSources bool) (keyset.Page[Medium], error) {
	call, err := keyset.Compose(request)
	if err != nil {
		return keyset.Page[Medium]{}, err
	}
	items, err := service.media.FetchByTagIDs(ctx, attachments, depth, includeReplicas, includeSources, call)
	if err != nil {
		return keyset.Page[Medium]{}, err
	}
	return keyset.Paginate(call, items), nil
}

// UpdateMedium applies junction deltas and, optionally, a replica
// reordering and a created_at override — the Media Store is the only
// store that permits overriding created_at (see DESIGN.md's record of
// the corresponding Open Question).
func (service *Service) UpdateMedium(ctx context.Context, id string, addSourceIDs, removeSourceIDs []string, addTags, removeTags []TagAttachment, replicaOrder []string, createdAt *time.Time, depth tag.Depth, includeReplicas, includeSources bool) (*Medium, error) {
	return service.media.Update(ctx, id, addSourceIDs, removeSourceIDs, addTags, removeTags, replicaOrder, createdAt, depth, includeReplicas, includeSources)
}

// DeleteMedium removes a medium and, transactionally, its replicas.
func (service *Service) DeleteMedium(ctx context.Context, id string) error {
	return service.media.Delete(ctx, id)
}
