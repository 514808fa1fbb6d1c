// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tagtype

import "context"

// Repository defines the data access contract for the tag type catalogue.
type Repository interface {

	// ListAll retrieves every registered tag type, ordered by slug.
	ListAll(ctx context.Context) ([]*TagType, error)

	// GetByID retrieves a tag type by its primary key.
	GetByID(ctx context.Context, id string) (*TagType, error)

	// GetBySlug retrieves a tag type by its unique slug.
	GetBySlug(ctx context.Context, slug string) (*TagType, error)

	// Create persists a new tag type.
	Create(ctx context.Context, t *TagType) error

	// Update applies a name/kana rename to an existing tag type.
	Update(ctx context.Context, t *TagType) error

	// Delete removes a tag type. Fails with apperr.Conflict if any
	// medium_tag row still references it.
	Delete(ctx context.Context, id string) error
}
