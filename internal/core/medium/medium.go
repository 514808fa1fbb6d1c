// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package medium defines the catalogue's central aggregate: a single
piece of content (an image, a set of pages, a video still) addressed
by its replicas, tagged against one or more [tagtype.TagType] roles,
and traced back to the [source.Source] it was collected from.

A medium owns its replicas outright; deleting a medium deletes its
replicas. Tag and source associations are many-to-many and survive
independently of any one medium.
*/
package medium

import (
	"time"

	"github.com/yomira/mediacore/internal/core/source"
	"github.com/yomira/mediacore/internal/core/tag"
	"github.com/yomira/mediacore/internal/core/tagtype"
)

// # Replica lifecycle

// ReplicaStatus tracks a replica through the two-phase ingestion
// pipeline: every replica starts Processing, and settles into Ready
// or Error exactly once. Ready/Error are terminal to the pipeline;
// only an explicit caller edit moves a replica out of them again.
type ReplicaStatus string

const (
	ReplicaStatusProcessing ReplicaStatus = "processing"
	ReplicaStatusReady      ReplicaStatus = "ready"
	ReplicaStatusError      ReplicaStatus = "error"
)

func (status ReplicaStatus) Valid() bool {
	switch status {
	case ReplicaStatusProcessing, ReplicaStatusReady, ReplicaStatusError:
		return true
	}
	return false
}

// Size is a width/height pair, present on a replica or thumbnail only
// once the underlying image has actually been decoded.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Thumbnail is a small derivative rendered from a replica's original
// body during phase 2 of ingestion. The bytes themselves live out of
// band in the object repository, addressed by ID via the service's
// injected [ThumbnailURLFactory]; this row only tracks dimensions.
type Thumbnail struct {
	ID        string    `json:"id"`
	Size      Size      `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OriginalImage is the decoded metadata of a replica's uploaded body,
// persisted alongside the thumbnail once phase 2 completes.
type OriginalImage struct {
	MimeType string `json:"mime_type"`
	Size     Size   `json:"size"`
}

// Replica is one physical rendition of a medium's content, owned
// exclusively by that medium. MimeType, Size, and Thumbnail are nil
// whenever Status is not Ready.
type Replica struct {
	ID           string         `json:"id"`
	MediumID     string         `json:"medium_id"`
	DisplayOrder int            `json:"display_order"`
	Thumbnail    *Thumbnail     `json:"thumbnail,omitempty"`
	OriginalURL  string         `json:"original_url"`
	MimeType     *string        `json:"mime_type,omitempty"`
	Size         *Size          `json:"size,omitempty"`
	Status       ReplicaStatus  `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// # Medium aggregate

// TagGroup is one entry of Medium.Tags: every tag attached to a
// medium under a single [tagtype.TagType] role, in attachment order.
// A slice (rather than a map) is used deliberately — the spec
// requires the mapping's own key order (the order tag types were
// first attached) to be preserved, which a Go map cannot express.
type TagGroup struct {
	TagType tagtype.TagType `json:"tag_type"`
	Tags    []tag.Tag       `json:"tags"`
}

// Medium is the catalogue's central aggregate.
type Medium struct {
	ID        string          `json:"id"`
	Sources   []source.Source `json:"sources,omitempty"`
	Tags      []TagGroup      `json:"tags,omitempty"`
	Replicas  []Replica       `json:"replicas,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TagAttachment pairs a tag with the role it plays against a medium;
// the same tag may be attached to a medium more than once under
// distinct tag types, but never twice under the same one.
type TagAttachment struct {
	TagID     string `json:"tag_id"`
	TagTypeID string `json:"tag_type_id"`
}

// # Field Identifiers

const (
	FieldID        = "id"
	FieldSources   = "sources"
	FieldTags      = "tags"
	FieldReplicas  = "replicas"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

const (
	FieldReplicaDisplayOrder = "display_order"
	FieldReplicaOriginalURL  = "original_url"
	FieldReplicaMimeType     = "mime_type"
	FieldReplicaStatus       = "status"
)
