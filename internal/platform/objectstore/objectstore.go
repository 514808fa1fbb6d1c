// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package objectstore abstracts where replica bytes physically live
behind scheme-namespaced URLs (`file://…`, `s3://…`). The Media Service
never imports a concrete implementation directly — it is handed a
[Repository] at construction time.
*/
package objectstore

import (
	"context"
	"io"
	"time"
)

// EntryKind distinguishes a file entry from a directory/prefix entry.
type EntryKind string

const (
	KindFile      EntryKind = "file"
	KindDirectory EntryKind = "directory"
)

// Metadata carries the out-of-band attributes of an [Entry], present
// only when the entry names an existing object.
type Metadata struct {
	Size       int64
	CreatedAt  time.Time
	AccessedAt time.Time
	ModifiedAt time.Time
}

// Entry describes a single object or prefix within a repository.
type Entry struct {
	Name     string
	URL      string
	Kind     EntryKind
	Metadata *Metadata
}

// PutStatus reports whether a Put call created a new object or found
// one already occupying the target URL.
type PutStatus string

const (
	StatusCreated  PutStatus = "created"
	StatusExisting PutStatus = "existing"
)

// Overwrite controls Put's behavior when an object already exists at
// the target URL.
type Overwrite string

const (
	OverwriteFail      Overwrite = "fail"
	OverwriteOverwrite Overwrite = "overwrite"
)

// DeleteStatus reports the outcome of a Delete call.
type DeleteStatus string

const (
	DeleteStatusDeleted  DeleteStatus = "deleted"
	DeleteStatusNotFound DeleteStatus = "not_found"
)

// Repository is the scheme-namespaced object storage contract every
// replica's original_url is addressed through. Concrete
// implementations register a single static Scheme; a dispatching
// wrapper that routes between schemes is intentionally out of scope
// (spec §9 "Scheme registry").
type Repository interface {
	// Scheme reports the URL scheme this repository serves, e.g. "file".
	Scheme() string

	// Entry returns metadata for the object or prefix at url.
	Entry(ctx context.Context, url string) (Entry, error)

	// Read opens a stream over the object at url.
	Read(ctx context.Context, url string) (io.ReadCloser, error)

	// Put reserves url for writing. overwrite controls the response
	// when an object already exists there. The returned writer accepts
	// the object's bytes; callers must Close it to finalize the write.
	Put(ctx context.Context, url string, overwrite Overwrite) (Entry, PutStatus, io.WriteCloser, error)

	// Copy streams reader into writer, returning the number of bytes
	// written. Used by phase 2 of replica ingestion to persist the
	// body independently of thumbnail generation.
	Copy(ctx context.Context, writer io.Writer, reader io.Reader) (int64, error)

	// Delete removes the object at url.
	Delete(ctx context.Context, url string) (DeleteStatus, error)

	// List enumerates entries whose URL begins with urlPrefix.
	List(ctx context.Context, urlPrefix string) ([]Entry, error)
}
