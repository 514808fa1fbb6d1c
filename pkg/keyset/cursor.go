// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package keyset implements opaque-cursor keyset pagination for listings
ordered by (created_at, id).

A cursor round-trips a (time.Time, id) pair through a single
base64-encoded token, so callers never see or construct raw timestamps.
Query Composer turns a GraphQL-style {first, last, after, before, order}
request into the canonical (order, direction, limit) a store executes,
trimming the one-row probe used to detect further pages.
*/
package keyset

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/yomira/mediacore/internal/platform/apperr"
)

// Cursor identifies a row's position in a (created_at, id) ordered
// listing.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// Encode renders the cursor as an opaque, URL-safe token: the
// ISO-8601-microsecond timestamp and the dashed-UUID id joined by a
// NUL byte, base64-encoded.
func (cursor Cursor) Encode() string {
	raw := cursor.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000Z07:00") + "\x00" + cursor.ID
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// Decode parses a token produced by [Cursor.Encode]. It fails with
// [apperr.CursorInvalid] on any malformed input rather than silently
// ignoring it.
func Decode(token string) (Cursor, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, apperr.CursorInvalid(token)
	}

	parts := strings.SplitN(string(raw), "\x00", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, apperr.CursorInvalid(token)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return Cursor{}, apperr.CursorInvalid(token)
	}

	return Cursor{CreatedAt: createdAt, ID: parts[1]}, nil
}
