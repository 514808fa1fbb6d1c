// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Tag Hierarchy: the root sentinel id and depth bounds.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "yomira-api"
	AppVersion = "0.1.0-dev"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Tag Hierarchy

const (
	// RootTagID is the distinguished all-zero sentinel that is the ancestor
	// of every first-level tag and is never returned to callers.
	RootTagID = "00000000-0000-0000-0000-000000000000"

	// MaxTagDepth bounds how many ancestor/descendant levels a caller may
	// request materialized in a single TagDepth component.
	MaxTagDepth = 8
)

// # Pagination

const (
	// DefaultPageLimit is used when a caller omits first/last entirely.
	DefaultPageLimit = 20

	// MaxPageLimit bounds first/last to prevent unbounded result sets.
	MaxPageLimit = 100
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaTag     = "tag"
	SchemaTagType = "tagtype"
	SchemaSource  = "source"
	SchemaMedium  = "medium"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixTagHydration is the key prefix for hydrated TagRelation
	// subtrees keyed by "<id>:<depth.parent>:<depth.children>". No code in
	// this module reads or writes keys under it.
	RedisPrefixTagHydration = "tag:hydration:"

	// RedisPrefixTagCursor is the key prefix for the last-seen (kana,id)
	// boundary of root-level listing pages. No code in this module reads or
	// writes keys under it.
	RedisPrefixTagCursor = "tag:cursor:"
)
