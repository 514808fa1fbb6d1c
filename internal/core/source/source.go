// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package source manages where a medium was originally published: the
catalogue of [ExternalService] providers (Pixiv, X, a self-hosted
website, …) and the per-medium [Source] records that point into them.
*/
package source

import (
	"encoding/json"
	"time"
)

// Kind is the closed set of external service providers a [Source] may
// point into.
type Kind string

const (
	KindPixiv    Kind = "pixiv"
	KindX        Kind = "x"
	KindBluesky  Kind = "bluesky"
	KindFantia   Kind = "fantia"
	KindMastodon Kind = "mastodon"
	KindMisskey  Kind = "misskey"
	KindNijie    Kind = "nijie"
	KindPleroma  Kind = "pleroma"
	KindSkeb     Kind = "skeb"
	KindWebsite  Kind = "website"
	KindCustom   Kind = "custom"
)

// Kinds lists every member of the closed Kind set, in declaration order.
var Kinds = []Kind{
	KindPixiv, KindX, KindBluesky, KindFantia, KindMastodon,
	KindMisskey, KindNijie, KindPleroma, KindSkeb, KindWebsite, KindCustom,
}

// Valid reports whether kind belongs to the closed set.
func (kind Kind) Valid() bool {
	for _, candidate := range Kinds {
		if candidate == kind {
			return true
		}
	}
	return false
}

// ExternalService is a catalogued provider that [Source] records point
// into. URLPattern, when set, is a Go regexp with named capture groups
// (e.g. "(?P<id>[^/]+)") whose inverse substitution by [RenderURL]
// renders an [ExternalMetadata] value into a canonical URL.
type ExternalService struct {
	ID         string    `json:"id"`
	Slug       string    `json:"slug"`
	Kind       Kind      `json:"kind"`
	Name       string    `json:"name"`
	BaseURL    *string   `json:"base_url,omitempty"`
	URLPattern *string   `json:"url_pattern,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Source is a single external reference a medium was sourced from.
// The pair (ExternalServiceID, ExternalMetadata) is unique.
type Source struct {
	ID                string           `json:"id"`
	ExternalService   ExternalService  `json:"external_service"`
	ExternalServiceID string           `json:"-"`
	ExternalMetadata  ExternalMetadata `json:"external_metadata"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// MarshalJSON renders ExternalMetadata through its discriminated
// envelope rather than whatever fields its concrete variant happens
// to expose.
func (entity Source) MarshalJSON() ([]byte, error) {
	type alias Source
	metadata, err := MarshalExternalMetadata(entity.ExternalMetadata)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		alias
		ExternalMetadata json.RawMessage `json:"external_metadata"`
	}{alias: alias(entity), ExternalMetadata: metadata})
}

// # Field Identifiers

const (
	FieldSlug       = "slug"
	FieldKind       = "kind"
	FieldName       = "name"
	FieldBaseURL    = "base_url"
	FieldURLPattern = "url_pattern"
)
