// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// ExternalMetadata is the tagged union of provider-specific identifying
// data a [Source] carries. Its concrete variant is determined by the
// owning [ExternalService]'s Kind.
type ExternalMetadata interface {
	// Kind reports which [Kind] this variant renders.
	Kind() Kind

	// Fields returns the named capture-group values used to render
	// this variant into a URLPattern.
	Fields() map[string]string
}

type PixivMetadata struct {
	ID uint64 `json:"id"`
}

func (m PixivMetadata) Kind() Kind { return KindPixiv }
func (m PixivMetadata) Fields() map[string]string {
	return map[string]string{"id": fmt.Sprint(m.ID)}
}

type XMetadata struct {
	ID        uint64  `json:"id"`
	CreatorID *string `json:"creator_id,omitempty"`
}

func (m XMetadata) Kind() Kind { return KindX }
func (m XMetadata) Fields() map[string]string {
	fields := map[string]string{"id": fmt.Sprint(m.ID)}
	if m.CreatorID != nil {
		fields["creatorId"] = *m.CreatorID
	}
	return fields
}

type BlueskyMetadata struct {
	DID      string `json:"did"`
	RecordID string `json:"record_id,omitempty"`
}

func (m BlueskyMetadata) Kind() Kind { return KindBluesky }
func (m BlueskyMetadata) Fields() map[string]string {
	return map[string]string{"did": m.DID, "recordId": m.RecordID}
}

type FantiaMetadata struct {
	ID uint64 `json:"id"`
}

func (m FantiaMetadata) Kind() Kind { return KindFantia }
func (m FantiaMetadata) Fields() map[string]string {
	return map[string]string{"id": fmt.Sprint(m.ID)}
}

type MastodonMetadata struct {
	Instance string `json:"instance"`
	ID       uint64 `json:"id"`
}

func (m MastodonMetadata) Kind() Kind { return KindMastodon }
func (m MastodonMetadata) Fields() map[string]string {
	return map[string]string{"instance": m.Instance, "id": fmt.Sprint(m.ID)}
}

type MisskeyMetadata struct {
	Instance string `json:"instance"`
	ID       string `json:"id"`
}

func (m MisskeyMetadata) Kind() Kind { return KindMisskey }
func (m MisskeyMetadata) Fields() map[string]string {
	return map[string]string{"instance": m.Instance, "id": m.ID}
}

type NijieMetadata struct {
	ID uint64 `json:"id"`
}

func (m NijieMetadata) Kind() Kind { return KindNijie }
func (m NijieMetadata) Fields() map[string]string {
	return map[string]string{"id": fmt.Sprint(m.ID)}
}

type PleromaMetadata struct {
	Instance string `json:"instance"`
	ID       string `json:"id"`
}

func (m PleromaMetadata) Kind() Kind { return KindPleroma }
func (m PleromaMetadata) Fields() map[string]string {
	return map[string]string{"instance": m.Instance, "id": m.ID}
}

type SkebMetadata struct {
	CreatorID string `json:"creator_id"`
	ID        uint64 `json:"id"`
}

func (m SkebMetadata) Kind() Kind { return KindSkeb }
func (m SkebMetadata) Fields() map[string]string {
	return map[string]string{"creatorId": m.CreatorID, "id": fmt.Sprint(m.ID)}
}

type WebsiteMetadata struct {
	URL string `json:"url"`
}

func (m WebsiteMetadata) Kind() Kind { return KindWebsite }
func (m WebsiteMetadata) Fields() map[string]string {
	return map[string]string{"url": m.URL}
}

// CustomMetadata is the fallback variant for kinds outside the closed
// set, and for kind=custom services with ad-hoc identifying data.
type CustomMetadata struct {
	Data map[string]any `json:"data"`
}

func (m CustomMetadata) Kind() Kind { return KindCustom }
func (m CustomMetadata) Fields() map[string]string {
	fields := make(map[string]string, len(m.Data))
	for k, v := range m.Data {
		fields[k] = fmt.Sprint(v)
	}
	return fields
}

// # JSON Envelope

type metadataEnvelope struct {
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// MarshalExternalMetadata wraps a variant in its discriminated
// {"kind": ..., "data": ...} envelope.
func MarshalExternalMetadata(metadata ExternalMetadata) ([]byte, error) {
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, err
	}
	return json.Marshal(metadataEnvelope{Kind: metadata.Kind(), Data: data})
}

// UnmarshalExternalMetadata reads a discriminated envelope back into
// the concrete variant matching its kind field. Unknown kinds decode
// into [CustomMetadata].
func UnmarshalExternalMetadata(raw []byte) (ExternalMetadata, error) {
	var envelope metadataEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	var metadata ExternalMetadata
	switch envelope.Kind {
	case KindPixiv:
		var m PixivMetadata
		metadata = &m
	case KindX:
		var m XMetadata
		metadata = &m
	case KindBluesky:
		var m BlueskyMetadata
		metadata = &m
	case KindFantia:
		var m FantiaMetadata
		metadata = &m
	case KindMastodon:
		var m MastodonMetadata
		metadata = &m
	case KindMisskey:
		var m MisskeyMetadata
		metadata = &m
	case KindNijie:
		var m NijieMetadata
		metadata = &m
	case KindPleroma:
		var m PleromaMetadata
		metadata = &m
	case KindSkeb:
		var m SkebMetadata
		metadata = &m
	case KindWebsite:
		var m WebsiteMetadata
		metadata = &m
	default:
		var m CustomMetadata
		metadata = &m
	}

	if err := json.Unmarshal(envelope.Data, metadata); err != nil {
		return nil, err
	}
	return derefMetadata(metadata), nil
}

// derefMetadata unwraps the pointer receivers used during Unmarshal so
// callers hold the plain value variants the constructors return.
func derefMetadata(metadata ExternalMetadata) ExternalMetadata {
	switch m := metadata.(type) {
	case *PixivMetadata:
		return *m
	case *XMetadata:
		return *m
	case *BlueskyMetadata:
		return *m
	case *FantiaMetadata:
		return *m
	case *MastodonMetadata:
		return *m
	case *MisskeyMetadata:
		return *m
	case *NijieMetadata:
		return *m
	case *PleromaMetadata:
		return *m
	case *SkebMetadata:
		return *m
	case *WebsiteMetadata:
		return *m
	case *CustomMetadata:
		return *m
	default:
		return metadata
	}
}

// # URL Rendering

// RenderURL substitutes metadata's named fields into an ExternalService's
// URLPattern, producing the canonical URL for that source. Regex escapes
// in the literal parts (`\.`) are dropped. Only named groups written
// exactly as (?P<name>[^/]+) are substituted; other groups, and groups
// whose name has no field in metadata, are left as written.
func RenderURL(pattern string, metadata ExternalMetadata) (string, error) {
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return "", err
	}

	fields := metadata.Fields()
	result := regexp.MustCompile(`\\(.)`).ReplaceAllString(pattern, "$1")
	for _, name := range compiled.SubexpNames() {
		if name == "" {
			continue
		}
		group := fmt.Sprintf("(?P<%s>[^/]+)", name)
		value, ok := fields[name]
		if !ok {
			continue
		}
		result = regexp.MustCompile(regexp.QuoteMeta(group)).ReplaceAllString(result, value)
	}
	return result, nil
}
