// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomira/mediacore/internal/core/source"
)

func TestMarshalUnmarshalExternalMetadata_RoundTrips(t *testing.T) {
	cases := []source.ExternalMetadata{
		source.PixivMetadata{ID: 12345},
		source.XMetadata{ID: 999},
		source.BlueskyMetadata{DID: "did:plc:abc", RecordID: "rec1"},
		source.WebsiteMetadata{URL: "https://example.com/art/1"},
		source.CustomMetadata{Data: map[string]any{"note": "hand-entered"}},
	}

	for _, original := range cases {
		raw, err := source.MarshalExternalMetadata(original)
		require.NoError(t, err)

		decoded, err := source.UnmarshalExternalMetadata(raw)
		require.NoError(t, err)
		assert.Equal(t, original.Kind(), decoded.Kind())
		assert.Equal(t, original, decoded)
	}
}

func TestUnmarshalExternalMetadata_UnknownKindFallsBackToCustom(t *testing.T) {
	decoded, err := source.UnmarshalExternalMetadata([]byte(`{"kind":"unknown-future-provider","data":{"id":"1"}}`))

	require.NoError(t, err)
	assert.Equal(t, source.KindCustom, decoded.Kind())
}

func TestRenderURL_SubstitutesNamedCaptureGroups(t *testing.T) {
	pattern := `https://www\.pixiv\.net/artworks/(?P<id>[^/]+)`
	url, err := source.RenderURL(pattern, source.PixivMetadata{ID: 42})

	require.NoError(t, err)
	assert.Equal(t, `https://www.pixiv.net/artworks/42`, url)
}

func TestKind_Valid(t *testing.T) {
	assert.True(t, source.KindPixiv.Valid())
	assert.True(t, source.KindCustom.Valid())
	assert.False(t, source.Kind("not-a-real-provider").Valid())
}
