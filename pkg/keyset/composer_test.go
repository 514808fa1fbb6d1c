// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package keyset_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomira/mediacore/pkg/keyset"
)

func TestCursor_EncodeDecode_RoundTrips(t *testing.T) {
	original := keyset.CursorOf(time.Date(2026, 3, 1, 12, 30, 0, 123000, time.UTC), "0198f0c2-1234-7abc-8def-0123456789ab")

	decoded, err := keyset.Decode(original.Encode())

	require.NoError(t, err)
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, original.ID, decoded.ID)
}

func TestDecode_RejectsMalformedToken(t *testing.T) {
	_, err := keyset.Decode("not-valid-base64!!!")
	require.Error(t, err)

	_, err = keyset.Decode("bm8tbnVsLWJ5dGUtaGVyZQ==")
	require.Error(t, err)
}

func TestCompose_RejectsFirstAndLastTogether(t *testing.T) {
	first, last := 5, 5
	_, err := keyset.Compose(keyset.Request{First: &first, Last: &last})
	require.Error(t, err)
}

func TestCompose_RejectsAfterAndBeforeTogether(t *testing.T) {
	after, before := "a", "b"
	_, err := keyset.Compose(keyset.Request{After: &after, Before: &before})
	require.Error(t, err)
}

func TestCompose_First_Asc_ReadsForwardAscending(t *testing.T) {
	first := 3
	call, err := keyset.Compose(keyset.Request{First: &first, Order: keyset.OrderAsc})

	require.NoError(t, err)
	assert.Equal(t, keyset.OrderAsc, call.Order)
	assert.Equal(t, keyset.DirectionForward, call.Direction)
	assert.Equal(t, 4, call.Limit)
}

func TestCompose_Last_Asc_InvertsStoreOrder(t *testing.T) {
	last := 3
	call, err := keyset.Compose(keyset.Request{Last: &last, Order: keyset.OrderAsc})

	require.NoError(t, err)
	assert.Equal(t, keyset.OrderDesc, call.Order)
	assert.Equal(t, 4, call.Limit)
}

func TestPaginate_TrimsProbeRowAndSetsHasNextPage(t *testing.T) {
	first := 2
	call, err := keyset.Compose(keyset.Request{First: &first, Order: keyset.OrderAsc})
	require.NoError(t, err)

	page := keyset.Paginate(call, []int{1, 2, 3})

	assert.Equal(t, []int{1, 2}, page.Items)
	assert.True(t, page.HasNextPage)
	assert.False(t, page.HasPreviousPage)
}

func TestPaginate_Last_ReversesBackIntoRequestedOrder(t *testing.T) {
	last := 2
	call, err := keyset.Compose(keyset.Request{Last: &last, Order: keyset.OrderAsc})
	require.NoError(t, err)

	// Store executed Desc and returned [3, 2, 1] (probe row included).
	page := keyset.Paginate(call, []int{3, 2, 1})

	assert.Equal(t, []int{2, 3}, page.Items)
	assert.True(t, page.HasPreviousPage)
}

func TestPaginate_NoExtraRow_NoFurtherPage(t *testing.T) {
	first := 5
	call, err := keyset.Compose(keyset.Request{First: &first, Order: keyset.OrderAsc})
	require.NoError(t, err)

	page := keyset.Paginate(call, []int{1, 2})

	assert.Equal(t, []int{1, 2}, page.Items)
	assert.False(t, page.HasNextPage)
}
