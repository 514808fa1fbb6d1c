// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package medium_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yomira/mediacore/internal/core/medium"
)

/*
TestOpt_Unset_IsNotSet verifies the zero value of [medium.Opt] reports
unset and returns T's zero value from Get.
*/
func TestOpt_Unset_IsNotSet(t *testing.T) {
	opt := medium.Unset[string]()

	value, ok := opt.Get()
	assert.False(t, ok)
	assert.False(t, opt.IsSet())
	assert.Equal(t, "", value)
}

/*
TestOpt_Set_RoundTrips verifies Set stores and returns the value with
ok true.
*/
func TestOpt_Set_RoundTrips(t *testing.T) {
	opt := medium.Set(42)

	value, ok := opt.Get()
	require := assert.New(t)
	require.True(ok)
	require.True(opt.IsSet())
	require.Equal(42, value)
}

/*
TestOpt_PointerType_CollapsesDoubleOption verifies that Opt[*T] gives
the double-option semantics a [medium.ReplicaUpdate] field needs:
unset leaves the column untouched, Set(nil) clears it, and Set(&v)
writes it — all distinguishable without a three-state enum.
*/
func TestOpt_PointerType_CollapsesDoubleOption(t *testing.T) {
	untouched := medium.Unset[*medium.Thumbnail]()
	_, untouchedOK := untouched.Get()
	assert.False(t, untouchedOK)

	cleared := medium.Set[*medium.Thumbnail](nil)
	clearedValue, clearedOK := cleared.Get()
	assert.True(t, clearedOK)
	assert.Nil(t, clearedValue)

	thumbnail := &medium.Thumbnail{ID: "thumb-1"}
	written := medium.Set(thumbnail)
	writtenValue, writtenOK := written.Get()
	assert.True(t, writtenOK)
	assert.Same(t, thumbnail, writtenValue)
}
