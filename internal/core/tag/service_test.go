// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomira/mediacore/internal/core/tag"
	"github.com/yomira/mediacore/internal/platform/apperr"
)

type fakeRepository struct {
	createCalled bool
	lastDepth    tag.Depth

	updateCalled     bool
	attachCalled     bool
	detachCalled     bool
	deleteCalled     bool
	deleteShouldFail bool
	attachShouldFail bool
}

func (f *fakeRepository) Create(ctx context.Context, name, kana string, aliases []string, parentID string, depth tag.Depth) (*tag.Tag, error) {
	f.createCalled = true
	f.lastDepth = depth
	return &tag.Tag{ID: "new-tag", Name: name, Kana: kana, Aliases: aliases}, nil
}

func (f *fakeRepository) FetchByIDs(ctx context.Context, ids []string, depth tag.Depth) ([]tag.Tag, error) {
	result := make([]tag.Tag, 0, len(ids))
	for _, id := range ids {
		result = append(result, tag.Tag{ID: id})
	}
	return result, nil
}

func (f *fakeRepository) FetchByNameOrAliasLike(ctx context.Context, pattern string, depth tag.Depth) ([]tag.Tag, error) {
	return []tag.Tag{{ID: "matched", Name: pattern}}, nil
}

func (f *fakeRepository) FetchAll(ctx context.Context, depth tag.Depth, rootOnly bool, after, before *tag.Cursor, order tag.Order, limit int) ([]tag.Tag, error) {
	f.lastDepth = depth
	return make([]tag.Tag, limit), nil
}

func (f *fakeRepository) UpdateByID(ctx context.Context, id string, name, kana *string, addAliases, removeAliases []string, depth tag.Depth) (*tag.Tag, error) {
	f.updateCalled = true
	return &tag.Tag{ID: id}, nil
}

func (f *fakeRepository) AttachByID(ctx context.Context, id, newParentID string, depth tag.Depth) (*tag.Tag, error) {
	f.attachCalled = true
	if f.attachShouldFail {
		return nil, apperr.TagAttachingToItself(id)
	}
	return &tag.Tag{ID: id}, nil
}

func (f *fakeRepository) DetachByID(ctx context.Context, id string, depth tag.Depth) (*tag.Tag, error) {
	f.detachCalled = true
	return &tag.Tag{ID: id}, nil
}

func (f *fakeRepository) DeleteByID(ctx context.Context, id string, recursive bool) (tag.DeleteResult, error) {
	f.deleteCalled = true
	if f.deleteShouldFail {
		return tag.DeleteResult{}, apperr.TagChildrenExist(3)
	}
	return tag.DeleteResult{Found: true, Count: 1}, nil
}

func newTestService(repository tag.Repository) *tag.Service {
	return tag.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestService_Create_RejectsBlankName verifies that required-field validation
runs before the repository is ever invoked.
*/
func TestService_Create_RejectsBlankName(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	_, err := service.Create(context.Background(), "", "kana", nil, "", tag.Depth{})

	require.Error(t, err)
	assert.False(t, repository.createCalled)
}

/*
TestService_Create_RejectsDepthBeyondMax verifies the depth bound is
enforced against constants.MaxTagDepth before delegating.
*/
func TestService_Create_RejectsDepthBeyondMax(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	_, err := service.Create(context.Background(), "Naruto", "naruto", nil, "", tag.Depth{Parent: 200, Children: 0})

	require.Error(t, err)
	assert.False(t, repository.createCalled)
}

/*
TestService_Create_DelegatesOnValidInput verifies a well-formed create call
reaches the repository unchanged.
*/
func TestService_Create_DelegatesOnValidInput(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	created, err := service.Create(context.Background(), "Naruto", "naruto", []string{"ninja"}, "", tag.Depth{Parent: 1, Children: 1})

	require.NoError(t, err)
	assert.True(t, repository.createCalled)
	assert.Equal(t, "Naruto", created.Name)
}

/*
TestService_FetchByNameOrAliasLike_RejectsEmptyPattern verifies that an
empty search pattern fails fast with a validation error.
*/
func TestService_FetchByNameOrAliasLike_RejectsEmptyPattern(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	_, err := service.FetchByNameOrAliasLike(context.Background(), "", tag.Depth{})
	require.Error(t, err)
}

/*
TestService_FetchAll_ClampsOutOfRangeLimit verifies that a non-positive or
over-max limit falls back to the default page size.
*/
func TestService_FetchAll_ClampsOutOfRangeLimit(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	results, err := service.FetchAll(context.Background(), tag.Depth{}, false, nil, nil, tag.OrderAsc, 0)

	require.NoError(t, err)
	assert.Len(t, results, 20)
}

/*
TestService_UpdateByID_RejectsRoot verifies that the root sentinel can never
be targeted by a rename/alias update.
*/
func TestService_UpdateByID_RejectsRoot(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	_, err := service.UpdateByID(context.Background(), tag.RootID, nil, nil, nil, nil, tag.Depth{})

	require.Error(t, err)
	assert.False(t, repository.updateCalled)
}

/*
TestService_DeleteByID_PropagatesChildrenExistError verifies that a
non-recursive delete against a tag with descendants surfaces the
repository's conflict error unchanged.
*/
func TestService_DeleteByID_PropagatesChildrenExistError(t *testing.T) {
	repository := &fakeRepository{deleteShouldFail: true}
	service := newTestService(repository)

	_, err := service.DeleteByID(context.Background(), "some-id", false)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TAG_CHILDREN_EXIST", ae.Code)
}
