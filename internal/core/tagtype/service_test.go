// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tagtype_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomira/mediacore/internal/core/tagtype"
)

type fakeRepository struct {
	created *tagtype.TagType
}

func (f *fakeRepository) ListAll(ctx context.Context) ([]*tagtype.TagType, error) {
	return nil, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*tagtype.TagType, error) {
	return &tagtype.TagType{ID: id}, nil
}

func (f *fakeRepository) GetBySlug(ctx context.Context, slug string) (*tagtype.TagType, error) {
	return &tagtype.TagType{Slug: slug}, nil
}

func (f *fakeRepository) Create(ctx context.Context, t *tagtype.TagType) error {
	f.created = t
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, t *tagtype.TagType) error {
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string) error {
	return nil
}

/*
TestService_Create_DerivesSlugFromName verifies that an empty Slug is
normalized from Name rather than rejected.
*/
func TestService_Create_DerivesSlugFromName(t *testing.T) {
	repository := &fakeRepository{}
	service := tagtype.NewService(repository)

	err := service.Create(context.Background(), &tagtype.TagType{Name: "Character", Kana: "kyarakutaa"})

	require.NoError(t, err)
	assert.Equal(t, "character", repository.created.Slug)
}

/*
TestService_Create_RejectsBlankName verifies required-field validation
runs before the repository is invoked.
*/
func TestService_Create_RejectsBlankName(t *testing.T) {
	repository := &fakeRepository{}
	service := tagtype.NewService(repository)

	err := service.Create(context.Background(), &tagtype.TagType{Kana: "x"})

	require.Error(t, err)
	assert.Nil(t, repository.created)
}
