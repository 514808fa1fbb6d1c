// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomira/mediacore/internal/core/source"
	"github.com/yomira/mediacore/internal/platform/apperr"
)

type fakeExternalServiceRepository struct {
	byID    map[string]*source.ExternalService
	created *source.ExternalService
}

func newFakeExternalServiceRepository() *fakeExternalServiceRepository {
	return &fakeExternalServiceRepository{byID: map[string]*source.ExternalService{}}
}

func (f *fakeExternalServiceRepository) ListAll(ctx context.Context) ([]*source.ExternalService, error) {
	return nil, nil
}

func (f *fakeExternalServiceRepository) GetByID(ctx context.Context, id string) (*source.ExternalService, error) {
	if entity, ok := f.byID[id]; ok {
		return entity, nil
	}
	return nil, apperr.ExternalServiceNotFound(id)
}

func (f *fakeExternalServiceRepository) GetBySlug(ctx context.Context, slug string) (*source.ExternalService, error) {
	return nil, nil
}

func (f *fakeExternalServiceRepository) Create(ctx context.Context, entity *source.ExternalService) error {
	f.created = entity
	f.byID[entity.ID] = entity
	return nil
}

func (f *fakeExternalServiceRepository) Update(ctx context.Context, entity *source.ExternalService) error {
	return nil
}

func (f *fakeExternalServiceRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func TestExternalServiceService_Create_RejectsUnknownKind(t *testing.T) {
	repository := newFakeExternalServiceRepository()
	service := source.NewExternalServiceService(repository)

	err := service.Create(context.Background(), &source.ExternalService{Name: "Mystery Site", Kind: "not-a-kind"})

	require.Error(t, err)
	assert.Nil(t, repository.created)
}

func TestExternalServiceService_Create_RejectsInvalidURLPattern(t *testing.T) {
	repository := newFakeExternalServiceRepository()
	service := source.NewExternalServiceService(repository)
	badPattern := "(unclosed"

	err := service.Create(context.Background(), &source.ExternalService{
		Name: "Pixiv", Kind: source.KindPixiv, URLPattern: &badPattern,
	})

	require.Error(t, err)
	assert.Nil(t, repository.created)
}

func TestExternalServiceService_Create_DerivesSlugAndAccepts(t *testing.T) {
	repository := newFakeExternalServiceRepository()
	service := source.NewExternalServiceService(repository)

	err := service.Create(context.Background(), &source.ExternalService{Name: "Pixiv", Kind: source.KindPixiv})

	require.NoError(t, err)
	require.NotNil(t, repository.created)
	assert.Equal(t, "pixiv", repository.created.Slug)
}

type fakeSourceRepository struct {
	created *source.Source
}

func (f *fakeSourceRepository) GetByID(ctx context.Context, id string) (*source.Source, error) {
	return nil, nil
}

func (f *fakeSourceRepository) ListByExternalServiceID(ctx context.Context, externalServiceID string) ([]*source.Source, error) {
	return nil, nil
}

func (f *fakeSourceRepository) Create(ctx context.Context, entity *source.Source) error {
	f.created = entity
	return nil
}

func (f *fakeSourceRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func TestSourceService_Create_RejectsMetadataKindMismatch(t *testing.T) {
	services := newFakeExternalServiceRepository()
	services.byID["svc-1"] = &source.ExternalService{ID: "svc-1", Kind: source.KindPixiv}
	sources := &fakeSourceRepository{}
	service := source.NewSourceService(sources, services)

	err := service.Create(context.Background(), &source.Source{
		ExternalServiceID: "svc-1",
		ExternalMetadata:  source.XMetadata{ID: 1},
	})

	require.Error(t, err)
	assert.Nil(t, sources.created)
}

func TestSourceService_Create_AcceptsMatchingMetadataKind(t *testing.T) {
	services := newFakeExternalServiceRepository()
	services.byID["svc-1"] = &source.ExternalService{ID: "svc-1", Kind: source.KindPixiv}
	sources := &fakeSourceRepository{}
	service := source.NewSourceService(sources, services)

	err := service.Create(context.Background(), &source.Source{
		ExternalServiceID: "svc-1",
		ExternalMetadata:  source.PixivMetadata{ID: 1},
	})

	require.NoError(t, err)
	require.NotNil(t, sources.created)
}
