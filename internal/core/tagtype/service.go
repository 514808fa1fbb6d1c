// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tagtype

import (
	"context"

	"github.com/yomira/mediacore/internal/platform/validate"
	"github.com/yomira/mediacore/pkg/slug"
)

// Service orchestrates validation and slug normalization for the tag type
// catalogue.
type Service struct {
	repository Repository
}

// NewService constructs a new tag type [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

func (service *Service) ListAll(ctx context.Context) ([]*TagType, error) {
	return service.repository.ListAll(ctx)
}

func (service *Service) GetByID(ctx context.Context, id string) (*TagType, error) {
	return service.repository.GetByID(ctx, id)
}

func (service *Service) GetBySlug(ctx context.Context, tagSlug string) (*TagType, error) {
	return service.repository.GetBySlug(ctx, tagSlug)
}

/*
Create validates and persists a new tag type.

Description: The slug is derived from Name when the caller does not supply
one, normalized through [slug.From].
*/
func (service *Service) Create(ctx context.Context, t *TagType) error {
	if t.Slug == "" {
		t.Slug = slug.From(t.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, t.Name).MaxLen(FieldName, t.Name, 100)
	validator.Required(FieldSlug, t.Slug)
	validator.KanaSlug(FieldKana, t.Kana)
	if err := validator.Err(); err != nil {
		return err
	}

	return service.repository.Create(ctx, t)
}

func (service *Service) Update(ctx context.Context, id string, t *TagType) error {
	t.ID = id

	validator := &validate.Validator{}
	validator.Required(FieldName, t.Name).MaxLen(FieldName, t.Name, 100)
	validator.KanaSlug(FieldKana, t.Kana)
	if err := validator.Err(); err != nil {
		return err
	}

	return service.repository.Update(ctx, t)
}

func (service *Service) Delete(ctx context.Context, id string) error {
	return service.repository.Delete(ctx, id)
}
