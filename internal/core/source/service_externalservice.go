// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"context"
	"regexp"

	"github.com/yomira/mediacore/internal/platform/apperr"
	"github.com/yomira/mediacore/internal/platform/validate"
	"github.com/yomira/mediacore/pkg/slug"
)

// ExternalServiceService validates and orchestrates catalogue writes
// around an [ExternalServiceRepository].
type ExternalServiceService struct {
	repository ExternalServiceRepository
}

// NewExternalServiceService constructs a new service.
func NewExternalServiceService(repository ExternalServiceRepository) *ExternalServiceService {
	return &ExternalServiceService{repository: repository}
}

func (service *ExternalServiceService) ListAll(ctx context.Context) ([]*ExternalService, error) {
	return service.repository.ListAll(ctx)
}

func (service *ExternalServiceService) GetByID(ctx context.Context, id string) (*ExternalService, error) {
	return service.repository.GetByID(ctx, id)
}

func (service *ExternalServiceService) GetBySlug(ctx context.Context, slugValue string) (*ExternalService, error) {
	return service.repository.GetBySlug(ctx, slugValue)
}

func (service *ExternalServiceService) Create(ctx context.Context, entity *ExternalService) error {
	if entity.Slug == "" {
		entity.Slug = slug.From(entity.Name)
	}
	if err := validateExternalService(entity); err != nil {
		return err
	}
	return service.repository.Create(ctx, entity)
}

func (service *ExternalServiceService) Update(ctx context.Context, id string, entity *ExternalService) error {
	entity.ID = id
	if err := validateExternalService(entity); err != nil {
		return err
	}
	return service.repository.Update(ctx, entity)
}

func (service *ExternalServiceService) Delete(ctx context.Context, id string) error {
	return service.repository.Delete(ctx, id)
}

func validateExternalService(entity *ExternalService) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, entity.Name).MaxLen(FieldName, entity.Name, 100)
	validator.Required(FieldSlug, entity.Slug).Slug(FieldSlug, entity.Slug)
	validator.OneOf(FieldKind, string(entity.Kind), kindStrings()...)
	if err := validator.Err(); err != nil {
		return err
	}

	if entity.URLPattern != nil {
		if _, err := regexp.Compile(*entity.URLPattern); err != nil {
			return apperr.ExternalServiceUrlPatternInvalid(*entity.URLPattern, err)
		}
	}
	return nil
}

func kindStrings() []string {
	out := make([]string, len(Kinds))
	for i, kind := range Kinds {
		out[i] = string(kind)
	}
	return out
}
