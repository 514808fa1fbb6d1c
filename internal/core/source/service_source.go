// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"context"

	"github.com/yomira/mediacore/internal/platform/apperr"
)

// SourceService validates and orchestrates source writes around a
// [SourceRepository]. It depends on [ExternalServiceRepository] only to
// confirm the referenced service exists before accepting a write.
type SourceService struct {
	sources  SourceRepository
	services ExternalServiceRepository
}

// NewSourceService constructs a new service.
func NewSourceService(sources SourceRepository, services ExternalServiceRepository) *SourceService {
	return &SourceService{sources: sources, services: services}
}

func (service *SourceService) GetByID(ctx context.Context, id string) (*Source, error) {
	return service.sources.GetByID(ctx, id)
}

func (service *SourceService) ListByExternalServiceID(ctx context.Context, externalServiceID string) ([]*Source, error) {
	return service.sources.ListByExternalServiceID(ctx, externalServiceID)
}

// Create validates that the referenced external service exists and that
// its metadata is the variant its Kind expects, then persists the source.
func (service *SourceService) Create(ctx context.Context, entity *Source) error {
	externalService, err := service.services.GetByID(ctx, entity.ExternalServiceID)
	if err != nil {
		return err
	}

	if entity.ExternalMetadata == nil || entity.ExternalMetadata.Kind() != externalService.Kind {
		return apperr.ExternalServiceMetadataInvalid("metadata kind does not match the external service's kind")
	}

	entity.ExternalService = *externalService
	return service.sources.Create(ctx, entity)
}

func (service *SourceService) Delete(ctx context.Context, id string) error {
	return service.sources.Delete(ctx, id)
}
