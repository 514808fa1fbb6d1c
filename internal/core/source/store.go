// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import "context"

// ExternalServiceRepository persists the catalogue of providers that
// [Source] records point into.
type ExternalServiceRepository interface {
	ListAll(ctx context.Context) ([]*ExternalService, error)
	GetByID(ctx context.Context, id string) (*ExternalService, error)
	GetBySlug(ctx context.Context, slug string) (*ExternalService, error)
	Create(ctx context.Context, service *ExternalService) error
	Update(ctx context.Context, service *ExternalService) error
	Delete(ctx context.Context, id string) error
}

// SourceRepository persists per-medium external references. It is
// consumed by [internal/core/medium] when hydrating a Medium's source
// list, and directly by [SourceService] for the catalogue-adjacent CRUD
// surface exposed over HTTP.
type SourceRepository interface {
	GetByID(ctx context.Context, id string) (*Source, error)
	ListByExternalServiceID(ctx context.Context, externalServiceID string) ([]*Source, error)
	Create(ctx context.Context, source *Source) error
	Delete(ctx context.Context, id string) error
}
