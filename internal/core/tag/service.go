// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"log/slog"

	"github.com/yomira/mediacore/internal/platform/apperr"
	"github.com/yomira/mediacore/internal/platform/constants"
	"github.com/yomira/mediacore/internal/platform/validate"
)

// Service is the thin validation layer in front of [Repository]; request
// decoding and HTTP concerns live in [Handler].
type Service struct {
	repository Repository
	logger     *slog.Logger
}

func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

func (service *Service) Create(ctx context.Context, name, kana string, aliases []string, parentID string, depth Depth) (*Tag, error) {
	validator := &validate.Validator{}
	validator.Required("name", name).MaxLen("name", name, 255)
	validator.KanaSlug("kana", kana)
	validator.Depth("depth.parent", int(depth.Parent), constants.MaxTagDepth)
	validator.Depth("depth.children", int(depth.Children), constants.MaxTagDepth)
	if parentID != "" {
		validator.UUID("parent_id", parentID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repository.Create(ctx, name, kana, aliases, parentID, depth)
}

func (service *Service) FetchByIDs(ctx context.Context, ids []string, depth Depth) ([]Tag, error) {
	return service.repository.FetchByIDs(ctx, ids, depth)
}

func (service *Service) FetchByNameOrAliasLike(ctx context.Context, pattern string, depth Depth) ([]Tag, error) {
	if pattern == "" {
		return nil, validate.RequiredError("pattern", "This field is required")
	}
	return service.repository.FetchByNameOrAliasLike(ctx, pattern, depth)
}

func (service *Service) FetchAll(ctx context.Context, depth Depth, rootOnly bool, after, before *Cursor, order Order, limit int) ([]Tag, error) {
	if limit <= 0 || limit > constants.MaxPageLimit {
		limit = constants.DefaultPageLimit
	}
	return service.repository.FetchAll(ctx, depth, rootOnly, after, before, order, limit)
}

func (service *Service) UpdateByID(ctx context.Context, id string, name, kana *string, addAliases, removeAliases []string, depth Depth) (*Tag, error) {
	if id == RootID {
		return nil, apperr.RootTagUpdated()
	}
	return service.repository.UpdateByID(ctx, id, name, kana, addAliases, removeAliases, depth)
}

func (service *Service) AttachByID(ctx context.Context, id, newParentID string, depth Depth) (*Tag, error) {
	tag, err := service.repository.AttachByID(ctx, id, newParentID, depth)
	if err != nil {
		service.logger.Warn("tag_attach_failed", slog.String("id", id), slog.String("new_parent_id", newParentID), slog.Any("error", err))
	}
	return tag, err
}

func (service *Service) DetachByID(ctx context.Context, id string, depth Depth) (*Tag, error) {
	return service.repository.DetachByID(ctx, id, depth)
}

func (service *Service) DeleteByID(ctx context.Context, id string, recursive bool) (DeleteResult, error) {
	result, err := service.repository.DeleteByID(ctx, id, recursive)
	if err != nil {
		service.logger.Warn("tag_delete_failed", slog.String("id", id), slog.Bool("recursive", recursive), slog.Any("error", err))
	}
	return result, err
}
