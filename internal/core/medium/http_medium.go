// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package medium

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yomira/mediacore/internal/core/tag"
	"github.com/yomira/mediacore/internal/platform/apperr"
	requestutil "github.com/yomira/mediacore/internal/platform/request"
	"github.com/yomira/mediacore/internal/platform/respond"
	"github.com/yomira/mediacore/pkg/convert"
	"github.com/yomira/mediacore/pkg/keyset"
)

// Handler implements the HTTP layer for the Medium aggregate.
type Handler struct {
	service *Service
}

// NewHandler constructs a new handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.fetch)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.fetchByID)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
}

type createRequest struct {
	SourceIDs []string        `json:"source_ids"`
	Tags      []TagAttachment `json:"tags"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var body createRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateMedium(request.Context(), body.SourceIDs, body.Tags, depthFromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) fetchByID(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	media, err := handler.service.FetchMediaByIDs(request.Context(), []string{id}, depthFromRequest(request), includeReplicas(request), includeSources(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(media) == 0 {
		respond.Error(writer, request, apperr.MediumNotFound(id))
		return
	}
	respond.OK(writer, media[0])
}

func (handler *Handler) fetch(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.FetchMedia(request.Context(), pageRequestFromRequest(request), depthFromRequest(request), includeReplicas(request), includeSources(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

type updateRequest struct {
	AddSourceIDs    []string        `json:"add_source_ids"`
	RemoveSourceIDs []string        `json:"remove_source_ids"`
	AddTags         []TagAttachment `json:"add_tags"`
	RemoveTags      []TagAttachment `json:"remove_tags"`
	ReplicaOrder    []string        `json:"replica_order"`
	CreatedAt       *time.Time      `json:"created_at"`
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	var body updateRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateMedium(request.Context(), id,
		body.AddSourceIDs, body.RemoveSourceIDs, body.AddTags, body.RemoveTags, body.ReplicaOrder, body.CreatedAt,
		depthFromRequest(request), includeReplicas(request), includeSources(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	if err := handler.service.DeleteMedium(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func depthFromRequest(request *http.Request) tag.Depth {
	q := request.URL.Query()
	return tag.Depth{
		Parent:   uint8(convert.ToIntD(q.Get("depth_parent"), 0)),
		Children: uint8(convert.ToIntD(q.Get("depth_children"), 0)),
	}
}

func includeReplicas(request *http.Request) bool {
	return convert.ToBool(request.URL.Query().Get("include_replicas"))
}

func includeSources(request *http.Request) bool {
	return convert.ToBool(request.URL.Query().Get("include_sources"))
}

func pageRequestFromRequest(request *http.Request) keyset.Request {
	q := request.URL.Query()

	result := keyset.Request{Order: keyset.Order(q.Get("order"))}
	if first := convert.ToIntD(q.Get("first"), 0); first > 0 {
		result.First = &first
	}
	if last := convert.ToIntD(q.Get("last"), 0); last > 0 {
		result.Last = &last
	}
	if after := q.Get("after"); after != "" {
		result.After = &after
	}
	if before := q.Get("before"); before != "" {
		result.Before = &before
	}
	return result
}
