// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tagtype

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/yomira/mediacore/internal/platform/request"
	"github.com/yomira/mediacore/internal/platform/respond"
)

// Handler implements the HTTP layer for the tag type catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new tag type [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listAll)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.getByID)
	router.Get("/by-slug/{slug}", handler.getBySlug)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
}

func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	types, err := handler.service.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, types)
}

func (handler *Handler) getByID(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	tagType, err := handler.service.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tagType)
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	slugParam := requestutil.Param(request, "slug")
	tagType, err := handler.service.GetBySlug(request.Context(), slugParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tagType)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input TagType
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	var input TagType
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := handler.service.Update(request.Context(), id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
