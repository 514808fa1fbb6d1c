// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/yomira/mediacore/internal/platform/request"
	"github.com/yomira/mediacore/internal/platform/respond"
)

// ExternalServiceHandler implements the HTTP layer for the provider
// catalogue.
type ExternalServiceHandler struct {
	service *ExternalServiceService
}

// NewExternalServiceHandler constructs a new handler.
func NewExternalServiceHandler(service *ExternalServiceService) *ExternalServiceHandler {
	return &ExternalServiceHandler{service: service}
}

func (handler *ExternalServiceHandler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listAll)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.getByID)
	router.Get("/by-slug/{slug}", handler.getBySlug)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)
}

func (handler *ExternalServiceHandler) listAll(writer http.ResponseWriter, request *http.Request) {
	services, err := handler.service.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, services)
}

func (handler *ExternalServiceHandler) getByID(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	entity, err := handler.service.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

func (handler *ExternalServiceHandler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	slugParam := requestutil.Param(request, "slug")
	entity, err := handler.service.GetBySlug(request.Context(), slugParam)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

func (handler *ExternalServiceHandler) create(writer http.ResponseWriter, request *http.Request) {
	var input ExternalService
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

func (handler *ExternalServiceHandler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	var input ExternalService
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

func (handler *ExternalServiceHandler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
