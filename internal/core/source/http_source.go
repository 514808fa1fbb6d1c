// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package source

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/yomira/mediacore/internal/platform/request"
	"github.com/yomira/mediacore/internal/platform/respond"
)

// SourceHandler implements the HTTP layer for per-medium source
// references.
type SourceHandler struct {
	service *SourceService
}

// NewSourceHandler constructs a new handler.
func NewSourceHandler(service *SourceService) *SourceHandler {
	return &SourceHandler{service: service}
}

func (handler *SourceHandler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}", handler.getByID)
	router.Post("/", handler.create)
	router.Delete("/{id}", handler.delete)
}

// createRequest carries ExternalMetadata as a raw {"kind", "data"}
// envelope since the field's concrete type depends on the kind named
// inside it, not on any surrounding struct tag.
type createRequest struct {
	ExternalServiceID string          `json:"external_service_id"`
	ExternalMetadata  json.RawMessage `json:"external_metadata"`
}

func (handler *SourceHandler) getByID(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	entity, err := handler.service.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entity)
}

func (handler *SourceHandler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	metadata, err := UnmarshalExternalMetadata(input.ExternalMetadata)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity := &Source{
		ExternalServiceID: input.ExternalServiceID,
		ExternalMetadata:  metadata,
	}
	if err := handler.service.Create(request.Context(), entity); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, entity)
}

func (handler *SourceHandler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
