// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package medium

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yomira/mediacore/internal/platform/objectstore"
	requestutil "github.com/yomira/mediacore/internal/platform/request"
	"github.com/yomira/mediacore/internal/platform/respond"
)

// ReplicaHandler implements the HTTP layer for replica ingestion.
type ReplicaHandler struct {
	service *Service
}

// NewReplicaHandler constructs a new handler.
func NewReplicaHandler(service *Service) *ReplicaHandler {
	return &ReplicaHandler{service: service}
}

func (handler *ReplicaHandler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}", handler.fetchByID)
	router.Put("/{id}/content", handler.putReplica)
}

func (handler *ReplicaHandler) fetchByID(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	replica, err := handler.service.replicas.FetchByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, replica)
}

// putReplica runs phase 1 of the ingestion pipeline synchronously and
// responds as soon as it commits; phase 2 continues detached. Callers
// that need the terminal Ready/Error outcome poll fetchByID.
func (handler *ReplicaHandler) putReplica(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	path := request.URL.Query().Get("path")

	overwrite := objectstore.OverwriteFail
	if request.URL.Query().Get("overwrite") == "true" {
		overwrite = objectstore.OverwriteOverwrite
	}

	replica, _, err := handler.service.PutReplica(request.Context(), id, MediaSource{
		Path:      path,
		Reader:    request.Body,
		Overwrite: overwrite,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Accepted(writer, replica)
}
