// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yomira/mediacore/internal/platform/apperr"
	requestutil "github.com/yomira/mediacore/internal/platform/request"
	"github.com/yomira/mediacore/internal/platform/respond"
	"github.com/yomira/mediacore/pkg/convert"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.fetchAll)
	router.Post("/", handler.create)
	router.Get("/search", handler.search)
	router.Get("/{id}", handler.fetchByID)
	router.Patch("/{id}", handler.update)
	router.Post("/{id}/attach", handler.attach)
	router.Post("/{id}/detach", handler.detach)
	router.Delete("/{id}", handler.delete)
}

type createRequest struct {
	Name     string   `json:"name"`
	Kana     string   `json:"kana"`
	Aliases  []string `json:"aliases"`
	ParentID string   `json:"parent_id"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var body createRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	depth := depthFromRequest(request)
	created, err := handler.service.Create(request.Context(), body.Name, body.Kana, body.Aliases, body.ParentID, depth)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) fetchByID(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	depth := depthFromRequest(request)

	tags, err := handler.service.FetchByIDs(request.Context(), []string{id}, depth)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(tags) == 0 {
		respond.Error(writer, request, apperr.TagNotFound(id))
		return
	}
	respond.OK(writer, tags[0])
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	pattern := request.URL.Query().Get("q")
	depth := depthFromRequest(request)

	tags, err := handler.service.FetchByNameOrAliasLike(request.Context(), pattern, depth)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) fetchAll(writer http.ResponseWriter, request *http.Request) {
	q := request.URL.Query()
	depth := depthFromRequest(request)
	rootOnly := convert.ToBool(q.Get("root_only"))
	order := Order(q.Get("order"))
	if order == "" {
		order = OrderAsc
	}
	limit := convert.ToIntD(q.Get("limit"), 0)

	var after, before *Cursor
	if k, id := q.Get("after_kana"), q.Get("after_id"); k != "" && id != "" {
		after = &Cursor{Kana: k, ID: id}
	}
	if k, id := q.Get("before_kana"), q.Get("before_id"); k != "" && id != "" {
		before = &Cursor{Kana: k, ID: id}
	}

	tags, err := handler.service.FetchAll(request.Context(), depth, rootOnly, after, before, order, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

type updateRequest struct {
	Name          *string  `json:"name"`
	Kana          *string  `json:"kana"`
	AddAliases    []string `json:"add_aliases"`
	RemoveAliases []string `json:"remove_aliases"`
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	var body updateRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}
	depth := depthFromRequest(request)

	updated, err := handler.service.UpdateByID(request.Context(), id, body.Name, body.Kana, body.AddAliases, body.RemoveAliases, depth)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

type attachRequest struct {
	NewParentID string `json:"new_parent_id"`
}

func (handler *Handler) attach(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	var body attachRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}
	depth := depthFromRequest(request)

	attached, err := handler.service.AttachByID(request.Context(), id, body.NewParentID, depth)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, attached)
}

func (handler *Handler) detach(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	depth := depthFromRequest(request)

	detached, err := handler.service.DetachByID(request.Context(), id, depth)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detached)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	recursive := convert.ToBool(request.URL.Query().Get("recursive"))

	result, err := handler.service.DeleteByID(request.Context(), id, recursive)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if !result.Found {
		respond.NoContent(writer)
		return
	}
	respond.OK(writer, map[string]int{"deleted": result.Count})
}

func depthFromRequest(request *http.Request) Depth {
	q := request.URL.Query()
	return Depth{
		Parent:   uint8(convert.ToIntD(q.Get("depth_parent"), 0)),
		Children: uint8(convert.ToIntD(q.Get("depth_children"), 0)),
	}
}
