// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package comment

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mybini/mybini/internal/platform/middleware"
	requestutil "github.com/mybini/mybini/internal/platform/request"
	"github.com/mybini/mybini/internal/platform/respond"
	"github.com/mybini/mybini/internal/platform/validate"
	"github.com/mybini/mybini/pkg/pagination"
)

// DisplayNameResolver maps an account id to its current display name. The
// name is snapshotted onto each new comment.
type DisplayNameResolver interface {
	DisplayName(context context.Context, accountID string) (string, error)
}

type Handler struct {
	service *Service
	names   DisplayNameResolver
}

func NewHandler(service *Service, names DisplayNameResolver) *Handler {
	return &Handler{service: service, names: names}
}

// Routes returns the comment route group, mounted under a character route so
// the "id" parameter resolves to the character.
//
//	GET    /                 public newest-first list
//	POST   /                 authenticated create
//	DELETE /{commentID}      author-or-admin delete
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Delete("/{commentID}", handler.remove)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	list, meta, err := handler.service.ListByCharacter(request.Context(), requestutil.ID(request, "id"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, list, meta)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	authorName, err := handler.names.DisplayName(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	c, err := handler.service.Create(request.Context(), requestutil.ID(request, "id"), claims, authorName, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, c)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "commentID"), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
