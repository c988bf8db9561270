// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package favourite

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mybini/mybini/internal/platform/middleware"
	requestutil "github.com/mybini/mybini/internal/platform/request"
	"github.com/mybini/mybini/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the favourites route group. Everything requires a session.
//
//	GET    /                     hydrated favourites list
//	GET    /{characterID}        membership check
//	POST   /{characterID}        toggle
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Get("/{characterID}", handler.status)
	router.Post("/{characterID}", handler.toggle)

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.service.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, list)
}

func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	characterID := requestutil.ID(request, "characterID")
	favourited, err := handler.service.IsFavourite(request.Context(), userID, characterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, &ToggleResult{CharacterID: characterID, Favourited: favourited})
}

func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Toggle(request.Context(), userID, requestutil.ID(request, "characterID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
