// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package like

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

// Routes returns the like route group, mounted under a character route.
//
//	GET  /   public count plus the viewer's liked flag
//	POST /   authenticated toggle
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.status)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.toggle)
	})

	return router
}

func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	accountID := ""
	if claims := requestutil.Claims(request); claims != nil {
		accountID = claims.UserID
	}

	status, err := handler.service.Status(request.Context(), requestutil.ID(request, "id"), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, status)
}

func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := handler.service.Toggle(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, status)
}
