// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package feed

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mybini/mybini/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the feed route group.
//
//	GET / public landing feed
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.get)
	return router
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	feed, err := handler.service.Get(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, feed)
}
