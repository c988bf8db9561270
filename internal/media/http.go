// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package media

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mybini/mybini/internal/platform/apperr"
	"github.com/mybini/mybini/internal/platform/middleware"
	"github.com/mybini/mybini/internal/platform/respond"
	"github.com/mybini/mybini/internal/platform/sec"
)

type Handler struct {
	storage *Storage
}

func NewHandler(storage *Storage) *Handler {
	return &Handler{storage: storage}
}

// Routes returns the upload route group.
//
//	POST / admin multipart upload, field name "file"
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))
	router.Post("/", handler.upload)
	return router
}

func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, MaxUploadBytes)

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Expected a multipart upload with a \"file\" field"))
		return
	}
	defer file.Close()

	url, err := handler.storage.Save(request.Context(), header.Filename, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"url": url})
}
