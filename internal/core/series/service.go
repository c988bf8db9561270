// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package series

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mybini/mybini/internal/platform/validate"
	"github.com/mybini/mybini/pkg/slice"
	"github.com/mybini/mybini/pkg/slug"
	"github.com/mybini/mybini/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns the alphabetical series catalogue, optionally narrowed by a
// case-insensitive substring match on the title. Filtering happens over the
// fetched collection, so an empty result is an empty slice, never an error.
func (service *Service) List(context context.Context, search string) ([]*Series, error) {
	list, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return list, nil
	}

	return slice.Filter(list, func(s *Series) bool {
		return strings.Contains(strings.ToLower(s.Title), term)
	}), nil
}

func (service *Service) Get(context context.Context, id string) (*Series, error) {
	return service.repo.GetByID(context, id)
}

// Create registers a new series. All fields are required; a series without
// a cover renders badly everywhere it is listed.
func (service *Service) Create(context context.Context, input CreateInput) (*Series, error) {
	v := &validate.Validator{}
	v.Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("description", input.Description).
		Required("cover_url", input.CoverURL).
		URL("cover_url", input.CoverURL)

	if err := v.Err(); err != nil {
		return nil, err
	}

	s := &Series{
		ID:          uuid.New(),
		Slug:        slug.From(input.Title),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		CoverURL:    input.CoverURL,
	}

	if err := service.repo.Create(context, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Update edits a series in place. A nil CoverURL retains the stored image.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Series, error) {
	v := &validate.Validator{}
	v.Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("description", input.Description)
	if input.CoverURL != nil {
		v.Required("cover_url", *input.CoverURL).URL("cover_url", *input.CoverURL)
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	s, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	s.Title = strings.TrimSpace(input.Title)
	s.Description = strings.TrimSpace(input.Description)
	if input.CoverURL != nil {
		s.CoverURL = *input.CoverURL
	}

	if err := service.repo.Update(context, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Delete removes a series permanently. Characters referencing it are left in
// place; their detail views fall back to "Unknown Series".
func (service *Service) Delete(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}
