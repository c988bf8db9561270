// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package character

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mybini/mybini/internal/core/series"
	"github.com/mybini/mybini/internal/platform/dberr"
	"github.com/mybini/mybini/internal/platform/validate"
	"github.com/mybini/mybini/pkg/uuid"
)

// SeriesDirectory is the slice of the series catalogue the character service
// needs: titles for search and detail hydration.
type SeriesDirectory interface {
	List(context context.Context) ([]*series.Series, error)
	GetByID(context context.Context, id string) (*series.Series, error)
}

type Service struct {
	repo   Repository
	series SeriesDirectory
	logger *slog.Logger
}

func NewService(repo Repository, seriesDir SeriesDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		series: seriesDir,
		logger: logger,
	}
}

// List returns characters newest-first, optionally narrowed to one series
// and/or a case-insensitive search term. The term matches the character name
// OR the owning series title, so searching "Naruto" surfaces "Hinata" when
// she belongs to the Naruto series.
func (service *Service) List(context context.Context, seriesID, search string) ([]*Character, error) {
	list, err := service.repo.List(context, seriesID)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return list, nil
	}

	titles, err := service.seriesTitles(context)
	if err != nil {
		return nil, err
	}

	filtered := make([]*Character, 0, len(list))
	for _, c := range list {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(titles[c.SeriesID]), term) {
			filtered = append(filtered, c)
		}
	}

	return filtered, nil
}

// Recent returns the newest characters capped at limit.
func (service *Service) Recent(context context.Context, limit int) ([]*Character, error) {
	return service.repo.Recent(context, limit)
}

// Get returns a character hydrated with its series title. A character whose
// series has been deleted is still served, titled "Unknown Series".
func (service *Service) Get(context context.Context, id string) (*Detail, error) {
	c, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	return service.hydrate(context, c), nil
}

// GetMany resolves a batch of ids into hydrated details, skipping stale ids.
func (service *Service) GetMany(context context.Context, ids []string) ([]*Detail, error) {
	list, err := service.repo.GetManyByID(context, ids)
	if err != nil {
		return nil, err
	}

	titles, err := service.seriesTitles(context)
	if err != nil {
		return nil, err
	}

	details := make([]*Detail, 0, len(list))
	for _, c := range list {
		title := titles[c.SeriesID]
		if title == "" {
			title = UnknownSeriesTitle
		}
		details = append(details, &Detail{Character: *c, SeriesTitle: title})
	}

	return details, nil
}

func (service *Service) hydrate(context context.Context, c *Character) *Detail {
	detail := &Detail{Character: *c, SeriesTitle: UnknownSeriesTitle}

	s, err := service.series.GetByID(context, c.SeriesID)
	switch {
	case err == nil:
		detail.SeriesTitle = s.Title
	case errors.Is(err, dberr.ErrNotFound):
		// Orphaned character, keep the fallback title.
	default:
		service.logger.WarnContext(context, "series lookup failed, using fallback title",
			slog.String("character_id", c.ID), slog.String("series_id", c.SeriesID))
	}

	return detail
}

func (service *Service) seriesTitles(context context.Context) (map[string]string, error) {
	all, err := service.series.List(context)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string, len(all))
	for _, s := range all {
		titles[s.ID] = s.Title
	}
	return titles, nil
}

// Create registers a new character. Name, series, description and the main
// image are required; age and gallery are optional.
func (service *Service) Create(context context.Context, input CreateInput) (*Character, error) {
	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, 200).
		Required("series_id", input.SeriesID).
		Required("description", input.Description).
		Required("image_url", input.ImageURL).
		URL("image_url", input.ImageURL)

	if err := v.Err(); err != nil {
		return nil, err
	}

	// The series must exist at creation time. It may be deleted later;
	// detail views tolerate that.
	if _, err := service.series.GetByID(context, input.SeriesID); err != nil {
		return nil, err
	}

	gallery := input.Gallery
	if gallery == nil {
		gallery = []string{}
	}

	c := &Character{
		ID:          uuid.New(),
		SeriesID:    input.SeriesID,
		Name:        strings.TrimSpace(input.Name),
		Age:         strings.TrimSpace(input.Age),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    input.ImageURL,
		Gallery:     gallery,
	}

	if err := service.repo.Create(context, c); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "character created",
		slog.String("character_id", c.ID), slog.String("name", c.Name))

	return c, nil
}

// Update edits a character. Image fields are optional: a nil ImageURL keeps
// the stored one, a nil Gallery keeps the stored list, a non-nil Gallery
// replaces it wholesale.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Character, error) {
	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, 200).
		Required("series_id", input.SeriesID).
		Required("description", input.Description)
	if input.ImageURL != nil {
		v.Required("image_url", *input.ImageURL).URL("image_url", *input.ImageURL)
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	c, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	c.SeriesID = input.SeriesID
	c.Name = strings.TrimSpace(input.Name)
	c.Age = strings.TrimSpace(input.Age)
	c.Description = strings.TrimSpace(input.Description)
	if input.ImageURL != nil {
		c.ImageURL = *input.ImageURL
	}
	if input.Gallery != nil {
		c.Gallery = *input.Gallery
	}

	if err := service.repo.Update(context, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete removes a character permanently. Likes, comments and favourite
// references pointing at it become stale and are skipped on hydration.
func (service *Service) Delete(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}
