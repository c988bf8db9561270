// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package feed

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mybini/mybini/internal/core/character"
	"github.com/mybini/mybini/internal/core/series"
	"github.com/mybini/mybini/internal/platform/constants"
)

type SeriesLister interface {
	List(context context.Context, search string) ([]*series.Series, error)
}

type CharacterLister interface {
	Recent(context context.Context, limit int) ([]*character.Character, error)
}

type Service struct {
	series     SeriesLister
	characters CharacterLister
	logger     *slog.Logger
}

func NewService(seriesLister SeriesLister, characterLister CharacterLister, logger *slog.Logger) *Service {
	return &Service{
		series:     seriesLister,
		characters: characterLister,
		logger:     logger,
	}
}

// Get assembles the landing feed. The two catalogue reads are independent,
// so they run concurrently; either failing fails the feed.
func (service *Service) Get(context context.Context) (*Feed, error) {
	feed := &Feed{}

	group, groupContext := errgroup.WithContext(context)

	group.Go(func() error {
		list, err := service.series.List(groupContext, "")
		if err != nil {
			return err
		}
		feed.Series = list
		return nil
	})

	group.Go(func() error {
		recent, err := service.characters.Recent(groupContext, constants.RecentCharactersLimit)
		if err != nil {
			return err
		}
		feed.Recent = recent
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	feed.HeroImages = make([]string, 0, len(feed.Recent))
	for _, c := range feed.Recent {
		if c.ImageURL != "" {
			feed.HeroImages = append(feed.HeroImages, c.ImageURL)
		}
	}

	return feed, nil
}
