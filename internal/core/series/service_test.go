// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package series_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybini/mybini/internal/core/series"
	"github.com/mybini/mybini/internal/platform/apperr"
	"github.com/mybini/mybini/internal/platform/dberr"
	"github.com/mybini/mybini/pkg/pointer"
)

type fakeSeriesRepo struct {
	list []*series.Series
}

func (repo *fakeSeriesRepo) List(_ context.Context) ([]*series.Series, error) {
	return repo.list, nil
}

func (repo *fakeSeriesRepo) GetByID(_ context.Context, id string) (*series.Series, error) {
	for _, s := range repo.list {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeSeriesRepo) Create(_ context.Context, s *series.Series) error {
	repo.list = append(repo.list, s)
	return nil
}

func (repo *fakeSeriesRepo) Update(_ context.Context, _ *series.Series) error { return nil }

func (repo *fakeSeriesRepo) Delete(_ context.Context, id string) error {
	for i, s := range repo.list {
		if s.ID == id {
			repo.list = append(repo.list[:i], repo.list[i+1:]...)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func newSeriesService() (*series.Service, *fakeSeriesRepo) {
	repo := &fakeSeriesRepo{list: []*series.Series{
		{ID: "s1", Title: "Attack on Titan"},
		{ID: "s2", Title: "Sword Art Online"},
	}}
	return series.NewService(repo, slog.New(slog.DiscardHandler)), repo
}

func TestService_List_FiltersCaseInsensitive(t *testing.T) {
	service, _ := newSeriesService()

	list, err := service.List(context.Background(), "  SWORD ")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sword Art Online", list[0].Title)

	list, err = service.List(context.Background(), "no such title")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_Create_SlugsTitle(t *testing.T) {
	service, repo := newSeriesService()

	s, err := service.Create(context.Background(), series.CreateInput{
		Title:       "Re:Zero − Starting Life in Another World",
		Description: "Subaru keeps dying",
		CoverURL:    "https://img.mybini.app/rezero.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "re-zero-starting-life-in-another-world", s.Slug)
	assert.Len(t, repo.list, 3)
}

func TestService_Create_RequiresCover(t *testing.T) {
	service, _ := newSeriesService()

	_, err := service.Create(context.Background(), series.CreateInput{
		Title:       "Coverless",
		Description: "desc",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestService_Update_NilCoverRetainsStored(t *testing.T) {
	service, repo := newSeriesService()
	repo.list[0].CoverURL = "https://img.mybini.app/aot.png"

	updated, err := service.Update(context.Background(), "s1", series.UpdateInput{
		Title:       "Attack on Titan",
		Description: "Walls",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://img.mybini.app/aot.png", updated.CoverURL)

	updated, err = service.Update(context.Background(), "s1", series.UpdateInput{
		Title:       "Attack on Titan",
		Description: "Walls",
		CoverURL:    pointer.To("https://img.mybini.app/aot-final.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://img.mybini.app/aot-final.png", updated.CoverURL)
}

// Deleting a series leaves its characters behind on purpose; the character
// detail view renders them under "Unknown Series".
func TestService_Delete_NoCascade(t *testing.T) {
	service, repo := newSeriesService()

	require.NoError(t, service.Delete(context.Background(), "s1"))
	assert.Len(t, repo.list, 1)
}
