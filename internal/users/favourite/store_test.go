// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package favourite_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybini/mybini/internal/core/character"
	"github.com/mybini/mybini/internal/users/favourite"
)

/*
TestStore_LoadLifecycle covers the session-bound view: empty before load,
populated after, wiped on clear.
*/
func TestStore_LoadLifecycle(t *testing.T) {
	store := favourite.NewStore()

	assert.False(t, store.Loaded("acc"))
	assert.False(t, store.Contains("acc", "c1"))

	generation := store.Begin("acc")
	require.True(t, store.ApplyLoad("acc", generation, []string{"c1", "c2"}))

	assert.True(t, store.Loaded("acc"))
	assert.True(t, store.Contains("acc", "c1"))
	assert.ElementsMatch(t, []string{"c1", "c2"}, store.List("acc"))

	store.Clear("acc")
	assert.False(t, store.Loaded("acc"))
	assert.Empty(t, store.List("acc"))
}

/*
TestStore_StaleLoadDiscarded simulates a sign-out racing a slow favourites
fetch: the fetch completes after Clear and must not resurrect the set.
*/
func TestStore_StaleLoadDiscarded(t *testing.T) {
	store := favourite.NewStore()

	generation := store.Begin("acc")
	store.Clear("acc")

	assert.False(t, store.ApplyLoad("acc", generation, []string{"c1"}))
	assert.False(t, store.Loaded("acc"))
	assert.Empty(t, store.List("acc"))
}

func TestStore_SecondSignInInvalidatesFirstLoad(t *testing.T) {
	store := favourite.NewStore()

	first := store.Begin("acc")
	second := store.Begin("acc")

	assert.False(t, store.ApplyLoad("acc", first, []string{"old"}))
	assert.True(t, store.ApplyLoad("acc", second, []string{"new"}))
	assert.ElementsMatch(t, []string{"new"}, store.List("acc"))
}

type fakeFavouriteRepo struct {
	mu      sync.Mutex
	rows    map[string]map[string]struct{}
	failSet bool
}

func newFakeFavouriteRepo() *fakeFavouriteRepo {
	return &fakeFavouriteRepo{rows: make(map[string]map[string]struct{})}
}

func (repo *fakeFavouriteRepo) ListByAccount(_ context.Context, accountID string) ([]string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	out := make([]string, 0)
	for id := range repo.rows[accountID] {
		out = append(out, id)
	}
	return out, nil
}

func (repo *fakeFavouriteRepo) Set(_ context.Context, accountID, characterID string, favourited bool) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failSet {
		return errors.New("connection reset")
	}
	if repo.rows[accountID] == nil {
		repo.rows[accountID] = make(map[string]struct{})
	}
	if favourited {
		repo.rows[accountID][characterID] = struct{}{}
	} else {
		delete(repo.rows[accountID], characterID)
	}
	return nil
}

func (repo *fakeFavouriteRepo) Count(_ context.Context, accountID string) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.rows[accountID]), nil
}

type fakeResolver struct{}

func (fakeResolver) GetMany(_ context.Context, ids []string) ([]*character.Detail, error) {
	out := make([]*character.Detail, 0, len(ids))
	for _, id := range ids {
		out = append(out, &character.Detail{Character: character.Character{ID: id}})
	}
	return out, nil
}

func newFavouriteService(repo *fakeFavouriteRepo) (*favourite.Service, *favourite.Store) {
	store := favourite.NewStore()
	logger := slog.New(slog.DiscardHandler)
	return favourite.NewService(store, repo, fakeResolver{}, logger), store
}

func TestService_SignInLoadsAndSignOutClears(t *testing.T) {
	repo := newFakeFavouriteRepo()
	require.NoError(t, repo.Set(context.Background(), "acc", "c1", true))

	service, store := newFavouriteService(repo)

	service.OnSignIn(context.Background(), "acc")
	assert.True(t, store.Loaded("acc"))
	assert.True(t, store.Contains("acc", "c1"))

	service.OnSignOut("acc")
	assert.False(t, store.Loaded("acc"))
	assert.False(t, store.Contains("acc", "c1"))
}

/*
TestService_Toggle_RollsBackOnStoreFailure checks a failed write undoes the
optimistic flip, leaving the view matching Postgres.
*/
func TestService_Toggle_RollsBackOnStoreFailure(t *testing.T) {
	repo := newFakeFavouriteRepo()
	service, store := newFavouriteService(repo)
	service.OnSignIn(context.Background(), "acc")

	repo.failSet = true
	_, err := service.Toggle(context.Background(), "acc", "c1")
	require.Error(t, err)
	assert.False(t, store.Contains("acc", "c1"))

	repo.failSet = false
	result, err := service.Toggle(context.Background(), "acc", "c1")
	require.NoError(t, err)
	assert.True(t, result.Favourited)
	assert.True(t, store.Contains("acc", "c1"))
}

/*
TestService_Toggle_RapidDoubleToggleCancelsOut fires many concurrent toggle
pairs at one relation. Per-relation serialization means every pair nets out,
so the final state matches an even number of flips.
*/
func TestService_Toggle_RapidDoubleToggleCancelsOut(t *testing.T) {
	repo := newFakeFavouriteRepo()
	service, store := newFavouriteService(repo)
	service.OnSignIn(context.Background(), "acc")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = service.Toggle(context.Background(), "acc", "c1")
		}()
		go func() {
			defer wg.Done()
			_, _ = service.Toggle(context.Background(), "acc", "c1")
		}()
	}
	wg.Wait()

	inMemory := store.Contains("acc", "c1")
	persisted, err := repo.ListByAccount(context.Background(), "acc")
	require.NoError(t, err)

	assert.False(t, inMemory, "100 flips must cancel out")
	assert.Empty(t, persisted, "view and store must agree")
}

/*
TestService_Toggle_UnloadedViewHydratesFirst covers a fresh process holding
a still-valid token: no sign-in load has run, but the account already has a
persisted favourite. The first toggle must observe the stored row and
unfavourite; a second toggle favourites again rather than deleting state.
*/
func TestService_Toggle_UnloadedViewHydratesFirst(t *testing.T) {
	repo := newFakeFavouriteRepo()
	require.NoError(t, repo.Set(context.Background(), "acc", "c1", true))

	service, store := newFavouriteService(repo)
	require.False(t, store.Loaded("acc"))

	result, err := service.Toggle(context.Background(), "acc", "c1")
	require.NoError(t, err)
	assert.False(t, result.Favourited, "toggle of a persisted favourite must unfavourite")

	persisted, err := repo.ListByAccount(context.Background(), "acc")
	require.NoError(t, err)
	assert.Empty(t, persisted)

	result, err = service.Toggle(context.Background(), "acc", "c1")
	require.NoError(t, err)
	assert.True(t, result.Favourited)

	persisted, err = repo.ListByAccount(context.Background(), "acc")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1"}, persisted)
}

func TestService_List_HydratesFavourites(t *testing.T) {
	repo := newFakeFavouriteRepo()
	require.NoError(t, repo.Set(context.Background(), "acc", "c1", true))

	service, _ := newFavouriteService(repo)

	list, err := service.List(context.Background(), "acc")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c1", list[0].ID)
}
