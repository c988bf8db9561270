// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package like_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybini/mybini/internal/realtime"
	"github.com/mybini/mybini/internal/social/like"
)

/*
TestCounter_ReconcileIsIdempotent feeds the counter the same authoritative
member set repeatedly and checks the count never drifts.
*/
func TestCounter_ReconcileIsIdempotent(t *testing.T) {
	counter := like.NewCounter()

	members := []string{"u1", "u2", "u3"}
	for i := 0; i < 5; i++ {
		counter.Reconcile(members)
	}

	assert.Equal(t, 3, counter.Count())
	assert.True(t, counter.Contains("u2"))
	assert.False(t, counter.Contains("u9"))
}

func TestCounter_ReconcileAbsorbsLocalToggle(t *testing.T) {
	counter := like.NewCounter()
	counter.Reconcile([]string{"u1"})

	liked, count := counter.Toggle("u2")
	assert.True(t, liked)
	assert.Equal(t, 2, count)

	// The store snapshot now includes the toggled member; the count must
	// not go to 3.
	counter.Reconcile([]string{"u1", "u2"})
	assert.Equal(t, 2, counter.Count())
}

func TestCounter_ToggleFlips(t *testing.T) {
	counter := like.NewCounter()

	liked, count := counter.Toggle("u1")
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	liked, count = counter.Toggle("u1")
	assert.False(t, liked)
	assert.Equal(t, 0, count)
}

type fakeLikeRepo struct {
	members map[string]map[string]struct{}
	failSet bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{members: make(map[string]map[string]struct{})}
}

func (repo *fakeLikeRepo) Set(_ context.Context, characterID, accountID string, liked bool) error {
	if repo.failSet {
		return errors.New("connection reset")
	}
	if repo.members[characterID] == nil {
		repo.members[characterID] = make(map[string]struct{})
	}
	if liked {
		repo.members[characterID][accountID] = struct{}{}
	} else {
		delete(repo.members[characterID], accountID)
	}
	return nil
}

func (repo *fakeLikeRepo) Members(_ context.Context, characterID string) ([]string, error) {
	out := make([]string, 0)
	for id := range repo.members[characterID] {
		out = append(out, id)
	}
	return out, nil
}

func (repo *fakeLikeRepo) CountByAccount(_ context.Context, accountID string) (int, error) {
	count := 0
	for _, members := range repo.members {
		if _, ok := members[accountID]; ok {
			count++
		}
	}
	return count, nil
}

func newLikeService(repo *fakeLikeRepo) (*like.Service, *realtime.Hub) {
	logger := slog.New(slog.DiscardHandler)
	hub := realtime.NewHub(logger)
	return like.NewService(repo, hub, logger), hub
}

func TestService_Toggle_PersistsAndNotifies(t *testing.T) {
	repo := newFakeLikeRepo()
	service, hub := newLikeService(repo)
	sub := hub.Subscribe(realtime.TopicCharacter("ch1"))
	defer sub.Cancel()

	status, err := service.Toggle(context.Background(), "ch1", "u1")
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, 1, status.Count)

	event := <-sub.C
	assert.Equal(t, realtime.KindLikeChanged, event.Kind)

	status, err = service.Toggle(context.Background(), "ch1", "u1")
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 0, status.Count)
}

/*
TestService_Toggle_RollsBackOnStoreFailure checks the optimistic flip is
undone when persistence fails, so the served count matches the store.
*/
func TestService_Toggle_RollsBackOnStoreFailure(t *testing.T) {
	repo := newFakeLikeRepo()
	service, _ := newLikeService(repo)

	repo.failSet = true
	_, err := service.Toggle(context.Background(), "ch1", "u1")
	require.Error(t, err)

	repo.failSet = false
	status, err := service.Status(context.Background(), "ch1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, status.Count)
	assert.False(t, status.Liked)
}

/*
TestService_Toggle_ColdCounterHydratesFirst covers the first toggle after a
restart: the like row already exists, so the toggle must read the stored
member set and unlike instead of no-op inserting and reporting Liked.
*/
func TestService_Toggle_ColdCounterHydratesFirst(t *testing.T) {
	repo := newFakeLikeRepo()
	require.NoError(t, repo.Set(context.Background(), "ch1", "u1", true))
	service, _ := newLikeService(repo)

	status, err := service.Toggle(context.Background(), "ch1", "u1")
	require.NoError(t, err)
	assert.False(t, status.Liked, "toggle of a persisted like must unlike")
	assert.Equal(t, 0, status.Count)

	members, err := repo.Members(context.Background(), "ch1")
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestService_Status_AnonymousViewer(t *testing.T) {
	repo := newFakeLikeRepo()
	require.NoError(t, repo.Set(context.Background(), "ch1", "u1", true))
	service, _ := newLikeService(repo)

	status, err := service.Status(context.Background(), "ch1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, status.Count)
	assert.False(t, status.Liked)
}
