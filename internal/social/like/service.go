// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package like

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mybini/mybini/internal/realtime"
)

// Service keeps one Counter per character, flipped optimistically on toggle
// and reconciled against the store's authoritative member set afterwards.
// A toggle that fails to persist is rolled back before the error is
// returned, so the counter never drifts from the store for longer than one
// in-flight request.
type Service struct {
	repo   Repository
	hub    *realtime.Hub
	logger *slog.Logger

	mu       sync.Mutex
	counters map[string]*Counter
}

func NewService(repo Repository, hub *realtime.Hub, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		hub:      hub,
		logger:   logger,
		counters: make(map[string]*Counter),
	}
}

func (service *Service) counter(characterID string) *Counter {
	service.mu.Lock()
	defer service.mu.Unlock()

	counter, ok := service.counters[characterID]
	if !ok {
		counter = NewCounter()
		service.counters[characterID] = counter
	}
	return counter
}

// Status returns the character's like count and whether the viewer likes it.
// An empty accountID means an anonymous viewer; Liked is always false then.
func (service *Service) Status(context context.Context, characterID, accountID string) (*Status, error) {
	members, err := service.repo.Members(context, characterID)
	if err != nil {
		return nil, err
	}

	counter := service.counter(characterID)
	counter.Reconcile(members)

	return &Status{
		CharacterID: characterID,
		Count:       counter.Count(),
		Liked:       accountID != "" && counter.Contains(accountID),
	}, nil
}

// Toggle flips the account's like on the character. The counter is updated
// first so the returned status reflects the flip immediately; if the write
// fails the flip is undone and the error propagated.
func (service *Service) Toggle(context context.Context, characterID, accountID string) (*Status, error) {
	counter := service.counter(characterID)

	// A counter that never saw an authoritative snapshot (first toggle
	// after startup) would flip in the wrong direction for rows that
	// already exist; hydrate it before deciding.
	if !counter.Synced() {
		members, err := service.repo.Members(context, characterID)
		if err != nil {
			return nil, err
		}
		counter.Reconcile(members)
	}

	liked, count := counter.Toggle(accountID)

	if err := service.repo.Set(context, characterID, accountID, liked); err != nil {
		counter.Toggle(accountID) // roll back
		return nil, err
	}

	// Re-read the authoritative set so concurrent toggles from other
	// accounts are folded in before anyone is notified.
	members, err := service.repo.Members(context, characterID)
	if err == nil {
		counter.Reconcile(members)
		count = counter.Count()
	} else {
		service.logger.WarnContext(context, "like reconcile failed, serving local count",
			slog.String("character_id", characterID))
	}

	status := &Status{CharacterID: characterID, Count: count, Liked: liked}

	service.hub.Publish(realtime.Event{
		Topic: realtime.TopicCharacter(characterID),
		Kind:  realtime.KindLikeChanged,
		Data:  map[string]any{"character_id": characterID, "count": status.Count},
	})

	return status, nil
}

// CountByAccount returns how many characters the account likes.
func (service *Service) CountByAccount(context context.Context, accountID string) (int, error) {
	return service.repo.CountByAccount(context, accountID)
}
