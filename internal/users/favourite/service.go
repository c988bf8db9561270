// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package favourite

import (
	"context"
	"log/slog"

	"github.com/mybini/mybini/internal/core/character"
)

// CharacterResolver hydrates favourite ids into displayable characters,
// skipping ids whose character no longer exists.
type CharacterResolver interface {
	GetMany(context context.Context, ids []string) ([]*character.Detail, error)
}

// Service is the favourites façade: an in-memory Store for instant reads,
// Postgres for durability. It hangs off the session lifecycle — a sign-in
// triggers a load, a sign-out wipes the view.
type Service struct {
	store      *Store
	repo       Repository
	characters CharacterResolver
	logger     *slog.Logger
}

func NewService(store *Store, repo Repository, characters CharacterResolver, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		repo:       repo,
		characters: characters,
		logger:     logger,
	}
}

// OnSignIn loads the account's favourites into the in-memory view. The load
// runs against the generation issued here; if the account signs out before
// it completes, the result is discarded.
func (service *Service) OnSignIn(context context.Context, accountID string) {
	generation := service.store.Begin(accountID)

	ids, err := service.repo.ListByAccount(context, accountID)
	if err != nil {
		service.logger.WarnContext(context, "favourites load failed",
			slog.String("account_id", accountID))
		return
	}

	if !service.store.ApplyLoad(accountID, generation, ids) {
		service.logger.DebugContext(context, "favourites load discarded as stale",
			slog.String("account_id", accountID))
	}
}

// OnSignOut wipes the account's in-memory view.
func (service *Service) OnSignOut(accountID string) {
	service.store.Clear(accountID)
}

// Toggle flips the favourite state of a character for the account. The flip
// lands in the in-memory view first; a failed write rolls it back. Toggles
// of the same (account, character) pair are serialized, so two rapid clicks
// apply in order and cancel out.
//
// An unloaded view (fresh process with a still-valid token, or a sign-in
// load that failed) is hydrated from Postgres first: flipping blind would
// invert the direction for already-persisted favourites.
func (service *Service) Toggle(context context.Context, accountID, characterID string) (*ToggleResult, error) {
	unlock := service.store.LockKey(accountID, characterID)
	defer unlock()

	if !service.store.Loaded(accountID) {
		generation := service.store.Begin(accountID)
		ids, err := service.repo.ListByAccount(context, accountID)
		if err != nil {
			return nil, err
		}
		service.store.ApplyLoad(accountID, generation, ids)
	}

	favourited := service.store.Flip(accountID, characterID)

	if err := service.repo.Set(context, accountID, characterID, favourited); err != nil {
		service.store.Flip(accountID, characterID) // roll back
		return nil, err
	}

	return &ToggleResult{CharacterID: characterID, Favourited: favourited}, nil
}

// IsFavourite reports whether the account currently favourites the
// character, consulting the in-memory view when loaded and Postgres
// otherwise.
func (service *Service) IsFavourite(context context.Context, accountID, characterID string) (bool, error) {
	if service.store.Loaded(accountID) {
		return service.store.Contains(accountID, characterID), nil
	}

	ids, err := service.repo.ListByAccount(context, accountID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == characterID {
			return true, nil
		}
	}
	return false, nil
}

// List returns the account's favourites hydrated into characters, newest
// favourite first. Stale ids (deleted characters) are skipped.
func (service *Service) List(context context.Context, accountID string) ([]*character.Detail, error) {
	ids, err := service.repo.ListByAccount(context, accountID)
	if err != nil {
		return nil, err
	}

	return service.characters.GetMany(context, ids)
}

// Count returns how many characters the account favourites.
func (service *Service) Count(context context.Context, accountID string) (int, error) {
	return service.repo.Count(context, accountID)
}
