// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package favourite

import (
	"sync"
)

// Store is the in-memory favourites view, one set of character ids per
// signed-in account. It exists so membership checks and toggles are instant
// while Postgres stays authoritative.
//
// Loads are generation tagged: Begin hands out a generation for a sign-in,
// and ApplyLoad only lands if that generation is still current. A slow load
// that completes after the account signed out (or signed in again) is
// discarded instead of resurrecting stale favourites.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*accountView
}

type accountView struct {
	generation uint64
	loaded     bool
	set        map[string]struct{}
	// keys serializes toggles per character so two rapid toggles of the
	// same relation apply in order instead of racing.
	keys map[string]*sync.Mutex
}

func NewStore() *Store {
	return &Store{accounts: make(map[string]*accountView)}
}

func (store *Store) view(accountID string) *accountView {
	view, ok := store.accounts[accountID]
	if !ok {
		view = &accountView{
			set:  make(map[string]struct{}),
			keys: make(map[string]*sync.Mutex),
		}
		store.accounts[accountID] = view
	}
	return view
}

// Begin starts a new load generation for the account and returns it. Any
// earlier in-flight load is implicitly invalidated.
func (store *Store) Begin(accountID string) uint64 {
	store.mu.Lock()
	defer store.mu.Unlock()

	view := store.view(accountID)
	view.generation++
	view.loaded = false
	view.set = make(map[string]struct{})
	return view.generation
}

// ApplyLoad installs the fetched favourite set if the generation is still
// current. Returns false when the load is stale and was discarded.
func (store *Store) ApplyLoad(accountID string, generation uint64, characterIDs []string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	view, ok := store.accounts[accountID]
	if !ok || view.generation != generation {
		return false
	}

	set := make(map[string]struct{}, len(characterIDs))
	for _, id := range characterIDs {
		set[id] = struct{}{}
	}
	view.set = set
	view.loaded = true
	return true
}

// Clear drops the account's view and invalidates in-flight loads. Called on
// sign-out so the next session starts empty.
func (store *Store) Clear(accountID string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	view, ok := store.accounts[accountID]
	if !ok {
		return
	}
	view.generation++
	view.loaded = false
	view.set = make(map[string]struct{})
}

// Loaded reports whether the account's view holds a completed load.
func (store *Store) Loaded(accountID string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	view, ok := store.accounts[accountID]
	return ok && view.loaded
}

// Contains reports membership in the account's view.
func (store *Store) Contains(accountID, characterID string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	view, ok := store.accounts[accountID]
	if !ok {
		return false
	}
	_, member := view.set[characterID]
	return member
}

// List returns the account's favourited character ids, unordered.
func (store *Store) List(accountID string) []string {
	store.mu.Lock()
	defer store.mu.Unlock()

	view, ok := store.accounts[accountID]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(view.set))
	for id := range view.set {
		out = append(out, id)
	}
	return out
}

// Flip toggles membership locally and returns the new state.
func (store *Store) Flip(accountID, characterID string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	view := store.view(accountID)
	if _, ok := view.set[characterID]; ok {
		delete(view.set, characterID)
		return false
	}
	view.set[characterID] = struct{}{}
	return true
}

// LockKey acquires the per-relation mutex for (account, character) and
// returns the unlock. Callers hold it across flip-persist-rollback so rapid
// repeated toggles of the same relation serialize.
func (store *Store) LockKey(accountID, characterID string) func() {
	store.mu.Lock()
	view := store.view(accountID)
	key, ok := view.keys[characterID]
	if !ok {
		key = &sync.Mutex{}
		view.keys[characterID] = key
	}
	store.mu.Unlock()

	key.Lock()
	return key.Unlock
}
