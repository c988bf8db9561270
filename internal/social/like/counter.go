// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package like

import "sync"

// Counter is an in-memory view of one character's like state, derived from
// the authoritative set of accounts that like the character. Reconcile
// replaces the whole set, so feeding it the same snapshot any number of
// times leaves the count unchanged, and a local toggle that later arrives in
// a snapshot is absorbed rather than double counted.
type Counter struct {
	mu      sync.Mutex
	members map[string]struct{}
	synced  bool
}

func NewCounter() *Counter {
	return &Counter{members: make(map[string]struct{})}
}

// Reconcile replaces the member set with the authoritative snapshot.
func (counter *Counter) Reconcile(accountIDs []string) {
	next := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		next[id] = struct{}{}
	}

	counter.mu.Lock()
	counter.members = next
	counter.synced = true
	counter.mu.Unlock()
}

// Synced reports whether the counter has seen at least one authoritative
// snapshot. A counter that never has must not be trusted for a flip
// direction.
func (counter *Counter) Synced() bool {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	return counter.synced
}

// Toggle flips the given account's membership locally and reports the new
// state. The flip is provisional until the next Reconcile confirms it.
func (counter *Counter) Toggle(accountID string) (liked bool, count int) {
	counter.mu.Lock()
	defer counter.mu.Unlock()

	if _, ok := counter.members[accountID]; ok {
		delete(counter.members, accountID)
	} else {
		counter.members[accountID] = struct{}{}
		liked = true
	}
	return liked, len(counter.members)
}

// Count returns the current member count.
func (counter *Counter) Count() int {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	return len(counter.members)
}

// Contains reports whether the account is in the member set.
func (counter *Counter) Contains(accountID string) bool {
	counter.mu.Lock()
	defer counter.mu.Unlock()
	_, ok := counter.members[accountID]
	return ok
}
