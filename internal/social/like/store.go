// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package like

import "context"

type Repository interface {
	// Set records or removes a like marker. Setting an existing marker or
	// removing a missing one is a no-op, not an error.
	Set(context context.Context, characterID, accountID string, liked bool) error
	// Members returns the ids of every account that likes the character.
	Members(context context.Context, characterID string) ([]string, error)
	// CountByAccount returns how many characters the account likes.
	CountByAccount(context context.Context, accountID string) (int, error)
}
