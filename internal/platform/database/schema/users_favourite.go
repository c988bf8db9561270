// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package schema

// UserFavouriteTable represents the 'users.favourite' table
//
// Existence-only relation between an account and a character. No ordering
// semantics beyond insertion time.
type UserFavouriteTable struct {
	Table       string
	AccountID   string
	CharacterID string
	CreatedAt   string
}

// UserFavourite is the schema definition for users.favourite
var UserFavourite = UserFavouriteTable{
	Table:       "users.favourite",
	AccountID:   "accountid",
	CharacterID: "characterid",
	CreatedAt:   "createdat",
}
