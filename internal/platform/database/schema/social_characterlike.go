// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package schema

// SocialCharacterLikeTable represents the 'social.characterlike' table
//
// A row is an existence-only marker: (character, account) pairs with a
// creation timestamp. The per-character like count is derived from the set.
type SocialCharacterLikeTable struct {
	Table       string
	CharacterID string
	AccountID   string
	CreatedAt   string
}

// SocialCharacterLike is the schema definition for social.characterlike
var SocialCharacterLike = SocialCharacterLikeTable{
	Table:       "social.characterlike",
	CharacterID: "characterid",
	AccountID:   "accountid",
	CreatedAt:   "createdat",
}
