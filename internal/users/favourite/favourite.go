// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package favourite

import "time"

// Favourite marks a character as favourited by an account.
type Favourite struct {
	AccountID   string    `json:"account_id"`
	CharacterID string    `json:"character_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToggleResult reports the outcome of a toggle.
type ToggleResult struct {
	CharacterID string `json:"character_id"`
	Favourited  bool   `json:"favourited"`
}
