// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package like

// Status is the like state of one character as seen by one viewer.
type Status struct {
	CharacterID string `json:"character_id"`
	Count       int    `json:"count"`
	Liked       bool   `json:"liked"`
}
