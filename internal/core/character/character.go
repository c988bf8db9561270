// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package character

import "time"

// UnknownSeriesTitle is rendered when a character's owning series has been
// deleted. An orphaned character is a display fallback, never an error.
const UnknownSeriesTitle = "Unknown Series"

// Character is an individual gallery record with images and description.
type Character struct {
	ID          string    `json:"id"`
	SeriesID    string    `json:"series_id"`
	Name        string    `json:"name"`
	Age         string    `json:"age,omitempty"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Gallery     []string  `json:"gallery"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

// Detail is a character hydrated with its owning series title for display.
type Detail struct {
	Character
	SeriesTitle string `json:"series_title"`
}

// CreateInput holds the fields required to register a new character.
// Name, series reference, description and main image are mandatory.
type CreateInput struct {
	SeriesID    string   `json:"series_id"`
	Name        string   `json:"name"`
	Age         string   `json:"age"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Gallery     []string `json:"gallery"`
}

// UpdateInput holds the editable fields of a character.
//
// ImageURL and Gallery are optional on edit: nil retains the stored value.
// A non-nil Gallery replaces the whole ordered list, which is how per-image
// replace and remove-then-commit are expressed (removed images are simply
// absent from the submitted list; nothing is deleted from the image host).
type UpdateInput struct {
	SeriesID    string    `json:"series_id"`
	Name        string    `json:"name"`
	Age         string    `json:"age"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url"`
	Gallery     *[]string `json:"gallery"`
}
