// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package schema

// CoreCharacterTable represents the 'core.character' table
type CoreCharacterTable struct {
	Table       string
	ID          string
	SeriesID    string
	Name        string
	Age         string
	Description string
	ImageURL    string
	Gallery     string
	CreatedAt   string
	UpdatedAt   string
}

// CoreCharacter is the schema definition for core.character
var CoreCharacter = CoreCharacterTable{
	Table:       "core.character",
	ID:          "id",
	SeriesID:    "seriesid",
	Name:        "name",
	Age:         "age",
	Description: "description",
	ImageURL:    "imageurl",
	Gallery:     "gallery",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreCharacterTable) Columns() []string {
	return []string{
		t.ID, t.SeriesID, t.Name, t.Age, t.Description,
		t.ImageURL, t.Gallery, t.CreatedAt, t.UpdatedAt,
	}
}
