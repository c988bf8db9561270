// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package schema

// CoreSeriesTable represents the 'core.series' table
type CoreSeriesTable struct {
	Table       string
	ID          string
	Slug        string
	Title       string
	Description string
	CoverURL    string
	CreatedAt   string
	UpdatedAt   string
}

// CoreSeries is the schema definition for core.series
var CoreSeries = CoreSeriesTable{
	Table:       "core.series",
	ID:          "id",
	Slug:        "slug",
	Title:       "title",
	Description: "description",
	CoverURL:    "coverurl",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreSeriesTable) Columns() []string {
	return []string{t.ID, t.Slug, t.Title, t.Description, t.CoverURL, t.CreatedAt, t.UpdatedAt}
}
