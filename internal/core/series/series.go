// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package series

import "time"

// Series is a named anime title grouping characters.
type Series struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CoverURL    string    `json:"cover_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

// CreateInput holds the fields required to register a new series.
// All fields are mandatory on create.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url"`
}

// UpdateInput holds the editable fields of a series.
// CoverURL is optional on edit; nil retains the previously stored URL.
type UpdateInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CoverURL    *string `json:"cover_url"`
}
