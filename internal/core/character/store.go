// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package character

import "context"

type Repository interface {
	// List returns characters newest-first. A non-empty seriesID narrows
	// the result to that series.
	List(context context.Context, seriesID string) ([]*Character, error)
	// Recent returns the newest characters capped at limit.
	Recent(context context.Context, limit int) ([]*Character, error)
	GetByID(context context.Context, id string) (*Character, error)
	// GetManyByID resolves a batch of ids, skipping ids that no longer
	// exist. Order of the result follows the order of ids.
	GetManyByID(context context.Context, ids []string) ([]*Character, error)
	Create(context context.Context, c *Character) error
	Update(context context.Context, c *Character) error
	Delete(context context.Context, id string) error
}
