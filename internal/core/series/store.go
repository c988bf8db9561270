// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package series

import "context"

// Repository defines the data access contract for series records.
type Repository interface {
	List(context context.Context) ([]*Series, error)
	GetByID(context context.Context, id string) (*Series, error)
	Create(context context.Context, s *Series) error
	Update(context context.Context, s *Series) error
	Delete(context context.Context, id string) error
}
