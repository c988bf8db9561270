// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package comment

import "context"

type Repository interface {
	// ListByCharacter returns one page of a character's comments,
	// newest-first.
	ListByCharacter(context context.Context, characterID string, limit, offset int) ([]*Comment, error)
	// CountByCharacter returns how many comments a character has.
	CountByCharacter(context context.Context, characterID string) (int, error)
	GetByID(context context.Context, id string) (*Comment, error)
	Create(context context.Context, c *Comment) error
	Delete(context context.Context, id string) error
	// CountByAuthor returns how many comments an account has written.
	CountByAuthor(context context.Context, authorID string) (int, error)
	// CountByCharacterForAuthor returns per-character comment counts for
	// one author, used for the profile's most-commented statistic.
	CountByCharacterForAuthor(context context.Context, authorID string) (map[string]int, error)
}
