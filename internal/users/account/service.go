// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package account

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mybini/mybini/internal/core/character"
	"github.com/mybini/mybini/internal/platform/constants"
	"github.com/mybini/mybini/internal/platform/validate"
	"github.com/mybini/mybini/internal/users/auth"
)

// # Contracts

// CharacterResolver hydrates character ids for the showcase and statistics.
type CharacterResolver interface {
	GetMany(context context.Context, ids []string) ([]*character.Detail, error)
}

// FavouriteCounter exposes the slice of the favourites service the profile
// needs: membership checks for showcase validation and the total count.
type FavouriteCounter interface {
	IsFavourite(context context.Context, accountID, characterID string) (bool, error)
	Count(context context.Context, accountID string) (int, error)
}

// LikeCounter counts likes the member has given.
type LikeCounter interface {
	CountByAccount(context context.Context, accountID string) (int, error)
}

// CommentCounter exposes comment statistics for one author.
type CommentCounter interface {
	CountByAuthor(context context.Context, authorID string) (int, error)
	MostCommentedCharacter(context context.Context, authorID string) (string, int, error)
}

// Service implements profile use cases on top of the auth account store.
type Service struct {
	accounts   auth.AccountRepository
	characters CharacterResolver
	favourites FavouriteCounter
	likes      LikeCounter
	comments   CommentCounter
	logger     *slog.Logger
}

func NewService(
	accounts auth.AccountRepository,
	characters CharacterResolver,
	favourites FavouriteCounter,
	likes LikeCounter,
	comments CommentCounter,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts:   accounts,
		characters: characters,
		favourites: favourites,
		likes:      likes,
		comments:   comments,
		logger:     logger,
	}
}

// # Profile

/*
GetProfile returns the member's own profile.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - *auth.Account: The hydrated profile
  - error: Retrieval failures
*/
func (service *Service) GetProfile(context context.Context, accountID string) (*auth.Account, error) {
	account, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		return nil, err
	}

	// A malformed stored role resolves to the default role, never to an error.
	account.Role = account.Role.Normalize()

	return account, nil
}

/*
UpdateProfile edits display name and avatar. Nil fields retain the stored
value; a provided display name must be non-empty.

Parameters:
  - context: context.Context
  - accountID: string
  - input: UpdateProfileInput

Returns:
  - *auth.Account: The updated profile
  - error: Validation or persistence failures
*/
func (service *Service) UpdateProfile(context context.Context, accountID string, input UpdateProfileInput) (*auth.Account, error) {
	v := &validate.Validator{}
	if input.DisplayName != nil {
		v.Required(auth.FieldDisplayName, *input.DisplayName).
			MaxLen(auth.FieldDisplayName, *input.DisplayName, 60)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	account, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		account.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.AvatarURL != nil {
		account.AvatarURL = *input.AvatarURL
	}

	if err := service.accounts.Update(context, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DisplayName resolves the current display name for an account id. Used by
// the comment flow to snapshot the author name.
func (service *Service) DisplayName(context context.Context, accountID string) (string, error) {
	account, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		return "", err
	}
	return account.DisplayName, nil
}

// # Showcase

/*
SaveShowcase replaces the member's pinned characters.

Description: The selection is normalized rather than policed. Duplicates
collapse to their first occurrence and anything beyond the third slot is
dropped. Every surviving entry must currently be one of the member's
favourites.

Parameters:
  - context: context.Context
  - accountID: string
  - input: ShowcaseInput

Returns:
  - *auth.Account: The updated profile
  - error: Validation or persistence failures
*/
func (service *Service) SaveShowcase(context context.Context, accountID string, input ShowcaseInput) (*auth.Account, error) {
	seen := make(map[string]struct{}, len(input.CharacterIDs))
	ids := make([]string, 0, constants.ShowcaseSlots)
	for _, id := range input.CharacterIDs {
		if _, duplicate := seen[id]; duplicate {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		if len(ids) == constants.ShowcaseSlots {
			break
		}
	}

	v := &validate.Validator{}
	for _, id := range ids {
		favourited, err := service.favourites.IsFavourite(context, accountID, id)
		if err != nil {
			return nil, err
		}
		if !favourited {
			v.Custom("character_ids", true, "Showcase entries must be picked from your favourites")
			return nil, v.Err()
		}
	}

	account, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		return nil, err
	}

	account.Showcase = ids

	if err := service.accounts.Update(context, account); err != nil {
		return nil, err
	}

	return account, nil
}

// # Statistics

/*
GetStats aggregates the member's activity. The three independent counts are
fetched concurrently; the most-commented character is hydrated afterwards
and silently omitted when it no longer exists.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - *Stats: Aggregated counters
  - error: The first failing count
*/
func (service *Service) GetStats(context context.Context, accountID string) (*Stats, error) {
	stats := &Stats{}
	var topCharacterID string
	var topCount int

	group, groupContext := errgroup.WithContext(context)

	group.Go(func() error {
		count, err := service.favourites.Count(groupContext, accountID)
		stats.Favourites = count
		return err
	})
	group.Go(func() error {
		count, err := service.likes.CountByAccount(groupContext, accountID)
		stats.LikesGiven = count
		return err
	})
	group.Go(func() error {
		count, err := service.comments.CountByAuthor(groupContext, accountID)
		stats.CommentsGiven = count
		return err
	})
	group.Go(func() error {
		id, count, err := service.comments.MostCommentedCharacter(groupContext, accountID)
		topCharacterID, topCount = id, count
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if topCharacterID != "" {
		details, err := service.characters.GetMany(context, []string{topCharacterID})
		if err != nil {
			return nil, err
		}
		if len(details) == 1 {
			stats.MostCommented = &MostCommented{Character: details[0], Count: topCount}
		}
	}

	return stats, nil
}

// # Public View

/*
GetPublicProfile returns the visitor-facing profile: display name, avatar,
and the hydrated showcase. Deleted showcase characters are skipped.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - *PublicProfile: The public view
  - error: Retrieval failures
*/
func (service *Service) GetPublicProfile(context context.Context, accountID string) (*PublicProfile, error) {
	account, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		return nil, err
	}

	showcase, err := service.characters.GetMany(context, account.Showcase)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		ID:          account.ID,
		DisplayName: account.DisplayName,
		AvatarURL:   account.AvatarURL,
		Showcase:    showcase,
	}, nil
}
