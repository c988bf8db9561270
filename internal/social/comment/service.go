// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mybini/mybini/internal/platform/apperr"
	"github.com/mybini/mybini/internal/platform/constants"
	"github.com/mybini/mybini/internal/platform/sec"
	"github.com/mybini/mybini/internal/platform/validate"
	"github.com/mybini/mybini/internal/realtime"
	"github.com/mybini/mybini/pkg/pagination"
	"github.com/mybini/mybini/pkg/uuid"
)

type Service struct {
	repo   Repository
	hub    *realtime.Hub
	logger *slog.Logger
}

func NewService(repo Repository, hub *realtime.Hub, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hub:    hub,
		logger: logger,
	}
}

// ListByCharacter returns one page of a character's comments newest-first,
// along with pagination metadata for the full stream.
func (service *Service) ListByCharacter(context context.Context, characterID string, params pagination.Params) ([]*Comment, pagination.Meta, error) {
	list, err := service.repo.ListByCharacter(context, characterID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	total, err := service.repo.CountByCharacter(context, characterID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return list, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Create posts a comment on a character as the given account. The body is
// trimmed; whitespace-only bodies are rejected before anything is written.
// The author's display name is snapshotted onto the comment. Subscribers of
// the character's stream are notified after the write succeeds.
func (service *Service) Create(context context.Context, characterID string, claims *sec.AuthClaims, authorName string, input CreateInput) (*Comment, error) {
	body := strings.TrimSpace(input.Body)

	v := &validate.Validator{}
	v.Required("body", body).MaxLen("body", body, constants.CommentMaxLen)
	if err := v.Err(); err != nil {
		return nil, err
	}

	c := &Comment{
		ID:          uuid.New(),
		CharacterID: characterID,
		AuthorID:    claims.UserID,
		AuthorName:  authorName,
		Body:        body,
	}

	if err := service.repo.Create(context, c); err != nil {
		return nil, err
	}

	service.hub.Publish(realtime.Event{
		Topic: realtime.TopicCharacter(characterID),
		Kind:  realtime.KindCommentAdded,
		Data:  c,
	})

	return c, nil
}

// Delete removes a comment. Only the comment's author or an admin may
// delete; anyone else gets a permission error regardless of whether the
// comment exists.
func (service *Service) Delete(context context.Context, commentID string, claims *sec.AuthClaims) error {
	c, err := service.repo.GetByID(context, commentID)
	if err != nil {
		return err
	}

	if c.AuthorID != claims.UserID && !claims.IsAdmin() {
		return apperr.Forbidden("You can only delete your own comments")
	}

	if err := service.repo.Delete(context, commentID); err != nil {
		return err
	}

	service.hub.Publish(realtime.Event{
		Topic: realtime.TopicCharacter(c.CharacterID),
		Kind:  realtime.KindCommentDeleted,
		Data:  map[string]string{"id": c.ID},
	})

	return nil
}

// CountByAuthor returns how many comments an account has written.
func (service *Service) CountByAuthor(context context.Context, authorID string) (int, error) {
	return service.repo.CountByAuthor(context, authorID)
}

// MostCommentedCharacter returns the character id this author has commented
// on the most, with the count. Ties break on the smaller character id so the
// statistic is deterministic. Returns ("", 0) when the author has no
// comments.
func (service *Service) MostCommentedCharacter(context context.Context, authorID string) (string, int, error) {
	counts, err := service.repo.CountByCharacterForAuthor(context, authorID)
	if err != nil {
		return "", 0, err
	}

	var topID string
	var topCount int
	for characterID, count := range counts {
		if count > topCount || (count == topCount && count > 0 && characterID < topID) {
			topID = characterID
			topCount = count
		}
	}

	return topID, topCount, nil
}
