// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package comment_test

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybini/mybini/internal/platform/apperr"
	"github.com/mybini/mybini/internal/platform/dberr"
	"github.com/mybini/mybini/internal/platform/sec"
	"github.com/mybini/mybini/internal/realtime"
	"github.com/mybini/mybini/internal/social/comment"
	"github.com/mybini/mybini/pkg/pagination"
)

type fakeCommentRepo struct {
	comments []*comment.Comment
}

func (repo *fakeCommentRepo) ListByCharacter(_ context.Context, characterID string, limit, offset int) ([]*comment.Comment, error) {
	out := make([]*comment.Comment, 0)
	for _, c := range repo.comments {
		if c.CharacterID == characterID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (repo *fakeCommentRepo) CountByCharacter(_ context.Context, characterID string) (int, error) {
	count := 0
	for _, c := range repo.comments {
		if c.CharacterID == characterID {
			count++
		}
	}
	return count, nil
}

func (repo *fakeCommentRepo) GetByID(_ context.Context, id string) (*comment.Comment, error) {
	for _, c := range repo.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeCommentRepo) Create(_ context.Context, c *comment.Comment) error {
	// The Postgres store stamps the server time on insert; mirror that.
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	repo.comments = append(repo.comments, c)
	return nil
}

func (repo *fakeCommentRepo) Delete(_ context.Context, id string) error {
	for i, c := range repo.comments {
		if c.ID == id {
			repo.comments = append(repo.comments[:i], repo.comments[i+1:]...)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (repo *fakeCommentRepo) CountByAuthor(_ context.Context, authorID string) (int, error) {
	count := 0
	for _, c := range repo.comments {
		if c.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (repo *fakeCommentRepo) CountByCharacterForAuthor(_ context.Context, authorID string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, c := range repo.comments {
		if c.AuthorID == authorID {
			counts[c.CharacterID]++
		}
	}
	return counts, nil
}

func newCommentService() (*comment.Service, *fakeCommentRepo, *realtime.Hub) {
	logger := slog.New(slog.DiscardHandler)
	repo := &fakeCommentRepo{}
	hub := realtime.NewHub(logger)
	return comment.NewService(repo, hub, logger), repo, hub
}

func userClaims(id string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Role: string(sec.RoleUser)}
}

/*
TestService_Create_PublishesAndListsNewestFirst posts two comments and checks
that the list comes back newest-first and that a subscriber on the
character's stream sees each post as it lands.
*/
func TestService_Create_PublishesAndListsNewestFirst(t *testing.T) {
	service, repo, hub := newCommentService()
	sub := hub.Subscribe(realtime.TopicCharacter("ch1"))
	defer sub.Cancel()

	first, err := service.Create(context.Background(), "ch1", userClaims("u1"), "Mika", comment.CreateInput{Body: "first!"})
	require.NoError(t, err)

	// Keep the fixture ordering unambiguous.
	repo.comments[0].CreatedAt = time.Now().Add(-time.Minute)

	second, err := service.Create(context.Background(), "ch1", userClaims("u2"), "Rin", comment.CreateInput{Body: "second"})
	require.NoError(t, err)

	list, meta, err := service.ListByCharacter(context.Background(), "ch1", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, 2, meta.Total)

	event := <-sub.C
	assert.Equal(t, realtime.KindCommentAdded, event.Kind)
	event = <-sub.C
	assert.Equal(t, realtime.KindCommentAdded, event.Kind)
}

func TestService_ListByCharacter_Pages(t *testing.T) {
	service, repo, _ := newCommentService()
	base := time.Now()
	for i := 0; i < 5; i++ {
		repo.comments = append(repo.comments, &comment.Comment{
			ID:          string(rune('a' + i)),
			CharacterID: "ch1",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	list, meta, err := service.ListByCharacter(context.Background(), "ch1", pagination.Params{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID) // oldest lands on the last page
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestService_Create_RejectsWhitespaceBody(t *testing.T) {
	service, repo, _ := newCommentService()

	_, err := service.Create(context.Background(), "ch1", userClaims("u1"), "Mika", comment.CreateInput{Body: "   \n\t "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Empty(t, repo.comments)
}

func TestService_Create_TrimsBodyAndSnapshotsAuthor(t *testing.T) {
	service, _, _ := newCommentService()

	c, err := service.Create(context.Background(), "ch1", userClaims("u1"), "Mika", comment.CreateInput{Body: "  hello  "})
	require.NoError(t, err)
	assert.Equal(t, "hello", c.Body)
	assert.Equal(t, "Mika", c.AuthorName)
}

func TestService_Create_RejectsOverlongBody(t *testing.T) {
	service, _, _ := newCommentService()

	_, err := service.Create(context.Background(), "ch1", userClaims("u1"), "Mika",
		comment.CreateInput{Body: strings.Repeat("a", 2000)})
	require.Error(t, err)
}

/*
TestService_Delete_AuthorOrAdminOnly verifies the delete permission matrix:
the author may delete, an admin may delete, a third party may not.
*/
func TestService_Delete_AuthorOrAdminOnly(t *testing.T) {
	service, repo, _ := newCommentService()

	c, err := service.Create(context.Background(), "ch1", userClaims("author"), "Mika", comment.CreateInput{Body: "mine"})
	require.NoError(t, err)

	err = service.Delete(context.Background(), c.ID, userClaims("stranger"))
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	assert.Len(t, repo.comments, 1)

	admin := &sec.AuthClaims{UserID: "boss", Role: string(sec.RoleAdmin)}
	require.NoError(t, service.Delete(context.Background(), c.ID, admin))
	assert.Empty(t, repo.comments)
}

func TestService_MostCommentedCharacter_TieBreaksOnID(t *testing.T) {
	service, repo, _ := newCommentService()
	repo.comments = []*comment.Comment{
		{ID: "1", CharacterID: "zeta", AuthorID: "u1"},
		{ID: "2", CharacterID: "alpha", AuthorID: "u1"},
	}

	id, count, err := service.MostCommentedCharacter(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alpha", id)
	assert.Equal(t, 1, count)
}
