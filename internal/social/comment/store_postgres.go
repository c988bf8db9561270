// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mybini/mybini/internal/platform/database/schema"
	"github.com/mybini/mybini/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func commentColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		schema.SocialCharacterComment.ID, schema.SocialCharacterComment.CharacterID,
		schema.SocialCharacterComment.AuthorID, schema.SocialCharacterComment.AuthorName,
		schema.SocialCharacterComment.Body, schema.SocialCharacterComment.CreatedAt)
}

// ListByCharacter returns one page of a character's comments newest-first.
// Ties on the timestamp break on id descending so the order is stable across
// pages.
func (repository *PostgresRepository) ListByCharacter(context context.Context, characterID string, limit, offset int) ([]*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC LIMIT $2 OFFSET $3`,
		commentColumns(), schema.SocialCharacterComment.Table,
		schema.SocialCharacterComment.CharacterID,
		schema.SocialCharacterComment.CreatedAt, schema.SocialCharacterComment.ID)

	rows, err := repository.db.Query(context, query, characterID, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	list := make([]*Comment, 0)
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.CharacterID, &c.AuthorID, &c.AuthorName, &c.Body, &c.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_comment")
		}
		list = append(list, c)
	}

	return list, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		commentColumns(), schema.SocialCharacterComment.Table, schema.SocialCharacterComment.ID)

	c := &Comment{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.CharacterID, &c.AuthorID, &c.AuthorName, &c.Body, &c.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment_by_id")
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, c *Comment) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.SocialCharacterComment.Table, commentColumns())

	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	_, err := repository.db.Exec(context, query,
		c.ID, c.CharacterID, c.AuthorID, c.AuthorName, c.Body, c.CreatedAt)
	return dberr.Wrap(err, "create_comment")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialCharacterComment.Table, schema.SocialCharacterComment.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) CountByCharacter(context context.Context, characterID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.SocialCharacterComment.Table, schema.SocialCharacterComment.CharacterID)

	var count int
	if err := repository.db.QueryRow(context, query, characterID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_character_comments")
	}
	return count, nil
}

func (repository *PostgresRepository) CountByAuthor(context context.Context, authorID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.SocialCharacterComment.Table, schema.SocialCharacterComment.AuthorID)

	var count int
	if err := repository.db.QueryRow(context, query, authorID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_comments_by_author")
	}
	return count, nil
}

func (repository *PostgresRepository) CountByCharacterForAuthor(context context.Context, authorID string) (map[string]int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM %s WHERE %s = $1 GROUP BY %s`,
		schema.SocialCharacterComment.CharacterID, schema.SocialCharacterComment.Table,
		schema.SocialCharacterComment.AuthorID, schema.SocialCharacterComment.CharacterID)

	rows, err := repository.db.Query(context, query, authorID)
	if err != nil {
		return nil, dberr.Wrap(err, "count_comments_by_character")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var characterID string
		var count int
		if err := rows.Scan(&characterID, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_comment_count")
		}
		counts[characterID] = count
	}

	return counts, rows.Err()
}
