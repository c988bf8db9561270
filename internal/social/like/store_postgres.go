// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package like

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

// Set records or removes a like marker idempotently.
func (repository *PostgresRepository) Set(context context.Context, characterID, accountID string, liked bool) error {
	if liked {
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			schema.SocialCharacterLike.Table,
			schema.SocialCharacterLike.CharacterID, schema.SocialCharacterLike.AccountID,
			schema.SocialCharacterLike.CreatedAt)
		_, err := repository.db.Exec(context, query, characterID, accountID, time.Now())
		return dberr.Wrap(err, "set_like")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialCharacterLike.Table,
		schema.SocialCharacterLike.CharacterID, schema.SocialCharacterLike.AccountID)
	_, err := repository.db.Exec(context, query, characterID, accountID)
	return dberr.Wrap(err, "unset_like")
}

// Members returns the authoritative set of accounts liking the character.
func (repository *PostgresRepository) Members(context context.Context, characterID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.SocialCharacterLike.AccountID, schema.SocialCharacterLike.Table,
		schema.SocialCharacterLike.CharacterID)

	rows, err := repository.db.Query(context, query, characterID)
	if err != nil {
		return nil, dberr.Wrap(err, "like_members")
	}
	defer rows.Close()

	members := make([]string, 0)
	for rows.Next() {
		var accountID string
		if err := rows.Scan(&accountID); err != nil {
			return nil, dberr.Wrap(err, "scan_like_member")
		}
		members = append(members, accountID)
	}

	return members, rows.Err()
}

func (repository *PostgresRepository) CountByAccount(context context.Context, accountID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.SocialCharacterLike.Table, schema.SocialCharacterLike.AccountID)

	var count int
	if err := repository.db.QueryRow(context, query, accountID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_likes_by_account")
	}
	return count, nil
}
