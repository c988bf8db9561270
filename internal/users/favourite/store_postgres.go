// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package favourite

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mybini/mybini/internal/platform/database/schema"
	"github.com/mybini/mybini/internal/platform/dberr"
)

type Repository interface {
	// ListByAccount returns the account's favourited character ids,
	// newest favourite first.
	ListByAccount(context context.Context, accountID string) ([]string, error)
	// Set records or removes a favourite marker idempotently.
	Set(context context.Context, accountID, characterID string, favourited bool) error
	Count(context context.Context, accountID string) (int, error)
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByAccount(context context.Context, accountID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		schema.UserFavourite.CharacterID, schema.UserFavourite.Table,
		schema.UserFavourite.AccountID, schema.UserFavourite.CreatedAt)

	rows, err := repository.db.Query(context, query, accountID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_favourites")
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var characterID string
		if err := rows.Scan(&characterID); err != nil {
			return nil, dberr.Wrap(err, "scan_favourite")
		}
		ids = append(ids, characterID)
	}

	return ids, rows.Err()
}

func (repository *PostgresRepository) Set(context context.Context, accountID, characterID string, favourited bool) error {
	if favourited {
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			schema.UserFavourite.Table,
			schema.UserFavourite.AccountID, schema.UserFavourite.CharacterID,
			schema.UserFavourite.CreatedAt)
		_, err := repository.db.Exec(context, query, accountID, characterID, time.Now())
		return dberr.Wrap(err, "set_favourite")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.UserFavourite.Table,
		schema.UserFavourite.AccountID, schema.UserFavourite.CharacterID)
	_, err := repository.db.Exec(context, query, accountID, characterID)
	return dberr.Wrap(err, "unset_favourite")
}

func (repository *PostgresRepository) Count(context context.Context, accountID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.UserFavourite.Table, schema.UserFavourite.AccountID)

	var count int
	if err := repository.db.QueryRow(context, query, accountID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_favourites")
	}
	return count, nil
}
