// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package character

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

func characterColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.CoreCharacter.ID, schema.CoreCharacter.SeriesID, schema.CoreCharacter.Name,
		schema.CoreCharacter.Age, schema.CoreCharacter.Description, schema.CoreCharacter.ImageURL,
		schema.CoreCharacter.Gallery, schema.CoreCharacter.CreatedAt, schema.CoreCharacter.UpdatedAt)
}

func scanCharacter(row interface{ Scan(dest ...any) error }) (*Character, error) {
	c := &Character{}
	err := row.Scan(&c.ID, &c.SeriesID, &c.Name, &c.Age, &c.Description,
		&c.ImageURL, &c.Gallery, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if c.Gallery == nil {
		c.Gallery = []string{}
	}
	return c, nil
}

// List returns characters newest-first, optionally narrowed to one series.
func (repository *PostgresRepository) List(context context.Context, seriesID string) ([]*Character, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`,
		characterColumns(), schema.CoreCharacter.Table, schema.CoreCharacter.CreatedAt)
	args := []any{}

	if seriesID != "" {
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
			characterColumns(), schema.CoreCharacter.Table,
			schema.CoreCharacter.SeriesID, schema.CoreCharacter.CreatedAt)
		args = append(args, seriesID)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_characters")
	}
	defer rows.Close()

	list := make([]*Character, 0)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_character")
		}
		list = append(list, c)
	}

	return list, rows.Err()
}

// Recent returns the newest characters capped at limit.
func (repository *PostgresRepository) Recent(context context.Context, limit int) ([]*Character, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC LIMIT $1`,
		characterColumns(), schema.CoreCharacter.Table, schema.CoreCharacter.CreatedAt)

	rows, err := repository.db.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "recent_characters")
	}
	defer rows.Close()

	list := make([]*Character, 0, limit)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_character")
		}
		list = append(list, c)
	}

	return list, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Character, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		characterColumns(), schema.CoreCharacter.Table, schema.CoreCharacter.ID)

	c, err := scanCharacter(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_character_by_id")
	}

	return c, nil
}

// GetManyByID resolves a batch of ids in the given order, dropping ids that
// no longer resolve. Used for showcase and favourites hydration, where a
// stale reference must not fail the whole lookup.
func (repository *PostgresRepository) GetManyByID(context context.Context, ids []string) ([]*Character, error) {
	if len(ids) == 0 {
		return []*Character{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1)`,
		characterColumns(), schema.CoreCharacter.Table, schema.CoreCharacter.ID)

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "get_characters_by_id")
	}
	defer rows.Close()

	byID := make(map[string]*Character, len(ids))
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_character")
		}
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "get_characters_by_id")
	}

	list := make([]*Character, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			list = append(list, c)
		}
	}

	return list, nil
}

func (repository *PostgresRepository) Create(context context.Context, c *Character) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.CoreCharacter.Table, characterColumns())

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		c.ID, c.SeriesID, c.Name, c.Age, c.Description, c.ImageURL, c.Gallery, c.CreatedAt, c.UpdatedAt)
	return dberr.Wrap(err, "create_character")
}

func (repository *PostgresRepository) Update(context context.Context, c *Character) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8 WHERE %s = $1`,
		schema.CoreCharacter.Table,
		schema.CoreCharacter.SeriesID, schema.CoreCharacter.Name, schema.CoreCharacter.Age,
		schema.CoreCharacter.Description, schema.CoreCharacter.ImageURL,
		schema.CoreCharacter.Gallery, schema.CoreCharacter.UpdatedAt,
		schema.CoreCharacter.ID)

	c.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		c.ID, c.SeriesID, c.Name, c.Age, c.Description, c.ImageURL, c.Gallery, c.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_character")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreCharacter.Table, schema.CoreCharacter.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_character")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
