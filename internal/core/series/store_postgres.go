// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package series

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

// List returns every series sorted alphabetically by title.
func (repository *PostgresRepository) List(context context.Context) ([]*Series, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s ORDER BY LOWER(%s) ASC`,
		schema.CoreSeries.ID, schema.CoreSeries.Slug, schema.CoreSeries.Title,
		schema.CoreSeries.Description, schema.CoreSeries.CoverURL,
		schema.CoreSeries.CreatedAt, schema.CoreSeries.UpdatedAt,
		schema.CoreSeries.Table, schema.CoreSeries.Title)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_series")
	}
	defer rows.Close()

	list := make([]*Series, 0)
	for rows.Next() {
		s := &Series{}
		if err := rows.Scan(&s.ID, &s.Slug, &s.Title, &s.Description, &s.CoverURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_series")
		}
		list = append(list, s)
	}

	return list, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Series, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CoreSeries.ID, schema.CoreSeries.Slug, schema.CoreSeries.Title,
		schema.CoreSeries.Description, schema.CoreSeries.CoverURL,
		schema.CoreSeries.CreatedAt, schema.CoreSeries.UpdatedAt,
		schema.CoreSeries.Table, schema.CoreSeries.ID)

	s := &Series{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&s.ID, &s.Slug, &s.Title, &s.Description, &s.CoverURL, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_series_by_id")
	}

	return s, nil
}

func (repository *PostgresRepository) Create(context context.Context, s *Series) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.CoreSeries.Table,
		schema.CoreSeries.ID, schema.CoreSeries.Slug, schema.CoreSeries.Title,
		schema.CoreSeries.Description, schema.CoreSeries.CoverURL,
		schema.CoreSeries.CreatedAt, schema.CoreSeries.UpdatedAt)

	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		s.ID, s.Slug, s.Title, s.Description, s.CoverURL, s.CreatedAt, s.UpdatedAt)
	return dberr.Wrap(err, "create_series")
}

func (repository *PostgresRepository) Update(context context.Context, s *Series) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		schema.CoreSeries.Table,
		schema.CoreSeries.Title, schema.CoreSeries.Description,
		schema.CoreSeries.CoverURL, schema.CoreSeries.UpdatedAt,
		schema.CoreSeries.ID)

	s.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query, s.ID, s.Title, s.Description, s.CoverURL, s.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_series")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreSeries.Table, schema.CoreSeries.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_series")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
