// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Classification
//
// The profile statistics queries aggregate likes and comments across every
// character by account id and depend on composite indexes provisioned by the
// migrations. A database that is missing those objects must surface as a
// distinct, actionable configuration error rather than a generic failure,
// and a permission rejection must be distinguishable from both.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mybini/mybini/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. SQLSTATE mapping
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgerrcode.InsufficientPrivilege:
			return apperr.Forbidden("Blocked by database access rules")
		case pgerrcode.UndefinedTable, pgerrcode.UndefinedColumn, pgerrcode.UndefinedObject:
			return apperr.PreconditionFailed(
				"Backend schema is missing an object this query needs. Run the database migrations.",
				err,
			)
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}
