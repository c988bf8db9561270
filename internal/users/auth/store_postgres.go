// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mybini/mybini/internal/platform/database/schema"
	"github.com/mybini/mybini/internal/platform/dberr"
)

// # Account Repository

// PostgresAccountRepository implements AccountRepository on users.account.
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func accountColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.PasswordHash,
		schema.UserAccount.Role, schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL,
		schema.UserAccount.Showcase, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt)
}

func scanAccount(row interface{ Scan(dest ...any) error }) (*Account, error) {
	account := &Account{}
	err := row.Scan(&account.ID, &account.Email, &account.PasswordHash, &account.Role,
		&account.DisplayName, &account.AvatarURL, &account.Showcase,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if account.Showcase == nil {
		account.Showcase = []string{}
	}
	return account, nil
}

func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), schema.UserAccount.Table, schema.UserAccount.ID)

	account, err := scanAccount(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_account_by_id")
	}
	return account, nil
}

func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), schema.UserAccount.Table, schema.UserAccount.Email)

	account, err := scanAccount(repository.db.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "find_account_by_email")
	}
	return account, nil
}

func (repository *PostgresAccountRepository) Create(context context.Context, account *Account) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.UserAccount.Table, accountColumns())

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		account.ID, account.Email, account.PasswordHash, account.Role,
		account.DisplayName, account.AvatarURL, account.Showcase,
		account.CreatedAt, account.UpdatedAt)
	return dberr.Wrap(err, "create_account")
}

func (repository *PostgresAccountRepository) Update(context context.Context, account *Account) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL,
		schema.UserAccount.Showcase, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID)

	account.UpdatedAt = time.Now()

	tag, err := repository.db.Exec(context, query,
		account.ID, account.DisplayName, account.AvatarURL, account.Showcase, account.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_account")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresAccountRepository) UpdatePassword(context context.Context, accountID, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.PasswordHash, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID)

	tag, err := repository.db.Exec(context, query, accountID, newHash, time.Now())
	if err != nil {
		return dberr.Wrap(err, "update_account_password")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Session Repository

// PostgresSessionRepository implements SessionRepository on users.session.
type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func sessionColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		schema.UserSession.ID, schema.UserSession.UserID, schema.UserSession.TokenHash,
		schema.UserSession.UserAgent, schema.UserSession.IPAddress,
		schema.UserSession.ExpiresAt, schema.UserSession.IsRevoked, schema.UserSession.CreatedAt)
}

func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.UserSession.Table, sessionColumns())

	session.CreatedAt = time.Now()

	_, err := repository.db.Exec(context, query,
		session.ID, session.AccountID, session.TokenHash, session.UserAgent,
		session.IPAddress, session.ExpiresAt, session.IsRevoked, session.CreatedAt)
	return dberr.Wrap(err, "create_session")
}

// FindByTokenHash only matches live sessions: not revoked, not expired.
func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = FALSE AND %s > NOW()`,
		sessionColumns(), schema.UserSession.Table,
		schema.UserSession.TokenHash, schema.UserSession.IsRevoked, schema.UserSession.ExpiresAt)

	session := &Session{}
	err := repository.db.QueryRow(context, query, tokenHash).Scan(
		&session.ID, &session.AccountID, &session.TokenHash, &session.UserAgent,
		&session.IPAddress, &session.ExpiresAt, &session.IsRevoked, &session.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_session_by_token_hash")
	}
	return session, nil
}

func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.ID)

	tag, err := repository.db.Exec(context, query, sessionID)
	if err != nil {
		return dberr.Wrap(err, "revoke_session")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresSessionRepository) RevokeAll(context context.Context, accountID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.UserID)

	_, err := repository.db.Exec(context, query, accountID)
	return dberr.Wrap(err, "revoke_all_sessions")
}

func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, accountID, currentSessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s <> $2`,
		schema.UserSession.Table, schema.UserSession.IsRevoked,
		schema.UserSession.UserID, schema.UserSession.ID)

	_, err := repository.db.Exec(context, query, accountID, currentSessionID)
	return dberr.Wrap(err, "revoke_other_sessions")
}

func (repository *PostgresSessionRepository) DeleteExpired(context context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s < NOW()`,
		schema.UserSession.Table, schema.UserSession.ExpiresAt)

	_, err := repository.db.Exec(context, query)
	return dberr.Wrap(err, "delete_expired_sessions")
}
