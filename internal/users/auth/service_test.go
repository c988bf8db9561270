// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybini/mybini/internal/platform/apperr"
	"github.com/mybini/mybini/internal/platform/dberr"
	"github.com/mybini/mybini/internal/platform/sec"
	"github.com/mybini/mybini/internal/users/auth"
)

type fakeAccountRepo struct {
	accounts map[string]*auth.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*auth.Account)}
}

func (repo *fakeAccountRepo) FindByID(_ context.Context, id string) (*auth.Account, error) {
	if account, ok := repo.accounts[id]; ok {
		return account, nil
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	for _, account := range repo.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeAccountRepo) Create(_ context.Context, account *auth.Account) error {
	repo.accounts[account.ID] = account
	return nil
}

func (repo *fakeAccountRepo) Update(_ context.Context, account *auth.Account) error {
	repo.accounts[account.ID] = account
	return nil
}

func (repo *fakeAccountRepo) UpdatePassword(_ context.Context, accountID, newHash string) error {
	account, ok := repo.accounts[accountID]
	if !ok {
		return dberr.ErrNotFound
	}
	account.PasswordHash = newHash
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*auth.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*auth.Session)}
}

func (repo *fakeSessionRepo) Create(_ context.Context, session *auth.Session) error {
	repo.sessions[session.ID] = session
	return nil
}

func (repo *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	for _, session := range repo.sessions {
		if session.TokenHash == tokenHash && !session.IsRevoked && session.ExpiresAt.After(time.Now()) {
			return session, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeSessionRepo) Revoke(_ context.Context, sessionID string) error {
	session, ok := repo.sessions[sessionID]
	if !ok {
		return dberr.ErrNotFound
	}
	session.IsRevoked = true
	return nil
}

func (repo *fakeSessionRepo) RevokeAll(_ context.Context, accountID string) error {
	for _, session := range repo.sessions {
		if session.AccountID == accountID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repo *fakeSessionRepo) RevokeOthers(_ context.Context, accountID, currentSessionID string) error {
	for _, session := range repo.sessions {
		if session.AccountID == accountID && session.ID != currentSessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repo *fakeSessionRepo) DeleteExpired(_ context.Context) error { return nil }

type fakeResetTokenRepo struct {
	tokens map[string]string
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{tokens: make(map[string]string)}
}

func (repo *fakeResetTokenRepo) Set(_ context.Context, token, accountID string, _ time.Duration) error {
	repo.tokens[token] = accountID
	return nil
}

func (repo *fakeResetTokenRepo) Get(_ context.Context, token string) (string, error) {
	accountID, ok := repo.tokens[token]
	if !ok {
		return "", apperr.NotFound("Reset token is invalid or expired")
	}
	return accountID, nil
}

func (repo *fakeResetTokenRepo) Delete(_ context.Context, token string) error {
	delete(repo.tokens, token)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(accountID, _, _ string, _ time.Duration) (string, error) {
	return "jwt-for-" + accountID, nil
}

type recordingObserver struct {
	signIns  []string
	signOuts []string
}

func (observer *recordingObserver) OnSignIn(_ context.Context, accountID string) {
	observer.signIns = append(observer.signIns, accountID)
}

func (observer *recordingObserver) OnSignOut(accountID string) {
	observer.signOuts = append(observer.signOuts, accountID)
}

func newAuthService() (*auth.Service, *fakeAccountRepo, *fakeSessionRepo, *fakeResetTokenRepo, *recordingObserver) {
	accounts := newFakeAccountRepo()
	sessions := newFakeSessionRepo()
	resets := newFakeResetTokenRepo()
	observer := &recordingObserver{}

	service := auth.NewService(accounts, sessions, resets, fakeTokenProvider{})
	service.AddSessionObserver(observer)

	return service, accounts, sessions, resets, observer
}

func register(t *testing.T, service *auth.Service, email, password string) *auth.Account {
	t.Helper()
	account, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return account
}

func TestService_Register_DefaultsAndRole(t *testing.T) {
	service, _, _, _, _ := newAuthService()

	account := register(t, service, "mika@mybini.app", "correct horse")

	assert.Equal(t, sec.RoleUser, account.Role)
	assert.Equal(t, "mika", account.DisplayName)
	assert.Empty(t, account.Showcase)
	assert.NotEqual(t, "correct horse", account.PasswordHash)
}

func TestService_Register_DuplicateEmailConflicts(t *testing.T) {
	service, _, _, _, _ := newAuthService()
	register(t, service, "mika@mybini.app", "correct horse")

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Email:    "mika@mybini.app",
		Password: "another pass",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_Login_NotifiesObservers checks that a successful login triggers
OnSignIn (favourites load) and logout triggers OnSignOut (favourites clear).
*/
func TestService_Login_NotifiesObservers(t *testing.T) {
	service, _, _, _, observer := newAuthService()
	account := register(t, service, "mika@mybini.app", "correct horse")

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "mika@mybini.app",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{account.ID}, observer.signIns)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Equal(t, []string{account.ID}, observer.signOuts)
}

func TestService_Login_WrongPassword(t *testing.T) {
	service, _, _, _, observer := newAuthService()
	register(t, service, "mika@mybini.app", "correct horse")

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email:    "mika@mybini.app",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	assert.Empty(t, observer.signIns, "failed login must not fire observers")
}

func TestService_Logout_IsIdempotent(t *testing.T) {
	service, _, _, _, _ := newAuthService()

	assert.NoError(t, service.Logout(context.Background(), "never-issued"))
}

/*
TestService_RefreshSession_RotatesToken verifies the old refresh token is
dead after use and the new one works.
*/
func TestService_RefreshSession_RotatesToken(t *testing.T) {
	service, _, _, _, _ := newAuthService()
	register(t, service, "mika@mybini.app", "correct horse")

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email: "mika@mybini.app", Password: "correct horse",
	})
	require.NoError(t, err)

	rotated, err := service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// Replaying the old token must fail.
	_, err = service.RefreshSession(context.Background(), session.RefreshToken, "", "")
	require.Error(t, err)
}

func TestService_PasswordReset_Flow(t *testing.T) {
	service, accounts, sessions, resets, observer := newAuthService()
	account := register(t, service, "mika@mybini.app", "correct horse")

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email: "mika@mybini.app", Password: "correct horse",
	})
	require.NoError(t, err)

	token, err := service.RequestPasswordReset(context.Background(), "mika@mybini.app")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(context.Background(), token, "new password"))

	// All sessions revoked, token consumed, observers told to clear.
	for _, session := range sessions.sessions {
		assert.True(t, session.IsRevoked)
	}
	assert.Empty(t, resets.tokens)
	assert.Contains(t, observer.signOuts, account.ID)

	// New password works, old one doesn't.
	assert.True(t, sec.CheckPasswordHash("new password", accounts.accounts[account.ID].PasswordHash))

	_, err = service.Login(context.Background(), auth.LoginInput{
		Email: "mika@mybini.app", Password: "correct horse",
	})
	require.Error(t, err)
}

func TestService_RequestPasswordReset_UnknownEmailSilent(t *testing.T) {
	service, _, _, resets, _ := newAuthService()

	token, err := service.RequestPasswordReset(context.Background(), "nobody@mybini.app")
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, resets.tokens)
}
