// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybini/mybini/internal/platform/middleware"
	"github.com/mybini/mybini/internal/platform/respond"
	"github.com/mybini/mybini/internal/platform/sec"
)

// fakeVerifier maps raw token strings to claims, standing in for the JWT
// service.
type fakeVerifier struct {
	tokens map[string]*sec.AuthClaims
}

func (v *fakeVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	claims, ok := v.tokens[tokenStr]
	if !ok {
		return nil, errors.New("token is invalid")
	}
	return claims, nil
}

// okHandler marks that the request made it through the middleware chain.
func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		*called = true
		writer.WriteHeader(http.StatusOK)
	})
}

func newAuthChain(verifier middleware.TokenVerifier, inner http.Handler, wrap ...func(http.Handler) http.Handler) http.Handler {
	handler := inner
	for i := len(wrap) - 1; i >= 0; i-- {
		handler = wrap[i](handler)
	}
	return middleware.Authenticate(verifier)(handler)
}

func decodeErrorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	return envelope.Code
}

/*
TestRequireAuth_AnonymousRejected verifies that a request without any
Authorization header never reaches a protected handler and yields 401
with the UNAUTHORIZED code.
*/
func TestRequireAuth_AnonymousRejected(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*sec.AuthClaims{}}
	called := false
	chain := newAuthChain(verifier, okHandler(&called), middleware.RequireAuth)

	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/favourites", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeErrorCode(t, recorder))
}

func TestRequireAuth_ValidTokenPasses(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*sec.AuthClaims{
		"good": {UserID: "u1", Role: string(sec.RoleUser)},
	}}
	called := false
	chain := newAuthChain(verifier, okHandler(&called), middleware.RequireAuth)

	request := httptest.NewRequest(http.MethodPost, "/favourites", nil)
	request.Header.Set("Authorization", "Bearer good")
	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuthenticate_InvalidTokenRejected(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*sec.AuthClaims{}}
	called := false
	chain := newAuthChain(verifier, okHandler(&called), middleware.RequireAuth)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Authorization", "Bearer expired-or-forged")
	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestRequireRole_Matrix covers the admin gate: anonymous callers get 401,
signed-in regular users get 403 FORBIDDEN, admins pass through.
*/
func TestRequireRole_Matrix(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*sec.AuthClaims{
		"user-token":  {UserID: "u1", Role: string(sec.RoleUser)},
		"admin-token": {UserID: "a1", Role: string(sec.RoleAdmin)},
	}}

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantCode   string
	}{
		{"anonymous", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"regular_user", "user-token", http.StatusForbidden, "FORBIDDEN"},
		{"admin", "admin-token", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			chain := newAuthChain(verifier, okHandler(&called), middleware.RequireRole(sec.RoleAdmin))

			request := httptest.NewRequest(http.MethodPost, "/series", nil)
			if tt.token != "" {
				request.Header.Set("Authorization", "Bearer "+tt.token)
			}
			recorder := httptest.NewRecorder()
			chain.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeErrorCode(t, recorder))
			}
		})
	}
}
