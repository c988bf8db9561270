// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

/*
Package auth implements account identity and session management.

It covers registration, credential verification, JWT issuance, refresh-token
rotation (sessions tracked in Postgres, reset tokens in Redis), and the
password recovery flow.

# Architecture

  - Service: orchestrates the flows and notifies session observers.
  - Repositories: Postgres for accounts and sessions, Redis for volatile
    reset tokens.
  - Security: bcrypt password hashes and RSA-signed JWTs.
*/
package auth

import (
	"time"

	"github.com/mybini/mybini/internal/platform/sec"
)

// # Domain Entities

// Account represents a registered member.
type Account struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Role         sec.UserRole `json:"role"`
	// Showcase holds up to three favourited character ids the member pins
	// on their public profile, in display order.
	Showcase  []string  `json:"showcase"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Field names shared between validation and response payloads.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldDisplayName     = "display_name"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldMessage         = "message"
)
