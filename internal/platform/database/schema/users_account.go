// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Email        string
	PasswordHash string
	Role         string
	DisplayName  string
	AvatarURL    string
	Showcase     string
	CreatedAt    string
	UpdatedAt    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Email:        "email",
	PasswordHash: "passwordhash",
	Role:         "role",
	DisplayName:  "displayname",
	AvatarURL:    "avatarurl",
	Showcase:     "showcase",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.PasswordHash, t.Role, t.DisplayName,
		t.AvatarURL, t.Showcase, t.CreatedAt, t.UpdatedAt,
	}
}
