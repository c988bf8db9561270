// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mybini/mybini/internal/platform/database/schema"
)

/*
TestUserAccount_ColumnsMatchMigration pins the account descriptor to the
columns the initial migration creates. A drifting field here produces SQL
against a column that does not exist.
*/
func TestUserAccount_ColumnsMatchMigration(t *testing.T) {
	assert.Equal(t, "passwordhash", schema.UserAccount.PasswordHash)
	assert.Equal(t, []string{
		"id", "email", "passwordhash", "role", "displayname",
		"avatarurl", "showcase", "createdat", "updatedat",
	}, schema.UserAccount.Columns())
}
