// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Full access to the content management panels
	RoleAdmin UserRole = "admin"

	// Default role for standard registered accounts
	RoleUser UserRole = "user"
)

// Normalize maps any unknown or malformed stored role to the default role.
//
// A gallery account record may predate a role migration or have been edited
// by hand; resolving it must fail closed to "user" rather than error out.
func (r UserRole) Normalize() UserRole {
	if r == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleUser:
		return 10
	default:
		return 0
	}
}
