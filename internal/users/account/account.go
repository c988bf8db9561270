// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

/*
Package account implements member profile management.

It builds on the auth package's Account entity: profile edits, the public
profile view, the three-slot showcase, and the activity statistics shown on
the profile page.
*/
package account

import (
	"github.com/mybini/mybini/internal/core/character"
)

// Stats aggregates a member's activity across the gallery.
type Stats struct {
	Favourites    int `json:"favourites"`
	LikesGiven    int `json:"likes_given"`
	CommentsGiven int `json:"comments_given"`
	// MostCommented is the character this member has commented on the
	// most, nil when they have never commented.
	MostCommented *MostCommented `json:"most_commented,omitempty"`
}

// MostCommented pairs a character with the member's comment count on it.
type MostCommented struct {
	Character *character.Detail `json:"character"`
	Count     int               `json:"count"`
}

// PublicProfile is the view any visitor sees of a member.
type PublicProfile struct {
	ID          string              `json:"id"`
	DisplayName string              `json:"display_name"`
	AvatarURL   string              `json:"avatar_url,omitempty"`
	Showcase    []*character.Detail `json:"showcase"`
}

// UpdateProfileInput holds the editable profile fields. Nil fields retain
// the stored value.
type UpdateProfileInput struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// ShowcaseInput is the ordered list of character ids to pin, at most three.
type ShowcaseInput struct {
	CharacterIDs []string `json:"character_ids"`
}
