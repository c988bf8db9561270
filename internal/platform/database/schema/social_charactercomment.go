// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package schema

// SocialCharacterCommentTable represents the 'social.charactercomment' table
type SocialCharacterCommentTable struct {
	Table       string
	ID          string
	CharacterID string
	AuthorID    string
	AuthorName  string
	Body        string
	CreatedAt   string
}

// SocialCharacterComment is the schema definition for social.charactercomment
var SocialCharacterComment = SocialCharacterCommentTable{
	Table:       "social.charactercomment",
	ID:          "id",
	CharacterID: "characterid",
	AuthorID:    "authorid",
	AuthorName:  "authorname",
	Body:        "body",
	CreatedAt:   "createdat",
}

func (t SocialCharacterCommentTable) Columns() []string {
	return []string{t.ID, t.CharacterID, t.AuthorID, t.AuthorName, t.Body, t.CreatedAt}
}
