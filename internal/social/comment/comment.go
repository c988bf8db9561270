// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

package comment

import "time"

// Comment is a message left on a character page. AuthorName is a snapshot of
// the author's display name at posting time; renaming an account later does
// not rewrite past comments.
type Comment struct {
	ID          string    `json:"id"`
	CharacterID string    `json:"character_id"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateInput struct {
	Body string `json:"body"`
}
