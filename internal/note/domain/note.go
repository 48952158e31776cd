package domain

import (
	"errors"
	"time"
)

// Note is a title/content record owned by exactly one account. AuthorID is
// the authoritative ownership reference; there is no trusted back-reference
// list on the account side.
type Note struct {
	ID        string
	Title     string
	Content   string
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the note for persistence. Returns an error describing the first validation failure.
func (n *Note) Validate() error {
	if n.Title == "" {
		return errors.New("title is required")
	}
	if n.AuthorID == "" {
		return errors.New("author is required")
	}
	return nil
}
