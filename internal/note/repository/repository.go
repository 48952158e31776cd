package repository

import (
	"context"

	"notes-service/internal/note/domain"
)

// Repository defines persistence for notes.
type Repository interface {
	// GetByID returns the note for id, or nil if not found.
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	// ExistsByID reports whether a note with id exists.
	ExistsByID(ctx context.Context, id string) (bool, error)
	// ListByAuthor returns the author's notes, newest first.
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Note, error)
	// Create persists the note. The note must have ID set.
	Create(ctx context.Context, n *domain.Note) error
	// Update persists title/content changes.
	Update(ctx context.Context, n *domain.Note) error
	// Delete removes the note row. Missing rows are not an error.
	Delete(ctx context.Context, id string) error
	// DeleteByAuthor removes every note owned by authorID and returns the
	// number of rows removed. Used by the account-deletion cascade.
	DeleteByAuthor(ctx context.Context, authorID string) (int64, error)
}
