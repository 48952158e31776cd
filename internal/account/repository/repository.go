package repository

import (
	"context"
	"errors"

	"notes-service/internal/account/domain"
)

// Duplicate-key sentinels, translated from the unique indexes on accounts.
// The indexes are the real uniqueness guard; pre-checks in services exist only
// for friendlier messages.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicatePhone = errors.New("phone number already registered")
)

// Repository defines persistence for accounts.
type Repository interface {
	// GetByID returns the account for id, or nil if not found.
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// GetByEmail matches email case-insensitively and returns nil if not found.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// GetByPhone matches the phone number exactly and returns nil if not found.
	GetByPhone(ctx context.Context, phone string) (*domain.Account, error)
	// ExistsByID reports whether an account with id exists.
	ExistsByID(ctx context.Context, id string) (bool, error)
	// Create persists the account. Returns ErrDuplicateEmail/ErrDuplicatePhone
	// when a unique index rejects the row.
	Create(ctx context.Context, a *domain.Account) error
	// Update persists all mutable fields of the account. Same duplicate
	// sentinels as Create.
	Update(ctx context.Context, a *domain.Account) error
	// Delete removes the account row. Missing rows are not an error.
	Delete(ctx context.Context, id string) error
}
