package domain

import (
	"errors"
	"time"
)

// Account is the core account entity. PasswordHash never leaves the
// auth/resolver boundary; entities handed to handlers have it blanked.
type Account struct {
	ID           string
	FullName     string
	PhoneNumber  string
	Email        string // stored as given; uniqueness is case-insensitive
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the account for persistence. Returns an error describing the first validation failure.
func (a *Account) Validate() error {
	if a.Email == "" {
		return errors.New("email is required")
	}
	if a.FullName == "" {
		return errors.New("full name is required")
	}
	if a.PhoneNumber == "" {
		return errors.New("phone number is required")
	}
	if a.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// Sanitized returns a copy of the account with the password hash removed,
// safe to hand to transport code.
func (a *Account) Sanitized() *Account {
	if a == nil {
		return nil
	}
	c := *a
	c.PasswordHash = ""
	return &c
}
