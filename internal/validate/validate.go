// Package validate holds field validation rules for account registration and login input.
package validate

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"

	"notes-service/internal/apperr"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// FullName requires a trimmed length of at least 4 characters.
func FullName(name string) error {
	if len(strings.TrimSpace(name)) < 4 {
		return apperr.Validationf("full name must be at least 4 characters long")
	}
	return nil
}

// PhoneNumber requires exactly 10 digits.
func PhoneNumber(phone string) error {
	if !phonePattern.MatchString(phone) {
		return apperr.Validationf("phone number must be exactly 10 digits")
	}
	return nil
}

// Email requires an RFC 5322 address. The address itself (not a display-name form) must be given.
func Email(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperr.Validationf("please provide a valid email address")
	}
	return nil
}

// Password requires at least 8 characters with at least one digit, one lowercase, and one uppercase letter.
func Password(password string) error {
	if len(password) < 8 {
		return apperr.Validationf("password must be at least 8 characters long")
	}
	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	if !hasDigit || !hasLower || !hasUpper {
		return apperr.Validationf("password must contain at least one number, one uppercase and one lowercase letter")
	}
	return nil
}

// Registration validates all fields of a registration request and returns the first failure.
func Registration(fullName, phone, email, password string) error {
	if err := FullName(fullName); err != nil {
		return err
	}
	if err := PhoneNumber(phone); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return Password(password)
}

// Login validates login credentials without enforcing password composition rules.
func Login(email, password string) error {
	if err := Email(email); err != nil {
		return err
	}
	if password == "" {
		return apperr.Validationf("password is required")
	}
	return nil
}
