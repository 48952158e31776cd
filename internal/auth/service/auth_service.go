// Package service implements registration, login, and session token
// resolution for accounts.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	accountdomain "notes-service/internal/account/domain"
	accountrepo "notes-service/internal/account/repository"
	"notes-service/internal/apperr"
	"notes-service/internal/audit"
	"notes-service/internal/security"
	"notes-service/internal/telemetry"
	"notes-service/internal/validate"
)

// AccountRepo is the minimal account repository needed by the auth service.
type AccountRepo interface {
	GetByID(ctx context.Context, id string) (*accountdomain.Account, error)
	GetByEmail(ctx context.Context, email string) (*accountdomain.Account, error)
	GetByPhone(ctx context.Context, phone string) (*accountdomain.Account, error)
	Create(ctx context.Context, a *accountdomain.Account) error
}

// LoginResult holds the outcome of a successful login.
type LoginResult struct {
	Account   *accountdomain.Account
	Token     string
	ExpiresAt time.Time
}

// AuthService implements register, login, logout, and token resolution.
type AuthService struct {
	accounts AccountRepo
	hasher   *security.Hasher
	tokens   *security.TokenCodec
	auditor  audit.AuditLogger
	emitter  telemetry.EventEmitter
}

// NewAuthService returns an AuthService with the given dependencies.
// auditor and emitter may be nil; then those concerns are skipped.
func NewAuthService(
	accounts AccountRepo,
	hasher *security.Hasher,
	tokens *security.TokenCodec,
	auditor audit.AuditLogger,
	emitter telemetry.EventEmitter,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		auditor:  auditor,
		emitter:  emitter,
	}
}

// Register creates an account after validating the input and checking that
// the email (case-insensitively) and phone number are unused. The pre-checks
// give friendly errors; the unique indexes are the real guard, and their
// violations surface as the same conflict.
func (s *AuthService) Register(ctx context.Context, fullName, phoneNumber, email, password string) (*accountdomain.Account, error) {
	fullName = strings.TrimSpace(fullName)
	phoneNumber = strings.TrimSpace(phoneNumber)
	email = strings.TrimSpace(email)
	if err := validate.Registration(fullName, phoneNumber, email, password); err != nil {
		return nil, err
	}

	existing, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflictf("email already registered")
	}
	existing, err = s.accounts.GetByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing != nil {
		return nil, apperr.Conflictf("phone number already registered")
	}

	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	now := time.Now().UTC()
	account := &accountdomain.Account{
		ID:           uuid.New().String(),
		FullName:     fullName,
		PhoneNumber:  phoneNumber,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := account.Validate(); err != nil {
		return nil, apperr.Validationf("%s", err.Error())
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		switch {
		case errors.Is(err, accountrepo.ErrDuplicateEmail):
			return nil, apperr.Conflictf("email already registered")
		case errors.Is(err, accountrepo.ErrDuplicatePhone):
			return nil, apperr.Conflictf("phone number already registered")
		default:
			return nil, apperr.Internal(err)
		}
	}

	if s.auditor != nil {
		s.auditor.LogEvent(ctx, account.ID, "register", "account", "")
	}
	telemetry.EmitAsync(s.emitter, ctx, telemetry.NewEvent(account.ID, "account_registered", nil))
	return account.Sanitized(), nil
}

// Login authenticates the credentials and issues a session token. Unknown
// email and wrong password both return ErrUnauthenticated; callers cannot
// tell which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if err := validate.Login(email, password); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if account == nil {
		if s.auditor != nil {
			s.auditor.LogEvent(ctx, audit.SentinelAccountID, "login_failure", "session", "unknown email")
		}
		return nil, apperr.ErrUnauthenticated
	}
	if !s.hasher.Verify(account.PasswordHash, []byte(password)) {
		if s.auditor != nil {
			s.auditor.LogEvent(ctx, account.ID, "login_failure", "session", "wrong password")
		}
		return nil, apperr.ErrUnauthenticated
	}

	token, expiresAt, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if s.auditor != nil {
		s.auditor.LogEvent(ctx, account.ID, "login_success", "session", "")
	}
	telemetry.EmitAsync(s.emitter, ctx, telemetry.NewEvent(account.ID, "login", nil))
	return &LoginResult{
		Account:   account.Sanitized(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Resolve verifies the session token and loads the account it names. A token
// for an account that no longer exists fails the same way as a forged or
// expired one.
func (s *AuthService) Resolve(ctx context.Context, token string) (*accountdomain.Account, error) {
	if token == "" {
		return nil, apperr.ErrUnauthenticated
	}
	accountID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if account == nil {
		return nil, apperr.ErrUnauthenticated
	}
	return account.Sanitized(), nil
}

// Logout records the logout event. Tokens are stateless; the handler clears
// the session cookie and the token simply ages out.
func (s *AuthService) Logout(ctx context.Context, accountID string) {
	if s.auditor != nil {
		s.auditor.LogEvent(ctx, accountID, "logout", "session", "")
	}
	telemetry.EmitAsync(s.emitter, ctx, telemetry.NewEvent(accountID, "logout", nil))
}
