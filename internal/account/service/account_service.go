// Package service implements account profile reads, updates, and the
// cascading account deletion.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"notes-service/internal/account/domain"
	accountrepo "notes-service/internal/account/repository"
	"notes-service/internal/apperr"
	"notes-service/internal/audit"
	"notes-service/internal/platform/locks"
	"notes-service/internal/security"
	"notes-service/internal/store"
	"notes-service/internal/telemetry"
	"notes-service/internal/validate"
)

// UpdateParams carries the profile fields to change. Empty fields are left
// unchanged.
type UpdateParams struct {
	FullName    string
	PhoneNumber string
	Email       string
	Password    string
}

// AccountService implements account reads, updates, and deletion. Deletion
// removes the account and all its notes in one transaction, serialized per
// account against concurrent note creation.
type AccountService struct {
	stores  store.Stores
	locks   *locks.KeyedMutex
	hasher  *security.Hasher
	auditor audit.AuditLogger
	emitter telemetry.EventEmitter
}

// NewAccountService returns an AccountService with the given dependencies.
// auditor and emitter may be nil; then those concerns are skipped.
func NewAccountService(
	stores store.Stores,
	km *locks.KeyedMutex,
	hasher *security.Hasher,
	auditor audit.AuditLogger,
	emitter telemetry.EventEmitter,
) *AccountService {
	return &AccountService{
		stores:  stores,
		locks:   km,
		hasher:  hasher,
		auditor: auditor,
		emitter: emitter,
	}
}

// Get returns the account for accountID with the password hash blanked.
func (s *AccountService) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return nil, apperr.Validationf("invalid account id")
	}
	account, err := s.stores.Accounts().GetByID(ctx, accountID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if account == nil {
		return nil, apperr.ErrNotFound
	}
	return account.Sanitized(), nil
}

// Update changes the provided profile fields. A changed email or phone number
// is validated and re-checked for uniqueness; a provided password is
// re-hashed. Returns the updated account with the password hash blanked.
func (s *AccountService) Update(ctx context.Context, accountID string, p UpdateParams) (*domain.Account, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return nil, apperr.Validationf("invalid account id")
	}
	accounts := s.stores.Accounts()
	account, err := accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if account == nil {
		return nil, apperr.ErrNotFound
	}

	if name := strings.TrimSpace(p.FullName); name != "" {
		if err := validate.FullName(name); err != nil {
			return nil, err
		}
		account.FullName = name
	}
	if phone := strings.TrimSpace(p.PhoneNumber); phone != "" && phone != account.PhoneNumber {
		if err := validate.PhoneNumber(phone); err != nil {
			return nil, err
		}
		other, err := accounts.GetByPhone(ctx, phone)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if other != nil && other.ID != account.ID {
			return nil, apperr.Conflictf("phone number already registered")
		}
		account.PhoneNumber = phone
	}
	if email := strings.TrimSpace(p.Email); email != "" && !strings.EqualFold(email, account.Email) {
		if err := validate.Email(email); err != nil {
			return nil, err
		}
		other, err := accounts.GetByEmail(ctx, email)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if other != nil && other.ID != account.ID {
			return nil, apperr.Conflictf("email already registered")
		}
		account.Email = email
	}
	if p.Password != "" {
		if err := validate.Password(p.Password); err != nil {
			return nil, err
		}
		hashed, err := s.hasher.Hash([]byte(p.Password))
		if err != nil {
			return nil, apperr.Internal(err)
		}
		account.PasswordHash = hashed
	}
	account.UpdatedAt = time.Now().UTC()

	if err := accounts.Update(ctx, account); err != nil {
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
		s.auditor.LogEvent(ctx, accountID, "update", "account", "")
	}
	telemetry.EmitAsync(s.emitter, ctx, telemetry.NewEvent(accountID, "account_updated", nil))
	return account.Sanitized(), nil
}

// Delete removes the account and every note it owns in a single transaction,
// so no orphaned note can survive. The per-account lock keeps a concurrent
// note creation from racing the sweep. Returns the number of notes removed.
func (s *AccountService) Delete(ctx context.Context, accountID string) (notesDeleted int64, err error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return 0, apperr.Validationf("invalid account id")
	}
	if s.locks != nil {
		s.locks.Lock(accountID)
		defer s.locks.Unlock(accountID)
	}

	err = s.stores.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		exists, err := st.Accounts().ExistsByID(ctx, accountID)
		if err != nil {
			return apperr.Internal(err)
		}
		if !exists {
			return apperr.ErrNotFound
		}
		notesDeleted, err = st.Notes().DeleteByAuthor(ctx, accountID)
		if err != nil {
			return apperr.Internal(err)
		}
		if err := st.Accounts().Delete(ctx, accountID); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	meta := fmt.Sprintf("notes_deleted=%d", notesDeleted)
	if s.auditor != nil {
		s.auditor.LogEvent(ctx, accountID, "delete", "account", meta)
	}
	telemetry.EmitAsync(s.emitter, ctx, telemetry.NewEvent(accountID, "account_deleted", map[string]string{
		"notesDeleted": fmt.Sprintf("%d", notesDeleted),
	}))
	return notesDeleted, nil
}
