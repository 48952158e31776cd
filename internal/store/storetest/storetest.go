// Package storetest provides in-memory repositories and a Stores
// implementation for unit tests only. Callers must not use in production.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	accountdomain "notes-service/internal/account/domain"
	accountrepo "notes-service/internal/account/repository"
	auditdomain "notes-service/internal/audit/domain"
	auditrepo "notes-service/internal/audit/repository"
	notedomain "notes-service/internal/note/domain"
	noterepo "notes-service/internal/note/repository"
	"notes-service/internal/store"
)

// MemAccounts is an in-memory account repository.
type MemAccounts struct {
	mu sync.Mutex
	m  map[string]*accountdomain.Account
}

// NewMemAccounts returns an empty in-memory account repository.
func NewMemAccounts() *MemAccounts {
	return &MemAccounts{m: make(map[string]*accountdomain.Account)}
}

func (r *MemAccounts) GetByID(ctx context.Context, id string) (*accountdomain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.m[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, nil
}

func (r *MemAccounts) GetByEmail(ctx context.Context, email string) (*accountdomain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.m {
		if strings.EqualFold(a.Email, email) {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MemAccounts) GetByPhone(ctx context.Context, phone string) (*accountdomain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.m {
		if a.PhoneNumber == phone {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MemAccounts) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.m[id]
	return ok, nil
}

func (r *MemAccounts) Create(ctx context.Context, a *accountdomain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.m {
		if strings.EqualFold(existing.Email, a.Email) {
			return accountrepo.ErrDuplicateEmail
		}
		if existing.PhoneNumber == a.PhoneNumber {
			return accountrepo.ErrDuplicatePhone
		}
	}
	c := *a
	r.m[a.ID] = &c
	return nil
}

func (r *MemAccounts) Update(ctx context.Context, a *accountdomain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.m {
		if id == a.ID {
			continue
		}
		if strings.EqualFold(existing.Email, a.Email) {
			return accountrepo.ErrDuplicateEmail
		}
		if existing.PhoneNumber == a.PhoneNumber {
			return accountrepo.ErrDuplicatePhone
		}
	}
	c := *a
	r.m[a.ID] = &c
	return nil
}

func (r *MemAccounts) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
	return nil
}

// MemNotes is an in-memory note repository.
type MemNotes struct {
	mu sync.Mutex
	m  map[string]*notedomain.Note
}

// NewMemNotes returns an empty in-memory note repository.
func NewMemNotes() *MemNotes {
	return &MemNotes{m: make(map[string]*notedomain.Note)}
}

func (r *MemNotes) GetByID(ctx context.Context, id string) (*notedomain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.m[id]; ok {
		c := *n
		return &c, nil
	}
	return nil, nil
}

func (r *MemNotes) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.m[id]
	return ok, nil
}

func (r *MemNotes) ListByAuthor(ctx context.Context, authorID string) ([]*notedomain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*notedomain.Note
	for _, n := range r.m {
		if n.AuthorID == authorID {
			c := *n
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemNotes) Create(ctx context.Context, n *notedomain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *n
	r.m[n.ID] = &c
	return nil
}

func (r *MemNotes) Update(ctx context.Context, n *notedomain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *n
	r.m[n.ID] = &c
	return nil
}

func (r *MemNotes) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
	return nil
}

func (r *MemNotes) DeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for id, n := range r.m {
		if n.AuthorID == authorID {
			delete(r.m, id)
			count++
		}
	}
	return count, nil
}

// MemAudit is an in-memory audit log repository.
type MemAudit struct {
	mu      sync.Mutex
	Entries []*auditdomain.AuditLog
}

// NewMemAudit returns an empty in-memory audit log repository.
func NewMemAudit() *MemAudit {
	return &MemAudit{}
}

func (r *MemAudit) Create(ctx context.Context, a *auditdomain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *a
	r.Entries = append(r.Entries, &c)
	return nil
}

func (r *MemAudit) ListByAccount(ctx context.Context, accountID string, limit, offset int32) ([]*auditdomain.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*auditdomain.AuditLog
	for _, e := range r.Entries {
		if e.AccountID == accountID {
			c := *e
			out = append(out, &c)
		}
	}
	return out, nil
}

// MemStores implements store.Stores over the in-memory repositories. InTx
// simply runs fn against the same repositories; there is no rollback.
type MemStores struct {
	AccountsRepo *MemAccounts
	NotesRepo    *MemNotes
	AuditRepo    *MemAudit
}

// NewMemStores returns a MemStores with fresh empty repositories.
func NewMemStores() *MemStores {
	return &MemStores{
		AccountsRepo: NewMemAccounts(),
		NotesRepo:    NewMemNotes(),
		AuditRepo:    NewMemAudit(),
	}
}

func (s *MemStores) Accounts() accountrepo.Repository { return s.AccountsRepo }
func (s *MemStores) Notes() noterepo.Repository       { return s.NotesRepo }
func (s *MemStores) Audit() auditrepo.Repository      { return s.AuditRepo }

func (s *MemStores) InTx(ctx context.Context, fn func(ctx context.Context, st store.Stores) error) error {
	return fn(ctx, s)
}
