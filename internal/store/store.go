// Package store groups the repositories behind a single handle and lets
// services run several of them inside one database transaction.
package store

import (
	"context"
	"database/sql"

	accountrepo "notes-service/internal/account/repository"
	auditrepo "notes-service/internal/audit/repository"
	"notes-service/internal/db"
	noterepo "notes-service/internal/note/repository"
)

// Stores is the repository access surface services depend on. InTx runs fn
// with a Stores bound to a single transaction; changes commit only if fn
// returns nil.
type Stores interface {
	Accounts() accountrepo.Repository
	Notes() noterepo.Repository
	Audit() auditrepo.Repository
	InTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}

// SQLStore implements Stores over database/sql.
type SQLStore struct {
	conn *sql.DB
	dbtx db.DBTX
}

// New returns a SQLStore over the given connection pool.
func New(conn *sql.DB) *SQLStore {
	return &SQLStore{conn: conn, dbtx: conn}
}

// Accounts returns an account repository bound to the current handle.
func (s *SQLStore) Accounts() accountrepo.Repository {
	return accountrepo.NewPostgresRepository(s.dbtx)
}

// Notes returns a note repository bound to the current handle.
func (s *SQLStore) Notes() noterepo.Repository {
	return noterepo.NewPostgresRepository(s.dbtx)
}

// Audit returns an audit log repository bound to the current handle.
func (s *SQLStore) Audit() auditrepo.Repository {
	return auditrepo.NewPostgresRepository(s.dbtx)
}

// InTx runs fn with a Stores whose repositories share one transaction.
// Nested InTx calls run in the already-open transaction.
func (s *SQLStore) InTx(ctx context.Context, fn func(ctx context.Context, st Stores) error) error {
	if _, alreadyTx := s.dbtx.(*sql.Tx); alreadyTx {
		return fn(ctx, s)
	}
	return db.WithTx(ctx, s.conn, nil, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &SQLStore{conn: s.conn, dbtx: tx})
	})
}
