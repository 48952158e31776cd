package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"notes-service/internal/db"
	"notes-service/internal/note/domain"
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a note repository bound to the given handle.
// Pass a *sql.Tx to participate in a transaction.
func NewPostgresRepository(dbtx db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: dbtx}
}

// GetByID returns the note for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	n := &domain.Note{}
	query := `SELECT id, title, content, author_id, created_at, updated_at FROM notes WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.Title, &n.Content, &n.AuthorID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query note %q: %w", id, err)
	}
	return n, nil
}

// ExistsByID reports whether a note with id exists.
func (r *PostgresRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM notes WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("note exists %q: %w", id, err)
	}
	return exists, nil
}

// ListByAuthor returns the author's notes, newest first.
func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Note, error) {
	queryBuilder := squirrel.
		Select("id", "title", "content", "author_id", "created_at", "updated_at").
		From("notes").
		Where(squirrel.Eq{"author_id": authorID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notes query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes for author %q: %w", authorID, err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		n := &domain.Note{}
		if err = rows.Scan(&n.ID, &n.Title, &n.Content, &n.AuthorID, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Create persists the note. The note must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, n *domain.Note) error {
	query := `
		INSERT INTO notes (id, title, content, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query,
		n.ID, n.Title, n.Content, n.AuthorID, n.CreatedAt, n.UpdatedAt); err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

// Update persists title/content changes.
func (r *PostgresRepository) Update(ctx context.Context, n *domain.Note) error {
	query := `UPDATE notes SET title = $2, content = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, n.ID, n.Title, n.Content, n.UpdatedAt); err != nil {
		return fmt.Errorf("update note %q: %w", n.ID, err)
	}
	return nil
}

// Delete removes the note row. Missing rows are not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete note %q: %w", id, err)
	}
	return nil
}

// DeleteByAuthor removes every note owned by authorID.
func (r *PostgresRepository) DeleteByAuthor(ctx context.Context, authorID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE author_id = $1`, authorID)
	if err != nil {
		return 0, fmt.Errorf("delete notes for author %q: %w", authorID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete notes for author %q: %w", authorID, err)
	}
	return n, nil
}
