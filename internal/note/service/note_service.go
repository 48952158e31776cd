// Package service implements note creation, listing, updates, and deletion
// with per-owner authorization.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"notes-service/internal/apperr"
	"notes-service/internal/audit"
	"notes-service/internal/note/domain"
	"notes-service/internal/platform/locks"
	"notes-service/internal/store"
	"notes-service/internal/telemetry"
)

// NoteService implements the note operations. Every operation takes the
// authenticated account id; reads are scoped to it and writes require it to
// match the note's author.
type NoteService struct {
	stores  store.Stores
	locks   *locks.KeyedMutex
	auditor audit.AuditLogger
	emitter telemetry.EventEmitter
}

// NewNoteService returns a NoteService with the given dependencies.
// auditor and emitter may be nil; then those concerns are skipped.
func NewNoteService(
	stores store.Stores,
	km *locks.KeyedMutex,
	auditor audit.AuditLogger,
	emitter telemetry.EventEmitter,
) *NoteService {
	return &NoteService{
		stores:  stores,
		locks:   km,
		auditor: auditor,
		emitter: emitter,
	}
}

// Create stores a new note owned by authorID. The per-account lock keeps the
// insert from racing a concurrent deletion of the same account; if the
// account is already gone the caller's session is no longer valid.
func (s *NoteService) Create(ctx context.Context, authorID, title, content string) (*domain.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.Validationf("title is required")
	}
	if s.locks != nil {
		s.locks.Lock(authorID)
		defer s.locks.Unlock(authorID)
	}
	exists, err := s.stores.Accounts().ExistsByID(ctx, authorID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !exists {
		return nil, apperr.ErrUnauthenticated
	}

	now := time.Now().UTC()
	note := &domain.Note{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := note.Validate(); err != nil {
		return nil, apperr.Validationf("%s", err.Error())
	}
	if err := s.stores.Notes().Create(ctx, note); err != nil {
		return nil, apperr.Internal(err)
	}

	if s.auditor != nil {
		s.auditor.LogEvent(ctx, authorID, "create", "note", note.ID)
	}
	telemetry.EmitAsync(s.emitter, ctx, telemetry.NewEvent(authorID, "note_created", map[string]string{"noteId": note.ID}))
	return note, nil
}

// List returns the caller's notes, newest first. Other accounts' notes are
// never included.
func (s *NoteService) List(ctx context.Context, authorID string) ([]*domain.Note, error) {
	notes, err := s.stores.Notes().ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return notes, nil
}

// Update changes the title and/or content of the caller's note. Empty fields
// are left unchanged. A note owned by someone else returns ErrForbidden, not
// ErrNotFound, so the existing id is acknowledged but the write refused.
func (s *NoteService) Update(ctx context.Context, authorID, noteID, title, content string) (*domain.Note, error) {
	note, err := s.authorize(ctx, authorID, noteID)
	if err != nil {
		return nil, err
	}

	if t := strings.TrimSpace(title); t != "" {
		note.Title = t
	}
	if content != "" {
		note.Content = content
	}
	note.UpdatedAt = time.Now().UTC()
	if err := s.stores.Notes().Update(ctx, note); err != nil {
		return nil, apperr.Internal(err)
	}

	if s.auditor != nil {
		s.auditor.LogEvent(ctx, authorID, "update", "note", note.ID)
	}
	telemetry.EmitAsync(s.emitter, ctx, telemetry.NewEvent(authorID, "note_updated", map[string]string{"noteId": note.ID}))
	return note, nil
}

// Delete removes the caller's note. Ownership is checked the same way as
// Update.
func (s *NoteService) Delete(ctx context.Context, authorID, noteID string) error {
	note, err := s.authorize(ctx, authorID, noteID)
	if err != nil {
		return err
	}
	if err := s.stores.Notes().Delete(ctx, note.ID); err != nil {
		return apperr.Internal(err)
	}

	if s.auditor != nil {
		s.auditor.LogEvent(ctx, authorID, "delete", "note", note.ID)
	}
	telemetry.EmitAsync(s.emitter, ctx, telemetry.NewEvent(authorID, "note_deleted", map[string]string{"noteId": note.ID}))
	return nil
}

// authorize loads the note and checks ownership. The id is checked for
// well-formedness before any lookup, so a malformed id is a validation
// failure rather than a not-found.
func (s *NoteService) authorize(ctx context.Context, authorID, noteID string) (*domain.Note, error) {
	if _, err := uuid.Parse(noteID); err != nil {
		return nil, apperr.Validationf("invalid note id")
	}
	note, err := s.stores.Notes().GetByID(ctx, noteID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if note == nil {
		return nil, apperr.ErrNotFound
	}
	if note.AuthorID != authorID {
		return nil, apperr.ErrForbidden
	}
	return note, nil
}
