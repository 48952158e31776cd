// Package handler exposes the note HTTP endpoints.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"notes-service/internal/apperr"
	"notes-service/internal/note/domain"
	"notes-service/internal/server/middleware"
	"notes-service/internal/server/respond"
)

// NoteService is the note surface the handler needs.
type NoteService interface {
	Create(ctx context.Context, authorID, title, content string) (*domain.Note, error)
	List(ctx context.Context, authorID string) ([]*domain.Note, error)
	Update(ctx context.Context, authorID, noteID, title, content string) (*domain.Note, error)
	Delete(ctx context.Context, authorID, noteID string) error
}

// NoteHandler serves /api/notes. Every route sits behind RequireAuth.
type NoteHandler struct {
	notes NoteService
}

// NewNoteHandler returns a NoteHandler over the given service.
func NewNoteHandler(notes NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		AuthorID:  n.AuthorID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// Create handles POST /api/notes/create-note.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Err(w, apperr.Validationf("invalid request body"))
		return
	}
	note, err := h.notes.Create(r.Context(), middleware.AccountIDFrom(r.Context()), req.Title, req.Content)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    toNoteResponse(note),
	})
}

// List handles GET /api/notes/get-all. Only the caller's own notes are
// returned.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.List(r.Context(), middleware.AccountIDFrom(r.Context()))
	if err != nil {
		respond.Err(w, err)
		return
	}
	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    out,
	})
}

// Update handles PUT /api/notes/update/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Err(w, apperr.Validationf("invalid request body"))
		return
	}
	note, err := h.notes.Update(r.Context(), middleware.AccountIDFrom(r.Context()), r.PathValue("id"), req.Title, req.Content)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "note updated successfully",
		"data":    toNoteResponse(note),
	})
}

// Delete handles DELETE /api/notes/delete/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.Delete(r.Context(), middleware.AccountIDFrom(r.Context()), r.PathValue("id")); err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "note deleted successfully",
	})
}
