// Package handler exposes the audit log read endpoint.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"notes-service/internal/apperr"
	"notes-service/internal/audit/domain"
	auditrepo "notes-service/internal/audit/repository"
	"notes-service/internal/server/middleware"
	"notes-service/internal/server/respond"
)

// AuditHandler serves GET /api/users/audit-logs. Accounts can read only their
// own trail.
type AuditHandler struct {
	repo auditrepo.Repository
}

// NewAuditHandler returns an AuditHandler over the given repository.
func NewAuditHandler(repo auditrepo.Repository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

type auditLogResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource"`
	IP        string    `json:"ip"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAuditLogResponse(a *domain.AuditLog) auditLogResponse {
	return auditLogResponse{
		ID:        a.ID,
		Action:    a.Action,
		Resource:  a.Resource,
		IP:        a.IP,
		Metadata:  a.Metadata,
		CreatedAt: a.CreatedAt,
	}
}

// List handles GET /api/users/audit-logs?limit=&offset= for the authenticated
// account.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	if limit < 1 || limit > 500 || offset < 0 {
		respond.Err(w, apperr.Validationf("limit must be 1-500 and offset non-negative"))
		return
	}
	entries, err := h.repo.ListByAccount(r.Context(), middleware.AccountIDFrom(r.Context()), int32(limit), int32(offset))
	if err != nil {
		respond.Err(w, apperr.Internal(err))
		return
	}
	out := make([]auditLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toAuditLogResponse(e))
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    out,
	})
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}
