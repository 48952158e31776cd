package repository

import (
	"context"

	"notes-service/internal/audit/domain"
)

// Repository defines persistence for audit logs.
type Repository interface {
	// Create persists the audit log. The entry must have ID set.
	Create(ctx context.Context, a *domain.AuditLog) error
	// ListByAccount returns audit logs for the given account, newest first,
	// paginated by limit and offset.
	ListByAccount(ctx context.Context, accountID string, limit, offset int32) ([]*domain.AuditLog, error)
}
