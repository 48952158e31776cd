package domain

import "time"

// AuditLog is one recorded security-relevant event (login, registration,
// account deletion, note mutation).
type AuditLog struct {
	ID        string
	AccountID string // SentinelAccountID when the actor is unknown (e.g. failed login)
	Action    string
	Resource  string
	IP        string
	Metadata  string
	CreatedAt time.Time
}
