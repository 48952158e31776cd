// Package server assembles the HTTP routes and middleware chain.
package server

import (
	"context"
	"net/http"
	"time"

	accounthandler "notes-service/internal/account/handler"
	audithandler "notes-service/internal/audit/handler"
	auditrepo "notes-service/internal/audit/repository"
	healthhandler "notes-service/internal/health/handler"
	notehandler "notes-service/internal/note/handler"
	"notes-service/internal/server/middleware"
)

// Deps holds the service dependencies for the HTTP handlers.
type Deps struct {
	// Auth serves register/login/logout and resolves session tokens for the
	// auth middleware.
	Auth accounthandler.AuthService
	// Accounts serves profile reads, updates, and account deletion.
	Accounts accounthandler.AccountService
	// Notes serves the note CRUD operations.
	Notes notehandler.NoteService
	// AuditRepo backs the audit log read endpoint. If nil, the route is not
	// registered.
	AuditRepo auditrepo.Repository
	// HealthPinger is used by /healthz for readiness (e.g. *sql.DB). If nil,
	// only liveness is reported.
	HealthPinger healthhandler.Pinger
	// RequestTimeout bounds each request's context. Zero disables the bound.
	RequestTimeout time.Duration
	// CookieSecure marks the session cookie Secure; enable behind TLS.
	CookieSecure bool
}

// NewRouter builds the route table.
//
// Route → handler mapping:
//   - /api/users/*  → internal/account/handler
//   - /api/notes/*  → internal/note/handler
//   - /healthz      → internal/health/handler
//
// Every /api/notes route and the authenticated /api/users routes sit behind
// RequireAuth; register, login, logout, and healthz do not.
func NewRouter(deps Deps) http.Handler {
	accountH := accounthandler.NewAccountHandler(deps.Auth, deps.Accounts, deps.CookieSecure)
	noteH := notehandler.NewNoteHandler(deps.Notes)
	healthH := healthhandler.NewHealthHandler(deps.HealthPinger)
	requireAuth := middleware.RequireAuth(deps.Auth)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/register", accountH.Register)
	mux.HandleFunc("POST /api/users/login", accountH.Login)
	mux.HandleFunc("POST /api/users/logout", accountH.Logout)
	mux.Handle("GET /api/users/me", requireAuth(http.HandlerFunc(accountH.Me)))
	mux.Handle("PUT /api/users/update", requireAuth(http.HandlerFunc(accountH.Update)))
	mux.Handle("DELETE /api/users/delete", requireAuth(http.HandlerFunc(accountH.Delete)))
	if deps.AuditRepo != nil {
		auditH := audithandler.NewAuditHandler(deps.AuditRepo)
		mux.Handle("GET /api/users/audit-logs", requireAuth(http.HandlerFunc(auditH.List)))
	}

	mux.Handle("POST /api/notes/create-note", requireAuth(http.HandlerFunc(noteH.Create)))
	mux.Handle("GET /api/notes/get-all", requireAuth(http.HandlerFunc(noteH.List)))
	mux.Handle("PUT /api/notes/update/{id}", requireAuth(http.HandlerFunc(noteH.Update)))
	mux.Handle("DELETE /api/notes/delete/{id}", requireAuth(http.HandlerFunc(noteH.Delete)))

	mux.HandleFunc("GET /healthz", healthH.Check)

	var handler http.Handler = middleware.ClientIP(mux)
	if deps.RequestTimeout > 0 {
		handler = withRequestTimeout(handler, deps.RequestTimeout)
	}
	return handler
}

// withRequestTimeout bounds the request context so a stalled database call
// cannot hold a connection open indefinitely.
func withRequestTimeout(next http.Handler, d time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
