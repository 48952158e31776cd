// Package middleware carries request identity and client metadata through the
// handler chain.
package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	accountdomain "notes-service/internal/account/domain"
)

type contextKey int

const (
	accountKey contextKey = iota
	clientIPKey
)

// WithAccount returns a context carrying the authenticated account.
func WithAccount(ctx context.Context, a *accountdomain.Account) context.Context {
	return context.WithValue(ctx, accountKey, a)
}

// AccountFrom returns the authenticated account set by RequireAuth, or ok
// false if the request was not authenticated.
func AccountFrom(ctx context.Context) (*accountdomain.Account, bool) {
	a, ok := ctx.Value(accountKey).(*accountdomain.Account)
	return a, ok && a != nil
}

// AccountIDFrom returns the authenticated account id, or "" if absent.
func AccountIDFrom(ctx context.Context) string {
	if a, ok := AccountFrom(ctx); ok {
		return a.ID
	}
	return ""
}

// WithClientIP returns a context carrying the client IP.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIPFrom returns the client IP stored by ClientIP, or "" if absent.
// Satisfies audit.IPExtractor.
func ClientIPFrom(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey).(string)
	return ip
}

// ClientIP stores the request's client IP in the context for downstream
// audit logging. The first X-Forwarded-For hop wins when present.
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithClientIP(r.Context(), clientIP(r))))
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
