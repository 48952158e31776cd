package middleware

import (
	"context"
	"net/http"
	"strings"

	accountdomain "notes-service/internal/account/domain"
	"notes-service/internal/apperr"
	"notes-service/internal/server/respond"
)

// SessionCookieName is the cookie the login handler sets and RequireAuth
// reads.
const SessionCookieName = "token"

// Resolver turns a session token into the account it names. Every failure
// mode (missing, malformed, forged, expired, deleted account) must surface as
// the same unauthenticated error.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*accountdomain.Account, error)
}

// RequireAuth rejects requests without a valid session token and puts the
// resolved account into the request context. The token is read from the
// session cookie, with an Authorization: Bearer fallback for non-browser
// clients.
func RequireAuth(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			account, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				respond.Err(w, err)
				return
			}
			if account == nil {
				respond.Err(w, apperr.ErrUnauthenticated)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), account)))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
