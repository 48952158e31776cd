package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	accountdomain "notes-service/internal/account/domain"
	"notes-service/internal/apperr"
)

type stubResolver struct {
	account *accountdomain.Account
	token   string
}

func (r *stubResolver) Resolve(ctx context.Context, token string) (*accountdomain.Account, error) {
	if r.account != nil && token == r.token {
		return r.account, nil
	}
	return nil, apperr.ErrUnauthenticated
}

func authedHandler(t *testing.T, wantID string, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if got := AccountIDFrom(r.Context()); got != wantID {
			t.Errorf("account id in context = %q, want %q", got, wantID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthWithCookie(t *testing.T) {
	resolver := &stubResolver{account: &accountdomain.Account{ID: "acct-1"}, token: "good-token"}
	called := false
	h := RequireAuth(resolver)(authedHandler(t, "acct-1", &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler was not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRequireAuthWithBearerFallback(t *testing.T) {
	resolver := &stubResolver{account: &accountdomain.Account{ID: "acct-1"}, token: "good-token"}
	called := false
	h := RequireAuth(resolver)(authedHandler(t, "acct-1", &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler was not called")
	}
}

func TestRequireAuthRejections(t *testing.T) {
	resolver := &stubResolver{account: &accountdomain.Account{ID: "acct-1"}, token: "good-token"}
	cases := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"no token", func(r *http.Request) {}},
		{"bad cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
		}},
		{"bad bearer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer forged")
		}},
		{"non-bearer scheme", func(r *http.Request) {
			r.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			h := RequireAuth(resolver)(authedHandler(t, "acct-1", &called))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.setup(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if called {
				t.Fatal("handler was called without valid auth")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	var got string
	h := ClientIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ClientIPFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:12345"
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "10.0.0.5" {
		t.Fatalf("ip = %q, want 10.0.0.5", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "203.0.113.9" {
		t.Fatalf("ip = %q, want first forwarded hop", got)
	}
}
