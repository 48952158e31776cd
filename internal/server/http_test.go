package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	accountservice "notes-service/internal/account/service"
	"notes-service/internal/audit"
	authservice "notes-service/internal/auth/service"
	noteservice "notes-service/internal/note/service"
	"notes-service/internal/platform/locks"
	"notes-service/internal/security"
	"notes-service/internal/server/middleware"
	"notes-service/internal/store/storetest"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	stores := storetest.NewMemStores()
	hasher := security.NewHasher(4) // bcrypt.MinCost keeps the tests fast
	tokens := security.NewTokenCodec([]byte("test-secret"), "test-issuer", time.Hour)
	km := locks.NewKeyedMutex()
	auditor := audit.NewLogger(stores.AuditRepo, middleware.ClientIPFrom)
	return NewRouter(Deps{
		Auth:      authservice.NewAuthService(stores.AccountsRepo, hasher, tokens, auditor, nil),
		Accounts:  accountservice.NewAccountService(stores, km, hasher, auditor, nil),
		Notes:     noteservice.NewNoteService(stores, km, auditor, nil),
		AuditRepo: stores.AuditRepo,
	})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func registerAndLogin(t *testing.T, h http.Handler, email, phone string) []*http.Cookie {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/users/register", map[string]string{
		"fullName":    "Jane Doe",
		"phoneNumber": phone,
		"email":       email,
		"password":    "Passw0rd!",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, h, http.MethodPost, "/api/users/login", map[string]string{
		"email":    email,
		"password": "Passw0rd!",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	for _, c := range cookies {
		if c.Name == middleware.SessionCookieName {
			if !c.HttpOnly {
				t.Error("session cookie is not HttpOnly")
			}
			return cookies
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestRegisterLoginAndMe(t *testing.T) {
	h := newTestRouter(t)
	cookies := registerAndLogin(t, h, "jane@example.com", "5551234567")

	rec := doJSON(t, h, http.MethodGet, "/api/users/me", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	user, _ := body["user"].(map[string]any)
	if user["email"] != "jane@example.com" {
		t.Fatalf("me email = %v", user["email"])
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatal("password hash leaked in response")
	}
}

func TestDuplicateRegisterConflicts(t *testing.T) {
	h := newTestRouter(t)
	registerAndLogin(t, h, "jane@example.com", "5551234567")

	rec := doJSON(t, h, http.MethodPost, "/api/users/register", map[string]string{
		"fullName":    "Jane Clone",
		"phoneNumber": "5559876543",
		"email":       "JANE@example.com",
		"password":    "Passw0rd!",
	}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestNotesRequireAuth(t *testing.T) {
	h := newTestRouter(t)
	rec := doJSON(t, h, http.MethodGet, "/api/notes/get-all", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/notes/create-note", map[string]string{"title": "t"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestNoteCRUDFlow(t *testing.T) {
	h := newTestRouter(t)
	cookies := registerAndLogin(t, h, "jane@example.com", "5551234567")

	rec := doJSON(t, h, http.MethodPost, "/api/notes/create-note", map[string]string{
		"title":   "groceries",
		"content": "milk",
	}, cookies)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	data, _ := decodeBody(t, rec)["data"].(map[string]any)
	noteID, _ := data["id"].(string)
	if noteID == "" {
		t.Fatal("created note has no id")
	}

	rec = doJSON(t, h, http.MethodPut, "/api/notes/update/"+noteID, map[string]string{"content": "milk, eggs"}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/notes/get-all", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	list, _ := decodeBody(t, rec)["data"].([]any)
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1", len(list))
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/notes/delete/"+noteID, nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodDelete, "/api/notes/delete/"+noteID, nil, cookies)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestCrossAccountNoteAccessIsForbidden(t *testing.T) {
	h := newTestRouter(t)
	owner := registerAndLogin(t, h, "jane@example.com", "5551234567")
	intruder := registerAndLogin(t, h, "mallory@example.com", "5559876543")

	rec := doJSON(t, h, http.MethodPost, "/api/notes/create-note", map[string]string{"title": "private"}, owner)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	data, _ := decodeBody(t, rec)["data"].(map[string]any)
	noteID := data["id"].(string)

	rec = doJSON(t, h, http.MethodPut, "/api/notes/update/"+noteID, map[string]string{"title": "stolen"}, intruder)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("cross-account update status = %d, want 403", rec.Code)
	}
	rec = doJSON(t, h, http.MethodDelete, "/api/notes/delete/"+noteID, nil, intruder)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("cross-account delete status = %d, want 403", rec.Code)
	}
	// the intruder's listing must not include the owner's note either
	rec = doJSON(t, h, http.MethodGet, "/api/notes/get-all", nil, intruder)
	if list, _ := decodeBody(t, rec)["data"].([]any); len(list) != 0 {
		t.Fatalf("intruder sees %d notes, want 0", len(list))
	}
}

func TestMalformedNoteIDIsBadRequest(t *testing.T) {
	h := newTestRouter(t)
	cookies := registerAndLogin(t, h, "jane@example.com", "5551234567")

	rec := doJSON(t, h, http.MethodPut, "/api/notes/update/not-a-uuid", map[string]string{"title": "t"}, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAccountDeleteCascadesAndInvalidatesSession(t *testing.T) {
	h := newTestRouter(t)
	cookies := registerAndLogin(t, h, "jane@example.com", "5551234567")

	for _, title := range []string{"one", "two"} {
		rec := doJSON(t, h, http.MethodPost, "/api/notes/create-note", map[string]string{"title": title}, cookies)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d", rec.Code)
		}
	}

	rec := doJSON(t, h, http.MethodDelete, "/api/users/delete", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete account status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody(t, rec)["notesDeleted"]; got != float64(2) {
		t.Fatalf("notesDeleted = %v, want 2", got)
	}

	// the old session token now points at a deleted account
	rec = doJSON(t, h, http.MethodGet, "/api/users/me", nil, cookies)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me after delete status = %d, want 401", rec.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := newTestRouter(t)
	cookies := registerAndLogin(t, h, "jane@example.com", "5551234567")

	rec := doJSON(t, h, http.MethodPost, "/api/users/logout", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.MaxAge >= 0 {
			t.Fatal("logout did not expire the session cookie")
		}
	}
}

func TestUpdateProfile(t *testing.T) {
	h := newTestRouter(t)
	cookies := registerAndLogin(t, h, "jane@example.com", "5551234567")

	rec := doJSON(t, h, http.MethodPut, "/api/users/update", map[string]string{"fullName": "Jane Q. Doe"}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	user, _ := decodeBody(t, rec)["user"].(map[string]any)
	if user["fullName"] != "Jane Q. Doe" {
		t.Fatalf("fullName = %v", user["fullName"])
	}
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuditTrailIsReadableByOwner(t *testing.T) {
	h := newTestRouter(t)
	cookies := registerAndLogin(t, h, "jane@example.com", "5551234567")

	rec := doJSON(t, h, http.MethodPost, "/api/notes/create-note", map[string]string{"title": "t"}, cookies)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/users/audit-logs", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("audit-logs status = %d, body %s", rec.Code, rec.Body.String())
	}
	entries, _ := decodeBody(t, rec)["data"].([]any)
	// register, login_success, and the note create are all recorded
	if len(entries) < 3 {
		t.Fatalf("audit entries = %d, want at least 3", len(entries))
	}

	rec = doJSON(t, h, http.MethodGet, "/api/users/audit-logs", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated audit-logs status = %d, want 401", rec.Code)
	}
}
