// Package handler exposes the account HTTP endpoints.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"notes-service/internal/account/domain"
	accountservice "notes-service/internal/account/service"
	"notes-service/internal/apperr"
	authservice "notes-service/internal/auth/service"
	"notes-service/internal/server/middleware"
	"notes-service/internal/server/respond"
)

// AuthService is the auth surface the account handler needs.
type AuthService interface {
	Register(ctx context.Context, fullName, phoneNumber, email, password string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*authservice.LoginResult, error)
	Resolve(ctx context.Context, token string) (*domain.Account, error)
	Logout(ctx context.Context, accountID string)
}

// AccountService is the profile surface the account handler needs.
type AccountService interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	Update(ctx context.Context, accountID string, p accountservice.UpdateParams) (*domain.Account, error)
	Delete(ctx context.Context, accountID string) (int64, error)
}

// AccountHandler serves /api/users.
type AccountHandler struct {
	auth         AuthService
	accounts     AccountService
	cookieSecure bool
}

// NewAccountHandler returns an AccountHandler over the given services.
// cookieSecure marks the session cookie Secure; enable behind TLS.
func NewAccountHandler(auth AuthService, accounts AccountService, cookieSecure bool) *AccountHandler {
	return &AccountHandler{auth: auth, accounts: accounts, cookieSecure: cookieSecure}
}

type registerRequest struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateRequest struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type accountResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:          a.ID,
		FullName:    a.FullName,
		PhoneNumber: a.PhoneNumber,
		Email:       a.Email,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// Register handles POST /api/users/register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Err(w, apperr.Validationf("invalid request body"))
		return
	}
	account, err := h.auth.Register(r.Context(), req.FullName, req.PhoneNumber, req.Email, req.Password)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "account created successfully",
		"user":    toAccountResponse(account),
	})
}

// Login handles POST /api/users/login. On success the session token is set as
// an HttpOnly cookie and also returned in the body for non-browser clients.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Err(w, apperr.Validationf("invalid request body"))
		return
	}
	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Err(w, err)
		return
	}
	h.setSessionCookie(w, res.Token, res.ExpiresAt)
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "logged in successfully",
		"token":   res.Token,
		"user":    toAccountResponse(res.Account),
	})
}

// Me handles GET /api/users/me for the authenticated account.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Get(r.Context(), middleware.AccountIDFrom(r.Context()))
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    toAccountResponse(account),
	})
}

// Update handles PUT /api/users/update for the authenticated account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Err(w, apperr.Validationf("invalid request body"))
		return
	}
	account, err := h.accounts.Update(r.Context(), middleware.AccountIDFrom(r.Context()), accountservice.UpdateParams{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "account updated successfully",
		"user":    toAccountResponse(account),
	})
}

// Logout handles POST /api/users/logout. It clears the session cookie and
// succeeds whether or not the request carried a valid token; tokens are
// stateless and simply age out.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookieName); err == nil && c.Value != "" {
		if account, err := h.auth.Resolve(r.Context(), c.Value); err == nil {
			h.auth.Logout(r.Context(), account.ID)
		}
	}
	h.clearSessionCookie(w)
	respond.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "logged out successfully",
	})
}

// Delete handles DELETE /api/users/delete. The account and every note it owns
// are removed together; the session cookie is cleared afterward.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	notesDeleted, err := h.accounts.Delete(r.Context(), middleware.AccountIDFrom(r.Context()))
	if err != nil {
		respond.Err(w, err)
		return
	}
	h.clearSessionCookie(w)
	respond.JSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"message":      "account and associated notes deleted successfully",
		"notesDeleted": notesDeleted,
	})
}

func (h *AccountHandler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AccountHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
