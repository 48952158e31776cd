// Package respond writes the JSON envelope used by every handler and maps
// service errors to HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"strings"

	"notes-service/internal/apperr"
)

// JSON writes payload as JSON with the given status code.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode: %v", err)
	}
}

// Err maps err to a status code and writes {"success":false,"error":...}.
// Internal errors are logged with their cause; the client sees only a generic
// message.
func Err(w http.ResponseWriter, err error) {
	status, message := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status, message = http.StatusBadRequest, clientMessage(err, apperr.ErrValidation)
	case errors.Is(err, apperr.ErrUnauthenticated):
		status, message = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, apperr.ErrForbidden):
		status, message = http.StatusForbidden, "forbidden"
	case errors.Is(err, apperr.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, apperr.ErrConflict):
		status, message = http.StatusConflict, clientMessage(err, apperr.ErrConflict)
	default:
		log.Printf("respond: internal error: %v", err)
	}
	JSON(w, status, map[string]any{"success": false, "error": message})
}

// clientMessage returns the detail wrapped around sentinel, or the sentinel
// text itself when there is none.
func clientMessage(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}
