package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/security"
)

// The three internal causes collapse to one message so an unauthorized
// caller cannot probe for resource existence.
const msgNotFoundOrProcessed = "not found or already processed"

const flashCookie = "flash"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type listResponse struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
	Page  int32       `json:"page"`
}

// writeWorkflowError maps service errors to the boundary taxonomy: opaque
// not-found, inline validation, CSRF rejection, generic transaction failure.
func writeWorkflowError(w http.ResponseWriter, err error, genericPrefix string) {
	switch {
	case domain.IsNotFoundOrUnauthorized(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": msgNotFoundOrProcessed})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, security.ErrCSRFMismatch):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Invalid CSRF token"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": genericPrefix + ": " + err.Error()})
	}
}

// redirectWithFlash sends the browser back to a listing page with the
// outcome in a short-lived cookie, the way the form flows surface success
// and error messages.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:    flashCookie,
		Value:   url.QueryEscape(kind + "|" + message),
		Path:    "/",
		Expires: time.Now().Add(1 * time.Minute),
	})
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// flashForError picks the flash copy for a failed mutation without leaking
// which of the internal causes fired.
func flashForError(err error, genericPrefix string) string {
	switch {
	case domain.IsNotFoundOrUnauthorized(err):
		return msgNotFoundOrProcessed
	case errors.Is(err, domain.ErrValidation):
		return err.Error()
	case errors.Is(err, security.ErrCSRFMismatch):
		return "Invalid CSRF token"
	default:
		return genericPrefix + ": " + err.Error()
	}
}

func formInt32(r *http.Request, field string) int32 {
	v, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue(field)), 10, 32)
	return int32(v)
}

func formInt64(r *http.Request, field string) int64 {
	v, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue(field)), 10, 64)
	return v
}

func queryPage(r *http.Request) (int32, int32) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32)
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return int32(page), int32(pageSize)
}
