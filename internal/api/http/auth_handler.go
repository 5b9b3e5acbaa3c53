package http

import (
	"net/http"
	"time"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	user, err := h.authSvc.Register(r.Context(),
		domain.UserRole(r.FormValue("role")),
		r.FormValue("name"),
		r.FormValue("email"),
		r.FormValue("phone"),
		r.FormValue("password"),
	)
	if err != nil {
		writeWorkflowError(w, err, "Error registering user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	user, accessToken, csrfToken, err := h.authSvc.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}

	// The access token cookie backs the form flows; API clients may use the
	// Authorization header instead. The CSRF token is readable by the page
	// so forms can echo it back.
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "csrf_token",
		Value:    csrfToken,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":         user,
		"access_token": accessToken,
		"csrf_token":   csrfToken,
	})
}
