package http

import (
	"net"
	"net/http"
	"strings"

	"unistay-backend/internal/logger"
	"unistay-backend/internal/security"
)

const accessTokenCookie = "access_token"

// AuthMiddleware validates the access token (Authorization header or
// cookie) and installs the RequestContext for downstream handlers.
// Requests without a valid token are rejected before any handler runs.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				if c, err := r.Cookie(accessTokenCookie); err == nil {
					tokenString = c.Value
				}
			}
			if tokenString == "" {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(tokenString)
			if err != nil {
				logger.Debug("Token validation failed", "error", err)
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}

			rc := &RequestContext{
				UserID:    claims.UserID,
				Role:      claims.Role,
				CSRFToken: claims.CSRFToken,
				IP:        clientIP(r),
			}
			next.ServeHTTP(w, r.WithContext(WithRequestContext(r.Context(), rc)))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
