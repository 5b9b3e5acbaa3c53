package http

import (
	"context"

	"unistay-backend/internal/domain"
)

// RequestContext is the explicit per-request identity passed to every
// handler: who is calling, what they may do and the CSRF token bound to
// their session. It is populated once by the auth middleware.
type RequestContext struct {
	UserID    int32
	Role      domain.UserRole
	CSRFToken string
	IP        string
}

type contextKey struct{}

// WithRequestContext attaches rc to ctx.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// FromContext returns the RequestContext placed by the auth middleware, or
// nil on unauthenticated requests.
func FromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(contextKey{}).(*RequestContext)
	return rc
}
