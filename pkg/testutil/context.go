package testutil

import (
	"net/http"
	"time"

	authmw "custodian/pkg/platform/middleware/auth"
	"custodian/pkg/requestcontext"
)

// WithActor adds an authenticated actor and its roles to the request context.
// This simulates what the auth middleware would do for a valid token.
func WithActor(req *http.Request, actor string, roles ...string) *http.Request {
	ctx := requestcontext.WithActorID(req.Context(), actor)
	if len(roles) > 0 {
		ctx = authmw.WithRoles(ctx, roles...)
	}
	return req.WithContext(ctx)
}

// WithRequestID pins the request ID normally assigned by the request middleware.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithTime pins the request clock so handlers observe a deterministic now.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
