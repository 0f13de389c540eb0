// Package identity carries the acting user through request contexts.
//
// Authentication and session issuance happen upstream (the API gateway
// terminates the session and forwards the verified identity); this package
// only transports the result. Handlers read it with FromRequest, the
// lifecycle service receives it as an Actor value.
package identity

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Header names set by the upstream gateway after authenticating the caller.
const (
	HeaderUserID = "X-User-Id"
	HeaderRole   = "X-User-Role"
)

// Actor identifies the authenticated caller of an operation.
type Actor struct {
	UserID  primitive.ObjectID
	IsAdmin bool // global administrator role, bypasses per-document grants

	// Request context captured for audit rows.
	IP        string
	UserAgent string
}

type ctxKey struct{}

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the actor stored in ctx, if any.
func FromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(ctxKey{}).(Actor)
	return a, ok
}

// FromRequest returns the actor for an HTTP request.
func FromRequest(r *http.Request) (Actor, bool) {
	return FromContext(r.Context())
}

// Middleware extracts the gateway-verified identity headers and stores the
// actor in the request context. Requests without a valid user id pass
// through anonymous; handlers that need an actor reject those themselves.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := primitive.ObjectIDFromHex(r.Header.Get(HeaderUserID))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		actor := Actor{
			UserID:    id,
			IsAdmin:   r.Header.Get(HeaderRole) == "admin",
			IP:        clientIP(r),
			UserAgent: r.UserAgent(),
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithTestActor injects an actor into a request for handler tests.
func WithTestActor(r *http.Request, a Actor) *http.Request {
	return r.WithContext(WithActor(r.Context(), a))
}

// clientIP extracts the client IP, honoring reverse-proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
