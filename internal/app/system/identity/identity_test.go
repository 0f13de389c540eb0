package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMiddleware_ValidHeaders(t *testing.T) {
	userID := primitive.NewObjectID()

	var got Actor
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = FromRequest(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, userID.Hex())
	req.Header.Set(HeaderRole, "admin")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	req.Header.Set("User-Agent", "test-agent")

	Middleware(next).ServeHTTP(httptest.NewRecorder(), req)

	if !found {
		t.Fatal("expected an actor in context")
	}
	if got.UserID != userID {
		t.Errorf("user id: got %s, want %s", got.UserID.Hex(), userID.Hex())
	}
	if !got.IsAdmin {
		t.Error("expected admin role")
	}
	if got.IP != "203.0.113.9" {
		t.Errorf("ip: got %q", got.IP)
	}
	if got.UserAgent != "test-agent" {
		t.Errorf("user agent: got %q", got.UserAgent)
	}
}

func TestMiddleware_NonAdminRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := FromRequest(r)
		if !ok {
			t.Fatal("expected an actor")
		}
		if actor.IsAdmin {
			t.Error("abogado role must not be admin")
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, primitive.NewObjectID().Hex())
	req.Header.Set(HeaderRole, "abogado")

	Middleware(next).ServeHTTP(httptest.NewRecorder(), req)
}

func TestMiddleware_MissingIdentity(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromRequest(r); ok {
			t.Error("expected no actor for anonymous request")
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	Middleware(next).ServeHTTP(httptest.NewRecorder(), req)
}

func TestMiddleware_MalformedUserID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromRequest(r); ok {
			t.Error("expected no actor for malformed user id")
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "not-an-object-id")
	Middleware(next).ServeHTTP(httptest.NewRecorder(), req)
}
