package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/doctajus/lexhub/internal/app/system/identity"
)

// AdminActor returns an actor with the global admin role.
func AdminActor() identity.Actor {
	return identity.Actor{
		UserID:    primitive.NewObjectID(),
		IsAdmin:   true,
		IP:        "192.0.2.1",
		UserAgent: "lexhub-test/1.0",
	}
}

// AbogadoActor returns a regular (non-admin) actor.
func AbogadoActor() identity.Actor {
	return identity.Actor{
		UserID:    primitive.NewObjectID(),
		IP:        "192.0.2.2",
		UserAgent: "lexhub-test/1.0",
	}
}

// NewRequest creates an HTTP request with an actor in context.
func NewRequest(method, target string, actor identity.Actor) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return identity.WithTestActor(req, actor)
}

// NewJSONRequest creates a request whose body is the JSON encoding of v.
func NewJSONRequest(t *testing.T, method, target string, actor identity.Actor, v any) *http.Request {
	t.Helper()

	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return identity.WithTestActor(req, actor)
}

// NewUploadRequest creates a multipart request with one file field plus
// regular form fields, the shape document create and update expect.
func NewUploadRequest(t *testing.T, target string, actor identity.Actor, fileField, fileName, contentType string, fileData []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field %q: %v", k, err)
		}
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, fileName))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(fileData); err != nil {
		t.Fatalf("failed to write file data: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return identity.WithTestActor(req, actor)
}

// DecodeJSON decodes a response body into v.
func DecodeJSON(t *testing.T, body io.Reader, v any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}
