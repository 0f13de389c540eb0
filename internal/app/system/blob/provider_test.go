package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProvider_StoreAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	ctx := context.Background()
	data := []byte("%PDF-1.4 contenido de prueba")

	stored, err := store.Store(ctx, data, "application/pdf", "demanda inicial.pdf", "documentos")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if !strings.HasPrefix(stored.URL, "/uploads/documentos/") {
		t.Errorf("url: got %q, want /uploads/documentos/ prefix", stored.URL)
	}
	if strings.Contains(stored.Filename, " ") {
		t.Errorf("filename %q should be sanitized", stored.Filename)
	}
	if !strings.HasSuffix(stored.Filename, ".pdf") {
		t.Errorf("filename %q should keep the extension", stored.Filename)
	}

	// The bytes must land where the uploads fileserver expects them.
	rel := strings.TrimPrefix(stored.URL, "/uploads/")
	onDisk, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(onDisk) != string(data) {
		t.Error("stored bytes differ from input")
	}

	found, err := store.Delete(ctx, stored.URL)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !found {
		t.Error("expected Delete to find the file")
	}

	found, err = store.Delete(ctx, stored.URL)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if found {
		t.Error("expected second Delete to report not found")
	}
}

func TestProvider_UniqueNames(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}

	ctx := context.Background()
	a, err := store.Store(ctx, []byte("a"), "text/plain", "nota.txt", "documentos")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	b, err := store.Store(ctx, []byte("b"), "text/plain", "nota.txt", "documentos")
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if a.URL == b.URL {
		t.Error("two uploads of the same name must get distinct URLs")
	}
}

func TestProvider_DeleteForeignURL(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewLocal failed: %v", err)
	}
	if _, err := store.Delete(context.Background(), "https://elsewhere.example/x.pdf"); err == nil {
		t.Error("expected an error for a URL outside the prefix")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"demanda.pdf", "demanda.pdf"},
		{"../../etc/passwd", "passwd"},
		{"escrito final.pdf", "escrito_final.pdf"},
		{"", "archivo"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
