package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
)

// Provider implements Store on top of a pantry storage backend. The
// backend owns the bytes (local disk or S3); Provider owns object
// naming and the path-to-URL mapping.
type Provider struct {
	backend   storage.Store
	urlPrefix string
}

// New wraps an already-constructed backend. Stored files are served
// under urlPrefix, e.g. "/uploads".
func New(backend storage.Store, urlPrefix string) *Provider {
	return &Provider{
		backend:   backend,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

// NewLocal wires a disk-backed Provider rooted at baseDir.
func NewLocal(baseDir, urlPrefix string) (*Provider, error) {
	backend, err := storage.NewLocal(storage.LocalConfig{BasePath: baseDir})
	if err != nil {
		return nil, fmt.Errorf("local storage: %w", err)
	}
	return New(backend, urlPrefix), nil
}

// Store writes data to <folder>/<YYYY>/<MM>/<uuid8>-<name> and returns
// the serving URL for that path.
func (p *Provider) Store(ctx context.Context, data []byte, contentType, originalName, folder string) (Stored, error) {
	now := time.Now().UTC()
	dateDir := fmt.Sprintf("%s/%04d/%02d", folder, now.Year(), now.Month())
	name := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(originalName))
	objPath := filepath.ToSlash(filepath.Join(dateDir, name))

	opts := &storage.PutOptions{
		ContentType: contentType,
	}
	if err := p.backend.Put(ctx, objPath, bytes.NewReader(data), opts); err != nil {
		return Stored{}, fmt.Errorf("put %s: %w", objPath, err)
	}

	return Stored{
		URL:      p.urlPrefix + "/" + objPath,
		Filename: name,
	}, nil
}

// Delete removes the file behind a URL this provider produced.
func (p *Provider) Delete(ctx context.Context, url string) (bool, error) {
	rel, ok := strings.CutPrefix(url, p.urlPrefix+"/")
	if !ok {
		return false, fmt.Errorf("url %q is not served by this store", url)
	}
	// Refuse anything that could escape the storage root.
	rel = path.Clean("/" + rel)[1:]

	if err := p.backend.Delete(ctx, rel); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete %s: %w", rel, err)
	}
	return true, nil
}

// sanitizeFilename strips path components and replaces characters that are
// unsafe in file names, keeping the extension when truncating.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	if filename == "." || filename == string(filepath.Separator) {
		return "archivo"
	}

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "archivo"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
